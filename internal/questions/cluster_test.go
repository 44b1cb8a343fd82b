package questions

import "testing"

func TestCluster_GroupsByNormalizedKey(t *testing.T) {
	t.Parallel()

	records := []Record{
		{Question: "proxy vs vpn", Volume: 100, Source: "a.csv"},
		{Question: "vpn vs proxy", Volume: 50, Source: "b.csv"},
		{Question: "what is a socks5 proxy", Volume: 30, Source: "a.csv"},
	}

	result := Cluster(records)
	if len(result.Keys) != 2 {
		t.Fatalf("expected 2 clusters, got %d", len(result.Keys))
	}
	for _, key := range result.Keys {
		switch len(result.Clusters[key]) {
		case 1, 2:
		default:
			t.Fatalf("unexpected cluster size for %q: %d", key, len(result.Clusters[key]))
		}
	}
}

func TestCluster_ExcludesEmptyKeysWithCount(t *testing.T) {
	t.Parallel()

	records := []Record{
		{Question: "is it this or that", Volume: 10},
		{Question: "residential proxy", Volume: 20},
	}

	result := Cluster(records)
	if result.Unclusterable != 1 {
		t.Fatalf("expected 1 unclusterable record, got %d", result.Unclusterable)
	}
	if len(result.Keys) != 1 {
		t.Fatalf("expected 1 cluster, got %d", len(result.Keys))
	}
}

func TestMergeCluster_RepresentativeSelection(t *testing.T) {
	t.Parallel()

	cluster := []Record{
		{Question: "what is a proxy", Volume: 50},
		{Question: "whats a proxy", Volume: 200},
		{Question: "what is proxy", Volume: 10},
	}

	merged := MergeCluster(cluster)
	if merged.Volume != 200 {
		t.Fatalf("expected representative volume 200, got %d", merged.Volume)
	}
	if merged.Question != "whats a proxy" {
		t.Fatalf("expected highest-volume member as representative, got %q", merged.Question)
	}
}

func TestMergeCluster_VolumeConservation(t *testing.T) {
	t.Parallel()

	cluster := []Record{
		{Question: "proxy vs vpn", Volume: 500},
		{Question: "vpn vs proxy", Volume: 300},
		{Question: "proxy versus vpn", Volume: 0},
	}

	merged := MergeCluster(cluster)
	if merged.TotalVolume != 800 {
		t.Fatalf("expected total volume 800, got %d", merged.TotalVolume)
	}
	sum := merged.Volume
	for _, v := range merged.Variants {
		sum += v.Volume
	}
	if sum != merged.TotalVolume {
		t.Fatalf("variants plus representative must reconstruct total volume: %d vs %d", sum, merged.TotalVolume)
	}
}

func TestMergeCluster_AbsorbsCaseInsensitiveDuplicates(t *testing.T) {
	t.Parallel()

	cluster := []Record{
		{Question: "What Is A Proxy", Volume: 900, Source: "a.csv"},
		{Question: "what is a proxy", Volume: 100, Source: "b.csv"},
		{Question: "what is proxy", Volume: 40, Source: "a.csv"},
		{Question: "WHAT IS PROXY", Volume: 5, Source: "b.csv"},
	}

	merged := MergeCluster(cluster)
	if merged.ClusterSize != 4 {
		t.Fatalf("expected cluster size 4, got %d", merged.ClusterSize)
	}
	if merged.VariantCount != 1 {
		t.Fatalf("expected absorbed duplicates to leave 1 variant, got %d", merged.VariantCount)
	}
	if merged.Variants[0].Question != "what is proxy" {
		t.Fatalf("unexpected surviving variant: %q", merged.Variants[0].Question)
	}
	// Absorbed duplicates still count toward total volume.
	if merged.TotalVolume != 1045 {
		t.Fatalf("expected total volume 1045, got %d", merged.TotalVolume)
	}
}

func TestMergeCluster_StableTieBreak(t *testing.T) {
	t.Parallel()

	cluster := []Record{
		{Question: "first question about proxies", Volume: 100},
		{Question: "second question about proxies", Volume: 100},
	}

	merged := MergeCluster(cluster)
	if merged.Question != "first question about proxies" {
		t.Fatalf("ties must keep input order, got representative %q", merged.Question)
	}
}

func TestFinalize_OrdersByTotalVolumeAndAssignsIDs(t *testing.T) {
	t.Parallel()

	records := []Record{
		{Question: "what is a residential proxy", Volume: 100},
		{Question: "whats a residential proxy", Volume: 50},
		{Question: "how to scrape google", Volume: 5000},
	}

	merged := Finalize(Cluster(records))
	if len(merged) != 2 {
		t.Fatalf("expected 2 merged questions, got %d", len(merged))
	}
	if merged[0].Question != "how to scrape google" || merged[0].ID != 1 {
		t.Fatalf("expected highest total volume first with id 1, got %+v", merged[0])
	}
	if merged[1].ID != 2 {
		t.Fatalf("expected dense sequential ids, got %d", merged[1].ID)
	}
	for _, m := range merged {
		if m.Slug == "" || m.Category == "" || m.Status != "pending" {
			t.Fatalf("finalize must assign slug, category, and pending status: %+v", m)
		}
	}
}

func TestFinalize_SlugsAreUnique(t *testing.T) {
	t.Parallel()

	// Different clustering keys (the hyphen is stripped from the key but
	// kept in the slug), identical slugs after prefix stripping.
	records := []Record{
		{Question: "what is a proxy server", Volume: 100},
		{Question: "what is a proxy-server", Volume: 90},
	}

	merged := Finalize(Cluster(records))
	if len(merged) != 2 {
		t.Fatalf("expected 2 merged questions, got %d", len(merged))
	}
	if merged[0].Slug == merged[1].Slug {
		t.Fatalf("slugs must be unique within an output set, both %q", merged[0].Slug)
	}
}

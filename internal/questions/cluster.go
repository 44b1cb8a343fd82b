package questions

import (
	"sort"
	"strconv"
	"strings"

	"proxyfaqs.dev/faqforge/internal/textnorm"
)

// ClusterResult holds the grouped records plus the keys in first-seen
// order, so downstream passes stay deterministic for a given input order.
type ClusterResult struct {
	Clusters map[string][]Record
	Keys     []string
	// Unclusterable counts records whose normalized key came out empty.
	// They are excluded from clustering, never silently dropped from the
	// reported totals.
	Unclusterable int
}

// Cluster groups records by their normalized clustering key.
func Cluster(records []Record) ClusterResult {
	result := ClusterResult{
		Clusters: make(map[string][]Record),
	}
	for _, record := range records {
		key := textnorm.ClusterKey(record.Question)
		if key == "" {
			result.Unclusterable++
			continue
		}
		if _, seen := result.Clusters[key]; !seen {
			result.Keys = append(result.Keys, key)
		}
		result.Clusters[key] = append(result.Clusters[key], record)
	}
	return result
}

// MergeCluster collapses one cluster into its canonical record.
//
// The representative is the highest-volume member; ties keep input order.
// Variants are every other member in descending-volume order, except
// members whose question text equals the representative's
// case-insensitively. Cross-source exact duplicates are absorbed into
// TotalVolume without being listed, so VariantCount can be smaller than
// ClusterSize-1.
func MergeCluster(cluster []Record) Merged {
	sorted := make([]Record, len(cluster))
	copy(sorted, cluster)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Volume > sorted[j].Volume
	})

	primary := sorted[0]
	seen := map[string]struct{}{
		strings.ToLower(primary.Question): {},
	}

	variants := make([]Variant, 0, len(sorted)-1)
	totalVolume := primary.Volume
	for _, member := range sorted[1:] {
		totalVolume += member.Volume
		lower := strings.ToLower(member.Question)
		if _, dup := seen[lower]; dup {
			continue
		}
		seen[lower] = struct{}{}
		variants = append(variants, Variant{
			Question: member.Question,
			Volume:   member.Volume,
		})
	}

	return Merged{
		Question:     primary.Question,
		Volume:       primary.Volume,
		TotalVolume:  totalVolume,
		Difficulty:   primary.Difficulty,
		Country:      primary.Country,
		Variants:     variants,
		VariantCount: len(variants),
		ClusterSize:  len(cluster),
		Status:       "pending",
	}
}

// Finalize merges every cluster, orders the merged set by total volume
// descending (stable), and assigns dense ids, slugs, and categories.
// Slugs are unique within the output set: a collision gets a numeric
// suffix rather than silently overwriting a sibling on upsert.
func Finalize(clustered ClusterResult) []Merged {
	merged := make([]Merged, 0, len(clustered.Keys))
	for _, key := range clustered.Keys {
		merged = append(merged, MergeCluster(clustered.Clusters[key]))
	}

	sort.SliceStable(merged, func(i, j int) bool {
		return merged[i].TotalVolume > merged[j].TotalVolume
	})

	usedSlugs := make(map[string]int, len(merged))
	for i := range merged {
		merged[i].ID = i + 1
		merged[i].Slug = uniqueSlug(GenerateSlug(merged[i].Question), usedSlugs)
		category := Categorize(merged[i].Question)
		merged[i].Category = category.ID
		merged[i].CategoryName = category.Name
		merged[i].CategorySlug = category.Slug
	}
	return merged
}

func uniqueSlug(slug string, used map[string]int) string {
	if slug == "" {
		slug = "question"
	}
	count := used[slug]
	used[slug] = count + 1
	if count == 0 {
		return slug
	}
	return slug + "-" + strconv.Itoa(count+1)
}

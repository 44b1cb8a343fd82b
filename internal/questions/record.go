// Package questions clusters raw SEO question records into merged,
// categorized work units for article generation.
package questions

// Record is one raw question row from a keyword export.
type Record struct {
	Question   string `json:"question"`
	Volume     int    `json:"volume"`
	Difficulty *int   `json:"difficulty,omitempty"`
	Country    string `json:"country"`
	Source     string `json:"source"`
}

// Variant is a discarded cluster member kept for reference.
type Variant struct {
	Question string `json:"question"`
	Volume   int    `json:"volume"`
}

// Merged is the canonical record for one cluster: the highest-volume
// member as representative plus the aggregate over all members. The
// original cluster is recoverable from the representative and the
// variants; no volume contribution is lost because TotalVolume sums every
// member, including variants absorbed as exact duplicates.
type Merged struct {
	ID           int       `json:"id"`
	Question     string    `json:"question"`
	Volume       int       `json:"volume"`
	TotalVolume  int       `json:"total_volume"`
	Difficulty   *int      `json:"difficulty,omitempty"`
	Country      string    `json:"country"`
	Variants     []Variant `json:"variants"`
	VariantCount int       `json:"variant_count"`
	ClusterSize  int       `json:"cluster_size"`
	Slug         string    `json:"slug"`
	Category     string    `json:"category"`
	CategoryName string    `json:"category_name"`
	CategorySlug string    `json:"category_slug"`
	Status       string    `json:"status"`
}

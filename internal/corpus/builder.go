// Package corpus builds the deduplicated knowledge base that backs
// retrieval. Each accepted entry is immutable and its position in the
// entry slice is load-bearing: the retrieval index refers to entries by
// ordinal, so insertion order must never change after a build.
package corpus

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"

	"proxyfaqs.dev/faqforge/internal/textnorm"
)

const minEntryLength = 20

// Entry is one knowledge-base record. Never mutated after acceptance.
type Entry struct {
	ID     int    `json:"id"`
	Text   string `json:"text"`
	Source string `json:"source"`
}

// Stats accumulates build accounting. Reported at the end of every build,
// including builds where some inputs were skipped.
type Stats struct {
	TotalRaw   int            `json:"total_raw"`
	Duplicates int            `json:"duplicates"`
	Unique     int            `json:"unique"`
	BySource   map[string]int `json:"by_source"`
}

// Builder owns the seen-hash set and counters for one build run. Construct
// one per build; the dedup state is never process-global, so concurrent
// builds in one process (tests included) cannot contaminate each other.
// Not safe for concurrent writers.
type Builder struct {
	seen    map[string]struct{}
	entries []Entry
	stats   Stats
}

func NewBuilder() *Builder {
	return &Builder{
		seen: make(map[string]struct{}),
		stats: Stats{
			BySource: make(map[string]int),
		},
	}
}

// AddEntry accepts text into the corpus unless it is too short or a
// duplicate under the conservative content hash. Returns true iff the
// entry was accepted. Duplicates are a counted outcome, not an error.
func (b *Builder) AddEntry(text, source string) bool {
	trimmed := strings.TrimSpace(text)
	if len(trimmed) < minEntryLength {
		return false
	}

	hash := contentHash(trimmed)
	b.stats.TotalRaw++

	if _, dup := b.seen[hash]; dup {
		b.stats.Duplicates++
		return false
	}

	b.seen[hash] = struct{}{}
	b.entries = append(b.entries, Entry{
		ID:     len(b.entries) + 1,
		Text:   trimmed,
		Source: source,
	})
	b.stats.Unique++
	b.stats.BySource[source]++
	return true
}

// Entries returns the accepted set in insertion order. The returned slice
// is the builder's backing array; callers treat it as read-only.
func (b *Builder) Entries() []Entry {
	return b.entries
}

func (b *Builder) Stats() Stats {
	return b.stats
}

func contentHash(text string) string {
	sum := sha256.Sum256([]byte(textnorm.Conservative(text)))
	return hex.EncodeToString(sum[:])
}

// Package textnorm canonicalizes question text for duplicate detection.
//
// Two normalizers live here and they are deliberately different:
// ClusterKey is aggressive (stop words dropped, tokens re-sorted) and is
// only ever used as a grouping key; Conservative is literal (lower-case,
// whitespace collapse) and feeds content hashing. Hyphens are stripped by
// ClusterKey along with all other punctuation, so "anti-detect" and
// "antidetect" produce the same key everywhere.
package textnorm

import (
	"sort"
	"strings"
	"unicode"
)

// clusterStopWords are dropped from clustering keys. Articles, auxiliary
// verbs, pronouns, and the common prepositions/conjunctions that carry no
// topical signal in an SEO question.
var clusterStopWords = map[string]struct{}{
	"a": {}, "an": {}, "the": {},
	"is": {}, "are": {}, "was": {}, "were": {}, "be": {}, "been": {},
	"do": {}, "does": {}, "did": {},
	"can": {}, "could": {}, "would": {}, "should": {},
	"i": {}, "you": {}, "we": {}, "they": {}, "it": {},
	"my": {}, "your": {}, "our": {}, "their": {},
	"this": {}, "that": {}, "these": {}, "those": {},
	"for": {}, "of": {}, "in": {}, "on": {}, "at": {}, "to": {}, "with": {}, "by": {}, "from": {},
	"and": {}, "or": {}, "but": {}, "if": {}, "then": {}, "so": {},
}

// contractionRewrites collapses interrogative contractions to a canonical
// phrase. Applied after punctuation stripping, so "what's" arrives here as
// "whats". A fixed rewrite table, not NLP.
var contractionRewrites = []struct {
	from string
	to   string
}{
	{"whats", "what is"},
	{"how do i", "how to"},
	{"how can i", "how to"},
	{"how do you", "how to"},
}

// ClusterKey canonicalizes a question into its clustering key. Word order
// does not affect the key: "proxy vs vpn" and "vpn vs proxy" collide by
// design. An empty result means the question is unclusterable.
func ClusterKey(text string) string {
	q := strings.ToLower(strings.TrimSpace(text))
	if q == "" {
		return ""
	}

	var b strings.Builder
	b.Grow(len(q))
	for _, r := range q {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.IsSpace(r) {
			b.WriteRune(r)
		}
	}
	q = b.String()

	padded := " " + strings.Join(strings.Fields(q), " ") + " "
	for _, rw := range contractionRewrites {
		padded = strings.ReplaceAll(padded, " "+rw.from+" ", " "+rw.to+" ")
	}

	words := strings.Fields(padded)
	kept := words[:0]
	for _, w := range words {
		if len(w) <= 1 {
			continue
		}
		if _, stop := clusterStopWords[w]; stop {
			continue
		}
		kept = append(kept, w)
	}

	sort.Strings(kept)
	return strings.Join(kept, " ")
}

// Conservative lower-cases and collapses whitespace, nothing else. Used for
// exact near-duplicate content hashing where stop-word removal would be too
// lossy.
func Conservative(text string) string {
	return strings.Join(strings.Fields(strings.ToLower(text)), " ")
}

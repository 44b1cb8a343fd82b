// Package retrieval implements the TF-IDF index that supplies knowledge
// context for article generation. The index is built once over the full
// corpus and is immutable afterward; rebuilding from scratch is the only
// way to add entries. Queries are read-only and safe for concurrent use.
package retrieval

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"unicode"

	"proxyfaqs.dev/faqforge/internal/corpus"
)

// Options bound the vocabulary. Zero values take the defaults below.
type Options struct {
	// MaxFeatures caps the vocabulary, keeping the terms with the highest
	// corpus-wide counts (ties broken alphabetically).
	MaxFeatures int
	// MinDocFreq drops terms appearing in fewer than this many documents.
	MinDocFreq int
	// MaxDocRatio drops terms appearing in more than this fraction of
	// documents; near-universal terms carry no discriminative signal.
	MaxDocRatio float64
	// MinScore is the relevance floor: results scoring at or below it are
	// discarded.
	MinScore float64
}

const (
	defaultMaxFeatures = 10000
	defaultMinDocFreq  = 2
	defaultMaxDocRatio = 0.85
	defaultMinScore    = 0.05
)

func (o Options) withDefaults() Options {
	if o.MaxFeatures <= 0 {
		o.MaxFeatures = defaultMaxFeatures
	}
	if o.MinDocFreq <= 0 {
		o.MinDocFreq = defaultMinDocFreq
	}
	if o.MaxDocRatio <= 0 || o.MaxDocRatio > 1 {
		o.MaxDocRatio = defaultMaxDocRatio
	}
	if o.MinScore <= 0 {
		o.MinScore = defaultMinScore
	}
	return o
}

// sparseVector is an L2-normalized term-weight vector keyed by vocabulary
// column.
type sparseVector map[int]float64

// Index is the built retrieval index. Entries are referenced by ordinal:
// vector i describes entries[i], so the backing entry slice must never be
// reordered after construction.
type Index struct {
	entries []corpus.Entry
	vocab   map[string]int
	idf     []float64
	vectors []sparseVector
	opts    Options
}

// Result is one scored retrieval hit.
type Result struct {
	Entry corpus.Entry
	Score float64
}

// Build constructs the index over the corpus snapshot. An empty corpus or
// a vocabulary that collapses to nothing under the document-frequency
// bounds is a fatal build error; a degenerate index must never be served.
func Build(entries []corpus.Entry, opts Options) (*Index, error) {
	if len(entries) == 0 {
		return nil, fmt.Errorf("retrieval index requires a non-empty corpus")
	}
	opts = opts.withDefaults()

	docTerms := make([]map[string]int, len(entries))
	docFreq := make(map[string]int)
	termCount := make(map[string]int)
	for i, entry := range entries {
		counts := termCounts(entry.Text)
		docTerms[i] = counts
		for term, count := range counts {
			docFreq[term]++
			termCount[term] += count
		}
	}

	vocab := buildVocabulary(docFreq, termCount, len(entries), opts)
	if len(vocab) == 0 {
		return nil, fmt.Errorf("retrieval vocabulary is empty after frequency bounds (corpus of %d documents)", len(entries))
	}

	idf := make([]float64, len(vocab))
	n := float64(len(entries))
	for term, col := range vocab {
		df := float64(docFreq[term])
		idf[col] = math.Log((1+n)/(1+df)) + 1
	}

	vectors := make([]sparseVector, len(entries))
	for i, counts := range docTerms {
		vectors[i] = embed(counts, vocab, idf)
	}

	return &Index{
		entries: entries,
		vocab:   vocab,
		idf:     idf,
		vectors: vectors,
		opts:    opts,
	}, nil
}

// Query returns up to k entries ranked by cosine similarity to the query
// text, dropping anything at or below the relevance floor. Score ties keep
// corpus insertion order. An empty query returns no results; querying a
// nil index is a contract violation and fails loudly.
func (idx *Index) Query(text string, k int) ([]Result, error) {
	if idx == nil || idx.vocab == nil {
		return nil, fmt.Errorf("retrieval index is not built")
	}
	if k <= 0 {
		return nil, fmt.Errorf("retrieval k must be > 0, got %d", k)
	}
	if strings.TrimSpace(text) == "" {
		return nil, nil
	}

	queryVec := embed(termCounts(text), idx.vocab, idx.idf)
	if len(queryVec) == 0 {
		// Entirely out-of-vocabulary. Expected for novel topics.
		return nil, nil
	}

	scores := make([]float64, len(idx.vectors))
	for i, docVec := range idx.vectors {
		scores[i] = dot(queryVec, docVec)
	}

	order := make([]int, len(scores))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return scores[order[a]] > scores[order[b]]
	})

	results := make([]Result, 0, k)
	for _, i := range order {
		if len(results) == k {
			break
		}
		if scores[i] <= idx.opts.MinScore {
			break
		}
		results = append(results, Result{
			Entry: idx.entries[i],
			Score: scores[i],
		})
	}
	return results, nil
}

// Size returns the number of indexed documents.
func (idx *Index) Size() int {
	if idx == nil {
		return 0
	}
	return len(idx.entries)
}

// VocabularySize returns the number of retained terms.
func (idx *Index) VocabularySize() int {
	if idx == nil {
		return 0
	}
	return len(idx.vocab)
}

// termCounts tokenizes text into lower-cased unigrams and bigrams with
// English stop words removed. Tokens are maximal runs of letters/digits at
// least two runes long, so punctuation and single characters never become
// terms.
func termCounts(text string) map[string]int {
	tokens := tokenize(text)
	counts := make(map[string]int, len(tokens)*2)
	for i, token := range tokens {
		counts[token]++
		if i+1 < len(tokens) {
			counts[token+" "+tokens[i+1]]++
		}
	}
	return counts
}

func tokenize(text string) []string {
	fields := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	tokens := make([]string, 0, len(fields))
	for _, field := range fields {
		if len([]rune(field)) < 2 {
			continue
		}
		if _, stop := englishStopWords[field]; stop {
			continue
		}
		tokens = append(tokens, field)
	}
	return tokens
}

// buildVocabulary applies the document-frequency bounds, then caps the
// vocabulary by corpus-wide term count, and finally assigns column indexes
// in lexicographic term order so builds are deterministic.
func buildVocabulary(docFreq, termCount map[string]int, docs int, opts Options) map[string]int {
	maxDF := int(opts.MaxDocRatio * float64(docs))
	if maxDF < opts.MinDocFreq {
		maxDF = opts.MinDocFreq
	}

	kept := make([]string, 0, len(docFreq))
	for term, df := range docFreq {
		if df < opts.MinDocFreq || df > maxDF {
			continue
		}
		kept = append(kept, term)
	}

	if len(kept) > opts.MaxFeatures {
		sort.Slice(kept, func(i, j int) bool {
			if termCount[kept[i]] != termCount[kept[j]] {
				return termCount[kept[i]] > termCount[kept[j]]
			}
			return kept[i] < kept[j]
		})
		kept = kept[:opts.MaxFeatures]
	}

	sort.Strings(kept)
	vocab := make(map[string]int, len(kept))
	for col, term := range kept {
		vocab[term] = col
	}
	return vocab
}

// embed projects raw term counts into the weighted vector space and
// L2-normalizes, so cosine similarity reduces to a dot product.
// Out-of-vocabulary terms contribute nothing.
func embed(counts map[string]int, vocab map[string]int, idf []float64) sparseVector {
	vec := make(sparseVector)
	var norm float64
	for term, count := range counts {
		col, ok := vocab[term]
		if !ok {
			continue
		}
		w := float64(count) * idf[col]
		vec[col] = w
		norm += w * w
	}
	if len(vec) == 0 {
		return vec
	}
	norm = math.Sqrt(norm)
	for col := range vec {
		vec[col] /= norm
	}
	return vec
}

func dot(a, b sparseVector) float64 {
	if len(b) < len(a) {
		a, b = b, a
	}
	var sum float64
	for col, w := range a {
		if bw, ok := b[col]; ok {
			sum += w * bw
		}
	}
	return sum
}

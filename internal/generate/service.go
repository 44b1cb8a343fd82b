package generate

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"

	"proxyfaqs.dev/faqforge/internal/globaltime"
	"proxyfaqs.dev/faqforge/internal/questions"
	"proxyfaqs.dev/faqforge/internal/retrieval"
	articleschema "proxyfaqs.dev/faqforge/schema"
)

const (
	defaultTopK      = 12
	defaultRateDelay = 1500 * time.Millisecond

	// StatusCompleted and StatusFailed mark the terminal states of an
	// article record in the output JSONL.
	StatusCompleted = "completed"
	StatusFailed    = "failed"
)

// Record is one line of the articles JSONL: the generated article joined
// with the question it answers. Failed questions are recorded too, with
// only the identifying fields set.
type Record struct {
	ID              int                 `json:"id"`
	Slug            string              `json:"slug"`
	Question        string              `json:"question"`
	Title           string              `json:"title,omitempty"`
	MetaDescription string              `json:"meta_description,omitempty"`
	Article         string              `json:"article,omitempty"`
	WordCount       int                 `json:"word_count,omitempty"`
	Volume          int                 `json:"volume"`
	Difficulty      *int                `json:"difficulty,omitempty"`
	Category        string              `json:"category,omitempty"`
	CategorySlug    string              `json:"category_slug,omitempty"`
	CategoryName    string              `json:"category_name,omitempty"`
	Variants        []questions.Variant `json:"variants,omitempty"`
	InternalLinks   []string            `json:"internal_links,omitempty"`
	TokensUsed      int                 `json:"tokens_used,omitempty"`
	GeneratedAt     string              `json:"generated_at,omitempty"`
	FailedAt        string              `json:"failed_at,omitempty"`
	Status          string              `json:"status"`
}

// ArticleGenerator produces one validated article from a rendered prompt.
type ArticleGenerator interface {
	GenerateArticle(ctx context.Context, prompt string) (*articleschema.Article, int, error)
}

// RunOptions bounds one batch run.
type RunOptions struct {
	Start int
	End   int
	Batch int
	TopK  int
	Delay time.Duration
}

// Stats summarizes a batch run. It is reported even when every question was
// skipped.
type Stats struct {
	Total          int
	Generated      int
	Failed         int
	Skipped        int
	QualityFlagged int
	TotalWords     int
	TotalTokens    int
	MinWords       int
	MaxWords       int
}

// Service drives batch article generation: retrieve context, prompt the
// model, validate, append to the output JSONL.
type Service struct {
	generator ArticleGenerator
	contexts  *retrieval.ContextService
	ledger    *Ledger
	logger    zerolog.Logger
}

func NewService(generator ArticleGenerator, contexts *retrieval.ContextService, ledger *Ledger, logger zerolog.Logger) *Service {
	if ledger == nil {
		ledger = NewLedger()
	}
	return &Service{
		generator: generator,
		contexts:  contexts,
		ledger:    ledger,
		logger:    logger,
	}
}

// Run generates articles for the selected question range, appending each
// record to outputPath as it completes so an interrupted run loses at most
// one article.
func (s *Service) Run(ctx context.Context, merged []questions.Merged, outputPath string, opts RunOptions) (Stats, error) {
	if s == nil || s.generator == nil || s.contexts == nil {
		return Stats{}, fmt.Errorf("generation service is not initialized")
	}

	topK := opts.TopK
	if topK <= 0 {
		topK = defaultTopK
	}
	delay := opts.Delay
	if delay == 0 {
		delay = defaultRateDelay
	} else if delay < 0 {
		delay = 0
	}

	start := opts.Start
	if start < 0 {
		start = 0
	}
	end := opts.End
	if end <= 0 || end > len(merged) {
		end = len(merged)
	}
	if opts.Batch > 0 && start+opts.Batch < end {
		end = start + opts.Batch
	}
	if start >= end {
		return Stats{}, nil
	}

	if err := os.MkdirAll(filepath.Dir(outputPath), 0o755); err != nil {
		return Stats{}, fmt.Errorf("create output directory: %w", err)
	}
	file, err := os.OpenFile(outputPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return Stats{}, fmt.Errorf("open articles file: %w", err)
	}
	defer file.Close()

	encoder := json.NewEncoder(file)
	stats := Stats{}

	for i := start; i < end; i++ {
		if err := ctx.Err(); err != nil {
			return stats, err
		}

		question := merged[i]
		stats.Total++

		if s.ledger.Contains(question.Slug) {
			stats.Skipped++
			continue
		}

		contextText, err := s.contexts.RetrieveContext(question.Question, topK)
		if err != nil {
			return stats, fmt.Errorf("retrieve context for %q: %w", question.Slug, err)
		}

		article, tokens, err := s.generator.GenerateArticle(ctx, BuildPrompt(question, contextText))
		if err != nil {
			stats.Failed++
			s.logger.Error().Err(err).Str("slug", question.Slug).Msg("article generation failed")

			failed := Record{
				ID:       question.ID,
				Slug:     question.Slug,
				Question: question.Question,
				Volume:   question.Volume,
				FailedAt: globaltime.UTC().Format(time.RFC3339),
				Status:   StatusFailed,
			}
			if err := encoder.Encode(failed); err != nil {
				return stats, fmt.Errorf("append failed record: %w", err)
			}
			continue
		}

		if issues := QualityIssues(article); len(issues) > 0 {
			stats.QualityFlagged++
			s.logger.Warn().
				Str("slug", question.Slug).
				Strs("issues", issues).
				Msg("article has quality issues")
		}

		record := Record{
			ID:              question.ID,
			Slug:            question.Slug,
			Question:        question.Question,
			Title:           article.Title,
			MetaDescription: article.MetaDescription,
			Article:         article.Body,
			WordCount:       article.WordCount,
			Volume:          question.Volume,
			Difficulty:      question.Difficulty,
			Category:        question.Category,
			CategorySlug:    question.CategorySlug,
			CategoryName:    question.CategoryName,
			Variants:        question.Variants,
			InternalLinks:   article.InternalLinks,
			TokensUsed:      tokens,
			GeneratedAt:     globaltime.UTC().Format(time.RFC3339),
			Status:          StatusCompleted,
		}
		if err := encoder.Encode(record); err != nil {
			return stats, fmt.Errorf("append article record: %w", err)
		}

		s.ledger.Add(question.Slug)
		stats.Generated++
		stats.TotalWords += article.WordCount
		stats.TotalTokens += tokens
		if stats.MinWords == 0 || article.WordCount < stats.MinWords {
			stats.MinWords = article.WordCount
		}
		if article.WordCount > stats.MaxWords {
			stats.MaxWords = article.WordCount
		}

		s.logger.Info().
			Str("slug", question.Slug).
			Int("words", article.WordCount).
			Int("tokens", tokens).
			Msg("article generated")

		if delay > 0 && i+1 < end {
			select {
			case <-ctx.Done():
				return stats, ctx.Err()
			case <-time.After(delay):
			}
		}
	}

	return stats, nil
}

// ReadRecords loads an articles JSONL file.
func ReadRecords(path string) ([]Record, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open articles file: %w", err)
	}
	defer file.Close()

	var records []Record
	decoder := json.NewDecoder(file)
	for decoder.More() {
		var record Record
		if err := decoder.Decode(&record); err != nil {
			return nil, fmt.Errorf("decode article record %d: %w", len(records)+1, err)
		}
		records = append(records, record)
	}
	return records, nil
}

package importer

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"proxyfaqs.dev/faqforge/internal/db"
	"proxyfaqs.dev/faqforge/internal/generate"
)

const maxSourceKeywords = 5

// QuestionStore is the subset of the database pool the importer needs.
// Each article is written inside its own transaction so a failed record
// rolls back without taking earlier successes with it.
type QuestionStore interface {
	BeginTx(ctx context.Context, opts db.TxOptions) (db.Tx, error)
	UpsertQuestionTx(ctx context.Context, tx db.Tx, params db.UpsertQuestionParams) error
}

// Options bounds one import run.
type Options struct {
	Batch  int
	DryRun bool
}

// Stats summarizes an import run, including the tsvector weight
// distribution of the loaded articles.
type Stats struct {
	Total    int
	Imported int
	Failed   int
	Skipped  int
	Weights  map[string]int
	MinWords int
	MaxWords int
}

// Service loads generated articles from JSONL and upserts them into the
// questions table.
type Service struct {
	store  QuestionStore
	logger zerolog.Logger
}

func NewService(store QuestionStore, logger zerolog.Logger) *Service {
	return &Service{store: store, logger: logger}
}

// LoadArticles reads the articles JSONL and drops records that failed
// generation or carry no article body. The skipped count is reported so
// callers can surface it.
func LoadArticles(path string) ([]generate.Record, int, error) {
	records, err := generate.ReadRecords(path)
	if err != nil {
		return nil, 0, err
	}

	articles := make([]generate.Record, 0, len(records))
	skipped := 0
	for _, record := range records {
		if record.Status == generate.StatusFailed || strings.TrimSpace(record.Article) == "" {
			skipped++
			continue
		}
		articles = append(articles, record)
	}
	return articles, skipped, nil
}

// Run upserts the articles. A per-record failure is counted and logged, not
// fatal, so one bad article does not abort the batch.
func (s *Service) Run(ctx context.Context, articles []generate.Record, opts Options) (Stats, error) {
	if s == nil || s.store == nil {
		return Stats{}, fmt.Errorf("import service is not initialized")
	}

	if opts.Batch > 0 && opts.Batch < len(articles) {
		articles = articles[:opts.Batch]
	}

	stats := Stats{Weights: make(map[string]int)}

	for _, article := range articles {
		if err := ctx.Err(); err != nil {
			return stats, err
		}

		stats.Total++
		weights := db.WeightClassForVolume(article.Volume)
		stats.Weights[weights.String()]++
		if article.WordCount > 0 {
			if stats.MinWords == 0 || article.WordCount < stats.MinWords {
				stats.MinWords = article.WordCount
			}
			if article.WordCount > stats.MaxWords {
				stats.MaxWords = article.WordCount
			}
		}

		if opts.DryRun {
			s.logger.Info().
				Str("slug", article.Slug).
				Str("weights", weights.String()).
				Int("volume", article.Volume).
				Int("words", article.WordCount).
				Msg("dry run: would import")
			stats.Imported++
			continue
		}

		if err := s.importOne(ctx, article); err != nil {
			stats.Failed++
			s.logger.Error().Err(err).Str("slug", article.Slug).Msg("import failed")
			continue
		}
		stats.Imported++
	}

	return stats, nil
}

func (s *Service) importOne(ctx context.Context, article generate.Record) error {
	tx, err := s.store.BeginTx(ctx, db.TxOptions{})
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	if err := s.store.UpsertQuestionTx(ctx, tx, upsertParams(article)); err != nil {
		_ = tx.Rollback(ctx)
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

func upsertParams(article generate.Record) db.UpsertQuestionParams {
	category := article.CategoryName
	if category == "" {
		category = "General"
	}
	categorySlug := article.CategorySlug
	if categorySlug == "" {
		categorySlug = "general"
	}

	keywords := make([]string, 0, maxSourceKeywords)
	for _, variant := range article.Variants {
		if len(keywords) == maxSourceKeywords {
			break
		}
		keywords = append(keywords, variant.Question)
	}

	return db.UpsertQuestionParams{
		Slug:            article.Slug,
		Question:        article.Question,
		Answer:          article.Article,
		Category:        category,
		CategorySlug:    categorySlug,
		MetaTitle:       article.Title,
		MetaDescription: article.MetaDescription,
		SourceKeyword:   strings.Join(keywords, ","),
		Volume:          article.Volume,
		Difficulty:      article.Difficulty,
		WordCount:       article.WordCount,
	}
}

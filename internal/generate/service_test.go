package generate

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"proxyfaqs.dev/faqforge/internal/corpus"
	"proxyfaqs.dev/faqforge/internal/questions"
	"proxyfaqs.dev/faqforge/internal/retrieval"
	articleschema "proxyfaqs.dev/faqforge/schema"
)

type fakeGenerator struct {
	calls    int
	failSlug string
}

func (f *fakeGenerator) GenerateArticle(_ context.Context, prompt string) (*articleschema.Article, int, error) {
	f.calls++
	if f.failSlug != "" && strings.Contains(prompt, f.failSlug) {
		return nil, 0, fmt.Errorf("simulated API failure")
	}
	return &articleschema.Article{
		Title:           "Generated Title",
		MetaDescription: strings.Repeat("m", 155),
		Body:            "# T\n\n## S\n\nbody words here\n\n## Frequently Asked Questions\n\n## Conclusion\n",
		WordCount:       12,
		InternalLinks:   []string{"related-slug"},
	}, 500, nil
}

func testContextService(t *testing.T) *retrieval.ContextService {
	t.Helper()
	entries := []corpus.Entry{
		{ID: 1, Text: "Residential proxies route traffic through real ISP home addresses.", Source: "paa_x"},
		{ID: 2, Text: "Datacenter proxies come from commercial hosting providers.", Source: "paa_x"},
	}
	index, err := retrieval.Build(entries, retrieval.Options{MinDocFreq: 1})
	if err != nil {
		t.Fatalf("build index: %v", err)
	}
	return retrieval.NewContextService(index)
}

func testQuestions() []questions.Merged {
	return []questions.Merged{
		{ID: 1, Question: "What is a residential proxy?", Slug: "residential-proxy", Volume: 1900, Status: "pending"},
		{ID: 2, Question: "What is a datacenter proxy?", Slug: "datacenter-proxy", Volume: 800, Status: "pending"},
	}
}

func TestServiceRun_GeneratesAndAppends(t *testing.T) {
	t.Parallel()

	output := filepath.Join(t.TempDir(), "articles.jsonl")
	gen := &fakeGenerator{}
	svc := NewService(gen, testContextService(t), NewLedger(), zerolog.Nop())

	stats, err := svc.Run(context.Background(), testQuestions(), output, RunOptions{Delay: -1})
	if err != nil {
		t.Fatalf("run: %v", err)
	}

	if stats.Total != 2 || stats.Generated != 2 || stats.Failed != 0 || stats.Skipped != 0 {
		t.Fatalf("unexpected stats: %+v", stats)
	}
	if stats.TotalTokens != 1000 {
		t.Fatalf("expected 1000 total tokens, got %d", stats.TotalTokens)
	}

	records, err := ReadRecords(output)
	if err != nil {
		t.Fatalf("read records: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(records))
	}
	first := records[0]
	if first.Slug != "residential-proxy" || first.Status != StatusCompleted {
		t.Fatalf("unexpected first record: %+v", first)
	}
	if first.Title != "Generated Title" || first.TokensUsed != 500 {
		t.Fatalf("article fields not carried into record: %+v", first)
	}
	if first.GeneratedAt == "" {
		t.Fatalf("expected generated_at timestamp")
	}
}

func TestServiceRun_LedgerSkipsCompleted(t *testing.T) {
	t.Parallel()

	output := filepath.Join(t.TempDir(), "articles.jsonl")
	ledger := NewLedger()
	ledger.Add("residential-proxy")
	gen := &fakeGenerator{}
	svc := NewService(gen, testContextService(t), ledger, zerolog.Nop())

	stats, err := svc.Run(context.Background(), testQuestions(), output, RunOptions{Delay: -1})
	if err != nil {
		t.Fatalf("run: %v", err)
	}

	if stats.Skipped != 1 || stats.Generated != 1 {
		t.Fatalf("unexpected stats: %+v", stats)
	}
	if gen.calls != 1 {
		t.Fatalf("expected 1 generator call, got %d", gen.calls)
	}

	records, err := ReadRecords(output)
	if err != nil {
		t.Fatalf("read records: %v", err)
	}
	if len(records) != 1 || records[0].Slug != "datacenter-proxy" {
		t.Fatalf("expected only the uncompleted question, got %+v", records)
	}
}

func TestServiceRun_FailureRecordsFailedStatus(t *testing.T) {
	t.Parallel()

	output := filepath.Join(t.TempDir(), "articles.jsonl")
	gen := &fakeGenerator{failSlug: "datacenter proxy"}
	svc := NewService(gen, testContextService(t), NewLedger(), zerolog.Nop())

	stats, err := svc.Run(context.Background(), testQuestions(), output, RunOptions{Delay: -1})
	if err != nil {
		t.Fatalf("run: %v", err)
	}

	if stats.Generated != 1 || stats.Failed != 1 {
		t.Fatalf("unexpected stats: %+v", stats)
	}

	records, err := ReadRecords(output)
	if err != nil {
		t.Fatalf("read records: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(records))
	}
	failed := records[1]
	if failed.Status != StatusFailed || failed.Slug != "datacenter-proxy" {
		t.Fatalf("unexpected failed record: %+v", failed)
	}
	if failed.FailedAt == "" {
		t.Fatalf("expected failed_at timestamp")
	}
	if failed.Article != "" {
		t.Fatalf("failed record must not carry article content")
	}
}

func TestServiceRun_BatchLimitsRange(t *testing.T) {
	t.Parallel()

	output := filepath.Join(t.TempDir(), "articles.jsonl")
	gen := &fakeGenerator{}
	svc := NewService(gen, testContextService(t), NewLedger(), zerolog.Nop())

	stats, err := svc.Run(context.Background(), testQuestions(), output, RunOptions{Batch: 1, Delay: -1})
	if err != nil {
		t.Fatalf("run: %v", err)
	}

	if stats.Total != 1 || stats.Generated != 1 {
		t.Fatalf("expected batch of 1, got stats %+v", stats)
	}
}

func TestServiceRun_EmptyRange(t *testing.T) {
	t.Parallel()

	output := filepath.Join(t.TempDir(), "articles.jsonl")
	svc := NewService(&fakeGenerator{}, testContextService(t), NewLedger(), zerolog.Nop())

	stats, err := svc.Run(context.Background(), testQuestions(), output, RunOptions{Start: 5, Delay: -1})
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if stats.Total != 0 {
		t.Fatalf("expected no work, got %+v", stats)
	}
}

func TestServiceRun_QualityFlagged(t *testing.T) {
	t.Parallel()

	// The fake generator's short body trips the word-count rule.
	output := filepath.Join(t.TempDir(), "articles.jsonl")
	svc := NewService(&fakeGenerator{}, testContextService(t), NewLedger(), zerolog.Nop())

	stats, err := svc.Run(context.Background(), testQuestions(), output, RunOptions{Batch: 1, Delay: -1})
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if stats.QualityFlagged != 1 {
		t.Fatalf("expected 1 quality-flagged article, got %+v", stats)
	}
}

func TestServiceRun_NilServiceFailsLoudly(t *testing.T) {
	t.Parallel()

	var svc *Service
	if _, err := svc.Run(context.Background(), nil, "out.jsonl", RunOptions{}); err == nil {
		t.Fatalf("expected error from nil service")
	}
}

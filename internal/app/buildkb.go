package app

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"proxyfaqs.dev/faqforge/internal/cli"
	"proxyfaqs.dev/faqforge/internal/corpus"
)

func runBuildKB(args []string) int {
	fs := flag.NewFlagSet("build-kb", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)

	envLoader := cli.AddEnvFlag(fs, ".env", "Path to the .env file")
	dataDir := fs.String("data-dir", "", "Directory with the CSV exports (default: FF_DATA_DIR)")
	output := fs.String("output", "", "Output JSONL path (default: FF_OUTPUT_DIR/knowledge_base.jsonl)")
	paaGlob := fs.String("paa-glob", "google-paa-*.csv", "Glob for People-Also-Ask exports")
	faqFile := fs.String("faq", "proxy_faqs_all.csv", "FAQ keywords export filename")
	broadFile := fs.String("broad-match", "proxy_broad-match_us_2025-12-26.csv", "Broad-match keywords export filename")

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}
	if fs.NArg() != 0 {
		fmt.Fprintln(os.Stderr, "build-kb does not accept positional arguments")
		return 2
	}

	cfg, logger, err := loadRuntime(envLoader)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	dir := *dataDir
	if dir == "" {
		dir = cfg.DataDir
	}
	outPath := *output
	if outPath == "" {
		outPath = filepath.Join(cfg.OutputDir, "knowledge_base.jsonl")
	}

	builder := corpus.NewBuilder()
	ingestor := corpus.NewIngestor(builder, logger)

	if err := ingestor.IngestPAAGlob(dir, *paaGlob); err != nil {
		logger.Error().Err(err).Msg("PAA ingestion failed")
		fmt.Fprintf(os.Stderr, "Failed to ingest PAA exports: %v\n", err)
		return 1
	}
	if err := ingestor.IngestFAQ(filepath.Join(dir, *faqFile)); err != nil {
		logger.Error().Err(err).Msg("FAQ ingestion failed")
		fmt.Fprintf(os.Stderr, "Failed to ingest FAQ export: %v\n", err)
		return 1
	}
	if err := ingestor.IngestBroadMatch(filepath.Join(dir, *broadFile)); err != nil {
		logger.Error().Err(err).Msg("broad-match ingestion failed")
		fmt.Fprintf(os.Stderr, "Failed to ingest broad-match export: %v\n", err)
		return 1
	}

	entries := builder.Entries()
	if len(entries) == 0 {
		fmt.Fprintln(os.Stderr, "No corpus entries built; check --data-dir")
		return 1
	}

	if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create output directory: %v\n", err)
		return 1
	}
	if err := corpus.WriteJSONL(outPath, entries); err != nil {
		logger.Error().Err(err).Str("path", outPath).Msg("corpus write failed")
		fmt.Fprintf(os.Stderr, "Failed to write corpus: %v\n", err)
		return 1
	}

	stats := builder.Stats()
	logger.Info().
		Int("total_raw", stats.TotalRaw).
		Int("duplicates", stats.Duplicates).
		Int("unique", stats.Unique).
		Str("path", outPath).
		Msg("knowledge corpus built")

	fmt.Printf("Knowledge corpus written to %s\n", outPath)
	fmt.Printf("  Total raw entries:  %d\n", stats.TotalRaw)
	fmt.Printf("  Duplicates dropped: %d\n", stats.Duplicates)
	fmt.Printf("  Unique entries:     %d\n", stats.Unique)
	fmt.Println("  By source:")
	for source, count := range stats.BySource {
		fmt.Printf("    %s: %d\n", source, count)
	}
	return 0
}

package app

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"proxyfaqs.dev/faqforge/internal/cli"
	"proxyfaqs.dev/faqforge/internal/questions"
)

const defaultQuestionFiles = "google_proxy_question.csv,google_proxies_question.csv"

func runDedupe(args []string) int {
	fs := flag.NewFlagSet("dedupe", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)

	envLoader := cli.AddEnvFlag(fs, ".env", "Path to the .env file")
	dataDir := fs.String("data-dir", "", "Directory with the question exports (default: FF_DATA_DIR)")
	output := fs.String("output", "", "Output JSONL path (default: FF_OUTPUT_DIR/questions_categorized.jsonl)")
	files := fs.String("files", defaultQuestionFiles, "Comma-separated question export filenames")

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}
	if fs.NArg() != 0 {
		fmt.Fprintln(os.Stderr, "dedupe does not accept positional arguments")
		return 2
	}

	filenames := splitCommaList(*files)
	if len(filenames) == 0 {
		fmt.Fprintln(os.Stderr, "--files must name at least one export")
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
		outPath = filepath.Join(cfg.OutputDir, "questions_categorized.jsonl")
	}

	records, err := questions.LoadRecords(dir, filenames, logger)
	if err != nil {
		logger.Error().Err(err).Msg("question load failed")
		fmt.Fprintf(os.Stderr, "Failed to load question exports: %v\n", err)
		return 1
	}

	clustered := questions.Cluster(records)
	merged := questions.Finalize(clustered)

	if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create output directory: %v\n", err)
		return 1
	}
	if err := questions.WriteMergedJSONL(outPath, merged); err != nil {
		logger.Error().Err(err).Str("path", outPath).Msg("merged questions write failed")
		fmt.Fprintf(os.Stderr, "Failed to write merged questions: %v\n", err)
		return 1
	}

	logger.Info().
		Int("raw", len(records)).
		Int("clusters", len(clustered.Clusters)).
		Int("unclusterable", clustered.Unclusterable).
		Int("merged", len(merged)).
		Str("path", outPath).
		Msg("questions deduplicated")

	fmt.Printf("Merged questions written to %s\n", outPath)
	fmt.Printf("  Raw questions:   %d\n", len(records))
	fmt.Printf("  Clusters:        %d\n", len(clustered.Clusters))
	fmt.Printf("  Unclusterable:   %d\n", clustered.Unclusterable)
	fmt.Printf("  Merged records:  %d\n", len(merged))
	return 0
}

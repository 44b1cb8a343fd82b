package app

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"proxyfaqs.dev/faqforge/internal/cli"
	"proxyfaqs.dev/faqforge/internal/db"
	"proxyfaqs.dev/faqforge/internal/importer"
)

func runImport(args []string) int {
	fs := flag.NewFlagSet("import", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)

	envLoader := cli.AddEnvFlag(fs, ".env", "Path to the .env file")
	input := fs.String("input", "", "Articles JSONL (default: FF_OUTPUT_DIR/qa_articles.jsonl)")
	batch := fs.Int("batch", 0, "Import at most this many articles")
	dryRun := fs.Bool("dry-run", false, "Preview without writing to the database")
	verify := fs.Bool("verify", false, "Report stored totals after the import")
	timeout := fs.Duration("timeout", 5*time.Minute, "Command timeout")

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}
	if fs.NArg() != 0 {
		fmt.Fprintln(os.Stderr, "import does not accept positional arguments")
		return 2
	}

	cfg, logger, err := loadRuntime(envLoader)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	inPath := *input
	if inPath == "" {
		inPath = filepath.Join(cfg.OutputDir, "qa_articles.jsonl")
	}

	articles, skipped, err := importer.LoadArticles(inPath)
	if err != nil {
		logger.Error().Err(err).Str("path", inPath).Msg("articles load failed")
		fmt.Fprintf(os.Stderr, "Failed to load articles: %v\n", err)
		return 1
	}
	if len(articles) == 0 {
		fmt.Printf("No importable articles in %s (%d failed/skipped records)\n", inPath, skipped)
		return 0
	}

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	var pool *db.Pool
	if !*dryRun {
		if err := cfg.RequireDatabase(); err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
		pool, err = db.NewPool(ctx, cfg)
		if err != nil {
			logger.Error().Err(err).Msg("database connection failed")
			fmt.Fprintf(os.Stderr, "Failed to connect to database: %v\n", err)
			return 1
		}
		defer pool.Close()
	}

	svc := importer.NewService(pool, logger)
	stats, err := svc.Run(ctx, articles, importer.Options{Batch: *batch, DryRun: *dryRun})
	if err != nil {
		logger.Error().Err(err).Msg("import run failed")
		fmt.Fprintf(os.Stderr, "Import failed: %v\n", err)
		return 1
	}

	label := ""
	if *dryRun {
		label = " (dry run)"
	}
	fmt.Printf("Import complete%s\n", label)
	fmt.Printf("  Articles loaded:  %d (%d failed/skipped in file)\n", len(articles), skipped)
	fmt.Printf("  Imported:         %d\n", stats.Imported)
	fmt.Printf("  Failed:           %d\n", stats.Failed)
	fmt.Println("  Weight distribution:")
	weights := make([]string, 0, len(stats.Weights))
	for weight := range stats.Weights {
		weights = append(weights, weight)
	}
	sort.Strings(weights)
	for _, weight := range weights {
		fmt.Printf("    %s: %d\n", weight, stats.Weights[weight])
	}
	if stats.MinWords > 0 {
		fmt.Printf("  Words: min %d, max %d\n", stats.MinWords, stats.MaxWords)
	}

	if *verify && pool != nil {
		total, err := pool.CountQuestions(ctx)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Verification failed: %v\n", err)
			return 1
		}
		counts, err := pool.CountQuestionsByCategory(ctx)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Verification failed: %v\n", err)
			return 1
		}
		fmt.Printf("  Stored questions: %d\n", total)
		fmt.Println("  By category:")
		for _, row := range counts {
			fmt.Printf("    %s: %d\n", row.Category, row.Count)
		}
	}
	return 0
}

package app

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"proxyfaqs.dev/faqforge/internal/cli"
	"proxyfaqs.dev/faqforge/internal/corpus"
	"proxyfaqs.dev/faqforge/internal/generate"
	"proxyfaqs.dev/faqforge/internal/questions"
	"proxyfaqs.dev/faqforge/internal/retrieval"
)

func runGenerate(args []string) int {
	fs := flag.NewFlagSet("generate", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)

	envLoader := cli.AddEnvFlag(fs, ".env", "Path to the .env file")
	kbPath := fs.String("kb", "", "Knowledge corpus JSONL (default: FF_OUTPUT_DIR/knowledge_base.jsonl)")
	questionsPath := fs.String("questions", "", "Merged questions JSONL (default: FF_OUTPUT_DIR/questions_categorized.jsonl)")
	output := fs.String("output", "", "Articles JSONL (default: FF_OUTPUT_DIR/qa_articles.jsonl)")
	start := fs.Int("start", 0, "Start index into the question list")
	end := fs.Int("end", 0, "End index into the question list (0 = all)")
	batch := fs.Int("batch", 0, "Generate at most this many questions")
	resume := fs.Bool("resume", false, "Skip questions that already have a completed article")
	topK := fs.Int("top-k", 0, "Context entries per question (default: GENERATION_TOP_K)")
	delay := fs.Duration("delay", 0, "Pause between API calls (default 1.5s, negative disables)")

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}
	if fs.NArg() != 0 {
		fmt.Fprintln(os.Stderr, "generate does not accept positional arguments")
		return 2
	}
	if *start < 0 {
		fmt.Fprintln(os.Stderr, "--start must be >= 0")
		return 2
	}

	cfg, logger, err := loadRuntime(envLoader)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	if err := cfg.RequireGeneration(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	kb := *kbPath
	if kb == "" {
		kb = filepath.Join(cfg.OutputDir, "knowledge_base.jsonl")
	}
	questionsFile := *questionsPath
	if questionsFile == "" {
		questionsFile = filepath.Join(cfg.OutputDir, "questions_categorized.jsonl")
	}
	outPath := *output
	if outPath == "" {
		outPath = filepath.Join(cfg.OutputDir, "qa_articles.jsonl")
	}
	k := *topK
	if k <= 0 {
		k = cfg.GenerationTopK
	}

	entries, err := corpus.ReadJSONL(kb)
	if err != nil {
		logger.Error().Err(err).Str("path", kb).Msg("corpus load failed")
		fmt.Fprintf(os.Stderr, "Failed to load knowledge corpus: %v\n", err)
		return 1
	}

	index, err := retrieval.Build(entries, retrieval.Options{})
	if err != nil {
		logger.Error().Err(err).Msg("index build failed")
		fmt.Fprintf(os.Stderr, "Failed to build retrieval index: %v\n", err)
		return 1
	}
	logger.Info().
		Int("entries", index.Size()).
		Int("vocabulary", index.VocabularySize()).
		Msg("retrieval index built")

	merged, err := questions.ReadMergedJSONL(questionsFile)
	if err != nil {
		logger.Error().Err(err).Str("path", questionsFile).Msg("questions load failed")
		fmt.Fprintf(os.Stderr, "Failed to load merged questions: %v\n", err)
		return 1
	}

	ledger := generate.NewLedger()
	if *resume || *start > 0 {
		ledger, err = generate.LoadLedger(outPath)
		if err != nil {
			logger.Error().Err(err).Str("path", outPath).Msg("ledger load failed")
			fmt.Fprintf(os.Stderr, "Failed to load completion ledger: %v\n", err)
			return 1
		}
		logger.Info().Int("completed", ledger.Len()).Msg("resuming from ledger")
	}

	client := generate.NewClient(generate.ClientConfig{
		APIKey:      cfg.GenerationAPIKey,
		BaseURL:     cfg.GenerationBaseURL,
		Model:       cfg.GenerationModel,
		MaxTokens:   cfg.GenerationMaxTok,
		Temperature: float64(cfg.GenerationTemp),
	}, logger)

	svc := generate.NewService(client, retrieval.NewContextService(index), ledger, logger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigCh)
	go func() {
		<-sigCh
		logger.Warn().Msg("interrupt received, finishing current article")
		cancel()
	}()

	started := time.Now()
	stats, err := svc.Run(ctx, merged, outPath, generate.RunOptions{
		Start: *start,
		End:   *end,
		Batch: *batch,
		TopK:  k,
		Delay: *delay,
	})

	printGenerateStats(stats, outPath, time.Since(started))

	if err != nil {
		if errors.Is(err, context.Canceled) {
			fmt.Fprintln(os.Stderr, "Interrupted. Progress saved; rerun with --resume.")
			return 1
		}
		logger.Error().Err(err).Msg("generation run failed")
		fmt.Fprintf(os.Stderr, "Generation failed: %v\n", err)
		return 1
	}
	return 0
}

func printGenerateStats(stats generate.Stats, outputPath string, elapsed time.Duration) {
	fmt.Printf("Articles written to %s\n", outputPath)
	fmt.Printf("  Processed:       %d\n", stats.Total)
	fmt.Printf("  Generated:       %d\n", stats.Generated)
	fmt.Printf("  Failed:          %d\n", stats.Failed)
	fmt.Printf("  Skipped:         %d\n", stats.Skipped)
	fmt.Printf("  Quality flagged: %d\n", stats.QualityFlagged)
	if stats.Generated > 0 {
		fmt.Printf("  Words:  total %d, avg %d, min %d, max %d\n",
			stats.TotalWords, stats.TotalWords/stats.Generated, stats.MinWords, stats.MaxWords)
		fmt.Printf("  Tokens: total %d, avg %d\n",
			stats.TotalTokens, stats.TotalTokens/stats.Generated)
	}
	fmt.Printf("  Time: %s\n", elapsed.Round(time.Second))
}

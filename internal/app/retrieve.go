package app

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"proxyfaqs.dev/faqforge/internal/cli"
	"proxyfaqs.dev/faqforge/internal/corpus"
	"proxyfaqs.dev/faqforge/internal/retrieval"
)

func runRetrieve(args []string) int {
	fs := flag.NewFlagSet("retrieve", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)

	envLoader := cli.AddEnvFlag(fs, ".env", "Path to the .env file")
	kbPath := fs.String("kb", "", "Knowledge corpus JSONL (default: FF_OUTPUT_DIR/knowledge_base.jsonl)")
	query := fs.String("query", "", "Question text to retrieve context for")
	topK := fs.Int("top-k", 0, "Results to return (default: GENERATION_TOP_K)")
	format := fs.String("format", outputFormatText, "Output format: text or json")

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}
	if fs.NArg() != 0 {
		fmt.Fprintln(os.Stderr, "retrieve does not accept positional arguments")
		return 2
	}

	trimmedQuery := strings.TrimSpace(*query)
	if trimmedQuery == "" {
		fmt.Fprintln(os.Stderr, "--query is required")
		return 2
	}

	outputFormat, err := parseOutputFormat(*format, outputFormatText)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Invalid format: %v\n", err)
		return 2
	}

	cfg, logger, err := loadRuntime(envLoader)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	path := *kbPath
	if path == "" {
		path = filepath.Join(cfg.OutputDir, "knowledge_base.jsonl")
	}
	k := *topK
	if k <= 0 {
		k = cfg.GenerationTopK
	}

	entries, err := corpus.ReadJSONL(path)
	if err != nil {
		logger.Error().Err(err).Str("path", path).Msg("corpus load failed")
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

	results, err := index.Query(trimmedQuery, k)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Query failed: %v\n", err)
		return 1
	}

	if outputFormat == outputFormatJSON {
		if err := printJSON(results); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to encode JSON: %v\n", err)
			return 1
		}
		return 0
	}

	contexts := retrieval.NewContextService(index)
	text, err := contexts.RetrieveContext(trimmedQuery, k)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to render context: %v\n", err)
		return 1
	}
	fmt.Println(text)
	return 0
}

package corpus

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"

	"proxyfaqs.dev/faqforge/internal/csvio"
)

// Ingestor feeds the raw keyword-tool exports into a Builder. Each source
// kind has its own row shape; a missing or unreadable file is logged and
// skipped so a partial data directory still yields a usable corpus.
type Ingestor struct {
	builder *Builder
	logger  zerolog.Logger
}

func NewIngestor(builder *Builder, logger zerolog.Logger) *Ingestor {
	return &Ingestor{
		builder: builder,
		logger:  logger,
	}
}

// IngestPAAGlob processes People-Also-Ask exports matching the glob. Each
// row is a question/answer pair; both the combined Q&A text and, for
// substantial answers, the answer alone are added so retrieval can match
// either surface form.
func (i *Ingestor) IngestPAAGlob(dataDir, pattern string) error {
	if i == nil || i.builder == nil {
		return fmt.Errorf("ingestor is not initialized")
	}

	matches, err := filepath.Glob(filepath.Join(dataDir, pattern))
	if err != nil {
		return fmt.Errorf("glob %s: %w", pattern, err)
	}
	if len(matches) == 0 {
		i.logger.Warn().Str("pattern", pattern).Msg("no PAA files found, skipping")
		return nil
	}

	for _, path := range matches {
		result, err := csvio.ReadFile(path)
		if err != nil {
			i.logger.Warn().Err(err).Str("file", path).Msg("failed to read PAA file, skipping")
			continue
		}

		source := paaSourceTag(path)
		for _, row := range result.Rows {
			title := row["PAA Title"]
			text := row["Text"]
			parent := row["Parent"]

			switch {
			case title != "" && text != "":
				i.builder.AddEntry("Q: "+title+"\nA: "+text, source)
				if len(text) > 50 {
					i.builder.AddEntry(text, source)
				}
			case title != "" && parent != "" && title != parent:
				i.builder.AddEntry("Related: "+parent+" -> "+title, source)
			}
		}

		i.logger.Info().
			Str("file", filepath.Base(path)).
			Int("rows", len(result.Rows)).
			Int("skipped_rows", result.SkippedRows).
			Msg("processed PAA file")
	}
	return nil
}

// IngestFAQ processes a FAQ keyword export: one keyword per row, stored as
// a bare question.
func (i *Ingestor) IngestFAQ(path string) error {
	if i == nil || i.builder == nil {
		return fmt.Errorf("ingestor is not initialized")
	}

	result, ok := i.readOptional(path)
	if !ok {
		return nil
	}

	source := "faq_collection"
	for _, row := range result.Rows {
		if keyword := row["Keyword"]; keyword != "" {
			i.builder.AddEntry("Q: "+keyword, source)
		}
	}

	i.logger.Info().
		Str("file", filepath.Base(path)).
		Int("rows", len(result.Rows)).
		Int("skipped_rows", result.SkippedRows).
		Msg("processed FAQ file")
	return nil
}

// IngestBroadMatch processes a broad-match keyword export, folding the
// optional intent and volume columns into the entry text so they remain
// retrievable context.
func (i *Ingestor) IngestBroadMatch(path string) error {
	if i == nil || i.builder == nil {
		return fmt.Errorf("ingestor is not initialized")
	}

	result, ok := i.readOptional(path)
	if !ok {
		return nil
	}

	source := "broad_match_keywords"
	for _, row := range result.Rows {
		keyword := row["Keyword"]
		if len(keyword) <= 3 {
			continue
		}

		entry := "Keyword: " + keyword
		if intent := row["Intent"]; intent != "" {
			entry += " | Intent: " + intent
		}
		if volume := row["Volume"]; volume != "" {
			entry += " | Volume: " + volume
		}
		i.builder.AddEntry(entry, source)
	}

	i.logger.Info().
		Str("file", filepath.Base(path)).
		Int("rows", len(result.Rows)).
		Int("skipped_rows", result.SkippedRows).
		Msg("processed broad-match file")
	return nil
}

func (i *Ingestor) readOptional(path string) (csvio.ReadResult, bool) {
	if _, err := os.Stat(path); err != nil {
		i.logger.Warn().Str("file", path).Msg("file not found, skipping")
		return csvio.ReadResult{}, false
	}
	result, err := csvio.ReadFile(path)
	if err != nil {
		i.logger.Warn().Err(err).Str("file", path).Msg("failed to read file, skipping")
		return csvio.ReadResult{}, false
	}
	return result, true
}

// paaSourceTag derives a provenance tag from the export filename, e.g.
// "google-paa-residential-proxy.csv" -> "paa_residential-proxy".
func paaSourceTag(path string) string {
	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	name = strings.TrimPrefix(name, "google-paa-")
	return "paa_" + name
}

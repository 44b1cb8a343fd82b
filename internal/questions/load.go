package questions

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/rs/zerolog"

	"proxyfaqs.dev/faqforge/internal/csvio"
)

// LoadRecords reads question exports from the data directory. Each file
// needs at least a Keyword column; Volume, Difficulty, and Country are
// optional pass-through metadata. A missing or unreadable file is logged
// and skipped.
func LoadRecords(dataDir string, filenames []string, logger zerolog.Logger) ([]Record, error) {
	var records []Record
	loadedFiles := 0

	for _, filename := range filenames {
		path := filepath.Join(dataDir, filename)
		result, err := csvio.ReadFile(path)
		if err != nil {
			logger.Warn().Err(err).Str("file", filename).Msg("failed to read question file, skipping")
			continue
		}

		count := 0
		for _, row := range result.Rows {
			keyword := strings.TrimSpace(row["Keyword"])
			if keyword == "" {
				continue
			}

			record := Record{
				Question: keyword,
				Volume:   parseInt(row["Volume"]),
				Country:  normalizeCountry(row["Country"]),
				Source:   filename,
			}
			if difficulty := parseInt(row["Difficulty"]); difficulty > 0 {
				record.Difficulty = &difficulty
			}
			records = append(records, record)
			count++
		}

		loadedFiles++
		logger.Info().
			Str("file", filename).
			Int("questions", count).
			Int("skipped_rows", result.SkippedRows).
			Msg("loaded question file")
	}

	if loadedFiles == 0 {
		return nil, fmt.Errorf("no question files could be loaded from %s", dataDir)
	}
	return records, nil
}

// WriteMergedJSONL rewrites the merged question set, one JSON object per
// line, in total-volume order.
func WriteMergedJSONL(path string, merged []Merged) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create output dir for %s: %w", path, err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	enc := json.NewEncoder(w)
	for _, m := range merged {
		if err := enc.Encode(m); err != nil {
			return fmt.Errorf("encode merged question id=%d: %w", m.ID, err)
		}
	}
	if err := w.Flush(); err != nil {
		return fmt.Errorf("flush %s: %w", path, err)
	}
	return f.Close()
}

// ReadMergedJSONL loads a merged question set written by WriteMergedJSONL.
func ReadMergedJSONL(path string) ([]Merged, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	var merged []Merged
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	line := 0
	for scanner.Scan() {
		line++
		text := strings.TrimSpace(scanner.Text())
		if text == "" {
			continue
		}
		var m Merged
		if err := json.Unmarshal([]byte(text), &m); err != nil {
			return nil, fmt.Errorf("decode %s line %d: %w", path, line, err)
		}
		merged = append(merged, m)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan %s: %w", path, err)
	}
	return merged, nil
}

func parseInt(value string) int {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return 0
	}
	n, err := strconv.Atoi(trimmed)
	if err != nil || n < 0 {
		return 0
	}
	return n
}

func normalizeCountry(value string) string {
	country := strings.ToLower(strings.TrimSpace(value))
	if country == "" {
		return "us"
	}
	return country
}

package generate

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"strings"
)

// Ledger records which question slugs already have a completed article. It
// is the single source of truth for resume: the batch service consults it
// instead of re-reading output files.
type Ledger struct {
	completed map[string]struct{}
}

func NewLedger() *Ledger {
	return &Ledger{completed: make(map[string]struct{})}
}

func (l *Ledger) Add(slug string) {
	if l == nil || slug == "" {
		return
	}
	l.completed[slug] = struct{}{}
}

func (l *Ledger) Contains(slug string) bool {
	if l == nil {
		return false
	}
	_, ok := l.completed[slug]
	return ok
}

func (l *Ledger) Len() int {
	if l == nil {
		return 0
	}
	return len(l.completed)
}

// LoadLedger seeds a ledger from a previous run's articles JSONL. Only
// records with status "completed" count; failed records are retried on the
// next run. A missing file yields an empty ledger.
func LoadLedger(path string) (*Ledger, error) {
	ledger := NewLedger()

	file, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return ledger, nil
		}
		return nil, fmt.Errorf("open articles file: %w", err)
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)

	line := 0
	for scanner.Scan() {
		line++
		text := strings.TrimSpace(scanner.Text())
		if text == "" {
			continue
		}

		var record struct {
			Slug   string `json:"slug"`
			Status string `json:"status"`
		}
		if err := json.Unmarshal([]byte(text), &record); err != nil {
			return nil, fmt.Errorf("decode articles line %d: %w", line, err)
		}
		if record.Slug != "" && record.Status == "completed" {
			ledger.Add(record.Slug)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan articles file: %w", err)
	}

	return ledger, nil
}

package generate

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadLedger_MissingFileIsEmpty(t *testing.T) {
	t.Parallel()

	ledger, err := LoadLedger(filepath.Join(t.TempDir(), "articles.jsonl"))
	if err != nil {
		t.Fatalf("load ledger: %v", err)
	}
	if ledger.Len() != 0 {
		t.Fatalf("expected empty ledger, got %d entries", ledger.Len())
	}
}

func TestLoadLedger_CompletedOnly(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "articles.jsonl")
	content := `{"slug":"residential-proxy","status":"completed","word_count":1400}
{"slug":"datacenter-proxy","status":"failed"}

{"slug":"rotating-proxy","status":"completed"}
{"status":"completed"}
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	ledger, err := LoadLedger(path)
	if err != nil {
		t.Fatalf("load ledger: %v", err)
	}

	if ledger.Len() != 2 {
		t.Fatalf("expected 2 completed slugs, got %d", ledger.Len())
	}
	if !ledger.Contains("residential-proxy") || !ledger.Contains("rotating-proxy") {
		t.Fatalf("completed slugs missing from ledger")
	}
	if ledger.Contains("datacenter-proxy") {
		t.Fatalf("failed slug must not be in ledger so it gets retried")
	}
}

func TestLoadLedger_MalformedLineFails(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "articles.jsonl")
	if err := os.WriteFile(path, []byte("{not json}\n"), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	if _, err := LoadLedger(path); err == nil {
		t.Fatalf("expected error for malformed line")
	}
}

func TestLedger_AddAndContains(t *testing.T) {
	t.Parallel()

	ledger := NewLedger()
	ledger.Add("socks5-proxy")
	ledger.Add("")

	if !ledger.Contains("socks5-proxy") {
		t.Fatalf("expected slug in ledger")
	}
	if ledger.Contains("") {
		t.Fatalf("empty slug must not be recorded")
	}
	if ledger.Len() != 1 {
		t.Fatalf("expected 1 entry, got %d", ledger.Len())
	}
}

package csvio

import (
	"testing"
	"unicode/utf16"
)

func encodeUTF16LE(s string, withBOM bool) []byte {
	units := utf16.Encode([]rune(s))
	out := make([]byte, 0, len(units)*2+2)
	if withBOM {
		out = append(out, 0xff, 0xfe)
	}
	for _, u := range units {
		out = append(out, byte(u), byte(u>>8))
	}
	return out
}

func TestParse_UTF8WithBOM(t *testing.T) {
	t.Parallel()

	raw := append([]byte{0xef, 0xbb, 0xbf}, []byte("Keyword,Volume\nwhat is a proxy,1200\n")...)
	result, err := Parse(raw, "test.csv")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(result.Rows) != 1 {
		t.Fatalf("expected 1 row, got %d", len(result.Rows))
	}
	if result.Rows[0]["Keyword"] != "what is a proxy" {
		t.Fatalf("unexpected keyword: %q", result.Rows[0]["Keyword"])
	}
	if result.Rows[0]["Volume"] != "1200" {
		t.Fatalf("unexpected volume: %q", result.Rows[0]["Volume"])
	}
}

func TestParse_UTF16LETabDelimited(t *testing.T) {
	t.Parallel()

	raw := encodeUTF16LE("Keyword\tCountry\tVolume\nresidential proxy\tus\t880\nproxy server\tus\t2400\n", true)
	result, err := Parse(raw, "test.csv")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(result.Rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(result.Rows))
	}
	if result.Rows[1]["Keyword"] != "proxy server" {
		t.Fatalf("unexpected keyword: %q", result.Rows[1]["Keyword"])
	}
}

func TestParse_UTF16LEWithoutBOM(t *testing.T) {
	t.Parallel()

	raw := encodeUTF16LE("Keyword\tVolume\nsocks5 proxy\t320\n", false)
	result, err := Parse(raw, "test.csv")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(result.Rows) != 1 {
		t.Fatalf("expected 1 row, got %d", len(result.Rows))
	}
	if result.Rows[0]["Keyword"] != "socks5 proxy" {
		t.Fatalf("unexpected keyword: %q", result.Rows[0]["Keyword"])
	}
}

func TestParse_SkipsOverlongRows(t *testing.T) {
	t.Parallel()

	raw := []byte("Keyword,Volume\nok keyword,10\nbad,1,extra,cols\n")
	result, err := Parse(raw, "test.csv")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(result.Rows) != 1 {
		t.Fatalf("expected 1 row, got %d", len(result.Rows))
	}
	if result.SkippedRows != 1 {
		t.Fatalf("expected 1 skipped row, got %d", result.SkippedRows)
	}
}

func TestParse_ShortRowKeepsPresentColumns(t *testing.T) {
	t.Parallel()

	raw := []byte("Keyword,Country,Volume\nproxy list,us\n")
	result, err := Parse(raw, "test.csv")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(result.Rows) != 1 {
		t.Fatalf("expected 1 row, got %d", len(result.Rows))
	}
	row := result.Rows[0]
	if row["Keyword"] != "proxy list" || row["Country"] != "us" {
		t.Fatalf("unexpected row: %v", row)
	}
	if _, ok := row["Volume"]; ok {
		t.Fatalf("missing column should stay absent, got %v", row)
	}
}

func TestParse_EmptyFile(t *testing.T) {
	t.Parallel()

	if _, err := Parse(nil, "empty.csv"); err == nil {
		t.Fatalf("expected error for empty file")
	}
}

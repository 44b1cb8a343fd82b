package app

import "testing"

func TestRun_NoArgsReturnsUsageError(t *testing.T) {
	if code := Run(nil); code != 2 {
		t.Fatalf("expected exit code 2, got %d", code)
	}
}

func TestRun_Help(t *testing.T) {
	if code := Run([]string{"help"}); code != 0 {
		t.Fatalf("expected exit code 0, got %d", code)
	}
}

func TestRun_UnknownCommand(t *testing.T) {
	if code := Run([]string{"frobnicate"}); code != 2 {
		t.Fatalf("expected exit code 2, got %d", code)
	}
}

func TestParseOutputFormat(t *testing.T) {
	t.Parallel()

	if _, err := parseOutputFormat("xml", outputFormatText); err == nil {
		t.Fatalf("expected error for unsupported format")
	}
	format, err := parseOutputFormat("", outputFormatJSON)
	if err != nil {
		t.Fatalf("default format failed: %v", err)
	}
	if format != outputFormatJSON {
		t.Fatalf("expected json default, got %q", format)
	}
	format, err = parseOutputFormat("TEXT", outputFormatJSON)
	if err != nil {
		t.Fatalf("case-insensitive parse failed: %v", err)
	}
	if format != outputFormatText {
		t.Fatalf("expected text, got %q", format)
	}
}

func TestSplitCommaList(t *testing.T) {
	t.Parallel()

	got := splitCommaList(" a.csv , ,b.csv,")
	if len(got) != 2 || got[0] != "a.csv" || got[1] != "b.csv" {
		t.Fatalf("unexpected split result: %v", got)
	}
	if out := splitCommaList(""); len(out) != 0 {
		t.Fatalf("expected empty result, got %v", out)
	}
}

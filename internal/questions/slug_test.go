package questions

import (
	"strings"
	"testing"
	"unicode/utf8"
)

func TestGenerateSlug(t *testing.T) {
	t.Parallel()

	cases := []struct {
		question string
		want     string
	}{
		{"What is a residential proxy?", "residential-proxy"},
		{"What is an ISP proxy?", "isp-proxy"},
		{"How do I set up a SOCKS5 proxy?", "set-up-a-socks5-proxy"},
		{"proxy vs vpn", "proxy-vs-vpn"},
		{"Should I use rotating proxies???", "use-rotating-proxies"},
		{"what does backconnect mean", "backconnect-mean"},
	}

	for _, tc := range cases {
		if got := GenerateSlug(tc.question); got != tc.want {
			t.Fatalf("GenerateSlug(%q) = %q, want %q", tc.question, got, tc.want)
		}
	}
}

func TestGenerateSlug_LongestPrefixWins(t *testing.T) {
	t.Parallel()

	// "what is a " must be stripped whole, not just "what is ".
	if got := GenerateSlug("what is a proxy"); got != "proxy" {
		t.Fatalf("expected longest prefix to be stripped, got %q", got)
	}
}

func TestGenerateSlug_TrimsAtHyphenBoundary(t *testing.T) {
	t.Parallel()

	long := "what is " + strings.Repeat("verylongword ", 12) + "end"
	slug := GenerateSlug(long)
	if len(slug) > 80 {
		t.Fatalf("slug exceeds maximum length: %d", len(slug))
	}
	if strings.HasSuffix(slug, "-") {
		t.Fatalf("slug must not end with a hyphen: %q", slug)
	}
	if strings.Contains(slug, "verylongwor-") {
		t.Fatalf("slug must be cut at a hyphen boundary, got %q", slug)
	}
}

func TestGenerateSlug_TrimsOnRuneBoundary(t *testing.T) {
	t.Parallel()

	slug := GenerateSlug("what is " + strings.Repeat("é", 100))
	if !utf8.ValidString(slug) {
		t.Fatalf("trim split a multi-byte rune: %q", slug)
	}
	if got := utf8.RuneCountInString(slug); got != 80 {
		t.Fatalf("expected 80 runes, got %d (%q)", got, slug)
	}
}

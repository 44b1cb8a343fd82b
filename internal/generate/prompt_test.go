package generate

import (
	"strings"
	"testing"

	"proxyfaqs.dev/faqforge/internal/questions"
)

func TestBuildPrompt_IncludesQuestionContextAndVariants(t *testing.T) {
	t.Parallel()

	difficulty := 42
	question := questions.Merged{
		Question:     "What is a residential proxy?",
		Volume:       1900,
		Difficulty:   &difficulty,
		CategoryName: "Proxy Basics",
		Variants: []questions.Variant{
			{Question: "what is residential proxy", Volume: 300},
			{Question: "residential proxy meaning", Volume: 150},
		},
	}

	prompt := BuildPrompt(question, "[1] Residential proxies use real ISP addresses.")

	for _, want := range []string{
		"What is a residential proxy?",
		"1900 monthly searches",
		"SEO Difficulty: 42",
		"Category: Proxy Basics",
		"- what is residential proxy",
		"- residential proxy meaning",
		"[1] Residential proxies use real ISP addresses.",
	} {
		if !strings.Contains(prompt, want) {
			t.Fatalf("prompt missing %q", want)
		}
	}
}

func TestBuildPrompt_Defaults(t *testing.T) {
	t.Parallel()

	prompt := BuildPrompt(questions.Merged{Question: "How do proxies work?"}, "No relevant knowledge found.")

	if !strings.Contains(prompt, "SEO Difficulty: N/A") {
		t.Fatalf("expected N/A difficulty for nil difficulty")
	}
	if !strings.Contains(prompt, "Category: General") {
		t.Fatalf("expected General fallback category")
	}
	if !strings.Contains(prompt, "None") {
		t.Fatalf("expected None for empty variants")
	}
}

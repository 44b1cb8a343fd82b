package generate

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	articleschema "proxyfaqs.dev/faqforge/schema"
)

const (
	minWordCount  = 1200
	maxTitleLen   = 60
	minMetaLen    = 150
	maxMetaLen    = 160
	faqHeading    = "## Frequently Asked Questions"
	conclHeading  = "## Conclusion"
)

var (
	h1Pattern    = regexp.MustCompile(`(?m)^#\s+`)
	h2Pattern    = regexp.MustCompile(`(?m)^##\s+`)
	fencePattern = regexp.MustCompile("```" + `([A-Za-z0-9]*)`)
)

// QualityIssues checks editorial rules on a structurally valid article and
// returns one message per violation. An empty slice means the article is
// publishable.
func QualityIssues(article *articleschema.Article) []string {
	if article == nil {
		return []string{"article is nil"}
	}

	var issues []string

	words := len(strings.Fields(article.Body))
	if words < minWordCount {
		issues = append(issues, fmt.Sprintf("word count %d below minimum %d", words, minWordCount))
	}

	if titleLen := utf8.RuneCountInString(article.Title); titleLen > maxTitleLen {
		issues = append(issues, fmt.Sprintf("title %d chars exceeds max %d", titleLen, maxTitleLen))
	}

	metaLen := utf8.RuneCountInString(article.MetaDescription)
	if metaLen < minMetaLen {
		issues = append(issues, fmt.Sprintf("meta description %d chars below minimum %d", metaLen, minMetaLen))
	} else if metaLen > maxMetaLen {
		issues = append(issues, fmt.Sprintf("meta description %d chars exceeds maximum %d", metaLen, maxMetaLen))
	}

	if !h1Pattern.MatchString(article.Body) {
		issues = append(issues, "missing H1 title")
	}
	if !h2Pattern.MatchString(article.Body) {
		issues = append(issues, "missing H2 sections")
	}
	if !strings.Contains(article.Body, faqHeading) {
		issues = append(issues, "missing FAQ section")
	}
	if !strings.Contains(article.Body, conclHeading) {
		issues = append(issues, "missing Conclusion section")
	}

	if untagged := untaggedCodeBlocks(article.Body); untagged > 0 {
		issues = append(issues, fmt.Sprintf("%d code blocks missing language tags", untagged))
	}

	return issues
}

// untaggedCodeBlocks counts opening code fences without a language tag.
// Fence markers alternate open/close, so only even-indexed matches are
// openers.
func untaggedCodeBlocks(body string) int {
	matches := fencePattern.FindAllStringSubmatch(body, -1)
	untagged := 0
	for i, match := range matches {
		if i%2 == 0 && match[1] == "" {
			untagged++
		}
	}
	return untagged
}

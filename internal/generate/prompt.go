package generate

import (
	"fmt"
	"strings"

	"proxyfaqs.dev/faqforge/internal/questions"
)

const systemPrompt = "You are an expert technical writer. Always respond with valid JSON only."

const articlePromptTemplate = `You are a senior proxy and web scraping expert writing for ProxyFAQs.com, the leading knowledge platform for proxy servers and web scraping.

## Question to Answer
%s

## Search Volume: %d monthly searches
## SEO Difficulty: %s
## Category: %s

## Related Question Variants (address these in your FAQ section)
%s

## Reference Knowledge from Our Database
%s

## Article Requirements

Write a comprehensive, SEO-optimized article that meets these criteria:

### 1. Length & Depth
- **Minimum 1,200 words** (no upper limit)
- Cover the topic thoroughly with practical insights
- Include technical details appropriate for the audience

### 2. Structure (use exact Markdown format)
- A single H1 title that includes the main keyword
- An opening paragraph with a direct answer and a hook
- A table of contents
- H2 sections with H3 subsections where needed
- A "## Frequently Asked Questions" section answering the variants
- A "## Conclusion" section with actionable takeaways

### 3. SEO Optimization
- Natural keyword density (2-3%%)
- Include semantic variations
- Write meta description (150-160 chars)
- Suggest internal links to related topics

### 4. Content Quality
- Technical accuracy (you're the expert)
- Real-world examples and use cases
- Python code snippets when relevant, with language tags on code fences
- Comparison tables where appropriate
- Avoid fluff - every sentence adds value

### 5. Output Format (JSON)

Return ONLY valid JSON with this exact structure:
{
  "title": "SEO-optimized H1 title (include main keyword)",
  "meta_description": "Compelling meta description, 150-160 characters exactly",
  "article": "Full markdown article content here...",
  "word_count": 1234,
  "suggested_internal_links": ["related-slug-1", "related-slug-2", "related-slug-3"]
}

Generate the article now. Remember: minimum 1,200 words, comprehensive coverage, practical value.`

// BuildPrompt renders the generation prompt for one merged question and its
// retrieved knowledge context.
func BuildPrompt(question questions.Merged, context string) string {
	difficulty := "N/A"
	if question.Difficulty != nil {
		difficulty = fmt.Sprintf("%d", *question.Difficulty)
	}

	category := question.CategoryName
	if category == "" {
		category = "General"
	}

	variants := "None"
	if len(question.Variants) > 0 {
		lines := make([]string, 0, len(question.Variants))
		for _, variant := range question.Variants {
			lines = append(lines, "- "+variant.Question)
		}
		variants = strings.Join(lines, "\n")
	}

	return fmt.Sprintf(articlePromptTemplate,
		question.Question,
		question.Volume,
		difficulty,
		category,
		variants,
		context,
	)
}

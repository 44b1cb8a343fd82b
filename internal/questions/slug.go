package questions

import (
	"sort"
	"strings"
	"unicode"
)

const maxSlugLength = 80

// slugPrefixes are interrogative lead-ins stripped before slugging.
// Matched longest-first so "what is a " wins over "what is ".
var slugPrefixes = []string{
	"what is a ", "what is an ", "what is ",
	"what are ", "what does ", "what do ",
	"how to ", "how do i ", "how do you ",
	"how can i ", "how can you ",
	"why is ", "why are ", "why do ", "why does ",
	"can i ", "can you ", "should i ", "should you ",
}

func init() {
	sort.Slice(slugPrefixes, func(i, j int) bool {
		return len(slugPrefixes[i]) > len(slugPrefixes[j])
	})
}

// GenerateSlug derives a URL slug from a question: strip one leading
// interrogative phrase, drop the trailing question mark, collapse
// non-word runs to single hyphens, and trim overlong slugs at a hyphen
// boundary.
func GenerateSlug(question string) string {
	slug := strings.ToLower(strings.TrimSpace(question))

	for _, prefix := range slugPrefixes {
		if strings.HasPrefix(slug, prefix) {
			slug = slug[len(prefix):]
			break
		}
	}

	slug = strings.TrimRight(slug, "?")

	var b strings.Builder
	b.Grow(len(slug))
	lastHyphen := false
	for _, r := range slug {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
			lastHyphen = false
		case unicode.IsSpace(r) || r == '-' || r == '_':
			if !lastHyphen && b.Len() > 0 {
				b.WriteByte('-')
				lastHyphen = true
			}
		}
	}
	slug = strings.Trim(b.String(), "-")

	if runes := []rune(slug); len(runes) > maxSlugLength {
		cut := string(runes[:maxSlugLength])
		if idx := strings.LastIndexByte(cut, '-'); idx > 0 {
			cut = cut[:idx]
		}
		slug = cut
	}

	return slug
}

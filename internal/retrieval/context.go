package retrieval

import (
	"fmt"
	"strings"
)

// NoContextSentinel is returned when retrieval found nothing usable.
// A valid outcome for novel questions, not an error; callers pass it to
// the generator as-is.
const NoContextSentinel = "No relevant knowledge found."

const maxContextEntryLength = 400

// ContextService formats retrieval hits into the bounded context block
// handed to the article generator.
type ContextService struct {
	index *Index
}

func NewContextService(index *Index) *ContextService {
	return &ContextService{index: index}
}

// RetrieveContext runs a top-k query for the question and renders the
// surviving hits as numbered lines: whitespace collapsed, truncated to a
// fixed length with an ellipsis marker, joined by blank lines.
func (s *ContextService) RetrieveContext(question string, topK int) (string, error) {
	if s == nil || s.index == nil {
		return "", fmt.Errorf("context service is not initialized")
	}

	results, err := s.index.Query(question, topK)
	if err != nil {
		return "", err
	}
	if len(results) == 0 {
		return NoContextSentinel, nil
	}

	lines := make([]string, 0, len(results))
	for i, result := range results {
		text := strings.Join(strings.Fields(result.Entry.Text), " ")
		if runes := []rune(text); len(runes) > maxContextEntryLength {
			text = string(runes[:maxContextEntryLength]) + "..."
		}
		lines = append(lines, fmt.Sprintf("[%d] %s", i+1, text))
	}
	return strings.Join(lines, "\n\n"), nil
}

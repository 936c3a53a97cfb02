package planner

import (
	"strings"

	"github.com/google/uuid"
	"github.com/tsawler/prose/v3"
)

// fallbackPriorities extracts priorities deterministically, without the
// text-generation collaborator: goal text is segmented into sentences
// and each actionable sentence becomes one priority, in order of
// appearance. Time-of-day hints are keyword-based.
func fallbackPriorities(goals string) *AssessResult {
	var items []PriorityItem
	for _, line := range strings.Split(goals, "\n") {
		line = strings.TrimSpace(strings.TrimLeft(line, "-*• \t"))
		if line == "" {
			continue
		}
		for _, sentence := range splitSentences(line) {
			text := strings.TrimSpace(strings.TrimRight(sentence, "."))
			if len(text) < 3 {
				continue
			}
			items = append(items, PriorityItem{
				ID:        uuid.NewString(),
				Text:      text,
				TimeOfDay: hintFor(text),
			})
		}
	}

	return &AssessResult{
		Priorities: items,
		Reasoning:  "Priorities taken directly from your stated goals, in the order you wrote them.",
	}
}

// splitSentences segments text into sentences using the prose NLP
// tokenizer, falling back to the whole text when segmentation fails.
func splitSentences(text string) []string {
	doc, err := prose.NewDocument(text)
	if err != nil {
		return []string{text}
	}

	sentences := doc.Sentences()
	if len(sentences) == 0 {
		return []string{text}
	}

	out := make([]string, 0, len(sentences))
	for _, s := range sentences {
		out = append(out, s.Text)
	}
	return out
}

// hintFor produces a coarse time-of-day hint from task wording.
func hintFor(text string) string {
	lower := strings.ToLower(text)
	switch {
	case strings.Contains(lower, "morning"), strings.Contains(lower, "breakfast"):
		return "Morning"
	case strings.Contains(lower, "afternoon"), strings.Contains(lower, "lunch"):
		return "Afternoon"
	case strings.Contains(lower, "evening"), strings.Contains(lower, "dinner"), strings.Contains(lower, "tonight"):
		return "Evening"
	default:
		return ""
	}
}

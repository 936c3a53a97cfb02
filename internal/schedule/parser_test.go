package schedule

import (
	"errors"
	"strings"
	"testing"

	"github.com/kks007-dev/synamic/internal/clock"
)

func TestParseLines(t *testing.T) {
	input := "9:00 AM - 10:00 AM: Standup\ngarbled line\n2:00 PM - 3:00 PM: Review"

	tasks, err := Parse(input)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	// Never fewer tasks than non-blank lines
	if len(tasks) != 3 {
		t.Fatalf("expected 3 tasks, got %d", len(tasks))
	}

	if !tasks[0].Timed() || tasks[0].Label != "Standup" {
		t.Errorf("unexpected first task: %+v", tasks[0])
	}
	if tasks[0].Start != (clock.TimeOfDay{Hour: 9}) || tasks[0].End != (clock.TimeOfDay{Hour: 10}) {
		t.Errorf("unexpected first task range: %s", tasks[0].TimeRange())
	}

	// The garbled line is preserved as an unstructured task, not dropped
	if tasks[1].Timed() {
		t.Error("garbled line should be unstructured")
	}
	if tasks[1].Label != "garbled line" {
		t.Errorf("garbled line label = %q", tasks[1].Label)
	}

	if !tasks[2].Timed() || tasks[2].Start != (clock.TimeOfDay{Hour: 14}) {
		t.Errorf("unexpected third task: %+v", tasks[2])
	}
}

func TestParsePreservesOrder(t *testing.T) {
	// Deliberately out of order; parser must not sort
	input := "2:00 PM - 3:00 PM: Later\n9:00 AM - 10:00 AM: Earlier"

	tasks, err := Parse(input)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if tasks[0].Label != "Later" || tasks[1].Label != "Earlier" {
		t.Errorf("order not preserved: %q, %q", tasks[0].Label, tasks[1].Label)
	}

	problems := Inconsistencies(tasks)
	if len(problems) != 1 {
		t.Errorf("expected 1 ordering inconsistency, got %v", problems)
	}
}

func TestParseBlankLines(t *testing.T) {
	input := "\n9:00 AM - 10:00 AM: Work\n\n\n10:00 AM - 11:00 AM: More work\n"

	tasks, err := Parse(input)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if len(tasks) != 2 {
		t.Errorf("expected 2 tasks, got %d", len(tasks))
	}
}

func TestParseEmptyInput(t *testing.T) {
	for _, input := range []string{"", "   ", "\n\n"} {
		_, err := Parse(input)
		if err == nil {
			t.Errorf("Parse(%q) should have failed", input)
			continue
		}
		var parseErr *ParseError
		if !errors.As(err, &parseErr) {
			t.Errorf("Parse(%q) returned %T, want *ParseError", input, err)
		}
	}
}

func TestParseJSON(t *testing.T) {
	input := `[
		{"time": "9:00 AM - 10:00 AM", "task": "Write report", "duration": "1 hour"},
		{"time": "12:00 PM - 1:00 PM", "task": "Lunch", "duration": "1 hour"}
	]`

	tasks, err := Parse(input)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if len(tasks) != 2 {
		t.Fatalf("expected 2 tasks, got %d", len(tasks))
	}
	if tasks[0].Label != "Write report" || tasks[0].Duration != "1 hour" {
		t.Errorf("unexpected first task: %+v", tasks[0])
	}
	if tasks[1].Start != (clock.TimeOfDay{Hour: 12}) {
		t.Errorf("unexpected lunch start: %v", tasks[1].Start)
	}
}

func TestParseJSONTrailingComma(t *testing.T) {
	input := `[{"time": "9:00 AM - 10:00 AM", "task": "Work"},]`

	tasks, err := Parse(input)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if len(tasks) != 1 || tasks[0].Label != "Work" {
		t.Errorf("unexpected tasks: %+v", tasks)
	}
}

func TestParseJSONBadTimeKeepsTask(t *testing.T) {
	input := `[{"time": "sometime after lunch", "task": "Nap"}]`

	tasks, err := Parse(input)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if len(tasks) != 1 {
		t.Fatalf("expected 1 task, got %d", len(tasks))
	}
	if tasks[0].Timed() {
		t.Error("task with unparseable time should be unstructured")
	}
	if tasks[0].Label != "Nap" || tasks[0].RawTime != "sometime after lunch" {
		t.Errorf("raw fields not preserved: %+v", tasks[0])
	}
}

func TestParseJSONLabelKey(t *testing.T) {
	input := `[{"time": "9:00 AM - 10:00 AM", "label": "Alt key"}]`

	tasks, err := Parse(input)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if tasks[0].Label != "Alt key" {
		t.Errorf("label key not accepted: %+v", tasks[0])
	}
}

func TestJSONRoundTripIdempotent(t *testing.T) {
	input := "9:00 AM - 10:30 AM: Deep work\n12:00 PM - 1:00 PM: Lunch\nreview notes sometime"

	first, err := Parse(input)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	rendered, err := FormatJSON(first)
	if err != nil {
		t.Fatalf("FormatJSON failed: %v", err)
	}

	second, err := Parse(rendered)
	if err != nil {
		t.Fatalf("re-parse failed: %v", err)
	}

	rendered2, err := FormatJSON(second)
	if err != nil {
		t.Fatalf("second FormatJSON failed: %v", err)
	}
	if rendered != rendered2 {
		t.Errorf("round trip not idempotent:\n%s\n%s", rendered, rendered2)
	}

	if len(first) != len(second) {
		t.Fatalf("task count changed: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i].Label != second[i].Label || first[i].Kind != second[i].Kind ||
			first[i].Start != second[i].Start || first[i].End != second[i].End {
			t.Errorf("task %d changed: %+v vs %+v", i, first[i], second[i])
		}
	}
}

func TestFormatText(t *testing.T) {
	tasks, err := Parse("9:00 AM - 10:00 AM: Work\nfree-form note")
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	text := FormatText(tasks)
	lines := strings.Split(text, "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(lines))
	}
	if lines[0] != "9:00 AM - 10:00 AM: Work" {
		t.Errorf("unexpected line: %q", lines[0])
	}
	if lines[1] != "free-form note" {
		t.Errorf("unstructured task lost: %q", lines[1])
	}
}

func TestSyntheticIDsUnique(t *testing.T) {
	tasks, err := Parse("9:00 AM - 10:00 AM: A\n10:00 AM - 11:00 AM: B\n11:00 AM - 12:00 PM: C")
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	seen := make(map[string]bool)
	for _, task := range tasks {
		if task.ID == "" {
			t.Error("task missing id")
		}
		if seen[task.ID] {
			t.Errorf("duplicate id %s", task.ID)
		}
		seen[task.ID] = true
	}
}

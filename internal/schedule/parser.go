package schedule

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/google/uuid"

	"github.com/kks007-dev/synamic/internal/clock"
)

// ParseError indicates schedule input that could not be interpreted at
// all. Individual unparseable lines never raise it; they degrade to
// unstructured tasks instead.
type ParseError struct {
	Reason string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("unparseable schedule: %s", e.Reason)
}

// wireTask is the JSON wire shape for a schedule entry. Upstream
// generators are loose about the label key, so both "task" and "label"
// are accepted.
type wireTask struct {
	Time     string `json:"time"`
	Task     string `json:"task"`
	Label    string `json:"label,omitempty"`
	Duration string `json:"duration,omitempty"`
}

// scheduleLine matches the line wire form "<start> - <end>: <label>".
var scheduleLine = regexp.MustCompile(`^(\d{1,2}:\d{2}(?:\s*[AaPp]\.?[Mm]\.?)?)\s*-\s*(\d{1,2}:\d{2}(?:\s*[AaPp]\.?[Mm]\.?)?):\s*(.+)$`)

// trailingComma matches a single trailing comma before the closing
// bracket, which upstream generators occasionally emit.
var trailingComma = regexp.MustCompile(`,\s*\]\s*$`)

// Parse converts externally supplied schedule text into an ordered task
// sequence. A JSON array parse is attempted first; if the input is not
// JSON, it falls back to line-oriented parsing. Input lines are never
// silently dropped: anything unresolvable becomes an unstructured task.
// The only hard failure is empty input. Output preserves input order;
// the parser never sorts.
func Parse(raw string) ([]Task, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return nil, &ParseError{Reason: "empty input"}
	}

	nonce := uuid.NewString()[:8]

	if tasks, ok := parseJSON(trimmed, nonce); ok {
		return tasks, nil
	}
	return parseLines(trimmed, nonce), nil
}

func parseJSON(raw, nonce string) ([]Task, bool) {
	if !strings.HasPrefix(raw, "[") {
		return nil, false
	}

	candidate := trailingComma.ReplaceAllString(raw, "]")

	var entries []wireTask
	if err := json.Unmarshal([]byte(candidate), &entries); err != nil {
		return nil, false
	}

	tasks := make([]Task, 0, len(entries))
	for i, entry := range entries {
		label := entry.Task
		if label == "" {
			label = entry.Label
		}
		task := Task{
			ID:       taskID(nonce, i),
			Label:    label,
			Duration: entry.Duration,
		}
		start, end, err := clock.ParseRange(entry.Time)
		if err != nil {
			// Keep the task; preserve whatever the time field said.
			task.Kind = KindUnstructured
			task.RawTime = entry.Time
			if task.Label == "" {
				task.Label = entry.Time
			}
		} else {
			task.Kind = KindTimed
			task.Start = start
			task.End = end
		}
		tasks = append(tasks, task)
	}
	return tasks, true
}

func parseLines(raw, nonce string) []Task {
	var tasks []Task
	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		i := len(tasks)
		if m := scheduleLine.FindStringSubmatch(line); m != nil {
			start, startErr := clock.Parse(m[1])
			end, endErr := clock.Parse(m[2])
			if startErr == nil && endErr == nil {
				tasks = append(tasks, Task{
					ID:    taskID(nonce, i),
					Kind:  KindTimed,
					Label: m[3],
					Start: start,
					End:   end,
				})
				continue
			}
		}

		// Not a recognizable time line; preserve it whole.
		tasks = append(tasks, Task{
			ID:    taskID(nonce, i),
			Kind:  KindUnstructured,
			Label: line,
		})
	}
	return tasks
}

func taskID(nonce string, index int) string {
	return fmt.Sprintf("task-%s-%d", nonce, index)
}

package schedule

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/kks007-dev/synamic/internal/clock"
)

// FormatText renders tasks in the line wire form, one
// "<start> - <end>: <label>" per line. Unstructured tasks render as
// their preserved label so no input is lost on the way back out.
func FormatText(tasks []Task) string {
	var b strings.Builder
	for i, task := range tasks {
		if i > 0 {
			b.WriteByte('\n')
		}
		if task.Timed() {
			fmt.Fprintf(&b, "%s - %s: %s", task.Start, task.End, task.Label)
		} else {
			b.WriteString(task.Label)
		}
	}
	return b.String()
}

// FormatJSON renders tasks as the JSON array wire form
// [{time, task, duration}]. Parsing the result yields an identical task
// sequence (modulo synthetic ids).
func FormatJSON(tasks []Task) (string, error) {
	entries := make([]wireTask, 0, len(tasks))
	for _, task := range tasks {
		entry := wireTask{
			Task:     task.Label,
			Duration: task.Duration,
		}
		if task.Timed() {
			entry.Time = task.TimeRange()
			if entry.Duration == "" {
				entry.Duration = durationHint(task.Start, task.End)
			}
		} else {
			entry.Time = task.RawTime
		}
		entries = append(entries, entry)
	}

	data, err := json.Marshal(entries)
	if err != nil {
		return "", fmt.Errorf("marshal schedule: %w", err)
	}
	return string(data), nil
}

// durationHint renders a human-readable duration for a resolved range.
func durationHint(start, end clock.TimeOfDay) string {
	d := clock.DurationBetween(start, end)
	if d == 0 {
		return ""
	}
	hours := int(d.Hours())
	minutes := int(d.Minutes()) % 60
	switch {
	case hours == 0:
		return fmt.Sprintf("%d minutes", minutes)
	case minutes == 0 && hours == 1:
		return "1 hour"
	case minutes == 0:
		return fmt.Sprintf("%d hours", hours)
	default:
		return fmt.Sprintf("%.1f hours", d.Hours())
	}
}

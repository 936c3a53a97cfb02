// Package schedule defines the day-schedule task model and the tolerant
// text/JSON parser for externally supplied schedules.
package schedule

import (
	"fmt"

	"github.com/kks007-dev/synamic/internal/clock"
)

// TaskKind distinguishes fully parsed tasks from preserved raw input.
type TaskKind string

const (
	// KindTimed means the task has a resolved start/end time range.
	KindTimed TaskKind = "timed"
	// KindUnstructured means the original text could not be resolved into
	// a time range and is preserved verbatim in Label (and RawTime when
	// the time portion was identifiable).
	KindUnstructured TaskKind = "unstructured"
)

// Task is a single scheduled unit of work.
type Task struct {
	ID    string
	Kind  TaskKind
	Label string

	// Start/End are valid only when Kind is KindTimed.
	Start clock.TimeOfDay
	End   clock.TimeOfDay

	// RawTime holds the original time text when it could not be parsed.
	RawTime string

	// Duration is an advisory human-readable hint ("1.5 hours").
	Duration string
}

// Timed reports whether the task has a resolved time range.
func (t Task) Timed() bool {
	return t.Kind == KindTimed
}

// TimeRange renders the wire-form "<start> - <end>" for timed tasks,
// falling back to the preserved raw text.
func (t Task) TimeRange() string {
	if t.Timed() {
		return fmt.Sprintf("%s - %s", t.Start, t.End)
	}
	return t.RawTime
}

// Inconsistencies reports non-fatal problems with a task sequence:
// inverted ranges and out-of-order start times. Out-of-order input is
// preserved as-is; this is diagnostic only.
func Inconsistencies(tasks []Task) []string {
	var problems []string
	var prev *Task
	for i := range tasks {
		task := &tasks[i]
		if !task.Timed() {
			continue
		}
		if !task.Start.Before(task.End) {
			problems = append(problems, fmt.Sprintf("task %q: start %s is not before end %s", task.Label, task.Start, task.End))
		}
		if prev != nil && task.Start.Before(prev.Start) {
			problems = append(problems, fmt.Sprintf("task %q starts before preceding task %q", task.Label, prev.Label))
		}
		prev = task
	}
	return problems
}

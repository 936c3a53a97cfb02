package planner

import (
	"context"
	"fmt"
	"strings"

	"github.com/kks007-dev/synamic/internal/clock"
	"github.com/kks007-dev/synamic/internal/llm"
	"github.com/kks007-dev/synamic/internal/logging"
	"github.com/kks007-dev/synamic/internal/schedule"
)

// GenerateRequest is the input to schedule generation.
type GenerateRequest struct {
	// Priorities are the ordered priority labels for the day. Required
	// unless Schedule is set.
	Priorities []string

	// CalendarEvents describes fixed, non-negotiable events. Passed
	// through to the collaborator as opaque context, never parsed here.
	CalendarEvents string

	// Optional extra goal fields.
	LearningGoal string
	OtherGoals   string

	// Start/End frame the schedule. Nil means the configured default
	// window.
	Start *clock.TimeOfDay
	End   *clock.TimeOfDay

	// Schedule, when set, is pre-authored schedule text: bypass mode.
	// It is parsed verbatim with no delegation and no added breaks.
	Schedule string
}

// GenerateResult is a structured full-day schedule plus its JSON wire
// rendering.
type GenerateResult struct {
	Tasks []schedule.Task
	// JSON is the [{time, task, duration}] wire form of Tasks.
	JSON string
}

// GenerateSchedule produces a full-day ordered schedule. In bypass mode
// (Request.Schedule set) the text is parsed and returned verbatim. In
// delegated mode the collaborator is instructed to schedule only the
// supplied tasks, adding at most the lunch and dinner breaks the window
// calls for.
func (p *Planner) GenerateSchedule(ctx context.Context, req GenerateRequest) (*GenerateResult, error) {
	if req.Schedule != "" {
		return p.bypassGenerate(req.Schedule)
	}

	priorities := trimNonEmpty(req.Priorities)
	if len(priorities) == 0 {
		return nil, &ValidationError{Field: "priorities", Message: "at least one priority is required"}
	}
	if p.gen == nil {
		return nil, &GenerationError{Op: "generate", Err: fmt.Errorf("no generator configured")}
	}

	start, end := p.window(req.Start, req.End)

	var breaks string
	if clock.Within(noon, start, end) {
		breaks += lunchInstruction
	}
	if p.cfg.DinnerAfter.Before(end) {
		breaks += dinnerInstruction
	}

	var priorityLines strings.Builder
	for i, priority := range priorities {
		fmt.Fprintf(&priorityLines, "%d. %s\n", i+1, priority)
	}

	prompt := fmt.Sprintf(generatePromptTemplate,
		breaks, start, end, priorityLines.String(),
		req.CalendarEvents, req.LearningGoal, req.OtherGoals)

	logging.Debug(logSubsystem, "generating schedule for window %s - %s (%d priorities)", start, end, len(priorities))

	output, err := p.gen.Generate(ctx, prompt)
	if err != nil {
		return nil, &GenerationError{Op: "generate", Err: err}
	}

	tasks, err := schedule.Parse(llm.ExtractJSON(output))
	if err != nil {
		return nil, &GenerationError{Op: "generate", Err: fmt.Errorf("unparseable output: %w", err)}
	}
	if countTimed(tasks) == 0 {
		return nil, &GenerationError{Op: "generate", Err: fmt.Errorf("output contained no scheduled tasks")}
	}

	return toResult(tasks)
}

// bypassGenerate parses caller-supplied schedule text with no
// delegation. Parse failures surface as schedule parse errors.
func (p *Planner) bypassGenerate(text string) (*GenerateResult, error) {
	tasks, err := schedule.Parse(text)
	if err != nil {
		return nil, err
	}
	logging.Debug(logSubsystem, "bypass mode: parsed %d tasks", len(tasks))
	return toResult(tasks)
}

func (p *Planner) window(start, end *clock.TimeOfDay) (clock.TimeOfDay, clock.TimeOfDay) {
	s, e := p.cfg.DayStart, p.cfg.DayEnd
	if start != nil {
		s = *start
	}
	if end != nil {
		e = *end
	}
	return s, e
}

func toResult(tasks []schedule.Task) (*GenerateResult, error) {
	wire, err := schedule.FormatJSON(tasks)
	if err != nil {
		return nil, err
	}
	return &GenerateResult{Tasks: tasks, JSON: wire}, nil
}

func trimNonEmpty(items []string) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		if trimmed := strings.TrimSpace(item); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func countTimed(tasks []schedule.Task) int {
	n := 0
	for _, task := range tasks {
		if task.Timed() {
			n++
		}
	}
	return n
}

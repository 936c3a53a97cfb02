package planner

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/kks007-dev/synamic/internal/clock"
	"github.com/kks007-dev/synamic/internal/llm"
	"github.com/kks007-dev/synamic/internal/logging"
	"github.com/kks007-dev/synamic/internal/schedule"
)

// ReworkRequest is the input to schedule repair.
type ReworkRequest struct {
	// Schedule is the current, possibly user-edited schedule text.
	Schedule string

	// CompletedTasks are labels of tasks the user reports done. May be
	// empty; the collaborator also infers completion from Now.
	CompletedTasks []string

	// RemainingTime describes the time left in the day, e.g. "3 hours"
	// or "the rest of the day".
	RemainingTime string

	// NewConstraints describes the disruption driving the rework. This
	// is the primary trigger and is required.
	NewConstraints string

	// Goals are the user's standing goals for the day.
	Goals string

	// Now is the invocation instant. Injected so repair behavior is
	// reproducible; the planner never reads the system clock.
	Now clock.TimeOfDay
}

// ReworkResult is the revised full-day schedule plus the collaborator's
// reasoning for the changes.
type ReworkResult struct {
	Tasks        []schedule.Task
	ScheduleText string // line wire form of Tasks
	Reasoning    string
}

// reworkResponse is the delegated collaborator's declared output shape.
// The schedule is kept raw so it can run through the tolerant parser.
type reworkResponse struct {
	Schedule  json.RawMessage `json:"schedule"`
	Reasoning string          `json:"reasoning"`
}

// ReworkSchedule reconciles a partially executed schedule with a new
// constraint. The output covers the entire day: the already-elapsed
// portion untouched, the remainder rescheduled around the disruption.
func (p *Planner) ReworkSchedule(ctx context.Context, req ReworkRequest) (*ReworkResult, error) {
	if err := validateRework(req); err != nil {
		return nil, err
	}
	if p.gen == nil {
		return nil, &GenerationError{Op: "rework", Err: fmt.Errorf("no generator configured")}
	}

	completed := "none reported"
	if items := trimNonEmpty(req.CompletedTasks); len(items) > 0 {
		completed = strings.Join(items, "; ")
	}

	prompt := fmt.Sprintf(reworkPromptTemplate,
		req.Now, req.Schedule, completed, req.RemainingTime, req.NewConstraints, req.Goals)

	logging.Debug(logSubsystem, "reworking schedule at %s (constraint: %s)", req.Now, logging.Truncate(req.NewConstraints, 60))

	output, err := p.gen.Generate(ctx, prompt)
	if err != nil {
		return nil, &GenerationError{Op: "rework", Err: err}
	}

	var resp reworkResponse
	if err := json.Unmarshal([]byte(llm.ExtractJSON(output)), &resp); err != nil {
		return nil, &GenerationError{Op: "rework", Err: fmt.Errorf("unparseable output: %w", err)}
	}
	if len(resp.Schedule) == 0 {
		return nil, &GenerationError{Op: "rework", Err: fmt.Errorf("no revised schedule returned")}
	}

	// The schedule field may be the JSON array wire form or a quoted
	// block of schedule text; both go through the tolerant parser.
	scheduleRaw := string(resp.Schedule)
	var asText string
	if err := json.Unmarshal(resp.Schedule, &asText); err == nil {
		scheduleRaw = asText
	}

	tasks, err := schedule.Parse(scheduleRaw)
	if err != nil {
		return nil, &GenerationError{Op: "rework", Err: fmt.Errorf("revised schedule unparseable: %w", err)}
	}
	if countTimed(tasks) == 0 {
		return nil, &GenerationError{Op: "rework", Err: fmt.Errorf("revised schedule contained no scheduled tasks")}
	}

	logging.Info(logSubsystem, "reworked schedule: %d tasks", len(tasks))
	return &ReworkResult{
		Tasks:        tasks,
		ScheduleText: schedule.FormatText(tasks),
		Reasoning:    resp.Reasoning,
	}, nil
}

func validateRework(req ReworkRequest) error {
	if len(strings.TrimSpace(req.Schedule)) < minGoalsLength {
		return &ValidationError{Field: "schedule", Message: "please provide the original schedule"}
	}
	if strings.TrimSpace(req.RemainingTime) == "" {
		return &ValidationError{Field: "remainingTime", Message: "please specify the remaining time"}
	}
	if strings.TrimSpace(req.NewConstraints) == "" {
		return &ValidationError{Field: "newConstraints", Message: "please describe what changed"}
	}
	if len(strings.TrimSpace(req.Goals)) < minGoalsLength {
		return &ValidationError{Field: "goals", Message: "please describe your goals"}
	}
	return nil
}

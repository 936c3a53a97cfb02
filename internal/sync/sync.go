// Package sync pushes finalized schedule tasks to an external calendar.
// Each creation call is correlated back to its originating task by id,
// and a failed event never aborts the batch.
package sync

import (
	"context"
	"fmt"
	"time"

	"github.com/kks007-dev/synamic/internal/logging"
	"github.com/kks007-dev/synamic/internal/schedule"
)

const logSubsystem = "sync"

// EventCreator is the external calendar-event-creation collaborator.
// Implementations return the created event's ID, or an error.
type EventCreator interface {
	CreateEvent(ctx context.Context, title string, start, end time.Time) (string, error)
}

// AuthRequiredError means the calendar provider is not linked for this
// user. It blocks the entire batch before any event is attempted, which
// distinguishes it from a partial failure.
type AuthRequiredError struct{}

func (e *AuthRequiredError) Error() string {
	return "calendar account not linked"
}

// Request is one sync batch.
type Request struct {
	Tasks []schedule.Task

	// Day anchors time-of-day values to absolute timestamps.
	Day time.Time
	// Location is the user's timezone; nil means time.Local.
	Location *time.Location

	// ProviderLinked is the auth collaborator's linkage flag. When
	// false nothing is attempted.
	ProviderLinked bool
}

// SyncedEvent records one successful creation, correlated to its task.
type SyncedEvent struct {
	TaskID  string
	Title   string
	Start   time.Time
	End     time.Time
	EventID string
}

// Outcome is the per-task result of a batch.
type Outcome struct {
	Synced  bool
	EventID string
	Error   string
}

// Result is the terminal state of a sync batch. Partial failure is a
// valid terminal state, not an error: callers can show what succeeded
// and retry only the failed subset.
type Result struct {
	Synced []SyncedEvent
	Errors []string

	// Outcomes maps task ID to its result. Correlation is by identity,
	// never by position: completions may interleave or reorder.
	Outcomes map[string]Outcome
}

// Partial reports whether some, but not all, events failed.
func (r *Result) Partial() bool {
	return len(r.Errors) > 0 && len(r.Synced) > 0
}

// Syncer maps tasks to calendar event creation calls.
type Syncer struct {
	creator EventCreator
}

// New creates a sync adapter over the given event creator.
func New(creator EventCreator) *Syncer {
	return &Syncer{creator: creator}
}

// Sync creates one calendar event per timed task. Unresolved tasks are
// skipped with a recorded error. A failed creation is recorded and the
// batch continues; there is no retry and no rollback.
func (s *Syncer) Sync(ctx context.Context, req Request) (*Result, error) {
	if !req.ProviderLinked {
		return nil, &AuthRequiredError{}
	}

	loc := req.Location
	if loc == nil {
		loc = time.Local
	}

	result := &Result{Outcomes: make(map[string]Outcome, len(req.Tasks))}

	for _, task := range req.Tasks {
		if !task.Timed() {
			msg := fmt.Sprintf("Skipped %q: no resolved time range.", task.Label)
			result.Errors = append(result.Errors, msg)
			result.Outcomes[task.ID] = Outcome{Error: msg}
			continue
		}

		start := task.Start.OnDay(req.Day, loc)
		end := task.End.OnDay(req.Day, loc)

		eventID, err := s.creator.CreateEvent(ctx, task.Label, start, end)
		if err != nil {
			logging.Warn(logSubsystem, "create event %q: %v", task.Label, err)
			msg := fmt.Sprintf("Failed to create event for %q.", task.Label)
			result.Errors = append(result.Errors, msg)
			result.Outcomes[task.ID] = Outcome{Error: msg}
			continue
		}

		result.Synced = append(result.Synced, SyncedEvent{
			TaskID:  task.ID,
			Title:   task.Label,
			Start:   start,
			End:     end,
			EventID: eventID,
		})
		result.Outcomes[task.ID] = Outcome{Synced: true, EventID: eventID}
	}

	logging.Info(logSubsystem, "synced %d/%d tasks (%d errors)",
		len(result.Synced), len(req.Tasks), len(result.Errors))
	return result, nil
}

package planner

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/kks007-dev/synamic/internal/llm"
	"github.com/kks007-dev/synamic/internal/logging"
)

// PriorityItem is a single identified priority. The ID is generated
// once at creation and stays stable across reordering.
type PriorityItem struct {
	ID        string `json:"id"`
	Text      string `json:"text"`
	TimeOfDay string `json:"timeOfDay,omitempty"`
}

// Category returns the display bucket for the item's time-of-day hint.
func (p PriorityItem) Category() TimeOfDayCategory {
	return ClassifyTimeOfDay(p.TimeOfDay)
}

// AssessRequest is the input to priority assessment.
type AssessRequest struct {
	Goals   string // required, non-trivial length
	Context string // optional situational context
}

// AssessResult is an ordered priority list plus the collaborator's
// explanation.
type AssessResult struct {
	Priorities []PriorityItem
	Reasoning  string
}

// assessResponse is the delegated collaborator's declared output shape.
type assessResponse struct {
	Priorities []struct {
		Text      string `json:"text"`
		TimeOfDay string `json:"timeOfDay"`
	} `json:"priorities"`
	Reasoning string `json:"reasoning"`
}

// AssessPriorities derives an ordered priority list from goal text.
// Goal text below the minimum length is rejected before delegation.
// When no generator is configured, the deterministic fallback extractor
// is used instead.
func (p *Planner) AssessPriorities(ctx context.Context, req AssessRequest) (*AssessResult, error) {
	if len(strings.TrimSpace(req.Goals)) < minGoalsLength {
		return nil, &ValidationError{
			Field:   "goals",
			Message: "please describe your goals in a bit more detail",
		}
	}

	if p.gen == nil {
		logging.Debug(logSubsystem, "no generator configured, using fallback priority extraction")
		return fallbackPriorities(req.Goals), nil
	}

	prompt := fmt.Sprintf(assessPromptTemplate, req.Goals, req.Context)
	output, err := p.gen.Generate(ctx, prompt)
	if err != nil {
		return nil, &GenerationError{Op: "assess", Err: err}
	}

	var resp assessResponse
	if err := json.Unmarshal([]byte(llm.ExtractJSON(output)), &resp); err != nil {
		return nil, &GenerationError{Op: "assess", Err: fmt.Errorf("unparseable output: %w", err)}
	}
	if len(resp.Priorities) == 0 {
		return nil, &GenerationError{Op: "assess", Err: fmt.Errorf("no priorities returned")}
	}

	result := &AssessResult{Reasoning: resp.Reasoning}
	for _, item := range resp.Priorities {
		text := strings.TrimSpace(item.Text)
		if text == "" {
			continue
		}
		result.Priorities = append(result.Priorities, PriorityItem{
			ID:        uuid.NewString(),
			Text:      text,
			TimeOfDay: item.TimeOfDay,
		})
	}
	if len(result.Priorities) == 0 {
		return nil, &GenerationError{Op: "assess", Err: fmt.Errorf("only empty priorities returned")}
	}

	logging.Info(logSubsystem, "assessed %d priorities", len(result.Priorities))
	return result, nil
}

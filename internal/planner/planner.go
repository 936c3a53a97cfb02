// Package planner implements the schedule derivation and repair engine:
// priority assessment, full-day schedule generation, and post-hoc rework
// of a partially executed day. The reasoning itself is delegated to an
// llm.Generator; this package owns validation, the instruction
// contracts, and turning model output back into structured tasks.
//
// All operations are pure over their inputs: the planner holds policy
// and a generator, never schedule state between calls.
package planner

import (
	"strings"

	"github.com/kks007-dev/synamic/internal/clock"
	"github.com/kks007-dev/synamic/internal/llm"
)

const logSubsystem = "planner"

// minGoalsLength is the empirical minimum for useful goal text.
const minGoalsLength = 10

var (
	defaultDayStart = clock.TimeOfDay{Hour: 9}
	defaultDayEnd   = clock.TimeOfDay{Hour: 18}
	noon            = clock.TimeOfDay{Hour: 12}
)

// Config is the planning policy.
type Config struct {
	// DayStart/DayEnd frame generated schedules when the caller gives no
	// window. Defaults: 9:00 AM - 6:00 PM.
	DayStart clock.TimeOfDay
	DayEnd   clock.TimeOfDay

	// DinnerAfter is the threshold for dinner-break insertion: a dinner
	// break is requested only when the window ends strictly after this
	// time. Default 6:00 PM, so a window ending exactly at 6:00 PM gets
	// no dinner.
	DinnerAfter clock.TimeOfDay
}

func (c Config) withDefaults() Config {
	zero := clock.TimeOfDay{}
	if c.DayStart == zero && c.DayEnd == zero {
		c.DayStart = defaultDayStart
		c.DayEnd = defaultDayEnd
	}
	if c.DinnerAfter == zero {
		c.DinnerAfter = defaultDayEnd
	}
	return c
}

// Planner derives and repairs daily schedules.
type Planner struct {
	gen llm.Generator // nil means fallback-only operation
	cfg Config
}

// New creates a planner. gen may be nil, in which case priority
// assessment uses the deterministic fallback and delegated generation
// is unavailable.
func New(gen llm.Generator, cfg Config) *Planner {
	return &Planner{gen: gen, cfg: cfg.withDefaults()}
}

// TimeOfDayCategory buckets a free-text time-of-day hint for display.
type TimeOfDayCategory string

const (
	CategoryMorning   TimeOfDayCategory = "morning"
	CategoryAfternoon TimeOfDayCategory = "afternoon"
	CategoryEvening   TimeOfDayCategory = "evening"
	CategoryUnknown   TimeOfDayCategory = "unknown"
)

// ClassifyTimeOfDay buckets a hint like "Morning - High Focus" into one
// of the display categories. Hints are open-ended free text; anything
// unrecognizable is unknown.
func ClassifyTimeOfDay(hint string) TimeOfDayCategory {
	lower := strings.ToLower(hint)
	switch {
	case strings.Contains(lower, "morning"):
		return CategoryMorning
	case strings.Contains(lower, "afternoon"), strings.Contains(lower, "midday"), strings.Contains(lower, "noon"):
		return CategoryAfternoon
	case strings.Contains(lower, "evening"), strings.Contains(lower, "night"):
		return CategoryEvening
	default:
		return CategoryUnknown
	}
}

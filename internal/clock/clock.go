// Package clock handles wall-clock time-of-day parsing and formatting.
// Times are day offsets with no date component; cross-midnight ranges
// are not supported.
package clock

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// TimeOfDay is a wall-clock time within a single day.
type TimeOfDay struct {
	Hour   int // 0-23
	Minute int // 0-59
}

// ParseError indicates a time expression that could not be interpreted.
type ParseError struct {
	Input string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("unparseable time %q", e.Input)
}

var (
	// "1:00 PM", "11:30am"
	twelveHourPattern = regexp.MustCompile(`^(\d{1,2}):(\d{2})\s*([AaPp])\.?[Mm]\.?$`)
	// "13:00", "09:30"
	twentyFourHourPattern = regexp.MustCompile(`^(\d{1,2}):(\d{2})$`)
)

// Parse converts a time expression to a TimeOfDay. Accepted forms are
// "h:mm AM/PM" (meridiem case-insensitive) and 24-hour "HH:MM".
// Ambiguous strings (e.g. a bare hour with no minutes) are rejected,
// not guessed.
func Parse(text string) (TimeOfDay, error) {
	trimmed := strings.TrimSpace(text)

	if m := twelveHourPattern.FindStringSubmatch(trimmed); m != nil {
		hour, _ := strconv.Atoi(m[1])
		minute, _ := strconv.Atoi(m[2])
		if hour < 1 || hour > 12 || minute > 59 {
			return TimeOfDay{}, &ParseError{Input: text}
		}
		// 12 AM is midnight, 12 PM is noon
		if hour == 12 {
			hour = 0
		}
		if strings.EqualFold(m[3], "p") {
			hour += 12
		}
		return TimeOfDay{Hour: hour, Minute: minute}, nil
	}

	if m := twentyFourHourPattern.FindStringSubmatch(trimmed); m != nil {
		hour, _ := strconv.Atoi(m[1])
		minute, _ := strconv.Atoi(m[2])
		if hour > 23 || minute > 59 {
			return TimeOfDay{}, &ParseError{Input: text}
		}
		return TimeOfDay{Hour: hour, Minute: minute}, nil
	}

	return TimeOfDay{}, &ParseError{Input: text}
}

// String renders the canonical "h:mm AM/PM" form: 12-hour clock,
// zero-padded minutes, no leading zero on the hour.
func (t TimeOfDay) String() string {
	meridiem := "AM"
	hour := t.Hour
	switch {
	case hour == 0:
		hour = 12
	case hour == 12:
		meridiem = "PM"
	case hour > 12:
		hour -= 12
		meridiem = "PM"
	}
	return fmt.Sprintf("%d:%02d %s", hour, t.Minute, meridiem)
}

// Minutes returns the offset from midnight in minutes.
func (t TimeOfDay) Minutes() int {
	return t.Hour*60 + t.Minute
}

// Before reports whether t is strictly earlier in the day than other.
func (t TimeOfDay) Before(other TimeOfDay) bool {
	return t.Minutes() < other.Minutes()
}

// OnDay anchors the time-of-day to a concrete date in the given location.
func (t TimeOfDay) OnDay(day time.Time, loc *time.Location) time.Time {
	if loc == nil {
		loc = time.Local
	}
	return time.Date(day.Year(), day.Month(), day.Day(), t.Hour, t.Minute, 0, 0, loc)
}

// Within reports whether point falls inside the half-open interval
// [start, end). The start boundary is inside, the end boundary is not.
func Within(point, start, end TimeOfDay) bool {
	p := point.Minutes()
	return start.Minutes() <= p && p < end.Minutes()
}

// ParseRange splits a "<start> - <end>" expression on the first " - "
// and parses both sides.
func ParseRange(text string) (start, end TimeOfDay, err error) {
	left, right, found := strings.Cut(text, " - ")
	if !found {
		return TimeOfDay{}, TimeOfDay{}, &ParseError{Input: text}
	}
	start, err = Parse(left)
	if err != nil {
		return TimeOfDay{}, TimeOfDay{}, err
	}
	end, err = Parse(right)
	if err != nil {
		return TimeOfDay{}, TimeOfDay{}, err
	}
	return start, end, nil
}

// DurationBetween returns the span from start to end. Ranges where end
// is not after start yield zero; callers treat that as an inconsistency,
// not an error.
func DurationBetween(start, end TimeOfDay) time.Duration {
	minutes := end.Minutes() - start.Minutes()
	if minutes <= 0 {
		return 0
	}
	return time.Duration(minutes) * time.Minute
}

package clock

import (
	"errors"
	"testing"
	"time"
)

func TestParse(t *testing.T) {
	cases := []struct {
		input  string
		hour   int
		minute int
	}{
		{"9:00 AM", 9, 0},
		{"12:00 AM", 0, 0},
		{"12:00 PM", 12, 0},
		{"12:30 am", 0, 30},
		{"1:00 PM", 13, 0},
		{"11:45 pm", 23, 45},
		{"13:00", 13, 0},
		{"00:15", 0, 15},
		{"9:05", 9, 5},
		{" 6:30 PM ", 18, 30},
		{"6:30PM", 18, 30},
	}

	for _, tc := range cases {
		got, err := Parse(tc.input)
		if err != nil {
			t.Errorf("Parse(%q) failed: %v", tc.input, err)
			continue
		}
		if got.Hour != tc.hour || got.Minute != tc.minute {
			t.Errorf("Parse(%q) = %d:%02d, want %d:%02d", tc.input, got.Hour, got.Minute, tc.hour, tc.minute)
		}
	}
}

func TestParseRejectsAmbiguous(t *testing.T) {
	bad := []string{"", "noon", "9 AM", "9", "25:00", "12:60", "13:00 PM", "garbled line"}
	for _, input := range bad {
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

func TestStringRoundTrip(t *testing.T) {
	cases := []struct {
		time TimeOfDay
		want string
	}{
		{TimeOfDay{9, 0}, "9:00 AM"},
		{TimeOfDay{0, 0}, "12:00 AM"},
		{TimeOfDay{12, 0}, "12:00 PM"},
		{TimeOfDay{13, 5}, "1:05 PM"},
		{TimeOfDay{23, 59}, "11:59 PM"},
	}

	for _, tc := range cases {
		if got := tc.time.String(); got != tc.want {
			t.Errorf("String(%v) = %q, want %q", tc.time, got, tc.want)
		}
		// Canonical form must parse back to the same time
		back, err := Parse(tc.time.String())
		if err != nil {
			t.Errorf("round trip parse of %q failed: %v", tc.time.String(), err)
			continue
		}
		if back != tc.time {
			t.Errorf("round trip of %v gave %v", tc.time, back)
		}
	}
}

func TestWithin(t *testing.T) {
	start := TimeOfDay{9, 0}
	end := TimeOfDay{17, 0}

	// Half-open: start inside, end outside
	if !Within(start, start, end) {
		t.Error("start boundary should be within")
	}
	if Within(end, start, end) {
		t.Error("end boundary should not be within")
	}
	if !Within(TimeOfDay{12, 30}, start, end) {
		t.Error("midday should be within")
	}
	if Within(TimeOfDay{8, 59}, start, end) {
		t.Error("before start should not be within")
	}
}

func TestParseRange(t *testing.T) {
	start, end, err := ParseRange("9:00 AM - 10:30 AM")
	if err != nil {
		t.Fatalf("ParseRange failed: %v", err)
	}
	if start != (TimeOfDay{9, 0}) || end != (TimeOfDay{10, 30}) {
		t.Errorf("got %v - %v", start, end)
	}

	if _, _, err := ParseRange("9:00 AM until 10:00 AM"); err == nil {
		t.Error("expected error for missing separator")
	}
	if _, _, err := ParseRange("9:00 AM - whenever"); err == nil {
		t.Error("expected error for bad end time")
	}
}

func TestOnDay(t *testing.T) {
	day := time.Date(2026, 3, 14, 22, 15, 0, 0, time.UTC)
	got := TimeOfDay{9, 30}.OnDay(day, time.UTC)
	want := time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("OnDay = %v, want %v", got, want)
	}
}

func TestDurationBetween(t *testing.T) {
	d := DurationBetween(TimeOfDay{9, 0}, TimeOfDay{10, 30})
	if d != 90*time.Minute {
		t.Errorf("expected 90m, got %v", d)
	}
	// Inverted range degrades to zero rather than a negative duration
	if d := DurationBetween(TimeOfDay{11, 0}, TimeOfDay{10, 0}); d != 0 {
		t.Errorf("expected 0 for inverted range, got %v", d)
	}
}

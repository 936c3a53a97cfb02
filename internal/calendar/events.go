package calendar

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"
	"time"
)

// Event is a fixed calendar event. Events are immutable input to the
// planner; the engine routes around them, never alters them.
type Event struct {
	ID      string    `json:"id"`
	Title   string    `json:"title"`
	Start   time.Time `json:"start"`
	End     time.Time `json:"end"`
	AllDay  bool      `json:"all_day"`
	Status  string    `json:"status"` // confirmed, tentative, cancelled
}

// googleEvent is the Google Calendar API wire format.
type googleEvent struct {
	ID      string          `json:"id"`
	Summary string          `json:"summary"`
	Status  string          `json:"status"`
	Start   *googleDateTime `json:"start,omitempty"`
	End     *googleDateTime `json:"end,omitempty"`
}

type googleDateTime struct {
	DateTime string `json:"dateTime,omitempty"`
	Date     string `json:"date,omitempty"`
	TimeZone string `json:"timeZone,omitempty"`
}

type eventsResponse struct {
	Items []googleEvent `json:"items"`
}

// EventsOn retrieves the fixed events for a given day. The day is an
// explicit parameter so callers control "today" rather than this client
// reading the clock.
func (c *Client) EventsOn(ctx context.Context, day time.Time) ([]Event, error) {
	startOfDay := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
	endOfDay := startOfDay.Add(24 * time.Hour)

	query := url.Values{}
	query.Set("timeMin", startOfDay.Format(time.RFC3339))
	query.Set("timeMax", endOfDay.Format(time.RFC3339))
	query.Set("singleEvents", "true")
	query.Set("orderBy", "startTime")
	query.Set("maxResults", "100")

	path := fmt.Sprintf("/calendars/%s/events?%s", url.PathEscape(c.calendarID), query.Encode())
	data, err := c.request(ctx, "GET", path, nil)
	if err != nil {
		return nil, err
	}

	var resp eventsResponse
	if err := json.Unmarshal(data, &resp); err != nil {
		return nil, fmt.Errorf("parse events response: %w", err)
	}

	events := make([]Event, 0, len(resp.Items))
	for _, item := range resp.Items {
		event, err := convertEvent(&item)
		if err != nil {
			continue // skip malformed events
		}
		events = append(events, event)
	}
	return events, nil
}

// CreateEvent creates a timed event and returns its assigned ID.
func (c *Client) CreateEvent(ctx context.Context, title string, start, end time.Time) (string, error) {
	body := map[string]interface{}{
		"summary": title,
		"start": map[string]string{
			"dateTime": start.Format(time.RFC3339),
			"timeZone": start.Location().String(),
		},
		"end": map[string]string{
			"dateTime": end.Format(time.RFC3339),
			"timeZone": end.Location().String(),
		},
	}

	path := fmt.Sprintf("/calendars/%s/events", url.PathEscape(c.calendarID))
	data, err := c.request(ctx, "POST", path, body)
	if err != nil {
		return "", err
	}

	var item googleEvent
	if err := json.Unmarshal(data, &item); err != nil {
		return "", fmt.Errorf("parse created event: %w", err)
	}
	return item.ID, nil
}

func convertEvent(item *googleEvent) (Event, error) {
	event := Event{
		ID:     item.ID,
		Title:  item.Summary,
		Status: item.Status,
	}

	if item.Start == nil || item.End == nil {
		return event, fmt.Errorf("event %s missing times", item.ID)
	}

	if item.Start.Date != "" {
		start, err := time.Parse("2006-01-02", item.Start.Date)
		if err != nil {
			return event, fmt.Errorf("parse all-day start: %w", err)
		}
		end, err := time.Parse("2006-01-02", item.End.Date)
		if err != nil {
			return event, fmt.Errorf("parse all-day end: %w", err)
		}
		event.Start = start
		event.End = end
		event.AllDay = true
		return event, nil
	}

	start, err := time.Parse(time.RFC3339, item.Start.DateTime)
	if err != nil {
		return event, fmt.Errorf("parse start: %w", err)
	}
	end, err := time.Parse(time.RFC3339, item.End.DateTime)
	if err != nil {
		return event, fmt.Errorf("parse end: %w", err)
	}
	event.Start = start
	event.End = end
	return event, nil
}

// FormatEventsContext renders fixed events as the free-text context the
// planner passes to the generation collaborator. Cancelled and untitled
// events are omitted.
func FormatEventsContext(events []Event) string {
	var lines []string
	for _, event := range events {
		if event.Status == "cancelled" || event.Title == "" {
			continue
		}
		if event.AllDay {
			lines = append(lines, fmt.Sprintf("%s (all day)", event.Title))
			continue
		}
		lines = append(lines, fmt.Sprintf("%s %s - %s",
			event.Title,
			event.Start.Format("3:04 PM"),
			event.End.Format("3:04 PM")))
	}
	if len(lines) == 0 {
		return "No fixed events."
	}
	return strings.Join(lines, "\n")
}

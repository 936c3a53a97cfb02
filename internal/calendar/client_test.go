package calendar

import (
	"context"
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/json"
	"encoding/pem"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

// writeTestCredentials writes a service account key file with a freshly
// generated RSA key and returns its path.
func writeTestCredentials(t *testing.T, tokenURL string) string {
	t.Helper()

	key, err := rsa.GenerateKey(rand.Reader, 2048)
	if err != nil {
		t.Fatalf("generate key: %v", err)
	}
	keyDER, err := x509.MarshalPKCS8PrivateKey(key)
	if err != nil {
		t.Fatalf("marshal key: %v", err)
	}
	keyPEM := pem.EncodeToMemory(&pem.Block{Type: "PRIVATE KEY", Bytes: keyDER})

	creds := map[string]string{
		"type":         "service_account",
		"project_id":   "test-project",
		"private_key":  string(keyPEM),
		"client_email": "planner@test-project.iam.gserviceaccount.com",
		"token_uri":    tokenURL,
	}
	data, _ := json.Marshal(creds)

	path := filepath.Join(t.TempDir(), "credentials.json")
	if err := os.WriteFile(path, data, 0600); err != nil {
		t.Fatal(err)
	}
	return path
}

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	mux := http.NewServeMux()
	mux.HandleFunc("/token", func(w http.ResponseWriter, r *http.Request) {
		if r.FormValue("assertion") == "" {
			http.Error(w, "missing assertion", http.StatusBadRequest)
			return
		}
		json.NewEncoder(w).Encode(map[string]any{
			"access_token": "test-token",
			"expires_in":   3600,
			"token_type":   "Bearer",
		})
	})
	mux.HandleFunc("/calendars/me/events", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer test-token" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}
		switch r.Method {
		case "GET":
			json.NewEncoder(w).Encode(map[string]any{
				"items": []map[string]any{
					{
						"id":      "evt-1",
						"summary": "Team Standup",
						"status":  "confirmed",
						"start":   map[string]string{"dateTime": "2026-03-14T10:00:00Z"},
						"end":     map[string]string{"dateTime": "2026-03-14T11:00:00Z"},
					},
					{
						"id":      "evt-2",
						"summary": "Cancelled thing",
						"status":  "cancelled",
						"start":   map[string]string{"dateTime": "2026-03-14T12:00:00Z"},
						"end":     map[string]string{"dateTime": "2026-03-14T13:00:00Z"},
					},
				},
			})
		case "POST":
			var body map[string]any
			json.NewDecoder(r.Body).Decode(&body)
			if body["summary"] == "" {
				http.Error(w, "missing summary", http.StatusBadRequest)
				return
			}
			json.NewEncoder(w).Encode(map[string]any{"id": "created-1", "summary": body["summary"]})
		}
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func newTestClient(t *testing.T) *Client {
	t.Helper()
	srv := newTestServer(t)
	client, err := NewClient(Config{
		CredentialsFile: writeTestCredentials(t, srv.URL+"/token"),
		CalendarID:      "me",
		BaseURL:         srv.URL,
		TokenURL:        srv.URL + "/token",
	})
	if err != nil {
		t.Fatalf("NewClient failed: %v", err)
	}
	return client
}

func TestNewClientValidation(t *testing.T) {
	if _, err := NewClient(Config{CalendarID: "me"}); err == nil {
		t.Error("expected error for missing credentials file")
	}
	if _, err := NewClient(Config{CredentialsFile: "/nonexistent"}); err == nil {
		t.Error("expected error for missing calendar ID")
	}
}

func TestEventsOn(t *testing.T) {
	client := newTestClient(t)

	day := time.Date(2026, 3, 14, 8, 0, 0, 0, time.UTC)
	events, err := client.EventsOn(context.Background(), day)
	if err != nil {
		t.Fatalf("EventsOn failed: %v", err)
	}
	if len(events) != 2 {
		t.Fatalf("expected 2 events, got %d", len(events))
	}
	if events[0].Title != "Team Standup" || events[0].Start.Hour() != 10 {
		t.Errorf("unexpected event: %+v", events[0])
	}
}

func TestCreateEvent(t *testing.T) {
	client := newTestClient(t)

	start := time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)
	id, err := client.CreateEvent(context.Background(), "Write report", start, start.Add(time.Hour))
	if err != nil {
		t.Fatalf("CreateEvent failed: %v", err)
	}
	if id != "created-1" {
		t.Errorf("unexpected event id %q", id)
	}
}

func TestFormatEventsContext(t *testing.T) {
	start := time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC)
	events := []Event{
		{Title: "Team Standup", Start: start, End: start.Add(time.Hour), Status: "confirmed"},
		{Title: "Cancelled thing", Start: start, End: start.Add(time.Hour), Status: "cancelled"},
		{Title: "Offsite", AllDay: true, Status: "confirmed"},
	}

	context := FormatEventsContext(events)
	lines := strings.Split(context, "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %q", context)
	}
	if lines[0] != "Team Standup 10:00 AM - 11:00 AM" {
		t.Errorf("unexpected line: %q", lines[0])
	}
	if lines[1] != "Offsite (all day)" {
		t.Errorf("unexpected line: %q", lines[1])
	}

	if FormatEventsContext(nil) != "No fixed events." {
		t.Error("empty events should render placeholder")
	}
}

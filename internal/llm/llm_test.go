package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestExtractJSON(t *testing.T) {
	cases := []struct {
		name  string
		input string
		want  string
	}{
		{"bare array", `[{"a":1}]`, `[{"a":1}]`},
		{"fenced", "```json\n[{\"a\":1}]\n```", `[{"a":1}]`},
		{"fenced no lang", "```\n{\"a\":1}\n```", `{"a":1}`},
		{"prose wrapped array", "Here is the schedule:\n[{\"a\":1}]\nDone.", `[{"a":1}]`},
		{"prose wrapped object", "Result: {\"a\":1} as requested", `{"a":1}`},
		{"plain text", "no json here", "no json here"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := ExtractJSON(tc.input); got != tc.want {
				t.Errorf("ExtractJSON(%q) = %q, want %q", tc.input, got, tc.want)
			}
		})
	}
}

func TestGeminiGenerate(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req map[string]any
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("bad request body: %v", err)
		}
		if _, ok := req["contents"]; !ok {
			t.Error("request missing contents")
		}
		json.NewEncoder(w).Encode(map[string]any{
			"candidates": []map[string]any{
				{"content": map[string]any{"parts": []map[string]any{{"text": `[{"time":"9:00 AM - 10:00 AM","task":"Work"}]`}}}},
			},
		})
	}))
	defer srv.Close()

	client, err := NewGeminiClient(GeminiConfig{APIKey: "test-key", BaseURL: srv.URL})
	if err != nil {
		t.Fatalf("NewGeminiClient failed: %v", err)
	}

	out, err := client.Generate(context.Background(), "make a schedule")
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if out != `[{"time":"9:00 AM - 10:00 AM","task":"Work"}]` {
		t.Errorf("unexpected output: %s", out)
	}
}

func TestGeminiGenerateNoCandidates(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"candidates": []any{}})
	}))
	defer srv.Close()

	client, err := NewGeminiClient(GeminiConfig{APIKey: "test-key", BaseURL: srv.URL})
	if err != nil {
		t.Fatalf("NewGeminiClient failed: %v", err)
	}

	if _, err := client.Generate(context.Background(), "prompt"); err == nil {
		t.Error("expected error for empty candidates")
	}
}

func TestOllamaGenerate(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/generate" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		var req map[string]any
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		if req["format"] != "json" {
			t.Errorf("expected json format, got %v", req["format"])
		}
		json.NewEncoder(w).Encode(map[string]any{"response": "hello", "done": true})
	}))
	defer srv.Close()

	client := NewOllamaClient(srv.URL, "")
	out, err := client.Generate(context.Background(), "hi")
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if out != "hello" {
		t.Errorf("unexpected output %q", out)
	}
}

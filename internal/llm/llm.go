// Package llm abstracts the external text-generation collaborator. The
// planner only depends on the Generator interface, so the deterministic
// core is testable with a stub.
package llm

import (
	"context"
	"strings"
)

// Generator turns a prompt into generated text, or fails. Implementations
// never return partial output alongside an error.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// ExtractJSON strips a markdown code fence from around a JSON payload.
// Models sometimes wrap structured output in ```json fences despite
// instructions not to.
func ExtractJSON(s string) string {
	trimmed := strings.TrimSpace(s)

	if strings.HasPrefix(trimmed, "```") {
		// Drop the opening fence line ("```" or "```json")
		if idx := strings.Index(trimmed, "\n"); idx >= 0 {
			trimmed = trimmed[idx+1:]
		} else {
			trimmed = strings.TrimPrefix(trimmed, "```json")
			trimmed = strings.TrimPrefix(trimmed, "```")
		}
		if idx := strings.LastIndex(trimmed, "```"); idx >= 0 {
			trimmed = trimmed[:idx]
		}
		return strings.TrimSpace(trimmed)
	}

	if strings.HasPrefix(trimmed, "[") || strings.HasPrefix(trimmed, "{") {
		return trimmed
	}

	// Salvage a JSON value embedded in surrounding prose
	arrStart := strings.Index(trimmed, "[")
	objStart := strings.Index(trimmed, "{")
	if arrStart >= 0 && (objStart < 0 || arrStart < objStart) {
		if end := strings.LastIndex(trimmed, "]"); end > arrStart {
			return strings.TrimSpace(trimmed[arrStart : end+1])
		}
	}
	if objStart >= 0 {
		if end := strings.LastIndex(trimmed, "}"); end > objStart {
			return strings.TrimSpace(trimmed[objStart : end+1])
		}
	}
	return trimmed
}

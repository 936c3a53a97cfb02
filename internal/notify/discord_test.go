package notify

import (
	"strings"
	"testing"
	"unicode/utf8"
)

func TestNewDiscordNotifierValidation(t *testing.T) {
	if _, err := NewDiscordNotifier("", "chan"); err == nil {
		t.Error("expected error for missing token")
	}
	if _, err := NewDiscordNotifier("token", ""); err == nil {
		t.Error("expected error for missing channel ID")
	}
}

func TestTruncateMessage(t *testing.T) {
	short := "9:00 AM - 10:00 AM: Standup"
	if got := truncateMessage(short, discordMessageLimit); got != short {
		t.Errorf("short content altered: %q", got)
	}

	long := strings.Repeat("a", discordMessageLimit+50)
	got := truncateMessage(long, discordMessageLimit)
	if len(got) > discordMessageLimit {
		t.Errorf("truncated content is %d bytes, over limit", len(got))
	}
	if !strings.HasSuffix(got, "...") {
		t.Errorf("truncated content missing ellipsis: %q", got[len(got)-10:])
	}
}

func TestTruncateMessageRuneBoundary(t *testing.T) {
	// Lay out multibyte runes so a naive byte slice at limit-3 would
	// land mid-rune.
	long := strings.Repeat("日", discordMessageLimit)
	for limit := 10; limit < 20; limit++ {
		got := truncateMessage(long, limit)
		if len(got) > limit {
			t.Errorf("limit %d: got %d bytes", limit, len(got))
		}
		if !utf8.ValidString(got) {
			t.Errorf("limit %d: truncated content is not valid UTF-8: %q", limit, got)
		}
	}
}

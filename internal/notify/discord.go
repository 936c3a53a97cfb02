// Package notify delivers finalized schedules to the user over Discord.
package notify

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/bwmarrin/discordgo"

	"github.com/kks007-dev/synamic/internal/logging"
	"github.com/kks007-dev/synamic/internal/schedule"
)

const logSubsystem = "notify"

// discordMessageLimit is Discord's per-message content cap.
const discordMessageLimit = 2000

// DiscordNotifier posts day plans to a Discord channel.
type DiscordNotifier struct {
	session   *discordgo.Session
	channelID string
}

// NewDiscordNotifier opens a Discord session for the given bot token.
func NewDiscordNotifier(token, channelID string) (*DiscordNotifier, error) {
	if token == "" {
		return nil, fmt.Errorf("discord token required")
	}
	if channelID == "" {
		return nil, fmt.Errorf("discord channel ID required")
	}

	session, err := discordgo.New("Bot " + token)
	if err != nil {
		return nil, fmt.Errorf("create discord session: %w", err)
	}
	return &DiscordNotifier{session: session, channelID: channelID}, nil
}

// SendSchedule posts a schedule with an optional reasoning note.
func (n *DiscordNotifier) SendSchedule(header string, tasks []schedule.Task, reasoning string) error {
	var b strings.Builder
	b.WriteString("**" + header + "**\n```\n")
	b.WriteString(schedule.FormatText(tasks))
	b.WriteString("\n```")
	if reasoning != "" {
		b.WriteString("\n" + reasoning)
	}

	content := truncateMessage(b.String(), discordMessageLimit)

	if _, err := n.session.ChannelMessageSend(n.channelID, content); err != nil {
		return fmt.Errorf("send schedule: %w", err)
	}
	logging.Info(logSubsystem, "posted schedule (%d tasks) to channel %s", len(tasks), n.channelID)
	return nil
}

// truncateMessage cuts content to at most limit bytes, backing up to a
// rune boundary so multibyte labels never split mid-character.
func truncateMessage(content string, limit int) string {
	if len(content) <= limit {
		return content
	}
	cut := limit - 3
	for cut > 0 && !utf8.RuneStart(content[cut]) {
		cut--
	}
	return content[:cut] + "..."
}

// Close shuts down the underlying session.
func (n *DiscordNotifier) Close() error {
	return n.session.Close()
}

// Package config loads synamic configuration from an optional YAML file
// with environment variable overrides. Secrets (API keys, credential
// file paths) come from the environment only.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/kks007-dev/synamic/internal/clock"
)

// Config is the full synamic configuration.
type Config struct {
	Planner  PlannerConfig  `yaml:"planner"`
	LLM      LLMConfig      `yaml:"llm"`
	Calendar CalendarConfig `yaml:"calendar"`
	Discord  DiscordConfig  `yaml:"discord"`
}

// PlannerConfig holds schedule-generation policy.
type PlannerConfig struct {
	DefaultStart string `yaml:"default_start"` // default "9:00 AM"
	DefaultEnd   string `yaml:"default_end"`   // default "6:00 PM"
	DinnerAfter  string `yaml:"dinner_after"`  // dinner break only when the window ends after this
}

// LLMConfig selects and configures the text-generation backend.
type LLMConfig struct {
	Backend     string `yaml:"backend"` // "gemini" or "ollama"
	GeminiModel string `yaml:"gemini_model"`
	OllamaURL   string `yaml:"ollama_url"`
	OllamaModel string `yaml:"ollama_model"`
}

// CalendarConfig configures the Google Calendar integration.
type CalendarConfig struct {
	CredentialsFile string `yaml:"credentials_file"`
	CalendarID      string `yaml:"calendar_id"`
}

// DiscordConfig configures schedule delivery to Discord.
type DiscordConfig struct {
	ChannelID string `yaml:"channel_id"`
}

// Default returns the zero-config defaults.
func Default() *Config {
	return &Config{
		Planner: PlannerConfig{
			DefaultStart: "9:00 AM",
			DefaultEnd:   "6:00 PM",
			DinnerAfter:  "6:00 PM",
		},
		LLM: LLMConfig{
			Backend:   "gemini",
			OllamaURL: "http://localhost:11434",
		},
	}
}

// Load reads configuration from path (if it exists) on top of defaults,
// then applies environment overrides. A missing file is not an error.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err == nil {
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("parse config %s: %w", path, err)
			}
		} else if !os.IsNotExist(err) {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	cfg.applyEnv()

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() {
	if v := os.Getenv("SYNAMIC_LLM_BACKEND"); v != "" {
		c.LLM.Backend = v
	}
	if v := os.Getenv("GEMINI_MODEL"); v != "" {
		c.LLM.GeminiModel = v
	}
	if v := os.Getenv("OLLAMA_URL"); v != "" {
		c.LLM.OllamaURL = v
	}
	if v := os.Getenv("OLLAMA_MODEL"); v != "" {
		c.LLM.OllamaModel = v
	}
	if v := os.Getenv("GOOGLE_CALENDAR_CREDENTIALS_FILE"); v != "" {
		c.Calendar.CredentialsFile = v
	}
	if v := os.Getenv("GOOGLE_CALENDAR_ID"); v != "" {
		c.Calendar.CalendarID = v
	}
	if v := os.Getenv("DISCORD_CHANNEL_ID"); v != "" {
		c.Discord.ChannelID = v
	}
}

func (c *Config) validate() error {
	for field, value := range map[string]string{
		"planner.default_start": c.Planner.DefaultStart,
		"planner.default_end":   c.Planner.DefaultEnd,
		"planner.dinner_after":  c.Planner.DinnerAfter,
	} {
		if _, err := clock.Parse(value); err != nil {
			return fmt.Errorf("%s: %w", field, err)
		}
	}

	switch c.LLM.Backend {
	case "gemini", "ollama", "":
	default:
		return fmt.Errorf("llm.backend: unknown backend %q", c.LLM.Backend)
	}
	return nil
}

// Window returns the configured default planning window.
func (c *Config) Window() (start, end clock.TimeOfDay) {
	start, _ = clock.Parse(c.Planner.DefaultStart)
	end, _ = clock.Parse(c.Planner.DefaultEnd)
	return start, end
}

// DinnerAfter returns the dinner-break threshold time.
func (c *Config) DinnerAfter() clock.TimeOfDay {
	t, _ := clock.Parse(c.Planner.DinnerAfter)
	return t
}

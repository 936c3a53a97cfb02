// synamic derives, repairs, and syncs a time-blocked daily schedule
// from free-text goals.
//
// Subcommands:
//
//	assess  - turn goal text into an ordered priority list
//	plan    - generate a full-day schedule (or parse pre-authored text)
//	rework  - repair an in-progress schedule around a disruption
//	sync    - push a schedule to Google Calendar
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/kks007-dev/synamic/internal/calendar"
	"github.com/kks007-dev/synamic/internal/clock"
	"github.com/kks007-dev/synamic/internal/config"
	"github.com/kks007-dev/synamic/internal/llm"
	"github.com/kks007-dev/synamic/internal/notify"
	"github.com/kks007-dev/synamic/internal/planner"
	"github.com/kks007-dev/synamic/internal/schedule"
	"github.com/kks007-dev/synamic/internal/sync"
)

func main() {
	if err := godotenv.Load(); err == nil {
		log.Println("[config] Loaded .env file")
	}

	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	var err error
	switch os.Args[1] {
	case "assess":
		err = runAssess(os.Args[2:])
	case "plan":
		err = runPlan(os.Args[2:])
	case "rework":
		err = runRework(os.Args[2:])
	case "sync":
		err = runSync(os.Args[2:])
	default:
		usage()
		os.Exit(2)
	}

	if err != nil {
		log.Fatalf("Error: %v", err)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "usage: synamic <assess|plan|rework|sync> [flags]")
}

func loadConfig(path string) *config.Config {
	cfg, err := config.Load(path)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	return cfg
}

// buildGenerator wires the configured text-generation backend. Returns
// nil (fallback-only mode) when the backend has no credentials.
func buildGenerator(cfg *config.Config) llm.Generator {
	switch cfg.LLM.Backend {
	case "ollama":
		return llm.NewOllamaClient(cfg.LLM.OllamaURL, cfg.LLM.OllamaModel)
	default:
		apiKey := os.Getenv("GEMINI_API_KEY")
		if apiKey == "" {
			log.Println("[config] GEMINI_API_KEY not set, delegated generation unavailable")
			return nil
		}
		client, err := llm.NewGeminiClient(llm.GeminiConfig{
			APIKey: apiKey,
			Model:  cfg.LLM.GeminiModel,
		})
		if err != nil {
			log.Fatalf("Failed to create Gemini client: %v", err)
		}
		return client
	}
}

func buildPlanner(cfg *config.Config) *planner.Planner {
	start, end := cfg.Window()
	return planner.New(buildGenerator(cfg), planner.Config{
		DayStart:    start,
		DayEnd:      end,
		DinnerAfter: cfg.DinnerAfter(),
	})
}

// readScheduleText reads schedule text from a file, or stdin when path
// is "-".
func readScheduleText(path string) (string, error) {
	if path == "-" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", fmt.Errorf("read stdin: %w", err)
		}
		return string(data), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read schedule: %w", err)
	}
	return string(data), nil
}

func runAssess(args []string) error {
	fs := flag.NewFlagSet("assess", flag.ExitOnError)
	configPath := fs.String("config", "synamic.yaml", "Path to config file")
	goals := fs.String("goals", "", "Goals, tasks, and commitments for the day")
	userContext := fs.String("context", "", "Optional situational context")
	fs.Parse(args)

	cfg := loadConfig(*configPath)
	p := buildPlanner(cfg)

	result, err := p.AssessPriorities(context.Background(), planner.AssessRequest{
		Goals:   *goals,
		Context: *userContext,
	})
	if err != nil {
		return err
	}

	fmt.Println("Priorities:")
	for i, item := range result.Priorities {
		hint := ""
		if item.TimeOfDay != "" {
			hint = fmt.Sprintf(" (%s)", item.TimeOfDay)
		}
		fmt.Printf("%d. %s%s\n", i+1, item.Text, hint)
	}
	fmt.Printf("\nReasoning: %s\n", result.Reasoning)
	return nil
}

func runPlan(args []string) error {
	fs := flag.NewFlagSet("plan", flag.ExitOnError)
	configPath := fs.String("config", "synamic.yaml", "Path to config file")
	priorities := fs.String("priorities", "", "Ordered priorities, separated by ';'")
	events := fs.String("calendar-events", "", "Fixed calendar events as free text")
	fromCalendar := fs.Bool("from-calendar", false, "Fetch today's fixed events from Google Calendar")
	learningGoal := fs.String("learning", "", "Optional learning goal")
	otherGoals := fs.String("other", "", "Other goals for the day")
	startText := fs.String("start", "", "Schedule start time (e.g. \"9:00 AM\")")
	endText := fs.String("end", "", "Schedule end time (e.g. \"6:00 PM\")")
	scheduleFile := fs.String("schedule", "", "Pre-authored schedule file to parse instead of generating (\"-\" for stdin)")
	announce := fs.Bool("notify", false, "Post the plan to Discord")
	fs.Parse(args)

	cfg := loadConfig(*configPath)
	p := buildPlanner(cfg)

	req := planner.GenerateRequest{
		CalendarEvents: *events,
		LearningGoal:   *learningGoal,
		OtherGoals:     *otherGoals,
	}

	if *scheduleFile != "" {
		text, err := readScheduleText(*scheduleFile)
		if err != nil {
			return err
		}
		req.Schedule = text
	} else {
		for _, priority := range strings.Split(*priorities, ";") {
			if trimmed := strings.TrimSpace(priority); trimmed != "" {
				req.Priorities = append(req.Priorities, trimmed)
			}
		}
	}

	if *fromCalendar {
		client, err := calendarClient(cfg)
		if err != nil {
			return err
		}
		fixed, err := client.EventsOn(context.Background(), time.Now())
		if err != nil {
			return fmt.Errorf("fetch calendar events: %w", err)
		}
		req.CalendarEvents = calendar.FormatEventsContext(fixed)
	}

	if *startText != "" {
		start, err := clock.Parse(*startText)
		if err != nil {
			return fmt.Errorf("invalid -start: %w", err)
		}
		req.Start = &start
	}
	if *endText != "" {
		end, err := clock.Parse(*endText)
		if err != nil {
			return fmt.Errorf("invalid -end: %w", err)
		}
		req.End = &end
	}

	result, err := p.GenerateSchedule(context.Background(), req)
	if err != nil {
		return err
	}

	fmt.Println(schedule.FormatText(result.Tasks))

	if *announce {
		notifier, err := discordNotifier(cfg)
		if err != nil {
			return err
		}
		defer notifier.Close()
		return notifier.SendSchedule("Today's plan", result.Tasks, "")
	}
	return nil
}

func runRework(args []string) error {
	fs := flag.NewFlagSet("rework", flag.ExitOnError)
	configPath := fs.String("config", "synamic.yaml", "Path to config file")
	scheduleFile := fs.String("schedule", "-", "Current schedule file (\"-\" for stdin)")
	completed := fs.String("completed", "", "Comma-separated labels of completed tasks")
	remaining := fs.String("remaining", "the rest of the day", "Time remaining in the day")
	constraints := fs.String("constraints", "", "The new constraint or disruption (required)")
	goals := fs.String("goals", "", "Overall goals for the day")
	nowText := fs.String("now", "", "Current time override (e.g. \"1:00 PM\"), defaults to wall clock")
	announce := fs.Bool("notify", false, "Post the revised plan to Discord")
	fs.Parse(args)

	cfg := loadConfig(*configPath)
	p := buildPlanner(cfg)

	text, err := readScheduleText(*scheduleFile)
	if err != nil {
		return err
	}

	// The planner takes "now" as an explicit input; the wall clock is
	// only consulted here at the edge.
	now := clock.TimeOfDay{Hour: time.Now().Hour(), Minute: time.Now().Minute()}
	if *nowText != "" {
		now, err = clock.Parse(*nowText)
		if err != nil {
			return fmt.Errorf("invalid -now: %w", err)
		}
	}

	var completedTasks []string
	for _, label := range strings.Split(*completed, ",") {
		if trimmed := strings.TrimSpace(label); trimmed != "" {
			completedTasks = append(completedTasks, trimmed)
		}
	}

	result, err := p.ReworkSchedule(context.Background(), planner.ReworkRequest{
		Schedule:       text,
		CompletedTasks: completedTasks,
		RemainingTime:  *remaining,
		NewConstraints: *constraints,
		Goals:          *goals,
		Now:            now,
	})
	if err != nil {
		return err
	}

	fmt.Println(result.ScheduleText)
	fmt.Printf("\nReasoning: %s\n", result.Reasoning)

	if *announce {
		notifier, err := discordNotifier(cfg)
		if err != nil {
			return err
		}
		defer notifier.Close()
		return notifier.SendSchedule("Revised plan", result.Tasks, result.Reasoning)
	}
	return nil
}

func runSync(args []string) error {
	fs := flag.NewFlagSet("sync", flag.ExitOnError)
	configPath := fs.String("config", "synamic.yaml", "Path to config file")
	scheduleFile := fs.String("schedule", "-", "Schedule file to sync (\"-\" for stdin)")
	dateText := fs.String("date", "", "Day to sync onto (YYYY-MM-DD), defaults to today")
	fs.Parse(args)

	cfg := loadConfig(*configPath)

	text, err := readScheduleText(*scheduleFile)
	if err != nil {
		return err
	}
	tasks, err := schedule.Parse(text)
	if err != nil {
		return err
	}

	day := time.Now()
	if *dateText != "" {
		day, err = time.ParseInLocation("2006-01-02", *dateText, time.Local)
		if err != nil {
			return fmt.Errorf("invalid -date: %w", err)
		}
	}

	client, clientErr := calendarClient(cfg)
	linked := clientErr == nil

	var creator sync.EventCreator
	if linked {
		creator = client
	}
	syncer := sync.New(creator)

	result, err := syncer.Sync(context.Background(), sync.Request{
		Tasks:          tasks,
		Day:            day,
		Location:       time.Local,
		ProviderLinked: linked,
	})
	if err != nil {
		return err
	}

	for _, event := range result.Synced {
		fmt.Printf("synced: %s (%s)\n", event.Title, event.EventID)
	}
	for _, message := range result.Errors {
		fmt.Printf("error: %s\n", message)
	}
	if result.Partial() {
		fmt.Println("Some events failed; fix and retry just those.")
	}
	return nil
}

func calendarClient(cfg *config.Config) (*calendar.Client, error) {
	return calendar.NewClient(calendar.Config{
		CredentialsFile: cfg.Calendar.CredentialsFile,
		CalendarID:      cfg.Calendar.CalendarID,
	})
}

func discordNotifier(cfg *config.Config) (*notify.DiscordNotifier, error) {
	return notify.NewDiscordNotifier(os.Getenv("DISCORD_TOKEN"), cfg.Discord.ChannelID)
}

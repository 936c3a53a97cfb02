// synamic-mcp exposes the schedule engine over MCP stdio, so an agent
// client can assess priorities, generate and rework schedules, and
// sync them to the calendar as tools.
package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/kks007-dev/synamic/internal/calendar"
	"github.com/kks007-dev/synamic/internal/clock"
	"github.com/kks007-dev/synamic/internal/config"
	"github.com/kks007-dev/synamic/internal/llm"
	"github.com/kks007-dev/synamic/internal/planner"
	"github.com/kks007-dev/synamic/internal/schedule"
	"github.com/kks007-dev/synamic/internal/sync"
)

func main() {
	_ = godotenv.Load()

	s := server.NewMCPServer(
		"synamic-mcp",
		"1.0.0",
		server.WithToolCapabilities(true),
	)

	s.AddTool(assessTool(), handleAssess)
	s.AddTool(generateTool(), handleGenerate)
	s.AddTool(reworkTool(), handleRework)
	s.AddTool(syncTool(), handleSync)

	if err := server.ServeStdio(s); err != nil {
		fmt.Fprintf(os.Stderr, "Server error: %v\n", err)
		os.Exit(1)
	}
}

func loadPlanner() (*planner.Planner, error) {
	cfg, err := config.Load(os.Getenv("SYNAMIC_CONFIG"))
	if err != nil {
		return nil, err
	}

	var gen llm.Generator
	switch cfg.LLM.Backend {
	case "ollama":
		gen = llm.NewOllamaClient(cfg.LLM.OllamaURL, cfg.LLM.OllamaModel)
	default:
		if apiKey := os.Getenv("GEMINI_API_KEY"); apiKey != "" {
			gen, err = llm.NewGeminiClient(llm.GeminiConfig{APIKey: apiKey, Model: cfg.LLM.GeminiModel})
			if err != nil {
				return nil, err
			}
		}
	}

	start, end := cfg.Window()
	return planner.New(gen, planner.Config{
		DayStart:    start,
		DayEnd:      end,
		DinnerAfter: cfg.DinnerAfter(),
	}), nil
}

func assessTool() mcp.Tool {
	return mcp.NewTool("assess_priority",
		mcp.WithDescription("Assess free-text goals into an ordered priority list with time-of-day hints. Input must describe the day's goals, tasks, and commitments."),
		mcp.WithString("goals",
			mcp.Required(),
			mcp.Description("The goals, tasks, and commitments for the day"),
		),
		mcp.WithString("context",
			mcp.Description("Optional situational context (energy level, location, constraints)"),
		),
	)
}

func handleAssess(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, _ := req.Params.Arguments.(map[string]any)
	goals, _ := args["goals"].(string)
	userContext, _ := args["context"].(string)

	p, err := loadPlanner()
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to load config: %v", err)), nil
	}

	result, err := p.AssessPriorities(ctx, planner.AssessRequest{Goals: goals, Context: userContext})
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var b strings.Builder
	for i, item := range result.Priorities {
		fmt.Fprintf(&b, "%d. %s", i+1, item.Text)
		if item.TimeOfDay != "" {
			fmt.Fprintf(&b, " (%s)", item.TimeOfDay)
		}
		b.WriteString("\n")
	}
	fmt.Fprintf(&b, "\nReasoning: %s\n", result.Reasoning)
	return mcp.NewToolResultText(b.String()), nil
}

func generateTool() mcp.Tool {
	return mcp.NewTool("generate_schedule",
		mcp.WithDescription("Generate a time-blocked daily schedule from ordered priorities, or parse a pre-authored schedule text verbatim when 'schedule' is given."),
		mcp.WithString("priorities",
			mcp.Description("Ordered priorities, one per line (required unless 'schedule' is given)"),
		),
		mcp.WithString("schedule",
			mcp.Description("Pre-authored schedule text to parse verbatim instead of generating"),
		),
		mcp.WithString("calendar_events",
			mcp.Description("Fixed calendar events as free text"),
		),
		mcp.WithString("learning_goal",
			mcp.Description("Optional learning goal to weave in"),
		),
		mcp.WithString("other_goals",
			mcp.Description("Other goals for the day"),
		),
		mcp.WithString("start",
			mcp.Description("Schedule start time, e.g. \"9:00 AM\""),
		),
		mcp.WithString("end",
			mcp.Description("Schedule end time, e.g. \"6:00 PM\""),
		),
	)
}

func handleGenerate(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, _ := req.Params.Arguments.(map[string]any)

	p, err := loadPlanner()
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to load config: %v", err)), nil
	}

	genReq := planner.GenerateRequest{}
	if text, _ := args["schedule"].(string); text != "" {
		genReq.Schedule = text
	} else if priorities, _ := args["priorities"].(string); priorities != "" {
		for _, line := range strings.Split(priorities, "\n") {
			if trimmed := strings.TrimSpace(line); trimmed != "" {
				genReq.Priorities = append(genReq.Priorities, trimmed)
			}
		}
	}
	genReq.CalendarEvents, _ = args["calendar_events"].(string)
	genReq.LearningGoal, _ = args["learning_goal"].(string)
	genReq.OtherGoals, _ = args["other_goals"].(string)

	if text, _ := args["start"].(string); text != "" {
		start, err := clock.Parse(text)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("invalid start: %v", err)), nil
		}
		genReq.Start = &start
	}
	if text, _ := args["end"].(string); text != "" {
		end, err := clock.Parse(text)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("invalid end: %v", err)), nil
		}
		genReq.End = &end
	}

	result, err := p.GenerateSchedule(ctx, genReq)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(schedule.FormatText(result.Tasks)), nil
}

func reworkTool() mcp.Tool {
	return mcp.NewTool("rework_schedule",
		mcp.WithDescription("Rework an in-progress schedule around a disruption. Tasks already in the past are preserved verbatim; the remainder of the day is replanned."),
		mcp.WithString("schedule",
			mcp.Required(),
			mcp.Description("The current schedule, as schedule text or JSON"),
		),
		mcp.WithString("new_constraints",
			mcp.Required(),
			mcp.Description("The disruption or new constraint to plan around"),
		),
		mcp.WithString("goals",
			mcp.Required(),
			mcp.Description("The overall goals for the day"),
		),
		mcp.WithString("remaining_time",
			mcp.Required(),
			mcp.Description("How much usable time remains, e.g. \"4 hours\""),
		),
		mcp.WithString("completed_tasks",
			mcp.Description("Comma-separated labels of tasks already completed"),
		),
		mcp.WithString("now",
			mcp.Description("Current time, e.g. \"1:00 PM\" (defaults to wall clock)"),
		),
	)
}

func handleRework(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, _ := req.Params.Arguments.(map[string]any)

	p, err := loadPlanner()
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to load config: %v", err)), nil
	}

	now := clock.TimeOfDay{Hour: time.Now().Hour(), Minute: time.Now().Minute()}
	if text, _ := args["now"].(string); text != "" {
		now, err = clock.Parse(text)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("invalid now: %v", err)), nil
		}
	}

	var completed []string
	if text, _ := args["completed_tasks"].(string); text != "" {
		for _, label := range strings.Split(text, ",") {
			if trimmed := strings.TrimSpace(label); trimmed != "" {
				completed = append(completed, trimmed)
			}
		}
	}

	scheduleText, _ := args["schedule"].(string)
	constraints, _ := args["new_constraints"].(string)
	goals, _ := args["goals"].(string)
	remaining, _ := args["remaining_time"].(string)

	result, err := p.ReworkSchedule(ctx, planner.ReworkRequest{
		Schedule:       scheduleText,
		CompletedTasks: completed,
		RemainingTime:  remaining,
		NewConstraints: constraints,
		Goals:          goals,
		Now:            now,
	})
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("%s\n\nReasoning: %s", result.ScheduleText, result.Reasoning)), nil
}

func syncTool() mcp.Tool {
	return mcp.NewTool("sync_calendar",
		mcp.WithDescription("Create Google Calendar events for each timed entry in a schedule. Untimed entries are skipped with a per-entry error; a failure on one entry does not stop the rest."),
		mcp.WithString("schedule",
			mcp.Required(),
			mcp.Description("The schedule to sync, as schedule text or JSON"),
		),
		mcp.WithString("date",
			mcp.Description("Day to sync onto (YYYY-MM-DD), defaults to today"),
		),
	)
}

func handleSync(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, _ := req.Params.Arguments.(map[string]any)

	text, _ := args["schedule"].(string)
	tasks, err := schedule.Parse(text)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	day := time.Now()
	if dateText, _ := args["date"].(string); dateText != "" {
		day, err = time.ParseInLocation("2006-01-02", dateText, time.Local)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("invalid date: %v", err)), nil
		}
	}

	cfg, err := config.Load(os.Getenv("SYNAMIC_CONFIG"))
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to load config: %v", err)), nil
	}

	client, clientErr := calendar.NewClient(calendar.Config{
		CredentialsFile: cfg.Calendar.CredentialsFile,
		CalendarID:      cfg.Calendar.CalendarID,
	})
	linked := clientErr == nil

	var creator sync.EventCreator
	if linked {
		creator = client
	}

	result, err := sync.New(creator).Sync(ctx, sync.Request{
		Tasks:          tasks,
		Day:            day,
		Location:       time.Local,
		ProviderLinked: linked,
	})
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var b strings.Builder
	for _, event := range result.Synced {
		fmt.Fprintf(&b, "synced: %s (%s)\n", event.Title, event.EventID)
	}
	for _, message := range result.Errors {
		fmt.Fprintf(&b, "error: %s\n", message)
	}
	if len(result.Synced) == 0 && len(result.Errors) == 0 {
		b.WriteString("Nothing to sync.\n")
	}
	return mcp.NewToolResultText(b.String()), nil
}

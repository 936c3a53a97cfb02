package planner

// Prompt templates for the delegated planning operations. Each one pins
// the output to a machine-parseable JSON shape so responses can be
// validated locally before anything reaches the user.

const assessPromptTemplate = `You are an assistant that helps users identify their top priorities for the day.

Based on the user's goals, tasks, commitments, and any other context, determine their top priorities. Priorities should be specific and actionable.

Goals/Tasks/Commitments: %s
Context: %s

Respond with ONLY a JSON object of this shape:
{"priorities": [{"text": "...", "timeOfDay": "..."}], "reasoning": "..."}

"timeOfDay" is a short suggestion for when the item fits best, such as "Morning - High Focus", "Afternoon", or "Evening - Wind Down". "reasoning" explains why these items were chosen as top priorities.`

const generatePromptTemplate = `You are an assistant that generates an optimized daily schedule.

Your output MUST be a valid JSON array of objects. Each object represents a scheduled task with properties "time" (e.g. "1:00 PM - 2:30 PM"), "task" (the activity), and "duration" (e.g. "1.5 hours"). Do not output anything other than the JSON array.

ONLY include events and tasks explicitly provided in the input fields below (priorities, calendar events, learning goal, other goals). Do NOT invent extra events or tasks.%s

The schedule runs from %s to %s. It must cover the whole window with no gaps other than the required breaks, be realistic about transitions, and must not deviate from the user's stated priorities.

Priorities (in order):
%s
Calendar Events: %s
Learning Goal: %s
Other Goals: %s`

// breakInstructions fragments appended to the generate prompt depending
// on the window.
const (
	lunchInstruction  = " The ONLY permitted addition is exactly one 1-hour lunch break positioned near noon."
	dinnerInstruction = " You must also include a dinner break since the schedule extends into the evening."
)

const reworkPromptTemplate = `You are an assistant that helps users dynamically adjust their daily schedule.

The current time is %s. Analyze the provided schedule and decide which tasks are already in the past relative to that time. Keep every past task exactly as it appears - same time, same wording. Reschedule only the remaining tasks to accommodate the new constraints, preserving the user's goals when deciding what to compress or drop.

Your output must be a complete schedule for the WHOLE day, including the untouched past portion, not just the remainder.

Original/Edited Schedule:
%s

Tasks already completed: %s

Time remaining in the day: %s

New Constraints/Events:
%s

User's Overall Goals:
%s

Respond with ONLY a JSON object of this shape:
{"schedule": [{"time": "9:00 AM - 10:00 AM", "task": "...", "duration": "1 hour"}], "reasoning": "..."}

"reasoning" explains the adjustments you made.`

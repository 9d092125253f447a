package assistant

import (
	"bytes"
	"encoding/json"
	"strings"
	"text/template"

	"github.com/campusflow/campusflow/core/schedule"
)

var (
	intentTmpl = template.Must(template.New("intent").Parse(`You route messages for a student planner.
Answer with JSON only, no prose: {"intent":"chat"} or {"intent":"schedule"}.
- "chat": greetings, questions, advice, small talk.
- "schedule": adding, moving, removing or rescheduling tasks in the weekly plan.

Conversation:
{{.History}}
USER: {{.Message}}`))

	scheduleTmpl = template.Must(template.New("schedule").Parse(`You maintain a student's weekly schedule.
Apply the user's request to the current schedule and return the FULL updated schedule
as JSON only, no prose, with the same shape:
{"days":{"Monday":[{"task":"...","start":"HH:MM","end":"HH:MM","priority":"high|medium|low"}], ...}}
Rules:
- use 24 hour HH:MM times, every task ends after it starts
- every task MUST have a priority
- studying, exams and deadlines are high; practice and gym are medium; leisure and rest are low
- keep the days Monday to Sunday, and every task the user did not ask to change

Current schedule:
{{.Schedule}}

Conversation:
{{.History}}
USER: {{.Message}}`))

	chatTmpl = template.Must(template.New("chat").Parse(`You are a friendly study assistant for a student.
Answer briefly and helpfully. Do not output JSON.

The student's current schedule:
{{.Schedule}}

Conversation:
{{.History}}
USER: {{.Message}}
ASSISTANT:`))
)

type promptData struct {
	History  string
	Message  string
	Schedule string
}

func newPromptData(req Request, ws schedule.WeekSchedule) (promptData, error) {
	var history strings.Builder
	for _, m := range req.Messages {
		history.WriteString(strings.ToUpper(m.Role))
		history.WriteString(": ")
		history.WriteString(m.Content)
		history.WriteString("\n")
	}
	days, err := json.Marshal(struct {
		Days schedule.Days `json:"days"`
	}{ws.Days})
	if err != nil {
		return promptData{}, err
	}
	return promptData{
		History:  strings.TrimSpace(history.String()),
		Message:  req.Message,
		Schedule: string(days),
	}, nil
}

func render(tmpl *template.Template, data promptData) (string, error) {
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}

package assistant

import (
	"encoding/json"
	"regexp"
	"strings"

	"github.com/pkg/errors"

	"github.com/campusflow/campusflow/core/schedule"
)

var fenceRegex = regexp.MustCompile("```(?:json|JSON)?")

// stripFences removes markdown code fences the model tends to wrap JSON in.
func stripFences(text string) string {
	return strings.TrimSpace(fenceRegex.ReplaceAllString(text, ""))
}

func parseIntent(text string) (Intent, error) {
	var data struct {
		Intent Intent `json:"intent"`
	}
	if err := json.Unmarshal([]byte(stripFences(text)), &data); err != nil {
		return "", errors.Wrapf(ErrUpstreamParse, "decoding intent: %v", err)
	}
	switch data.Intent {
	case IntentChat, IntentSchedule:
		return data.Intent, nil
	}
	return "", errors.Wrapf(ErrUpstreamParse, "unknown intent %q", data.Intent)
}

// parseSchedule decodes a proposed schedule and checks its shape.
// Times are checked too, so the reconciliation never sees a malformed block.
func parseSchedule(text string) (schedule.WeekSchedule, error) {
	var ws schedule.WeekSchedule
	dec := json.NewDecoder(strings.NewReader(stripFences(text)))
	if err := dec.Decode(&ws); err != nil {
		return ws, errors.Wrapf(ErrUpstreamParse, "decoding schedule: %v", err)
	}
	if ws.Days == nil {
		return ws, errors.Wrap(ErrUpstreamParse, "schedule has no days")
	}
	for day, blocks := range ws.Days {
		if !schedule.IsWeekday(day) {
			return ws, errors.Wrapf(ErrUpstreamParse, "unknown day %q", day)
		}
		for _, b := range blocks {
			if strings.TrimSpace(b.Task) == "" {
				return ws, errors.Wrapf(ErrUpstreamParse, "untitled task on %s", day)
			}
		}
	}
	if err := schedule.CheckWeek(ws); err != nil {
		return ws, errors.Wrapf(ErrUpstreamParse, "checking week: %v", err)
	}
	if err := schedule.CheckTimes(ws); err != nil {
		return ws, err
	}
	return ws, nil
}

package assistant

import (
	"context"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"

	"github.com/campusflow/campusflow/core/schedule"
)

// ScheduleStore loads and saves the schedule a user is talking about.
type ScheduleStore interface {
	Get(ctx context.Context, userID string) (schedule.WeekSchedule, error)
	Apply(ctx context.Context, current, accepted schedule.WeekSchedule) (schedule.WeekSchedule, error)
}

type Service struct {
	oracle    Oracle
	schedules ScheduleStore
	validate  *validator.Validate
}

func NewService(oracle Oracle, schedules ScheduleStore, validate *validator.Validate) *Service {
	return &Service{oracle: oracle, schedules: schedules, validate: validate}
}

// Handle answers one user message: a chat reply, the saved new schedule,
// or a request to confirm a schedule that demotes high-priority tasks.
func (svc *Service) Handle(ctx context.Context, userID string, req Request) (Reply, error) {
	req.Message = strings.TrimSpace(req.Message)
	if err := svc.validate.Struct(req); err != nil {
		return Reply{}, err
	}

	current, err := svc.schedules.Get(ctx, userID)
	if err != nil {
		return Reply{}, errors.Wrap(err, "loading schedule")
	}
	data, err := newPromptData(req, current)
	if err != nil {
		return Reply{}, errors.Wrap(err, "preparing prompt")
	}

	intent, err := svc.classify(ctx, data)
	if err != nil {
		return Reply{}, err
	}
	if intent == IntentChat {
		return svc.chat(ctx, data)
	}
	return svc.reschedule(ctx, current, data)
}

// Confirm saves a schedule the user accepted despite its conflicts.
func (svc *Service) Confirm(ctx context.Context, userID string, data Confirmation) (Reply, error) {
	if data.PendingSchedule != nil {
		if err := schedule.CheckWeek(*data.PendingSchedule); err != nil {
			return Reply{}, err
		}
		if err := schedule.CheckTimes(*data.PendingSchedule); err != nil {
			return Reply{}, err
		}
		if err := schedule.Validate(*data.PendingSchedule); err != nil {
			return Reply{}, err
		}
	}
	if err := svc.validate.Struct(data); err != nil {
		return Reply{}, err
	}

	current, err := svc.schedules.Get(ctx, userID)
	if err != nil {
		return Reply{}, errors.Wrap(err, "loading schedule")
	}
	saved, err := svc.schedules.Apply(ctx, current, *data.PendingSchedule)
	if err != nil {
		return Reply{}, err
	}
	return Reply{Type: ReplySchedule, Reply: saved}, nil
}

func (svc *Service) generate(ctx context.Context, step string, prompt string) (string, error) {
	text, err := svc.oracle.Generate(ctx, prompt)
	if err != nil {
		return "", errors.Wrapf(ErrUpstreamUnavailable, "%s: %v", step, err)
	}
	return text, nil
}

func (svc *Service) classify(ctx context.Context, data promptData) (Intent, error) {
	prompt, err := render(intentTmpl, data)
	if err != nil {
		return "", errors.Wrap(err, "rendering intent prompt")
	}
	text, err := svc.generate(ctx, "classifying intent", prompt)
	if err != nil {
		return "", err
	}
	return parseIntent(text)
}

func (svc *Service) chat(ctx context.Context, data promptData) (Reply, error) {
	prompt, err := render(chatTmpl, data)
	if err != nil {
		return Reply{}, errors.Wrap(err, "rendering chat prompt")
	}
	text, err := svc.generate(ctx, "chatting", prompt)
	if err != nil {
		return Reply{}, err
	}
	return Reply{Type: ReplyChat, Reply: strings.TrimSpace(text)}, nil
}

func (svc *Service) reschedule(ctx context.Context, current schedule.WeekSchedule, data promptData) (Reply, error) {
	prompt, err := render(scheduleTmpl, data)
	if err != nil {
		return Reply{}, errors.Wrap(err, "rendering schedule prompt")
	}
	text, err := svc.generate(ctx, "generating schedule", prompt)
	if err != nil {
		return Reply{}, err
	}
	proposed, err := parseSchedule(text)
	if err != nil {
		return Reply{}, err
	}
	proposed = schedule.Adopt(current, proposed)

	res, err := schedule.Reconcile(current, proposed)
	if err != nil {
		return Reply{}, err
	}
	if !res.Accepted() {
		changes, err := schedule.Changes(current, res.Schedule)
		if err != nil {
			return Reply{}, errors.Wrap(err, "summarizing changes")
		}
		return Reply{
			Type:            ReplyConfirmation,
			Message:         ConfirmationMessage,
			PendingSchedule: &res.Schedule,
			Conflicts:       res.Conflicts,
			Changes:         changes,
		}, nil
	}

	saved, err := svc.schedules.Apply(ctx, current, res.Schedule)
	if err != nil {
		return Reply{}, err
	}
	return Reply{Type: ReplySchedule, Reply: saved}, nil
}

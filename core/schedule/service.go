package schedule

import (
	"context"
	"time"

	"github.com/pkg/errors"

	"github.com/campusflow/campusflow/core"
)

type (
	Repository interface {
		GetSchedule(ctx context.Context, userID string) (WeekSchedule, error)
		// SaveSchedule inserts or replaces the user's schedule.
		SaveSchedule(ctx context.Context, ws WeekSchedule) (WeekSchedule, error)
	}

	Service struct {
		repo Repository
		loc  *time.Location
	}
)

func NewService(repo Repository, conf *core.Config) *Service {
	return &Service{repo: repo, loc: conf.Location()}
}

// Get returns the user's schedule, creating an empty one on first access.
func (svc *Service) Get(ctx context.Context, userID string) (WeekSchedule, error) {
	ws, err := svc.repo.GetSchedule(ctx, userID)
	if err == nil {
		return ws, nil
	}
	if errors.Cause(err) != ErrNotFound {
		return WeekSchedule{}, errors.Wrap(err, "getting schedule")
	}
	ws, err = svc.repo.SaveSchedule(ctx, NewWeekSchedule(userID, core.NowFunc(), svc.loc))
	return ws, errors.Wrap(err, "creating schedule")
}

// Apply persists accepted as the new version of current.
func (svc *Service) Apply(ctx context.Context, current, accepted WeekSchedule) (WeekSchedule, error) {
	ws := Adopt(current, accepted)
	ws.Meta.Version = current.Meta.Version + 1
	ws.Meta.UpdatedAt = core.NowFunc()
	saved, err := svc.repo.SaveSchedule(ctx, ws)
	return saved, errors.Wrap(err, "saving schedule")
}

// Adopt returns proposed carrying the identity of current: owner and creation time always,
// week start and timezone unless proposed sets them.
func Adopt(current, proposed WeekSchedule) WeekSchedule {
	ws := proposed
	ws.UserID = current.UserID
	ws.Meta = current.Meta
	if ws.WeekStart == "" {
		ws.WeekStart = current.WeekStart
	}
	if ws.Timezone == "" {
		ws.Timezone = current.Timezone
	}
	if ws.Days == nil {
		ws.Days = make(Days)
	}
	return ws
}

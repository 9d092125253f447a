package attendance

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/campusflow/campusflow/core"
)

var (
	// errors
	ErrNotFound = errors.New("course not found")
	ErrNoClass  = errors.New("no class scheduled on this day")
)

type (
	Repository interface {
		CreateCourse(ctx context.Context, c Course) (Course, error)
		QueryCourses(ctx context.Context, userID string) ([]Course, error)
		GetCourse(ctx context.Context, userID, id string) (Course, error)
		DeleteCourse(ctx context.Context, userID, id string) error
		// MarkAttendance adds hours (negative to remove) to both attended and total classes
		// and records marked for the date, atomically. It is a no-op returning the stored
		// course when the date is already logged as marked.
		MarkAttendance(ctx context.Context, userID, id, date string, hours int, marked bool) (Course, error)
	}

	Service struct {
		repo Repository
		loc  *time.Location
	}
)

func NewService(repo Repository, conf *core.Config) *Service {
	return &Service{repo: repo, loc: conf.Location()}
}

func (svc *Service) Create(ctx context.Context, userID string, nc NewCourse) (Course, error) {
	nc.Clean()
	schedule := make(map[string]int, len(ClassDays))
	for _, day := range ClassDays {
		schedule[day] = nc.Schedule[day]
	}
	return svc.repo.CreateCourse(ctx, Course{
		ID:            uuid.New().String(),
		UserID:        userID,
		Name:          nc.Name,
		Schedule:      schedule,
		MinAttendance: nc.MinAttendance,
		AttendanceLog: make(map[string]bool),
		CreatedAt:     core.NowFunc(),
	})
}

func (svc *Service) List(ctx context.Context, userID string) ([]Course, error) {
	return svc.repo.QueryCourses(ctx, userID)
}

func (svc *Service) Get(ctx context.Context, userID, id string) (Course, error) {
	if _, err := uuid.Parse(id); err != nil {
		return Course{}, ErrNotFound
	}
	return svc.repo.GetCourse(ctx, userID, id)
}

func (svc *Service) Delete(ctx context.Context, userID, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return ErrNotFound
	}
	return svc.repo.DeleteCourse(ctx, userID, id)
}

// Today returns the current date in the configured timezone.
func (svc *Service) Today() time.Time {
	return core.NowFunc().In(svc.loc)
}

// ToggleAttendance marks the course attended on date, or unmarks it when already marked.
// Marking adds the day's class hours to both attended and total hours, unmarking removes them.
func (svc *Service) ToggleAttendance(ctx context.Context, userID, id string, date time.Time) (Course, error) {
	c, err := svc.Get(ctx, userID, id)
	if err != nil {
		return Course{}, err
	}
	hours := c.HoursOn(date)
	if hours == 0 {
		return Course{}, core.NewFieldError("date", ErrNoClass)
	}
	if c.Marked(date) {
		hours = -hours
	}
	return svc.repo.MarkAttendance(ctx, userID, id, date.Format(core.DateLayout), hours, hours > 0)
}

// AtRisk returns the user's courses below their minimum attendance.
func (svc *Service) AtRisk(ctx context.Context, userID string) ([]Course, error) {
	courses, err := svc.repo.QueryCourses(ctx, userID)
	if err != nil {
		return nil, err
	}
	var risky []Course
	for _, c := range courses {
		if c.AtRisk() {
			risky = append(risky, c)
		}
	}
	return risky, nil
}

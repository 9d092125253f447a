package dummydb

import (
	"context"

	"github.com/campusflow/campusflow/core/schedule"
)

type scheduleRepository struct {
	db *scheduleTable
}

var _ schedule.Repository = (*scheduleRepository)(nil) // interface compliance check

func NewScheduleRepository(db *DB) schedule.Repository {
	return &scheduleRepository{db: db.schedule}
}

func (repo *scheduleRepository) GetSchedule(_ context.Context, userID string) (schedule.WeekSchedule, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	if ws, ok := repo.db.table[userID]; ok {
		return copySchedule(*ws), nil
	}
	return schedule.WeekSchedule{}, schedule.ErrNotFound
}

func (repo *scheduleRepository) SaveSchedule(_ context.Context, ws schedule.WeekSchedule) (schedule.WeekSchedule, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	saved := copySchedule(ws)
	repo.db.table[ws.UserID] = &saved
	return copySchedule(saved), nil
}

func copySchedule(ws schedule.WeekSchedule) schedule.WeekSchedule {
	days := make(schedule.Days, len(ws.Days))
	for day, blocks := range ws.Days {
		days[day] = append([]schedule.TimeBlock{}, blocks...)
	}
	ws.Days = days
	return ws
}

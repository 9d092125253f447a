package dummydb

import (
	"context"
	"sort"

	"github.com/campusflow/campusflow/core/attendance"
)

type courseRepository struct {
	db *courseTable
}

var _ attendance.Repository = (*courseRepository)(nil) // interface compliance check

func NewCourseRepository(db *DB) attendance.Repository {
	return &courseRepository{db: db.course}
}

func (repo *courseRepository) CreateCourse(_ context.Context, c attendance.Course) (attendance.Course, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	saved := copyCourse(c)
	repo.db.table[c.ID] = &saved
	return copyCourse(saved), nil
}

func (repo *courseRepository) QueryCourses(_ context.Context, userID string) ([]attendance.Course, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	courses := make([]attendance.Course, 0)
	for _, c := range repo.db.table {
		if c.UserID == userID {
			courses = append(courses, copyCourse(*c))
		}
	}
	sort.Slice(courses, func(i, j int) bool { return courses[i].CreatedAt.Before(courses[j].CreatedAt) })
	return courses, nil
}

func (repo *courseRepository) GetCourse(_ context.Context, userID, id string) (attendance.Course, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	if c, ok := repo.db.table[id]; ok && c.UserID == userID {
		return copyCourse(*c), nil
	}
	return attendance.Course{}, attendance.ErrNotFound
}

func (repo *courseRepository) DeleteCourse(_ context.Context, userID, id string) error {
	repo.db.Lock()
	defer repo.db.Unlock()

	if c, ok := repo.db.table[id]; ok && c.UserID == userID {
		delete(repo.db.table, id)
		return nil
	}
	return attendance.ErrNotFound
}

func (repo *courseRepository) MarkAttendance(_ context.Context, userID, id, date string, hours int, marked bool) (attendance.Course, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	c, ok := repo.db.table[id]
	if !ok || c.UserID != userID {
		return attendance.Course{}, attendance.ErrNotFound
	}
	if c.AttendanceLog[date] == marked {
		return copyCourse(*c), nil
	}
	c.AttendedClasses += hours
	c.TotalClasses += hours
	if c.AttendanceLog == nil {
		c.AttendanceLog = make(map[string]bool)
	}
	c.AttendanceLog[date] = marked
	return copyCourse(*c), nil
}

func copyCourse(c attendance.Course) attendance.Course {
	schedule := make(map[string]int, len(c.Schedule))
	for k, v := range c.Schedule {
		schedule[k] = v
	}
	log := make(map[string]bool, len(c.AttendanceLog))
	for k, v := range c.AttendanceLog {
		log[k] = v
	}
	c.Schedule = schedule
	c.AttendanceLog = log
	return c
}

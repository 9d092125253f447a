package dummydb

import (
	"sync"

	"github.com/campusflow/campusflow/core/attendance"
	"github.com/campusflow/campusflow/core/schedule"
	"github.com/campusflow/campusflow/core/user"
)

// DB is an in-memory store for tests and local runs without Postgres.
type (
	DB struct {
		user     *userTable
		schedule *scheduleTable
		course   *courseTable
	}

	userTable struct {
		sync.RWMutex
		table map[string]*user.User
	}

	scheduleTable struct {
		sync.RWMutex
		table map[string]*schedule.WeekSchedule // by user ID
	}

	courseTable struct {
		sync.RWMutex
		table map[string]*attendance.Course
	}
)

func Open() *DB {
	db := &DB{
		user:     &userTable{table: make(map[string]*user.User)},
		schedule: &scheduleTable{table: make(map[string]*schedule.WeekSchedule)},
		course:   &courseTable{table: make(map[string]*attendance.Course)},
	}
	return db
}

// Reset empties every table.
func (db *DB) Reset() {
	db.user.Lock()
	db.user.table = make(map[string]*user.User)
	db.user.Unlock()

	db.schedule.Lock()
	db.schedule.table = make(map[string]*schedule.WeekSchedule)
	db.schedule.Unlock()

	db.course.Lock()
	db.course.table = make(map[string]*attendance.Course)
	db.course.Unlock()
}

package sqlxrepos

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/jmoiron/sqlx/types"
	"github.com/pkg/errors"

	"github.com/campusflow/campusflow/core/attendance"
)

type courseRow struct {
	ID              string         `db:"id"`
	UserID          string         `db:"user_id"`
	Name            string         `db:"name"`
	Schedule        types.JSONText `db:"schedule"`
	MinAttendance   int            `db:"min_attendance"`
	AttendedClasses int            `db:"attended_classes"`
	TotalClasses    int            `db:"total_classes"`
	AttendanceLog   types.JSONText `db:"attendance_log"`
	CreatedAt       time.Time      `db:"created_at"`
}

func newCourseRow(c attendance.Course) (courseRow, error) {
	sched, err := json.Marshal(c.Schedule)
	if err != nil {
		return courseRow{}, err
	}
	logs := c.AttendanceLog
	if logs == nil {
		logs = make(map[string]bool)
	}
	attLog, err := json.Marshal(logs)
	if err != nil {
		return courseRow{}, err
	}
	return courseRow{
		ID:              c.ID,
		UserID:          c.UserID,
		Name:            c.Name,
		Schedule:        sched,
		MinAttendance:   c.MinAttendance,
		AttendedClasses: c.AttendedClasses,
		TotalClasses:    c.TotalClasses,
		AttendanceLog:   attLog,
		CreatedAt:       c.CreatedAt.UTC(),
	}, nil
}

func (r courseRow) toCourse() (attendance.Course, error) {
	c := attendance.Course{
		ID:              r.ID,
		UserID:          r.UserID,
		Name:            r.Name,
		MinAttendance:   r.MinAttendance,
		AttendedClasses: r.AttendedClasses,
		TotalClasses:    r.TotalClasses,
		CreatedAt:       r.CreatedAt.UTC(),
	}
	if err := r.Schedule.Unmarshal(&c.Schedule); err != nil {
		return attendance.Course{}, errors.Wrap(err, "decoding schedule")
	}
	if err := r.AttendanceLog.Unmarshal(&c.AttendanceLog); err != nil {
		return attendance.Course{}, errors.Wrap(err, "decoding attendance log")
	}
	return c, nil
}

type courseRepository struct {
	db *sqlx.DB
}

var _ attendance.Repository = (*courseRepository)(nil) // interface compliance check

func NewCourseRepository(db *sqlx.DB) attendance.Repository {
	return &courseRepository{db: db}
}

func (repo *courseRepository) CreateCourse(ctx context.Context, c attendance.Course) (attendance.Course, error) {
	row, err := newCourseRow(c)
	if err != nil {
		return attendance.Course{}, errors.Wrap(err, "encoding course")
	}
	q := `INSERT INTO course (id, user_id, name, schedule, min_attendance, attended_classes, total_classes, attendance_log, created_at)
		VALUES (:id, :user_id, :name, :schedule, :min_attendance, :attended_classes, :total_classes, :attendance_log, :created_at)`
	if _, err = repo.db.NamedExecContext(ctx, q, row); err != nil {
		return attendance.Course{}, wrapErr(err, "inserting course")
	}
	return c, nil
}

func (repo *courseRepository) QueryCourses(ctx context.Context, userID string) ([]attendance.Course, error) {
	var rows []courseRow
	if err := sqlx.SelectContext(ctx, repo.db, &rows, `SELECT * FROM course WHERE user_id = $1 ORDER BY created_at`, userID); err != nil {
		return nil, wrapErr(err, "selecting courses")
	}
	courses := make([]attendance.Course, 0, len(rows))
	for _, r := range rows {
		c, err := r.toCourse()
		if err != nil {
			return nil, err
		}
		courses = append(courses, c)
	}
	return courses, nil
}

func (repo *courseRepository) GetCourse(ctx context.Context, userID, id string) (attendance.Course, error) {
	var row courseRow
	err := sqlx.GetContext(ctx, repo.db, &row, `SELECT * FROM course WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return attendance.Course{}, attendance.ErrNotFound
		}
		return attendance.Course{}, wrapErr(err, "selecting course")
	}
	return row.toCourse()
}

func (repo *courseRepository) DeleteCourse(ctx context.Context, userID, id string) error {
	res, err := repo.db.ExecContext(ctx, `DELETE FROM course WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return wrapErr(err, "deleting course")
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return attendance.ErrNotFound
	}
	return nil
}

func (repo *courseRepository) MarkAttendance(ctx context.Context, userID, id, date string, hours int, marked bool) (attendance.Course, error) {
	q := `UPDATE course SET
			attended_classes = attended_classes + $1,
			total_classes = total_classes + $1,
			attendance_log = attendance_log || jsonb_build_object($2::text, $3::boolean)
		WHERE id = $4 AND user_id = $5
			AND COALESCE((attendance_log->>$2::text)::boolean, false) <> $3::boolean
		RETURNING *`
	var row courseRow
	if err := repo.db.QueryRowxContext(ctx, q, hours, date, marked, id, userID).StructScan(&row); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			// either missing or already in the requested state
			return repo.GetCourse(ctx, userID, id)
		}
		return attendance.Course{}, wrapErr(err, "marking attendance")
	}
	return row.toCourse()
}

package sqlxrepos

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/jmoiron/sqlx/types"
	"github.com/pkg/errors"

	"github.com/campusflow/campusflow/core"
	"github.com/campusflow/campusflow/core/schedule"
)

type scheduleRow struct {
	UserID    string         `db:"user_id"`
	WeekStart time.Time      `db:"week_start"`
	Timezone  string         `db:"timezone"`
	Days      types.JSONText `db:"days"`
	Version   int            `db:"version"`
	CreatedAt time.Time      `db:"created_at"`
	UpdatedAt time.Time      `db:"updated_at"`
}

func (r scheduleRow) toSchedule() (schedule.WeekSchedule, error) {
	ws := schedule.WeekSchedule{
		UserID:    r.UserID,
		WeekStart: r.WeekStart.Format(core.DateLayout),
		Timezone:  r.Timezone,
		Meta: schedule.Meta{
			CreatedAt: r.CreatedAt.UTC(),
			UpdatedAt: r.UpdatedAt.UTC(),
			Version:   r.Version,
		},
	}
	if err := r.Days.Unmarshal(&ws.Days); err != nil {
		return schedule.WeekSchedule{}, errors.Wrap(err, "decoding days")
	}
	return ws, nil
}

type scheduleRepository struct {
	db *sqlx.DB
}

var _ schedule.Repository = (*scheduleRepository)(nil) // interface compliance check

func NewScheduleRepository(db *sqlx.DB) schedule.Repository {
	return &scheduleRepository{db: db}
}

func (repo *scheduleRepository) GetSchedule(ctx context.Context, userID string) (schedule.WeekSchedule, error) {
	var row scheduleRow
	if err := sqlx.GetContext(ctx, repo.db, &row, `SELECT * FROM schedule WHERE user_id = $1`, userID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return schedule.WeekSchedule{}, schedule.ErrNotFound
		}
		return schedule.WeekSchedule{}, wrapErr(err, "selecting schedule")
	}
	return row.toSchedule()
}

// SaveSchedule replaces the whole document; concurrent saves of one user are last-write-wins.
func (repo *scheduleRepository) SaveSchedule(ctx context.Context, ws schedule.WeekSchedule) (schedule.WeekSchedule, error) {
	days, err := json.Marshal(ws.Days)
	if err != nil {
		return schedule.WeekSchedule{}, errors.Wrap(err, "encoding days")
	}

	q := `INSERT INTO schedule (user_id, week_start, timezone, days, version, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (user_id) DO UPDATE SET
			week_start = EXCLUDED.week_start,
			timezone = EXCLUDED.timezone,
			days = EXCLUDED.days,
			version = EXCLUDED.version,
			updated_at = EXCLUDED.updated_at
		RETURNING *`
	var row scheduleRow
	err = repo.db.QueryRowxContext(ctx, q,
		ws.UserID, ws.WeekStart, ws.Timezone, types.JSONText(days),
		ws.Meta.Version, ws.Meta.CreatedAt.UTC(), ws.Meta.UpdatedAt.UTC(),
	).StructScan(&row)
	if err != nil {
		return schedule.WeekSchedule{}, wrapErr(err, "upserting schedule")
	}
	return row.toSchedule()
}

package sqlxrepos

import (
	"context"
	"database/sql"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/pkg/errors"
	"github.com/volatiletech/null/v8"

	"github.com/campusflow/campusflow/core/user"
)

const uniqueViolation = "23505"

type userRow struct {
	ID            string      `db:"id"`
	Email         string      `db:"email"`
	Name          string      `db:"name"`
	IsActive      bool        `db:"is_active"`
	Chronotype    null.String `db:"chronotype"`
	Animal        null.String `db:"animal"`
	BestStudyTime null.String `db:"best_study_time"`
	CreatedAt     time.Time   `db:"created_at"`
	UpdatedAt     time.Time   `db:"updated_at"`
	LastLogin     null.Time   `db:"last_login"`
}

func newUserRow(usr user.User) userRow {
	return userRow{
		ID:            usr.ID,
		Email:         usr.Email,
		Name:          usr.Name,
		IsActive:      usr.IsActive,
		Chronotype:    null.NewString(usr.Chronotype, usr.Chronotype != ""),
		Animal:        null.NewString(usr.Animal, usr.Animal != ""),
		BestStudyTime: null.NewString(usr.BestStudyTime, usr.BestStudyTime != ""),
		CreatedAt:     usr.CreatedAt.UTC(),
		UpdatedAt:     usr.UpdatedAt.UTC(),
		LastLogin:     null.NewTime(usr.LastLogin.UTC(), !usr.LastLogin.IsZero()),
	}
}

func (r userRow) toUser() user.User {
	usr := user.User{
		ID:            r.ID,
		Email:         r.Email,
		Name:          r.Name,
		IsActive:      r.IsActive,
		Chronotype:    r.Chronotype.String,
		Animal:        r.Animal.String,
		BestStudyTime: r.BestStudyTime.String,
		CreatedAt:     r.CreatedAt.UTC(),
		UpdatedAt:     r.UpdatedAt.UTC(),
	}
	if r.LastLogin.Valid {
		usr.LastLogin = r.LastLogin.Time.UTC()
	}
	return usr
}

type userRepository struct {
	db *sqlx.DB
}

var _ user.Repository = (*userRepository)(nil) // interface compliance check

func NewUserRepository(db *sqlx.DB) user.Repository {
	return &userRepository{db: db}
}

func (repo *userRepository) CreateUser(ctx context.Context, usr user.User) (user.User, error) {
	q := `INSERT INTO "user" (id, email, name, is_active, chronotype, animal, best_study_time, created_at, updated_at, last_login)
		VALUES (:id, :email, :name, :is_active, :chronotype, :animal, :best_study_time, :created_at, :updated_at, :last_login)`
	if _, err := repo.db.NamedExecContext(ctx, q, newUserRow(usr)); err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			return user.User{}, user.ErrEmailExists
		}
		return user.User{}, wrapErr(err, "inserting user")
	}
	return usr, nil
}

func (repo *userRepository) QueryAllUsers(ctx context.Context) ([]user.User, error) {
	var rows []userRow
	if err := sqlx.SelectContext(ctx, repo.db, &rows, `SELECT * FROM "user" ORDER BY created_at`); err != nil {
		return nil, wrapErr(err, "selecting users")
	}
	users := make([]user.User, 0, len(rows))
	for _, r := range rows {
		users = append(users, r.toUser())
	}
	return users, nil
}

func (repo *userRepository) GetUser(ctx context.Context, filter user.GetFilter) (user.User, error) {
	var q string
	var arg string
	switch {
	case filter.ID != "":
		q, arg = `SELECT * FROM "user" WHERE id = $1`, filter.ID
	case filter.Email != "":
		q, arg = `SELECT * FROM "user" WHERE email = $1`, filter.Email
	default:
		return user.User{}, user.ErrNotFound
	}

	var row userRow
	if err := sqlx.GetContext(ctx, repo.db, &row, q, arg); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return user.User{}, user.ErrNotFound
		}
		return user.User{}, wrapErr(err, "selecting user")
	}
	return row.toUser(), nil
}

func (repo *userRepository) UpdateUser(ctx context.Context, usr user.User) (user.User, error) {
	q := `UPDATE "user" SET name = :name, is_active = :is_active, chronotype = :chronotype, animal = :animal,
		best_study_time = :best_study_time, updated_at = :updated_at, last_login = :last_login
		WHERE id = :id`
	res, err := repo.db.NamedExecContext(ctx, q, newUserRow(usr))
	if err != nil {
		return user.User{}, wrapErr(err, "updating user")
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return user.User{}, user.ErrNotFound
	}
	return repo.GetUser(ctx, user.GetFilter{ID: usr.ID})
}

package user

import (
	"time"

	"github.com/campusflow/campusflow/core"
)

type User struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Email         string    `json:"email"`
	IsActive      bool      `json:"is_active"`
	Chronotype    string    `json:"chronotype,omitempty"`
	Animal        string    `json:"animal,omitempty"`
	BestStudyTime string    `json:"best_study_time,omitempty"`
	CreatedAt     time.Time `json:"created_at"` // UTC
	UpdatedAt     time.Time `json:"updated_at"` // UTC
	LastLogin     time.Time `json:"last_login"` // UTC
}

// Profile is the chronotype found by the quiz.
type Profile struct {
	Chronotype    string `json:"chronotype"`
	Animal        string `json:"animal"`
	BestStudyTime string `json:"best_study_time"`
}

func (u User) Profile() Profile {
	return Profile{Chronotype: u.Chronotype, Animal: u.Animal, BestStudyTime: u.BestStudyTime}
}

// NewUser contains information needed to create a new User.
type NewUser struct {
	Name  string `json:"name" validate:"required,notblank"`
	Email string `json:"email" validate:"required,email"`
}

func (nu *NewUser) Clean() {
	nu.Name = core.CleanString(nu.Name)
	nu.Email = core.CleanString(nu.Email, true /* lower */)
}

// GetFilter selects a single user; the first non-empty field wins.
type GetFilter struct {
	ID    string
	Email string
}

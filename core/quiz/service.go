package quiz

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"

	"github.com/campusflow/campusflow/core"
	"github.com/campusflow/campusflow/core/user"
)

var errAnswerCount = errors.New("answer every question")

// ProfileStore saves the chronotype on a user's profile.
type ProfileStore interface {
	SetChronotype(ctx context.Context, usr user.User, p user.Profile) (user.User, error)
}

type Service struct {
	def      Definition
	profiles ProfileStore
	validate *validator.Validate
}

func NewService(def Definition, profiles ProfileStore, validate *validator.Validate) *Service {
	return &Service{def: def, profiles: profiles, validate: validate}
}

func (svc *Service) Questions() []Question {
	return svc.def.Questions
}

// Submit scores the answers of usr and stores the result on their profile.
func (svc *Service) Submit(ctx context.Context, usr user.User, data Answers) (Result, error) {
	if err := svc.validate.Struct(data); err != nil {
		return Result{}, err
	}
	if len(data.Answers) != len(svc.def.Questions) {
		return Result{}, core.NewFieldError("answers", errAnswerCount)
	}
	for i, a := range data.Answers {
		if a >= len(svc.def.Questions[i].Options) {
			return Result{}, core.NewFieldError("answers", fmt.Errorf("question %d has no option %d", i+1, a))
		}
	}

	res := svc.def.Score(data.Answers)
	_, err := svc.profiles.SetChronotype(ctx, usr, user.Profile{
		Chronotype:    res.Chronotype,
		Animal:        res.Animal,
		BestStudyTime: res.BestStudyTime,
	})
	return res, err
}

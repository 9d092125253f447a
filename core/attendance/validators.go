package attendance

import (
	"errors"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"

	"github.com/campusflow/campusflow/core"
)

var (
	classDayTag  = "classday"
	classDayText = "{0} must be one of Mon, Tue, Wed, Thu or Fri"

	errNoClassHours = errors.New("add at least one class hour")
)

func InitValidators(validate *validator.Validate, translator ut.Translator) {
	_ = validate.RegisterValidation(classDayTag, classDayValidation)
	core.RegisterCustomTranslation(validate, translator, classDayTag, classDayText)
}

func classDayValidation(fl validator.FieldLevel) bool {
	return IsClassDay(fl.Field().String())
}

// Validate checks nc field by field, then requires at least one class hour in the week.
func (nc *NewCourse) Validate(validate *validator.Validate) error {
	nc.Clean()
	if err := validate.Struct(nc); err != nil {
		return err
	}
	var total int
	for _, h := range nc.Schedule {
		total += h
	}
	if total <= 0 {
		return core.NewFieldError("schedule", errNoClassHours)
	}
	return nil
}

package schedule

import (
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"

	"github.com/campusflow/campusflow/core"
)

var (
	hhmmTag  = "hhmm"
	hhmmText = "{0} must be a time in HH:MM format"

	priorityTag  = "priority"
	priorityText = "{0} must be one of high, medium or low"

	weekdayTag  = "weekday"
	weekdayText = "{0} must be a weekday name (Monday to Sunday)"
)

func InitValidators(validate *validator.Validate, translator ut.Translator) {
	_ = validate.RegisterValidation(hhmmTag, hhmmValidation)
	core.RegisterCustomTranslation(validate, translator, hhmmTag, hhmmText)

	_ = validate.RegisterValidation(priorityTag, priorityValidation)
	core.RegisterCustomTranslation(validate, translator, priorityTag, priorityText)

	_ = validate.RegisterValidation(weekdayTag, weekdayValidation)
	core.RegisterCustomTranslation(validate, translator, weekdayTag, weekdayText)
}

func hhmmValidation(fl validator.FieldLevel) bool {
	_, err := ToMinutes(fl.Field().String())
	return err == nil
}

func priorityValidation(fl validator.FieldLevel) bool {
	return Priority(fl.Field().String()).IsValid()
}

func weekdayValidation(fl validator.FieldLevel) bool {
	return IsWeekday(fl.Field().String())
}

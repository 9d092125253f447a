package schedule

import (
	"fmt"
	"time"

	"github.com/campusflow/campusflow/core"
)

// Validate rejects proposed if any block carries a priority other than high, medium or low.
// The first offending block, in canonical day order, is reported.
func Validate(proposed WeekSchedule) error {
	for _, day := range proposed.Days.Order() {
		for _, block := range proposed.Days[day] {
			if !block.Priority.IsValid() {
				return &InvalidPriorityError{Day: day, Block: block}
			}
		}
	}
	return nil
}

// CheckTimes makes sure every block of ws has well-formed times and ends after it starts.
func CheckTimes(ws WeekSchedule) error {
	for _, day := range ws.Days.Order() {
		for _, block := range ws.Days[day] {
			start, end, err := bounds(block)
			if err != nil {
				return err
			}
			if start >= end {
				return &InvalidIntervalError{Day: day, Block: block}
			}
		}
	}
	return nil
}

// CheckWeek rejects a week start that is not a YYYY-MM-DD date or a timezone
// that is not an IANA zone name. Empty values are left to Adopt.
func CheckWeek(ws WeekSchedule) error {
	if ws.WeekStart != "" {
		if _, err := time.Parse(core.DateLayout, ws.WeekStart); err != nil {
			return core.NewFieldError("weekStart", fmt.Errorf("%q is not a date in YYYY-MM-DD format", ws.WeekStart))
		}
	}
	if ws.Timezone != "" {
		if _, err := time.LoadLocation(ws.Timezone); err != nil {
			return core.NewFieldError("timezone", fmt.Errorf("unknown timezone %q", ws.Timezone))
		}
	}
	return nil
}

package schedule

import (
	"errors"
	"fmt"
)

var ErrNotFound = errors.New("schedule not found")

// MalformedTimeError is returned when a time is not in HH:MM format.
type MalformedTimeError struct {
	Value string
}

func (e *MalformedTimeError) Error() string {
	return fmt.Sprintf("malformed time %q: expected HH:MM", e.Value)
}

// InvalidIntervalError is returned for a block that does not end after it starts.
type InvalidIntervalError struct {
	Day   string
	Block TimeBlock
}

func (e *InvalidIntervalError) Error() string {
	return fmt.Sprintf("task %q on %s must end after it starts (%s-%s)", e.Block.Task, e.Day, e.Block.Start, e.Block.End)
}

// InvalidPriorityError is returned for a proposed block whose priority is not high, medium or low.
type InvalidPriorityError struct {
	Day   string
	Block TimeBlock
}

func (e *InvalidPriorityError) Error() string {
	return fmt.Sprintf("task %q on %s has invalid priority %q", e.Block.Task, e.Day, e.Block.Priority)
}

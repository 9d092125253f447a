package schedule

import (
	"regexp"
	"strconv"
)

const endOfDay = 24 * 60

var clockRegex = regexp.MustCompile(`^(\d{1,2}):(\d{2})$`)

// ToMinutes converts an "HH:MM" clock time into minutes since midnight.
// "24:00" is accepted as the end of the day.
func ToMinutes(t string) (int, error) {
	m := clockRegex.FindStringSubmatch(t)
	if m == nil {
		return 0, &MalformedTimeError{Value: t}
	}
	hour, _ := strconv.Atoi(m[1])
	minute, _ := strconv.Atoi(m[2])
	if minute > 59 || hour > 24 || (hour == 24 && minute != 0) {
		return 0, &MalformedTimeError{Value: t}
	}
	return hour*60 + minute, nil
}

// Overlaps reports whether a and b share any time, treating blocks as half-open intervals:
// a block ending at 10:00 does not overlap one starting at 10:00.
func Overlaps(a, b TimeBlock) (bool, error) {
	aStart, aEnd, err := bounds(a)
	if err != nil {
		return false, err
	}
	bStart, bEnd, err := bounds(b)
	if err != nil {
		return false, err
	}
	return aStart < bEnd && bStart < aEnd, nil
}

func bounds(b TimeBlock) (start, end int, err error) {
	if start, err = ToMinutes(b.Start); err != nil {
		return 0, 0, err
	}
	if end, err = ToMinutes(b.End); err != nil {
		return 0, 0, err
	}
	return start, end, nil
}

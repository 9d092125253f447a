package attendance

import (
	"math"
	"time"

	"github.com/campusflow/campusflow/core"
)

const DefaultMinAttendance = 75

// ClassDays are the keys of Course.Schedule, Monday to Friday.
var ClassDays = []string{"Mon", "Tue", "Wed", "Thu", "Fri"}

var classDayByWeekday = map[time.Weekday]string{
	time.Monday:    "Mon",
	time.Tuesday:   "Tue",
	time.Wednesday: "Wed",
	time.Thursday:  "Thu",
	time.Friday:    "Fri",
}

func IsClassDay(day string) bool {
	for _, d := range ClassDays {
		if d == day {
			return true
		}
	}
	return false
}

type (
	Course struct {
		ID              string          `json:"id"`
		UserID          string          `json:"-"`
		Name            string          `json:"name"`
		Schedule        map[string]int  `json:"schedule"` // class hours per day
		MinAttendance   int             `json:"min_attendance"`
		AttendedClasses int             `json:"attended_classes"`
		TotalClasses    int             `json:"total_classes"`
		AttendanceLog   map[string]bool `json:"attendance_log"` // {YYYY-MM-DD: attended}
		CreatedAt       time.Time       `json:"created_at"`
	}

	Stats struct {
		WeeklyHours   int  `json:"weekly_hours"`
		Percent       int  `json:"percent"`
		MinRequired   int  `json:"min_required"`
		IsSafe        bool `json:"is_safe"`
		BunkableHours int  `json:"bunkable_hours"`
	}

	// CourseDetail is a Course along with its computed Stats.
	CourseDetail struct {
		Course
		Stats Stats `json:"stats"`
	}
)

func (c Course) WeeklyHours() int {
	var total int
	for _, h := range c.Schedule {
		total += h
	}
	return total
}

// HoursOn returns the class hours scheduled on date's weekday.
func (c Course) HoursOn(date time.Time) int {
	day, ok := classDayByWeekday[date.Weekday()]
	if !ok {
		return 0
	}
	return c.Schedule[day]
}

// Marked reports whether attendance was logged for date.
func (c Course) Marked(date time.Time) bool {
	return c.AttendanceLog[date.Format(core.DateLayout)]
}

func (c Course) Stats() Stats {
	min := c.MinAttendance
	if min <= 0 {
		min = DefaultMinAttendance
	}

	var percent int
	if c.TotalClasses > 0 {
		percent = int(math.Round(float64(c.AttendedClasses) / float64(c.TotalClasses) * 100))
	}

	bunkable := int(math.Floor(float64(c.AttendedClasses)/(float64(min)/100) - float64(c.TotalClasses)))
	if bunkable < 0 {
		bunkable = 0
	}

	return Stats{
		WeeklyHours:   c.WeeklyHours(),
		Percent:       percent,
		MinRequired:   min,
		IsSafe:        percent >= min,
		BunkableHours: bunkable,
	}
}

// AtRisk reports whether attendance was taken and fell below the minimum.
func (c Course) AtRisk() bool {
	return c.TotalClasses > 0 && !c.Stats().IsSafe
}

func (c Course) Detail() CourseDetail {
	return CourseDetail{Course: c, Stats: c.Stats()}
}

// NewCourse contains information needed to create a new Course.
type NewCourse struct {
	Name          string         `json:"name" validate:"required,notblank"`
	Schedule      map[string]int `json:"schedule" validate:"required,dive,keys,classday,endkeys,min=0,max=24"`
	MinAttendance int            `json:"min_attendance" validate:"omitempty,min=1,max=100"`
}

func (nc *NewCourse) Clean() {
	nc.Name = core.CleanString(nc.Name)
	if nc.MinAttendance == 0 {
		nc.MinAttendance = DefaultMinAttendance
	}
}

// ToggleAttendance marks or unmarks a date; Date defaults to today.
type ToggleAttendance struct {
	Date string `json:"date" validate:"omitempty,date"`
}

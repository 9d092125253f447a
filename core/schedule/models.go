package schedule

import (
	"sort"
	"time"

	"github.com/campusflow/campusflow/core"
)

type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

var Priorities = []Priority{PriorityHigh, PriorityMedium, PriorityLow}

// IsValid reports whether p is one of the known priorities. The empty priority is not valid.
func (p Priority) IsValid() bool {
	switch p {
	case PriorityHigh, PriorityMedium, PriorityLow:
		return true
	}
	return false
}

// Weekdays in canonical order.
var Weekdays = []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"}

var weekdayIndex = func() map[string]int {
	idx := make(map[string]int, len(Weekdays))
	for i, d := range Weekdays {
		idx[d] = i
	}
	return idx
}()

func IsWeekday(day string) bool {
	_, ok := weekdayIndex[day]
	return ok
}

type (
	TimeBlock struct {
		ID       string   `json:"id,omitempty"`
		Task     string   `json:"task" validate:"required,notblank"`
		Start    string   `json:"start" validate:"required,hhmm"`
		End      string   `json:"end" validate:"required,hhmm"`
		Priority Priority `json:"priority,omitempty" validate:"omitempty,priority"`
	}

	// Days maps a weekday name to the blocks planned that day. Block order is not meaningful.
	Days map[string][]TimeBlock

	Meta struct {
		CreatedAt time.Time `json:"createdAt"`
		UpdatedAt time.Time `json:"updatedAt"`
		Version   int       `json:"version"`
	}

	WeekSchedule struct {
		UserID    string `json:"userId"`
		WeekStart string `json:"weekStart" validate:"date"`
		Timezone  string `json:"timezone"`
		Days      Days   `json:"days" validate:"dive,keys,weekday,endkeys,dive"`
		Meta      Meta   `json:"meta"`
	}

	// Conflict is a high-priority existing block overlapped by a lower-priority proposed block.
	Conflict struct {
		Day      string    `json:"day"`
		OldBlock TimeBlock `json:"old"`
		NewBlock TimeBlock `json:"new"`
	}
)

// Order returns the day names of d: canonical weekdays first, then any other key sorted by name.
func (d Days) Order() []string {
	days := make([]string, 0, len(d))
	var extra []string
	for _, day := range Weekdays {
		if _, ok := d[day]; ok {
			days = append(days, day)
		}
	}
	for day := range d {
		if !IsWeekday(day) {
			extra = append(extra, day)
		}
	}
	sort.Strings(extra)
	return append(days, extra...)
}

// SortedBlocks returns a copy of the blocks of day ordered by start then end time.
func (d Days) SortedBlocks(day string) []TimeBlock {
	blocks := make([]TimeBlock, len(d[day]))
	copy(blocks, d[day])
	sort.SliceStable(blocks, func(i, j int) bool {
		si, _ := ToMinutes(blocks[i].Start)
		sj, _ := ToMinutes(blocks[j].Start)
		if si != sj {
			return si < sj
		}
		ei, _ := ToMinutes(blocks[i].End)
		ej, _ := ToMinutes(blocks[j].End)
		return ei < ej
	})
	return blocks
}

// NewWeekSchedule returns an empty schedule for the week containing now, in loc.
func NewWeekSchedule(userID string, now time.Time, loc *time.Location) WeekSchedule {
	if loc == nil {
		loc = time.UTC
	}
	days := make(Days, len(Weekdays))
	for _, day := range Weekdays {
		days[day] = []TimeBlock{}
	}
	tstamp := now.UTC()
	return WeekSchedule{
		UserID:    userID,
		WeekStart: WeekStart(now.In(loc)).Format(core.DateLayout),
		Timezone:  loc.String(),
		Days:      days,
		Meta: Meta{
			CreatedAt: tstamp,
			UpdatedAt: tstamp,
			Version:   1,
		},
	}
}

// WeekStart returns midnight of the Monday of t's week, in t's location.
func WeekStart(t time.Time) time.Time {
	offset := (int(t.Weekday()) + 6) % 7 // Monday = 0
	y, m, d := t.AddDate(0, 0, -offset).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

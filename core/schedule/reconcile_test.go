package schedule

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campusflow/campusflow/core"
)

func week(days Days) WeekSchedule {
	return WeekSchedule{UserID: "u1", WeekStart: "2026-10-12", Timezone: "UTC", Days: days}
}

var (
	exam = TimeBlock{Task: "Exam", Start: "09:00", End: "11:00", Priority: PriorityHigh}
	nap  = TimeBlock{Task: "Nap", Start: "10:00", End: "10:30", Priority: PriorityLow}
)

func TestEffectivePriority(t *testing.T) {
	assert.Equal(t, PriorityHigh, EffectivePriority(TimeBlock{Task: "legacy"}))
	for _, p := range Priorities {
		assert.Equal(t, p, EffectivePriority(TimeBlock{Priority: p}))
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		days    Days
		wantDay string
		wantErr bool
	}{
		{name: "empty", days: Days{}},
		{name: "all valid", days: Days{"Monday": {exam, nap}, "Sunday": {{Task: "Gym", Start: "08:00", End: "09:00", Priority: PriorityMedium}}}},
		{name: "unknown priority", days: Days{"Monday": {{Task: "Call", Start: "08:00", End: "09:00", Priority: "urgent"}}}, wantDay: "Monday", wantErr: true},
		{name: "missing priority", days: Days{"Friday": {{Task: "Call", Start: "08:00", End: "09:00"}}}, wantDay: "Friday", wantErr: true},
		{
			name: "first violation in canonical order",
			days: Days{
				"Sunday":  {{Task: "late", Start: "08:00", End: "09:00", Priority: "later"}},
				"Tuesday": {{Task: "early", Start: "08:00", End: "09:00", Priority: "asap"}},
			},
			wantDay: "Tuesday",
			wantErr: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(week(tt.days))
			if !tt.wantErr {
				assert.NoError(t, err)
				return
			}
			var ipErr *InvalidPriorityError
			if assert.ErrorAs(t, err, &ipErr) {
				assert.Equal(t, tt.wantDay, ipErr.Day)
			}
		})
	}
}

func TestCheckTimes(t *testing.T) {
	assert.NoError(t, CheckTimes(week(Days{"Monday": {exam, nap}})))

	var mtErr *MalformedTimeError
	err := CheckTimes(week(Days{"Monday": {{Task: "x", Start: "9am", End: "10:00", Priority: PriorityLow}}}))
	assert.ErrorAs(t, err, &mtErr)

	var ivErr *InvalidIntervalError
	err = CheckTimes(week(Days{"Monday": {{Task: "x", Start: "10:00", End: "10:00", Priority: PriorityLow}}}))
	assert.ErrorAs(t, err, &ivErr)
	err = CheckTimes(week(Days{"Monday": {{Task: "x", Start: "11:00", End: "10:00", Priority: PriorityLow}}}))
	assert.ErrorAs(t, err, &ivErr)
}

func TestCheckWeek(t *testing.T) {
	tests := []struct {
		name      string
		weekStart string
		timezone  string
		wantField string
	}{
		{name: "valid", weekStart: "2026-10-12", timezone: "Europe/Paris"},
		{name: "empty", weekStart: "", timezone: ""},
		{name: "not a date", weekStart: "next week", timezone: "UTC", wantField: "weekStart"},
		{name: "impossible date", weekStart: "2026-02-30", timezone: "UTC", wantField: "weekStart"},
		{name: "unknown zone", weekStart: "2026-10-12", timezone: "Mars/Olympus", wantField: "timezone"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ws := week(Days{"Monday": {exam}})
			ws.WeekStart, ws.Timezone = tt.weekStart, tt.timezone
			err := CheckWeek(ws)
			if tt.wantField == "" {
				assert.NoError(t, err)
				return
			}
			var vErr *core.ValidationError
			require.ErrorAs(t, err, &vErr)
			require.Len(t, vErr.Fields, 1)
			assert.Equal(t, tt.wantField, vErr.Fields[0].Field)
		})
	}
}

func TestDetectConflicts(t *testing.T) {
	legacy := TimeBlock{Task: "Lecture", Start: "09:00", End: "10:00"}
	medium := TimeBlock{Task: "Practice", Start: "09:00", End: "10:00", Priority: PriorityMedium}

	tests := []struct {
		name     string
		existing Days
		proposed Days
		want     []Conflict
	}{
		{
			name:     "high replaced by low",
			existing: Days{"Monday": {exam}},
			proposed: Days{"Monday": {nap}},
			want:     []Conflict{{Day: "Monday", OldBlock: exam, NewBlock: nap}},
		},
		{
			name:     "same priority is not a conflict",
			existing: Days{"Monday": {exam}},
			proposed: Days{"Monday": {{Task: "Exam review", Start: "09:00", End: "11:00", Priority: PriorityHigh}}},
			want:     []Conflict{},
		},
		{
			name:     "absent existing priority is protected",
			existing: Days{"Monday": {legacy}},
			proposed: Days{"Monday": {medium}},
			want:     []Conflict{{Day: "Monday", OldBlock: legacy, NewBlock: medium}},
		},
		{
			name:     "low replaced by high is fine",
			existing: Days{"Monday": {nap}},
			proposed: Days{"Monday": {exam}},
			want:     []Conflict{},
		},
		{
			name:     "overlapping mediums are not replacements",
			existing: Days{"Monday": {medium}},
			proposed: Days{"Monday": {{Task: "Gym", Start: "09:30", End: "10:30", Priority: PriorityMedium}}},
			want:     []Conflict{},
		},
		{
			name:     "touching blocks",
			existing: Days{"Monday": {exam}},
			proposed: Days{"Monday": {{Task: "Lunch", Start: "11:00", End: "12:00", Priority: PriorityLow}}},
			want:     []Conflict{},
		},
		{
			name:     "other day",
			existing: Days{"Monday": {exam}},
			proposed: Days{"Tuesday": {nap}},
			want:     []Conflict{},
		},
		{
			name:     "days only in proposed are not scanned",
			existing: Days{"Monday": {}},
			proposed: Days{"Monday": {}, "Saturday": {nap, {Task: "Party", Start: "10:00", End: "12:00", Priority: PriorityLow}}},
			want:     []Conflict{},
		},
		{
			name: "canonical day order then block order",
			existing: Days{
				"Wednesday": {exam},
				"Monday":    {exam, legacy},
			},
			proposed: Days{
				"Wednesday": {nap},
				"Monday":    {nap, medium},
			},
			want: []Conflict{
				{Day: "Monday", OldBlock: exam, NewBlock: nap},
				{Day: "Monday", OldBlock: exam, NewBlock: medium},
				{Day: "Monday", OldBlock: legacy, NewBlock: medium},
				{Day: "Wednesday", OldBlock: exam, NewBlock: nap},
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := DetectConflicts(week(tt.existing), week(tt.proposed))
			require.NoError(t, err)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("DetectConflicts() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestDetectConflicts_idempotent(t *testing.T) {
	existing := week(Days{
		"Friday":   {exam, {Task: "Lab", Start: "14:00", End: "16:00"}},
		"Monday":   {exam},
		"Thursday": {{Task: "Seminar", Start: "08:00", End: "12:00", Priority: PriorityHigh}},
	})
	proposed := week(Days{
		"Friday":   {nap, {Task: "Games", Start: "15:00", End: "17:00", Priority: PriorityLow}},
		"Monday":   {nap},
		"Thursday": {{Task: "Walk", Start: "11:00", End: "13:00", Priority: PriorityMedium}},
	})

	first, err := DetectConflicts(existing, proposed)
	require.NoError(t, err)
	require.Len(t, first, 4)
	for i := 0; i < 20; i++ {
		again, err := DetectConflicts(existing, proposed)
		require.NoError(t, err)
		if diff := cmp.Diff(first, again); diff != "" {
			t.Fatalf("DetectConflicts() run %d differs (-first +again):\n%s", i, diff)
		}
	}
	assert.Equal(t, "Monday", first[0].Day)
	assert.Equal(t, "Thursday", first[1].Day)
	assert.Equal(t, "Friday", first[2].Day)
}

func TestDetectConflicts_malformedExisting(t *testing.T) {
	existing := week(Days{"Monday": {{Task: "Exam", Start: "nine", End: "11:00"}}})
	_, err := DetectConflicts(existing, week(Days{"Monday": {nap}}))
	var mtErr *MalformedTimeError
	assert.ErrorAs(t, err, &mtErr)
}

func TestReconcile(t *testing.T) {
	t.Run("needs confirmation", func(t *testing.T) {
		existing := week(Days{"Monday": {exam}})
		proposed := week(Days{"Monday": {nap}})

		res, err := Reconcile(existing, proposed)
		require.NoError(t, err)
		assert.Equal(t, NeedsConfirmation, res.Outcome)
		assert.False(t, res.Accepted())
		require.Len(t, res.Conflicts, 1)
		assert.Equal(t, Conflict{Day: "Monday", OldBlock: exam, NewBlock: nap}, res.Conflicts[0])
		if diff := cmp.Diff(proposed, res.Schedule); diff != "" {
			t.Errorf("proposed schedule was modified (-want +got):\n%s", diff)
		}
	})

	t.Run("same priority accepted", func(t *testing.T) {
		existing := week(Days{"Monday": {exam}})
		proposed := week(Days{"Monday": {{Task: "Mock exam", Start: "09:00", End: "11:00", Priority: PriorityHigh}}})

		res, err := Reconcile(existing, proposed)
		require.NoError(t, err)
		assert.True(t, res.Accepted())
		assert.Empty(t, res.Conflicts)
		assert.Equal(t, proposed, res.Schedule)
	})

	t.Run("invalid priority before detection", func(t *testing.T) {
		// the malformed existing time would fail detection if it ran
		existing := week(Days{"Monday": {{Task: "Exam", Start: "bad", End: "11:00"}}})
		proposed := week(Days{"Monday": {{Task: "Nap", Start: "10:00", End: "10:30", Priority: "urgent"}}})

		_, err := Reconcile(existing, proposed)
		var ipErr *InvalidPriorityError
		require.ErrorAs(t, err, &ipErr)
		assert.Equal(t, "Monday", ipErr.Day)
		assert.Equal(t, Priority("urgent"), ipErr.Block.Priority)
	})

	t.Run("deterministic", func(t *testing.T) {
		existing := week(Days{"Monday": {exam}, "Tuesday": {exam}})
		proposed := week(Days{"Monday": {nap}, "Tuesday": {nap}})
		first, err := Reconcile(existing, proposed)
		require.NoError(t, err)
		second, err := Reconcile(existing, proposed)
		require.NoError(t, err)
		if diff := cmp.Diff(first, second); diff != "" {
			t.Errorf("Reconcile() not deterministic (-first +second):\n%s", diff)
		}
	})
}

func TestChanges(t *testing.T) {
	existing := week(Days{"Monday": {exam}})
	proposed := week(Days{"Monday": {nap, exam}})

	diff, err := Changes(existing, proposed)
	require.NoError(t, err)
	assert.Contains(t, diff, "+Monday 10:00-10:30 Nap [low]")
	assert.Contains(t, diff, " Monday 09:00-11:00 Exam [high]")

	same, err := Changes(existing, existing)
	require.NoError(t, err)
	assert.Empty(t, same)
}

func TestNewWeekSchedule(t *testing.T) {
	now := time.Date(2026, time.October, 16, 15, 4, 5, 0, time.UTC) // Friday
	ws := NewWeekSchedule("u1", now, time.UTC)

	assert.Equal(t, "u1", ws.UserID)
	assert.Equal(t, "2026-10-12", ws.WeekStart)
	assert.Equal(t, "UTC", ws.Timezone)
	assert.Equal(t, 1, ws.Meta.Version)
	assert.Equal(t, Weekdays, ws.Days.Order())
	for _, day := range Weekdays {
		assert.NotNil(t, ws.Days[day])
		assert.Empty(t, ws.Days[day])
	}

	sunday := time.Date(2026, time.October, 18, 23, 0, 0, 0, time.UTC)
	assert.Equal(t, "2026-10-12", WeekStart(sunday).Format("2006-01-02"))
}

func TestDays_Order(t *testing.T) {
	d := Days{"Sunday": nil, "someday": nil, "Monday": nil, "Holiday": nil}
	assert.Equal(t, []string{"Monday", "Sunday", "Holiday", "someday"}, d.Order())
}

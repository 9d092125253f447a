package schedule

// Outcome tags a reconciliation Result.
type Outcome int

const (
	Accepted Outcome = iota
	NeedsConfirmation
)

func (o Outcome) String() string {
	if o == NeedsConfirmation {
		return "needs_confirmation"
	}
	return "accepted"
}

// Result of Reconcile. Schedule is always the proposed schedule, unmodified.
type Result struct {
	Outcome   Outcome
	Schedule  WeekSchedule
	Conflicts []Conflict
}

func (r Result) Accepted() bool { return r.Outcome == Accepted }

// Reconcile decides whether proposed may replace existing as is.
// It is all or nothing: any conflict defers the whole proposal to the user.
func Reconcile(existing, proposed WeekSchedule) (Result, error) {
	if err := Validate(proposed); err != nil {
		return Result{}, err
	}
	conflicts, err := DetectConflicts(existing, proposed)
	if err != nil {
		return Result{}, err
	}
	if len(conflicts) > 0 {
		return Result{Outcome: NeedsConfirmation, Schedule: proposed, Conflicts: conflicts}, nil
	}
	return Result{Outcome: Accepted, Schedule: proposed, Conflicts: conflicts}, nil
}

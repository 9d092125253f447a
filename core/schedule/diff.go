package schedule

import (
	"fmt"

	"github.com/pmezard/go-difflib/difflib"
)

// Lines renders ws one block per line, days in canonical order and blocks by start time.
func Lines(ws WeekSchedule) []string {
	var lines []string
	for _, day := range ws.Days.Order() {
		for _, b := range ws.Days.SortedBlocks(day) {
			lines = append(lines, fmt.Sprintf("%s %s-%s %s [%s]\n", day, b.Start, b.End, b.Task, EffectivePriority(b)))
		}
	}
	return lines
}

// Changes returns a unified diff going from existing to proposed, empty when nothing changes.
func Changes(existing, proposed WeekSchedule) (string, error) {
	return difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        Lines(existing),
		B:        Lines(proposed),
		FromFile: "current",
		ToFile:   "proposed",
		Context:  1,
	})
}

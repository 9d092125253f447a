package schedule

// EffectivePriority is the priority used when b is an existing block.
// Existing blocks without a priority are protected as high priority.
func EffectivePriority(b TimeBlock) Priority {
	if b.Priority == "" {
		return PriorityHigh
	}
	return b.Priority
}

// DetectConflicts lists every existing high-priority block overlapped by a proposed block
// of lower priority on the same day.
// Only days present in existing are scanned. Results follow canonical day order,
// then existing block order, then proposed block order.
func DetectConflicts(existing, proposed WeekSchedule) ([]Conflict, error) {
	conflicts := make([]Conflict, 0)
	for _, day := range existing.Days.Order() {
		newBlocks := proposed.Days[day]
		if len(newBlocks) == 0 {
			continue
		}
		for _, oldBlock := range existing.Days[day] {
			if EffectivePriority(oldBlock) != PriorityHigh {
				continue
			}
			for _, newBlock := range newBlocks {
				overlap, err := Overlaps(oldBlock, newBlock)
				if err != nil {
					return nil, err
				}
				if overlap && newBlock.Priority != PriorityHigh {
					conflicts = append(conflicts, Conflict{Day: day, OldBlock: oldBlock, NewBlock: newBlock})
				}
			}
		}
	}
	return conflicts, nil
}

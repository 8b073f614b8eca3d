package trace

// AssignDepths derives nesting depth from interval containment. events must
// already be sorted by start. An event is nested under every earlier event
// that is still open at its start; parents are expected to precede children
// that share their start time.
func AssignDepths(events []Event) int {
	maxDepth := 0
	open := make([]int64, 0, 16)
	for i := range events {
		ev := &events[i]
		for len(open) > 0 && open[len(open)-1] <= ev.Start {
			open = open[:len(open)-1]
		}
		ev.Depth = len(open)
		if ev.Depth > maxDepth {
			maxDepth = ev.Depth
		}
		end := ev.End()
		// A child that outlives its parent is clipped to the parent's end so
		// the stack stays well nested.
		if len(open) > 0 && end > open[len(open)-1] {
			end = open[len(open)-1]
		}
		open = append(open, end)
	}
	return maxDepth
}

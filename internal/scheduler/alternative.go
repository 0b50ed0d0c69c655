package scheduler

import (
	"sort"
	"time"
)

const (
	slotLength = 30 * time.Minute

	// a usable alternative is three contiguous hours, six half-hour slots
	windowSlots = 6
)

// DeduceAlternativeTime finds the start of the earliest run of six
// consecutive half-hour slots in the given availability. The input does not
// have to be sorted; slots are assumed to share one day. Returns false when
// no such window exists.
func DeduceAlternativeTime(slots []time.Time) (time.Time, bool) {
	if len(slots) < windowSlots {
		return time.Time{}, false
	}

	sorted := make([]time.Time, len(slots))
	copy(sorted, slots)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Before(sorted[j]) })

	start := sorted[0]
	length := 1
	for _, slot := range sorted[1:] {
		if slot.Equal(start.Add(time.Duration(length) * slotLength)) {
			length++
		} else {
			start = slot
			length = 1
		}
		if length == windowSlots {
			// first window wins, an earlier start always beats a longer run
			return start, true
		}
	}
	return time.Time{}, false
}

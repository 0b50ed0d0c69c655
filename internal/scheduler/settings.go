package scheduler

import (
	"fmt"
	"time"
)

// TimeOfDay is a wall-clock time with minute precision, detached from any
// date. The booking start time is a time-of-day because reservations open
// at the same moment every day.
type TimeOfDay struct {
	Hour   int
	Minute int
}

// ParseTimeOfDay parses an HH:MM string.
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	t, err := time.Parse("15:04", s)
	if err != nil {
		return TimeOfDay{}, fmt.Errorf("invalid time of day %q: %w", s, err)
	}
	return TimeOfDay{Hour: t.Hour(), Minute: t.Minute()}, nil
}

func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", t.Hour, t.Minute)
}

// Settings are the process-wide booking settings. They may be overwritten at
// any time; a run uses whatever value is in effect at each point it reads
// them, not a snapshot taken at submission.
type Settings struct {
	StartTime          TimeOfDay
	AlternativeEnabled bool
	FallbackAttempts   int
}

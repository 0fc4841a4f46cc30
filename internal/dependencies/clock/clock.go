package clock

import "time"

// DayLayout formats the attendance day key
const DayLayout = "2006-01-02"

// Clock provides the current time; attendance days are derived from it
type Clock interface {
	Now() time.Time
}

// SystemClock reads the wall clock
type SystemClock struct{}

// New creates a SystemClock
func New() *SystemClock {
	return &SystemClock{}
}

// Now returns the current time
func (c *SystemClock) Now() time.Time {
	return time.Now()
}

// Day returns the attendance day for t in the given location
// A nil location means UTC
func Day(t time.Time, loc *time.Location) string {
	if loc == nil {
		loc = time.UTC
	}
	return t.In(loc).Format(DayLayout)
}

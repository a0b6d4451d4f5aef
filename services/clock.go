package services

import "time"

// DayFormat is the ISO calendar-day layout used for history keys.
const DayFormat = "2006-01-02"

// Clock abstracts wall-clock access so rollover and scheduling logic can be
// driven by a deterministic clock in tests.
type Clock interface {
	Now() time.Time
	Today() string
}

// SystemClock reads the process-local wall clock.
type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now() }

func (SystemClock) Today() string { return time.Now().Format(DayFormat) }

package dto

import "time"

type TimerStatusOutput struct {
	SessionID      string
	Running        bool
	StartedAt      time.Time
	ElapsedSeconds float64
	HasDuration    bool
	LastSeconds    float64
}

type DurationOutput struct {
	Seconds float64
}

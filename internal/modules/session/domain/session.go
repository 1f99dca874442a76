package domain

import "time"

// TimerSession is the ephemeral task timer for one participant run. It is
// created at program start, handed to whoever needs it, and discarded on
// exit; nothing here is ever persisted.
type TimerSession struct {
	ID           string
	Running      bool
	StartedAt    time.Time
	HasDuration  bool
	LastDuration time.Duration
}

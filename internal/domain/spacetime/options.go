package spacetime

import (
	"time"

	"github.com/jonboulle/clockwork"
)

// Option applies a configuration option to the Engine.
type Option func(*Engine)

// WithClock sets the clock used to supply "now" for a missing current instant.
func WithClock(c clockwork.Clock) Option {
	return func(e *Engine) {
		if c != nil {
			e.clock = c
		}
	}
}

// WithReferenceZone sets the zone a defaulted current instant is expressed in.
func WithReferenceZone(loc *time.Location) Option {
	return func(e *Engine) {
		if loc != nil {
			e.zone = loc
		}
	}
}

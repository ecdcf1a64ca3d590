package geocoding

import (
	"time"
)

// linearBackOff waits base, 2*base, 3*base... between attempts.
// It implements backoff.BackOff and is not safe for concurrent use.
type linearBackOff struct {
	base    time.Duration
	attempt int
}

func newLinearBackOff(base time.Duration) *linearBackOff {
	return &linearBackOff{base: base}
}

func (b *linearBackOff) NextBackOff() time.Duration {
	b.attempt++
	return time.Duration(b.attempt) * b.base
}

func (b *linearBackOff) Reset() {
	b.attempt = 0
}

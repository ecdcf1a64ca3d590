package probe

import "time"

// HTTP status code constants.
const (
	StatusOK = 200
)

// Worker configuration constants.
const (
	WorkerChannelMultiplier = 2
)

// Runner configuration constants.
const (
	PercentageMultiplier = 100
	progressInterval     = time.Second
)

// Verification tolerances. Relative unless noted.
const (
	sumTolerance      = 1e-9 // km/s, absolute
	relativeTolerance = 1e-9
)

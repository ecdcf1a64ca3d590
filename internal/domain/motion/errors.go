package motion

import (
	"errors"
)

// Sentinel errors for velocity computation.
var (
	// ErrInvalidLocation is returned for latitude outside [-90, 90] or
	// longitude outside [-180, 180]. NaN is out of range.
	ErrInvalidLocation = errors.New("invalid location")
	// ErrInvalidTimestamp is returned for an unset instant.
	ErrInvalidTimestamp = errors.New("invalid timestamp")
)

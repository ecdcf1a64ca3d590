package datetime

import (
	"errors"
)

// ErrUnknownTimezone is returned when a zone name cannot be resolved.
var ErrUnknownTimezone = errors.New("unknown timezone")

package spacetime

import (
	"errors"

	"github.com/okian/cosmicpos/internal/domain/motion"
)

// Sentinel errors. The location and timestamp errors are shared with the
// motion package so a single errors.Is check covers both layers.
var (
	ErrInvalidLocation    = motion.ErrInvalidLocation
	ErrInvalidTimestamp   = motion.ErrInvalidTimestamp
	ErrArithmeticOverflow = errors.New("arithmetic overflow")
)

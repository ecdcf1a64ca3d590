package service

import (
	"errors"
)

// Service errors.
var (
	ErrMissingField     = errors.New("missing required field")
	ErrGeocoderDisabled = errors.New("geocoder disabled")
)

package geocoding

import (
	"errors"
)

// Sentinel errors for geocoding.
var (
	ErrEmptyQuery = errors.New("empty location query")
	ErrNotFound   = errors.New("location not found")
	ErrUpstream   = errors.New("geocoder upstream error")
)

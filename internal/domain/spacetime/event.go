package spacetime

import (
	"fmt"
	"time"

	"github.com/okian/cosmicpos/internal/domain/motion"
)

// Location is a point on Earth's surface with a free-form label.
type Location struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Label     string  `json:"address"`
}

// Validate rejects coordinates outside the valid range.
func (l Location) Validate() error {
	return motion.ValidateCoordinates(l.Latitude, l.Longitude)
}

// Event is a moment at a place.
type Event struct {
	Instant  time.Time
	Location Location
}

// Validate checks both the instant and the location.
func (e Event) Validate() error {
	if e.Instant.IsZero() {
		return fmt.Errorf("%w: zero instant", ErrInvalidTimestamp)
	}
	return e.Location.Validate()
}

// Observation is a possibly partial event. A nil Instant means now, a nil
// Location means the birth location.
type Observation struct {
	Instant  *time.Time
	Location *Location
}

// At returns an Observation with both fields set.
func At(instant time.Time, loc Location) Observation {
	return Observation{Instant: &instant, Location: &loc}
}

package service

import (
	"fmt"
	"strings"
	"time"

	"github.com/okian/cosmicpos/internal/datetime"
	"github.com/okian/cosmicpos/internal/domain/spacetime"
)

// UnknownAddress labels a location given without an address.
const UnknownAddress = "Unknown"

// EventInput is the raw, user-supplied form of one event.
type EventInput struct {
	Date      string
	Time      string
	Timezone  string
	Latitude  *float64
	Longitude *float64
	Address   string
}

// CalculateInput describes a birth event and an optional current event.
// An empty current Date means now; a nil current Latitude means the birth
// location.
type CalculateInput struct {
	Birth   EventInput
	Current EventInput
}

func (in CalculateInput) birthEvent() (spacetime.Event, error) {
	if strings.TrimSpace(in.Birth.Date) == "" {
		return spacetime.Event{}, fmt.Errorf("%w: birth_date", ErrMissingField)
	}
	instant, err := datetime.ParseInstant(in.Birth.Date, in.Birth.Time, in.Birth.Timezone)
	if err != nil {
		return spacetime.Event{}, fmt.Errorf("birth: %w", err)
	}
	loc, err := in.Birth.location("birth")
	if err != nil {
		return spacetime.Event{}, err
	}
	return spacetime.Event{Instant: instant, Location: loc}, nil
}

func (in CalculateInput) observation() (spacetime.Observation, error) {
	var obs spacetime.Observation
	if strings.TrimSpace(in.Current.Date) != "" {
		instant, err := datetime.ParseInstant(in.Current.Date, in.Current.Time, in.Current.Timezone)
		if err != nil {
			return obs, fmt.Errorf("current: %w", err)
		}
		obs.Instant = &instant
	}
	if in.Current.Latitude != nil {
		loc, err := in.Current.location("current")
		if err != nil {
			return obs, err
		}
		obs.Location = &loc
	}
	return obs, nil
}

func (e EventInput) location(prefix string) (spacetime.Location, error) {
	if e.Latitude == nil {
		return spacetime.Location{}, fmt.Errorf("%w: %s_latitude", ErrMissingField, prefix)
	}
	if e.Longitude == nil {
		return spacetime.Location{}, fmt.Errorf("%w: %s_longitude", ErrMissingField, prefix)
	}
	label := strings.TrimSpace(e.Address)
	if label == "" {
		label = UnknownAddress
	}
	return spacetime.Location{Latitude: *e.Latitude, Longitude: *e.Longitude, Label: label}, nil
}

// instantOrZero is used only for log fields.
func instantOrZero(t *time.Time) time.Time {
	if t == nil {
		return time.Time{}
	}
	return *t
}

package api

import (
	"time"

	service "github.com/okian/cosmicpos/internal/app"
	"github.com/okian/cosmicpos/internal/domain/motion"
	"github.com/okian/cosmicpos/internal/domain/spacetime"
)

// calculateRequest mirrors the OpenAPI schema for POST /api/calculate.
// Null or absent current fields mean "now" and "the birth location".
// Only presence and length are checked here; coordinate ranges and calendar
// values are rejected by the domain with invalid_location / invalid_timestamp.
type calculateRequest struct {
	BirthDate      string   `json:"birth_date" validate:"required,max=10"`
	BirthTime      string   `json:"birth_time" validate:"max=8"`
	BirthTimezone  string   `json:"birth_timezone" validate:"max=64"`
	BirthLatitude  *float64 `json:"birth_latitude" validate:"required"`
	BirthLongitude *float64 `json:"birth_longitude" validate:"required"`
	BirthAddress   string   `json:"birth_address" validate:"max=512"`

	CurrentDate      string   `json:"current_date" validate:"max=10"`
	CurrentTime      string   `json:"current_time" validate:"max=8"`
	CurrentTimezone  string   `json:"current_timezone" validate:"max=64"`
	CurrentLatitude  *float64 `json:"current_latitude"`
	CurrentLongitude *float64 `json:"current_longitude"`
	CurrentAddress   string   `json:"current_address" validate:"max=512"`
}

func (r calculateRequest) input() service.CalculateInput {
	return service.CalculateInput{
		Birth: service.EventInput{
			Date:      r.BirthDate,
			Time:      r.BirthTime,
			Timezone:  r.BirthTimezone,
			Latitude:  r.BirthLatitude,
			Longitude: r.BirthLongitude,
			Address:   r.BirthAddress,
		},
		Current: service.EventInput{
			Date:      r.CurrentDate,
			Time:      r.CurrentTime,
			Timezone:  r.CurrentTimezone,
			Latitude:  r.CurrentLatitude,
			Longitude: r.CurrentLongitude,
			Address:   r.CurrentAddress,
		},
	}
}

type snapshotResponse struct {
	Datetime       string                       `json:"datetime"`
	Location       spacetime.Location           `json:"location"`
	Velocities     map[string]motion.VectorView `json:"velocities"`
	TotalMagnitude float64                      `json:"total_magnitude"`
	Epoch          motion.Epoch                 `json:"epoch"`
}

func newSnapshotResponse(s spacetime.Snapshot) snapshotResponse {
	return snapshotResponse{
		Datetime:       s.Event.Instant.Format(time.RFC3339),
		Location:       s.Event.Location,
		Velocities:     s.Velocities.Views(),
		TotalMagnitude: s.Velocities.TotalMagnitude(),
		Epoch:          s.Velocities.Epoch(),
	}
}

type displacementResponse struct {
	VectorKm           [3]float64 `json:"vector_km"`
	MagnitudeKm        float64    `json:"magnitude_km"`
	MagnitudeAU        float64    `json:"magnitude_au"`
	MagnitudeLY        float64    `json:"magnitude_ly"`
	TimeElapsedSeconds float64    `json:"time_elapsed_seconds"`
	TimeElapsedYears   float64    `json:"time_elapsed_years"`
}

type lightTimeResponse struct {
	Value float64 `json:"value"`
	Unit  string  `json:"unit"`
}

type perspectiveResponse struct {
	spacetime.Perspective
	LightTime lightTimeResponse `json:"light_time"`
}

type calculateResponse struct {
	Success               bool                   `json:"success"`
	Birth                 snapshotResponse       `json:"birth"`
	Current               snapshotResponse       `json:"current"`
	Displacement          displacementResponse   `json:"displacement"`
	Speed                 spacetime.Speed        `json:"speed"`
	Perspective           perspectiveResponse    `json:"perspective"`
	SpacecraftComparisons []spacetime.Comparison `json:"spacecraft_comparisons"`
}

func newCalculateResponse(c service.Calculation) calculateResponse {
	r := c.Result
	value, unit := c.Perspective.LightTime()
	return calculateResponse{
		Success: true,
		Birth:   newSnapshotResponse(r.Birth),
		Current: newSnapshotResponse(r.Current),
		Displacement: displacementResponse{
			VectorKm:           r.Displacement.Array(),
			MagnitudeKm:        r.MagnitudeKm,
			MagnitudeAU:        r.MagnitudeAU,
			MagnitudeLY:        r.MagnitudeLY,
			TimeElapsedSeconds: r.ElapsedSeconds,
			TimeElapsedYears:   r.ElapsedYears,
		},
		Speed: c.Speed,
		Perspective: perspectiveResponse{
			Perspective: c.Perspective,
			LightTime:   lightTimeResponse{Value: value, Unit: unit},
		},
		SpacecraftComparisons: c.Spacecraft,
	}
}

type geocodeRequest struct {
	Location string `json:"location" validate:"required,max=512"`
}

type geocodeResponse struct {
	Success   bool    `json:"success"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Address   string  `json:"address"`
}

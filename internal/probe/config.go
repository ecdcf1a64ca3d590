package probe

import "time"

// Config holds configuration for a probe run.
type Config struct {
	BaseURL     string        // Base URL of the service
	NumRequests int           // Number of calculate requests to generate
	Workers     int           // Number of concurrent workers
	Timeout     time.Duration // HTTP request timeout
	OutputFile  string        // Output file for failed requests, empty to skip
	Verbose     bool          // Log every verification failure
}

// Request is one generated calculate request. Label is not sent.
type Request struct {
	Label            string   `json:"-"`
	BirthDate        string   `json:"birth_date"`
	BirthTime        string   `json:"birth_time"`
	BirthTimezone    string   `json:"birth_timezone"`
	BirthLatitude    float64  `json:"birth_latitude"`
	BirthLongitude   float64  `json:"birth_longitude"`
	BirthAddress     string   `json:"birth_address"`
	CurrentDate      *string  `json:"current_date"`
	CurrentTime      *string  `json:"current_time"`
	CurrentTimezone  *string  `json:"current_timezone"`
	CurrentLatitude  *float64 `json:"current_latitude"`
	CurrentLongitude *float64 `json:"current_longitude"`
	CurrentAddress   *string  `json:"current_address"`
}

// Vector is the wire form of a velocity.
type Vector struct {
	X         float64 `json:"x"`
	Y         float64 `json:"y"`
	Z         float64 `json:"z"`
	Magnitude float64 `json:"magnitude"`
}

// Snapshot is one side of a calculate response.
type Snapshot struct {
	Datetime       string            `json:"datetime"`
	Velocities     map[string]Vector `json:"velocities"`
	TotalMagnitude float64           `json:"total_magnitude"`
}

// Displacement mirrors the displacement section of a calculate response.
type Displacement struct {
	VectorKm           [3]float64 `json:"vector_km"`
	MagnitudeKm        float64    `json:"magnitude_km"`
	MagnitudeAU        float64    `json:"magnitude_au"`
	MagnitudeLY        float64    `json:"magnitude_ly"`
	TimeElapsedSeconds float64    `json:"time_elapsed_seconds"`
	TimeElapsedYears   float64    `json:"time_elapsed_years"`
}

// Spacecraft mirrors one entry of spacecraft_comparisons.
type Spacecraft struct {
	Name          string  `json:"name"`
	SpeedKmS      float64 `json:"speed_kms"`
	TravelSeconds float64 `json:"travel_time_seconds"`
}

// Response is the subset of a calculate response the probe verifies.
type Response struct {
	Success               bool         `json:"success"`
	Birth                 Snapshot     `json:"birth"`
	Current               Snapshot     `json:"current"`
	Displacement          Displacement `json:"displacement"`
	SpacecraftComparisons []Spacecraft `json:"spacecraft_comparisons"`
}

// Failure records a request that was rejected or produced an inconsistent
// response.
type Failure struct {
	Label   string  `json:"label"`
	Request Request `json:"request"`
	Reason  string  `json:"reason"`
}

// Stats holds run statistics.
type Stats struct {
	Generated  int
	Submitted  int
	Verified   int
	Rejected   int
	Mismatched int
	StartTime  time.Time
	EndTime    time.Time
	Duration   time.Duration
	Failures   []Failure
}

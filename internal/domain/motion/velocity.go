// Package motion models an observer's velocity as the sum of nine fixed
// reference-frame contributions, from Earth's spin out to the CMB dipole.
//
// All directions share one equatorial-style basis (x toward RA=0/Dec=0, z toward
// the north celestial pole) except Earth rotation, which is expressed in a
// longitude-relative basis. Earth orbit, galactic rotation and galactic-plane
// oscillation are fixed axis-aligned approximations and do not vary with time.
package motion

import (
	"fmt"
	"math"
	"time"
)

// Speeds in km/s.
const (
	EquatorialRotationSpeed = 0.465
	EarthOrbitSpeed         = 29.78
	SolarLSRSpeed           = 20.0
	GalacticRotationSpeed   = 230.0
	GalacticOscillationRate = 7.0
	LocalGroupSpeed         = 100.0
	VirgoInfallSpeed        = 600.0
	GreatAttractorSpeed     = 600.0
	CMBDipoleSpeed          = 369.0
)

// Apex is a fixed celestial direction in degrees.
type Apex struct {
	RA  float64
	Dec float64
}

// Apexes of the direction-fixed frames.
var (
	SolarApex          = Apex{RA: 270, Dec: 30}
	AndromedaApex      = Apex{RA: 10.5, Dec: 41.27}
	VirgoApex          = Apex{RA: 186.75, Dec: 12.72}
	GreatAttractorApex = Apex{RA: 220, Dec: -45}
	CMBDipoleApex      = Apex{RA: 167.99, Dec: -6.98}
)

// ComputeVelocities returns the nine frame velocities at the given location and
// instant together with their sum.
func ComputeVelocities(latitude, longitude float64, instant time.Time) (Composite, error) {
	if err := ValidateCoordinates(latitude, longitude); err != nil {
		return Composite{}, err
	}
	if instant.IsZero() {
		return Composite{}, fmt.Errorf("%w: zero instant", ErrInvalidTimestamp)
	}

	var v [frameCount]Vector3
	v[0] = earthRotation(latitude, longitude)
	v[1] = Vector3{Y: EarthOrbitSpeed}
	v[2] = fromRADec(SolarLSRSpeed, SolarApex.RA, SolarApex.Dec)
	v[3] = Vector3{Y: GalacticRotationSpeed}
	v[4] = Vector3{Z: GalacticOscillationRate}
	v[5] = fromRADec(LocalGroupSpeed, AndromedaApex.RA, AndromedaApex.Dec)
	v[6] = fromRADec(VirgoInfallSpeed, VirgoApex.RA, VirgoApex.Dec)
	v[7] = fromRADec(GreatAttractorSpeed, GreatAttractorApex.RA, GreatAttractorApex.Dec)
	v[8] = fromRADec(CMBDipoleSpeed, CMBDipoleApex.RA, CMBDipoleApex.Dec)

	return newComposite(latitude, longitude, instant, v), nil
}

// ValidateCoordinates rejects out-of-range or NaN coordinates. Values are never clamped.
func ValidateCoordinates(latitude, longitude float64) error {
	if !(latitude >= -90 && latitude <= 90) {
		return fmt.Errorf("%w: latitude %v outside [-90, 90]", ErrInvalidLocation, latitude)
	}
	if !(longitude >= -180 && longitude <= 180) {
		return fmt.Errorf("%w: longitude %v outside [-180, 180]", ErrInvalidLocation, longitude)
	}
	return nil
}

// earthRotation is the surface speed scaled by cos(latitude), pointed along
// (-sin lon, cos lon, 0).
func earthRotation(latitude, longitude float64) Vector3 {
	lat := latitude * math.Pi / 180
	lon := longitude * math.Pi / 180
	m := EquatorialRotationSpeed * math.Cos(lat)
	return Vector3{X: -m * math.Sin(lon), Y: m * math.Cos(lon)}
}

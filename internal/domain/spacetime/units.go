package spacetime

import (
	"time"
)

// Physical constants used for unit conversion.
const (
	KmPerAU              = 149597870.7
	KmPerLightYear       = 9.461e12
	SecondsPerYear       = 365.25 * 24 * 3600
	DaysPerYear          = 365.25
	SpeedOfLightKmS      = 299792.458
	EarthMoonDistanceKm  = 384400.0
	SecondsPerHour       = 3600.0
	minDisplayedFraction = 0.01
)

// KmToAU converts kilometres to astronomical units.
func KmToAU(km float64) float64 { return km / KmPerAU }

// KmToLightYears converts kilometres to light-years.
func KmToLightYears(km float64) float64 { return km / KmPerLightYear }

// SecondsToYears converts seconds to Julian years.
func SecondsToYears(s float64) float64 { return s / SecondsPerYear }

// ElapsedSeconds returns to - from in seconds. It does not go through
// time.Duration, so spans beyond ±292 years stay exact to the nanosecond.
// Spans wider than int64 seconds fall back to float64 subtraction and keep
// their sign.
func ElapsedSeconds(from, to time.Time) float64 {
	a, b := to.Unix(), from.Unix()
	nanos := float64(to.Nanosecond()-from.Nanosecond()) / 1e9
	secs := a - b
	if (a >= 0) != (b >= 0) && (secs >= 0) != (a >= 0) {
		return float64(a) - float64(b) + nanos
	}
	return float64(secs) + nanos
}

// ShowAU reports whether a distance is large enough to print in AU.
func ShowAU(km float64) bool { return KmToAU(km) > minDisplayedFraction }

// ShowLightYears reports whether a distance is large enough to print in light-years.
func ShowLightYears(km float64) bool { return KmToLightYears(km) > minDisplayedFraction }

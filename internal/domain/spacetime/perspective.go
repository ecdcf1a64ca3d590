package spacetime

// Perspective expresses a distance in everyday yardsticks.
type Perspective struct {
	DistanceKm        float64 `json:"distance_km"`
	EarthMoonMultiple float64 `json:"earth_moon_multiple"`
	EarthSunMultiple  float64 `json:"earth_sun_multiple"`
	LightSeconds      float64 `json:"light_seconds"`
}

// PerspectiveOf builds the perspective for a distance in km.
func PerspectiveOf(distanceKm float64) Perspective {
	return Perspective{
		DistanceKm:        distanceKm,
		EarthMoonMultiple: distanceKm / EarthMoonDistanceKm,
		EarthSunMultiple:  distanceKm / KmPerAU,
		LightSeconds:      distanceKm / SpeedOfLightKmS,
	}
}

// LightTime returns the light travel time in the largest of days, hours or
// minutes that is at least one, falling back to seconds.
func (p Perspective) LightTime() (float64, string) {
	s := p.LightSeconds
	switch {
	case s/86400 >= 1:
		return s / 86400, "days"
	case s/3600 >= 1:
		return s / 3600, "hours"
	case s/60 >= 1:
		return s / 60, "minutes"
	default:
		return s, "seconds"
	}
}

// Speed expresses a velocity magnitude in several units.
type Speed struct {
	KmS         float64 `json:"km_s"`
	KmH         float64 `json:"km_h"`
	FractionOfC float64 `json:"fraction_of_c"`
}

// SpeedOf converts km/s to the other units.
func SpeedOf(kms float64) Speed {
	return Speed{KmS: kms, KmH: kms * SecondsPerHour, FractionOfC: kms / SpeedOfLightKmS}
}

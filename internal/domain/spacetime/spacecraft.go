package spacetime

import (
	"sort"
)

// Spacecraft is a reference vehicle with its peak heliocentric speed.
type Spacecraft struct {
	Name     string  `json:"name"`
	SpeedKmS float64 `json:"speed_kms"`
	SpeedKmH int     `json:"speed_kmh"`
	Year     int     `json:"year"`
	Record   string  `json:"record"`
}

var spacecraft = []Spacecraft{
	{Name: "Parker Solar Probe", SpeedKmS: 163.0, SpeedKmH: 586800, Year: 2021, Record: "Fastest human-made object ever"},
	{Name: "Juno", SpeedKmS: 73.61, SpeedKmH: 265000, Year: 2016, Record: "Fastest Jupiter mission"},
	{Name: "Helios 2", SpeedKmS: 70.22, SpeedKmH: 252792, Year: 1976, Record: "Held speed record for 45 years"},
	{Name: "Helios 1", SpeedKmS: 68.75, SpeedKmH: 247500, Year: 1975, Record: "First to exceed 240,000 km/h"},
	{Name: "New Horizons", SpeedKmS: 58.54, SpeedKmH: 210744, Year: 2015, Record: "Fastest Earth departure velocity"},
}

// Comparison is how long a spacecraft would need to cover a distance.
type Comparison struct {
	Spacecraft
	TravelSeconds float64 `json:"travel_time_seconds"`
	TravelDays    float64 `json:"travel_time_days"`
	TravelYears   float64 `json:"travel_time_years"`
}

// CompareSpacecraft computes travel times over distanceKm for every catalog
// entry, in catalog order.
func CompareSpacecraft(distanceKm float64) []Comparison {
	out := make([]Comparison, 0, len(spacecraft))
	for _, s := range spacecraft {
		secs := distanceKm / s.SpeedKmS
		years := secs / SecondsPerYear
		out = append(out, Comparison{
			Spacecraft:    s,
			TravelSeconds: secs,
			TravelYears:   years,
			TravelDays:    years * DaysPerYear,
		})
	}
	return out
}

// SortBySpeed orders comparisons fastest first. Ties keep their order.
func SortBySpeed(cs []Comparison) {
	sort.SliceStable(cs, func(i, j int) bool {
		return cs[i].SpeedKmS > cs[j].SpeedKmS
	})
}

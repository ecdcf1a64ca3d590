package motion

import (
	"math"
	"time"

	satellite "github.com/joshuaferrara/go-satellite"
)

// Epoch carries astronomical time metadata for an instant. It never feeds
// back into any velocity.
type Epoch struct {
	// JulianDate is the UT Julian date including the fractional second.
	JulianDate float64 `json:"julian_date"`
	// GMST is the Greenwich mean sidereal angle in radians, in [0, 2π).
	GMST float64 `json:"gmst_rad"`
}

// EpochOf computes the Julian date and GMST of t.
func EpochOf(t time.Time) Epoch {
	u := t.UTC()
	year, month, day := u.Date()
	hour, minute, sec := u.Clock()

	jd := satellite.JDay(year, int(month), day, hour, minute, sec)
	jd += float64(u.Nanosecond()) / 1e9 / 86400

	gmst := math.Mod(satellite.ThetaG_JD(jd), 2*math.Pi)
	if gmst < 0 {
		gmst += 2 * math.Pi
	}
	return Epoch{JulianDate: jd, GMST: gmst}
}

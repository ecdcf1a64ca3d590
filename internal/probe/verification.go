package probe

import (
	"fmt"
	"math"

	"github.com/okian/cosmicpos/internal/domain/motion"
	"github.com/okian/cosmicpos/internal/domain/spacetime"
)

func relClose(a, b, tol float64) bool {
	scale := math.Max(1, math.Max(math.Abs(a), math.Abs(b)))
	return math.Abs(a-b) <= tol*scale
}

// verifyResponse checks the invariants every calculate response must hold.
func verifyResponse(resp Response) error {
	if !resp.Success {
		return fmt.Errorf("success flag not set")
	}
	if err := verifySnapshot("birth", resp.Birth); err != nil {
		return err
	}
	if err := verifySnapshot("current", resp.Current); err != nil {
		return err
	}
	if err := verifyDisplacement(resp.Birth.Velocities["total"], resp.Displacement); err != nil {
		return err
	}
	return verifySpacecraft(resp.Displacement.MagnitudeKm, resp.SpacecraftComparisons)
}

// verifySnapshot checks that total is the sum of the nine frames.
func verifySnapshot(side string, s Snapshot) error {
	total, ok := s.Velocities["total"]
	if !ok {
		return fmt.Errorf("%s: total velocity missing", side)
	}
	var sum Vector
	for _, f := range motion.Frames() {
		v, ok := s.Velocities[string(f)]
		if !ok {
			return fmt.Errorf("%s: frame %s missing", side, f)
		}
		if !relClose(v.Magnitude, math.Sqrt(v.X*v.X+v.Y*v.Y+v.Z*v.Z), relativeTolerance) {
			return fmt.Errorf("%s: frame %s magnitude %v inconsistent", side, f, v.Magnitude)
		}
		sum.X += v.X
		sum.Y += v.Y
		sum.Z += v.Z
	}
	if math.Abs(sum.X-total.X) > sumTolerance || math.Abs(sum.Y-total.Y) > sumTolerance || math.Abs(sum.Z-total.Z) > sumTolerance {
		return fmt.Errorf("%s: total %+v is not the frame sum %+v", side, total, sum)
	}
	if !relClose(s.TotalMagnitude, total.Magnitude, relativeTolerance) {
		return fmt.Errorf("%s: total_magnitude %v != %v", side, s.TotalMagnitude, total.Magnitude)
	}
	return nil
}

// verifyDisplacement checks displacement = birth total × elapsed and the
// unit conversions.
func verifyDisplacement(total Vector, d Displacement) error {
	secs := d.TimeElapsedSeconds
	want := [3]float64{total.X * secs, total.Y * secs, total.Z * secs}
	for i := range want {
		if !relClose(d.VectorKm[i], want[i], relativeTolerance) {
			return fmt.Errorf("displacement[%d] = %v, want %v", i, d.VectorKm[i], want[i])
		}
	}
	km := math.Sqrt(d.VectorKm[0]*d.VectorKm[0] + d.VectorKm[1]*d.VectorKm[1] + d.VectorKm[2]*d.VectorKm[2])
	switch {
	case !relClose(d.MagnitudeKm, km, relativeTolerance):
		return fmt.Errorf("magnitude_km %v != |vector| %v", d.MagnitudeKm, km)
	case !relClose(d.MagnitudeAU*spacetime.KmPerAU, d.MagnitudeKm, relativeTolerance):
		return fmt.Errorf("magnitude_au %v inconsistent with %v km", d.MagnitudeAU, d.MagnitudeKm)
	case !relClose(d.MagnitudeLY*spacetime.KmPerLightYear, d.MagnitudeKm, relativeTolerance):
		return fmt.Errorf("magnitude_ly %v inconsistent with %v km", d.MagnitudeLY, d.MagnitudeKm)
	case !relClose(d.TimeElapsedYears*spacetime.SecondsPerYear, secs, relativeTolerance):
		return fmt.Errorf("time_elapsed_years %v inconsistent with %v s", d.TimeElapsedYears, secs)
	}
	return nil
}

// verifySpacecraft checks ordering and travel times.
func verifySpacecraft(km float64, crafts []Spacecraft) error {
	if len(crafts) == 0 {
		return fmt.Errorf("no spacecraft comparisons")
	}
	for i, c := range crafts {
		if i > 0 && c.SpeedKmS > crafts[i-1].SpeedKmS {
			return fmt.Errorf("spacecraft not sorted by speed at %d (%s)", i, c.Name)
		}
		if !relClose(c.TravelSeconds, km/c.SpeedKmS, relativeTolerance) {
			return fmt.Errorf("%s travel time %v != %v", c.Name, c.TravelSeconds, km/c.SpeedKmS)
		}
	}
	return nil
}

package motion

import (
	"math"
)

// Vector3 is a Cartesian triple. Velocities are in km/s, displacements in km.
type Vector3 struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// Add returns v + o.
func (v Vector3) Add(o Vector3) Vector3 {
	return Vector3{X: v.X + o.X, Y: v.Y + o.Y, Z: v.Z + o.Z}
}

// Scale returns v multiplied by s.
func (v Vector3) Scale(s float64) Vector3 {
	return Vector3{X: v.X * s, Y: v.Y * s, Z: v.Z * s}
}

// Magnitude returns the Euclidean norm.
func (v Vector3) Magnitude() float64 {
	return math.Sqrt(v.X*v.X + v.Y*v.Y + v.Z*v.Z)
}

// IsFinite reports whether no component is NaN or infinite.
func (v Vector3) IsFinite() bool {
	return isFinite(v.X) && isFinite(v.Y) && isFinite(v.Z)
}

// Array returns the components as [x, y, z].
func (v Vector3) Array() [3]float64 {
	return [3]float64{v.X, v.Y, v.Z}
}

func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

// fromRADec points speed along right ascension ra and declination dec (degrees).
func fromRADec(speed, raDeg, decDeg float64) Vector3 {
	ra := raDeg * math.Pi / 180
	dec := decDeg * math.Pi / 180
	return Vector3{
		X: speed * math.Cos(dec) * math.Cos(ra),
		Y: speed * math.Cos(dec) * math.Sin(ra),
		Z: speed * math.Sin(dec),
	}
}

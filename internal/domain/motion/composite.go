package motion

import (
	"time"
)

// NamedVelocity pairs a frame with its velocity.
type NamedVelocity struct {
	Frame    Frame
	Velocity Vector3
}

// Composite is the immutable result of ComputeVelocities. The total is fixed
// at construction.
type Composite struct {
	latitude   float64
	longitude  float64
	instant    time.Time
	velocities [frameCount]Vector3
	total      Vector3
	epoch      Epoch
}

func newComposite(lat, lon float64, instant time.Time, v [frameCount]Vector3) Composite {
	var total Vector3
	for _, c := range v {
		total = total.Add(c)
	}
	return Composite{
		latitude:   lat,
		longitude:  lon,
		instant:    instant,
		velocities: v,
		total:      total,
		epoch:      EpochOf(instant),
	}
}

// Velocity returns the contribution of a single frame.
func (c Composite) Velocity(f Frame) (Vector3, bool) {
	i := f.index()
	if i < 0 {
		return Vector3{}, false
	}
	return c.velocities[i], true
}

// Components returns all nine contributions in summation order.
func (c Composite) Components() []NamedVelocity {
	out := make([]NamedVelocity, frameCount)
	for i, f := range frameOrder {
		out[i] = NamedVelocity{Frame: f, Velocity: c.velocities[i]}
	}
	return out
}

// Total is the element-wise sum of all components.
func (c Composite) Total() Vector3 { return c.total }

// TotalMagnitude is the norm of Total.
func (c Composite) TotalMagnitude() float64 { return c.total.Magnitude() }

// Epoch describes the instant the composite was computed for.
func (c Composite) Epoch() Epoch { return c.epoch }

func (c Composite) Instant() time.Time { return c.instant }
func (c Composite) Latitude() float64  { return c.latitude }
func (c Composite) Longitude() float64 { return c.longitude }

// VectorView is the wire form of a velocity.
type VectorView struct {
	X         float64 `json:"x"`
	Y         float64 `json:"y"`
	Z         float64 `json:"z"`
	Magnitude float64 `json:"magnitude"`
}

// View converts v to its wire form.
func View(v Vector3) VectorView {
	return VectorView{X: v.X, Y: v.Y, Z: v.Z, Magnitude: v.Magnitude()}
}

// Views returns each frame keyed by name plus "total".
func (c Composite) Views() map[string]VectorView {
	out := make(map[string]VectorView, frameCount+1)
	for i, f := range frameOrder {
		out[string(f)] = View(c.velocities[i])
	}
	out["total"] = View(c.total)
	return out
}


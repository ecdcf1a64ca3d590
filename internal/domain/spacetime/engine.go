// Package spacetime extrapolates an observer's displacement through space
// between two events, holding the velocity at the first event constant.
package spacetime

import (
	"fmt"
	"math"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/okian/cosmicpos/internal/domain/motion"
)

// Snapshot is an event together with the velocities computed for it.
type Snapshot struct {
	Event      Event
	Velocities motion.Composite
}

// Result is the outcome of a displacement computation.
type Result struct {
	Birth   Snapshot
	Current Snapshot

	// ElapsedSeconds is current minus birth and may be negative.
	ElapsedSeconds float64
	ElapsedYears   float64

	Displacement motion.Vector3
	MagnitudeKm  float64
	MagnitudeAU  float64
	MagnitudeLY  float64
}

// Engine computes displacement results. It is safe for concurrent use.
type Engine struct {
	clock clockwork.Clock
	zone  *time.Location
}

// NewEngine creates an Engine using the real clock and UTC unless overridden.
func NewEngine(opts ...Option) *Engine {
	e := &Engine{
		clock: clockwork.NewRealClock(),
		zone:  time.UTC,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Now returns the engine's present moment in its reference zone.
func (e *Engine) Now() time.Time {
	return e.clock.Now().In(e.zone)
}

// Displace computes velocities at birth and at the current observation and
// extrapolates displacement as birth total velocity times elapsed seconds.
// The current velocities are reported but never feed the displacement.
func (e *Engine) Displace(birth Event, current Observation) (Result, error) {
	if err := birth.Validate(); err != nil {
		return Result{}, fmt.Errorf("birth: %w", err)
	}
	cur := e.resolve(birth, current)
	if err := cur.Validate(); err != nil {
		return Result{}, fmt.Errorf("current: %w", err)
	}

	birthVel, err := motion.ComputeVelocities(birth.Location.Latitude, birth.Location.Longitude, birth.Instant)
	if err != nil {
		return Result{}, fmt.Errorf("birth velocities: %w", err)
	}
	curVel, err := motion.ComputeVelocities(cur.Location.Latitude, cur.Location.Longitude, cur.Instant)
	if err != nil {
		return Result{}, fmt.Errorf("current velocities: %w", err)
	}

	elapsed := ElapsedSeconds(birth.Instant, cur.Instant)
	disp, err := Extrapolate(birthVel.Total(), elapsed)
	if err != nil {
		return Result{}, err
	}
	km := disp.Magnitude()
	if math.IsInf(km, 0) || math.IsNaN(km) {
		return Result{}, fmt.Errorf("%w: displacement magnitude", ErrArithmeticOverflow)
	}

	return Result{
		Birth:          Snapshot{Event: birth, Velocities: birthVel},
		Current:        Snapshot{Event: cur, Velocities: curVel},
		ElapsedSeconds: elapsed,
		ElapsedYears:   SecondsToYears(elapsed),
		Displacement:   disp,
		MagnitudeKm:    km,
		MagnitudeAU:    KmToAU(km),
		MagnitudeLY:    KmToLightYears(km),
	}, nil
}

// Extrapolate returns velocity (km/s) times seconds as a displacement in km.
func Extrapolate(velocity motion.Vector3, seconds float64) (motion.Vector3, error) {
	d := velocity.Scale(seconds)
	if !d.IsFinite() {
		return motion.Vector3{}, fmt.Errorf("%w: %v km/s over %v s", ErrArithmeticOverflow, velocity, seconds)
	}
	return d, nil
}

func (e *Engine) resolve(birth Event, obs Observation) Event {
	cur := Event{Location: birth.Location}
	if obs.Instant != nil {
		cur.Instant = *obs.Instant
	} else {
		cur.Instant = e.Now()
	}
	if obs.Location != nil {
		cur.Location = *obs.Location
	}
	return cur
}

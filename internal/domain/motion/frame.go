package motion

// Frame names one reference-frame contribution to the observer's velocity.
type Frame string

// Frames in evaluation and summation order.
const (
	EarthRotation       Frame = "earth_rotation"
	EarthOrbit          Frame = "earth_orbit"
	SolarSystemLSR      Frame = "solar_system_lsr"
	GalacticRotation    Frame = "galactic_rotation"
	GalacticOscillation Frame = "galactic_oscillation"
	LocalGroup          Frame = "local_group"
	VirgoMotion         Frame = "virgo_motion"
	GreatAttractor      Frame = "great_attractor"
	CMBFrame            Frame = "cmb_frame"
)

const frameCount = 9

var frameOrder = [frameCount]Frame{
	EarthRotation,
	EarthOrbit,
	SolarSystemLSR,
	GalacticRotation,
	GalacticOscillation,
	LocalGroup,
	VirgoMotion,
	GreatAttractor,
	CMBFrame,
}

var frameTitles = map[Frame]string{
	EarthRotation:       "Earth Rotation",
	EarthOrbit:          "Earth Orbital Motion",
	SolarSystemLSR:      "Solar System (LSR)",
	GalacticRotation:    "Galactic Rotation",
	GalacticOscillation: "Galactic Oscillation",
	LocalGroup:          "Local Group Motion",
	VirgoMotion:         "Virgo Cluster Motion",
	GreatAttractor:      "Great Attractor",
	CMBFrame:            "CMB Rest Frame",
}

// Frames returns all frames in summation order.
func Frames() []Frame {
	out := make([]Frame, frameCount)
	copy(out, frameOrder[:])
	return out
}

// Title is the human-readable label used in reports.
func (f Frame) Title() string {
	if t, ok := frameTitles[f]; ok {
		return t
	}
	return string(f)
}

func (f Frame) index() int {
	for i, g := range frameOrder {
		if g == f {
			return i
		}
	}
	return -1
}

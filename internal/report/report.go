// Package report renders displacement results and the forces catalog as
// fixed-width plain text.
package report

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/okian/cosmicpos/internal/domain/motion"
	"github.com/okian/cosmicpos/internal/domain/spacetime"
)

const (
	width      = 80
	nameWidth  = 30
	timeLayout = "2006-01-02 15:04:05 MST"
)

var (
	heavyRule = strings.Repeat("=", width)
	lightRule = strings.Repeat("-", width)
)

// writer keeps the first write error so rendering code stays linear.
type writer struct {
	w   io.Writer
	p   *message.Printer
	err error
}

func newWriter(w io.Writer) *writer {
	return &writer{w: w, p: message.NewPrinter(language.English)}
}

func (w *writer) line(format string, args ...any) {
	if w.err != nil {
		return
	}
	_, w.err = fmt.Fprintf(w.w, format+"\n", args...)
}

func (w *writer) blank() { w.line("") }

func (w *writer) heading(title string) {
	w.line("%s", title)
	w.line("%s", lightRule)
}

// grouped formats n with thousands separators and the given precision.
func (w *writer) grouped(n float64, precision int) string {
	return w.p.Sprintf("%."+strconv.Itoa(precision)+"f", n)
}

// Render writes the full displacement report for r.
func Render(out io.Writer, r spacetime.Result) error {
	w := newWriter(out)

	w.line("%s", heavyRule)
	w.line("COSMIC POSITION REPORT")
	w.line("Where Were You in Space and Time?")
	w.line("%s", heavyRule)
	w.blank()

	w.heading("BIRTH INFORMATION")
	writeEvent(w, r.Birth.Event)
	w.blank()

	w.heading("CURRENT INFORMATION")
	writeEvent(w, r.Current.Event)
	w.line("Age: %.2f years (%s seconds)", r.ElapsedYears, w.grouped(r.ElapsedSeconds, 0))
	w.blank()

	w.heading("VELOCITIES AT BIRTH (km/s)")
	writeVelocities(w, r.Birth.Velocities)

	w.heading("VELOCITIES AT CURRENT TIME (km/s)")
	writeVelocities(w, r.Current.Velocities)

	w.heading("DISPLACEMENT THROUGH SPACE (Birth to Current)")
	writeDisplacement(w, r.Displacement)
	w.blank()
	w.line("Distance Traveled: %.3e km", r.MagnitudeKm)
	w.line("                   %.3e AU", r.MagnitudeAU)
	w.line("                   %.6f light-years", r.MagnitudeLY)
	w.blank()

	speed := spacetime.SpeedOf(r.Birth.Velocities.TotalMagnitude())
	w.heading("SPEED COMPARISONS")
	w.line("Your velocity relative to CMB: %.2f km/s", speed.KmS)
	w.line("                                %s km/h", w.grouped(speed.KmH, 0))
	w.line("                                %.6f c (times speed of light)", speed.FractionOfC)
	w.blank()

	p := spacetime.PerspectiveOf(r.MagnitudeKm)
	w.heading("PERSPECTIVE")
	w.line("In %.2f years, you have moved:", r.ElapsedYears)
	w.line("  • %.2f times the Earth-Moon distance", p.EarthMoonMultiple)
	w.line("  • %.4f times the Earth-Sun distance", p.EarthSunMultiple)
	w.blank()
	value, unit := p.LightTime()
	w.line("Light would take %.2f %s to travel this distance", value, unit)
	w.blank()

	w.heading("SPACECRAFT TRAVEL TIME COMPARISON")
	w.line("How long would it take the fastest human spacecraft to travel this distance?")
	w.blank()
	comparisons := spacetime.CompareSpacecraft(r.MagnitudeKm)
	spacetime.SortBySpeed(comparisons)
	for i, c := range comparisons {
		w.line("%d. %s", i+1, c.Name)
		w.line("   Speed: %.2f km/s (%s km/h)", c.SpeedKmS, w.grouped(float64(c.SpeedKmH), 0))
		w.line("   Record: %s (%d)", c.Record, c.Year)
		w.line("   Travel time: %s", travelTime(w, c))
		w.blank()
	}

	w.line("%s", heavyRule)
	return w.err
}

func writeEvent(w *writer, e spacetime.Event) {
	w.line("Date/Time: %s", e.Instant.Format(timeLayout))
	w.line("Location: %s", e.Location.Label)
	w.line("Coordinates: %.4f°, %.4f°", e.Location.Latitude, e.Location.Longitude)
}

func writeVelocities(w *writer, c motion.Composite) {
	for _, nv := range c.Components() {
		w.line("%s", FormatVelocity(nv.Frame.Title(), nv.Velocity))
	}
	w.blank()
	w.line("%s", FormatVelocity("TOTAL VELOCITY", c.Total()))
	w.blank()
}

func writeDisplacement(w *writer, d motion.Vector3) {
	w.line("%-*s: [%.3e, %.3e, %.3e] km", nameWidth, "Total Displacement", d.X, d.Y, d.Z)
	km := d.Magnitude()
	var b strings.Builder
	fmt.Fprintf(&b, "%*s  Magnitude: %.3e km", nameWidth, "", km)
	if spacetime.ShowAU(km) {
		fmt.Fprintf(&b, " (%.3f AU)", spacetime.KmToAU(km))
	}
	if spacetime.ShowLightYears(km) {
		fmt.Fprintf(&b, " (%.3f light-years)", spacetime.KmToLightYears(km))
	}
	w.line("%s", b.String())
}

func travelTime(w *writer, c spacetime.Comparison) string {
	secs := c.TravelSeconds
	hours := secs / spacetime.SecondsPerHour
	switch {
	case c.TravelYears >= 1:
		return fmt.Sprintf("%.2f years (%s days)", c.TravelYears, w.grouped(c.TravelDays, 0))
	case c.TravelDays >= 1:
		return fmt.Sprintf("%.2f days (%s hours)", c.TravelDays, w.grouped(hours, 1))
	case hours >= 1:
		return fmt.Sprintf("%.2f hours (%s minutes)", hours, w.grouped(secs/60, 1))
	default:
		return fmt.Sprintf("%.2f minutes (%s seconds)", secs/60, w.grouped(secs, 1))
	}
}

// FormatVelocity renders one labelled velocity line in km/s.
func FormatVelocity(name string, v motion.Vector3) string {
	return fmt.Sprintf("%-*s: [%10.3f, %10.3f, %10.3f] km/s (magnitude: %.3f km/s)",
		nameWidth, name, v.X, v.Y, v.Z, v.Magnitude())
}

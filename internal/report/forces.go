package report

import (
	"io"
	"strings"

	"github.com/okian/cosmicpos/internal/domain/forces"
)

// RenderForces writes the forces catalog, one block per category.
func RenderForces(out io.Writer, c forces.Catalog) error {
	w := newWriter(out)

	w.blank()
	w.line("%s", heavyRule)
	w.line("COMPREHENSIVE CATALOG OF FORCES AND MOTIONS")
	w.line("%s", heavyRule)
	w.blank()

	for _, cat := range c.Categories {
		w.blank()
		w.heading(strings.ToUpper(strings.ReplaceAll(cat.Key, "_", " ")))
		w.line("Description: %s", cat.Description)
		w.blank()
		for _, it := range cat.Items {
			w.line("• %s", it.Name)
			if it.Velocity != "" {
				w.line("  Velocity: %s", it.Velocity)
			}
			if it.Magnitude != "" {
				w.line("  Magnitude: %s", it.Magnitude)
			}
			if it.Period != "" {
				w.line("  Period: %s", it.Period)
			}
			w.line("  %s", it.Description)
			w.blank()
		}
	}
	return w.err
}

// Package datetime turns user-supplied date, time and zone strings into
// zone-aware instants.
package datetime

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/okian/cosmicpos/internal/domain/spacetime"
)

// DefaultClock is used when no time of day is given.
const DefaultClock = "12:00:00"

// ParseInstant parses date (YYYY-MM-DD), clock (HH, HH:MM or HH:MM:SS, empty
// for noon) and zone (IANA name or abbreviation, empty for UTC).
//
// Calendar fields that do not form a real date or time of day fail with an
// error wrapping spacetime.ErrInvalidTimestamp, as does the instant
// 0001-01-01T00:00:00Z, which is Go's zero time. Unknown zones fail with
// ErrUnknownTimezone.
func ParseInstant(date, clock, zone string) (time.Time, error) {
	y, mo, d, err := parseDate(date)
	if err != nil {
		return time.Time{}, err
	}
	if strings.TrimSpace(clock) == "" {
		clock = DefaultClock
	}
	h, mi, s, err := parseClock(clock)
	if err != nil {
		return time.Time{}, err
	}
	loc, err := LoadZone(zone)
	if err != nil {
		return time.Time{}, err
	}

	// time.Date normalises overflow; a real calendar value survives unchanged.
	probe := time.Date(y, time.Month(mo), d, h, mi, s, 0, time.UTC)
	py, pm, pd := probe.Date()
	ph, pmi, ps := probe.Clock()
	if py != y || int(pm) != mo || pd != d || ph != h || pmi != mi || ps != s {
		return time.Time{}, fmt.Errorf("%w: %s %s is not a valid calendar value", spacetime.ErrInvalidTimestamp, date, clock)
	}
	t := time.Date(y, time.Month(mo), d, h, mi, s, 0, loc)
	if t.IsZero() {
		return time.Time{}, fmt.Errorf("%w: 0001-01-01T00:00:00Z is reserved for an unset time", spacetime.ErrInvalidTimestamp)
	}
	return t, nil
}

func parseDate(date string) (y, m, d int, err error) {
	parts := strings.Split(strings.TrimSpace(date), "-")
	if len(parts) != 3 {
		return 0, 0, 0, fmt.Errorf("%w: date %q must be YYYY-MM-DD", spacetime.ErrInvalidTimestamp, date)
	}
	vals, err := atoiAll(parts)
	if err != nil {
		return 0, 0, 0, fmt.Errorf("%w: date %q: %v", spacetime.ErrInvalidTimestamp, date, err)
	}
	if vals[0] < 1 || vals[0] > 9999 {
		return 0, 0, 0, fmt.Errorf("%w: year %d out of range", spacetime.ErrInvalidTimestamp, vals[0])
	}
	return vals[0], vals[1], vals[2], nil
}

func parseClock(clock string) (h, m, s int, err error) {
	parts := strings.Split(strings.TrimSpace(clock), ":")
	if len(parts) > 3 {
		return 0, 0, 0, fmt.Errorf("%w: time %q must be HH[:MM[:SS]]", spacetime.ErrInvalidTimestamp, clock)
	}
	vals, err := atoiAll(parts)
	if err != nil {
		return 0, 0, 0, fmt.Errorf("%w: time %q: %v", spacetime.ErrInvalidTimestamp, clock, err)
	}
	for len(vals) < 3 {
		vals = append(vals, 0)
	}
	return vals[0], vals[1], vals[2], nil
}

func atoiAll(parts []string) ([]int, error) {
	out := make([]int, len(parts))
	for i, p := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return nil, err
		}
		out[i] = n
	}
	return out, nil
}

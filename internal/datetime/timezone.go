package datetime

import (
	"fmt"
	"strings"
	"time"
)

var zoneAliases = map[string]string{
	"eastern":  "America/New_York",
	"est":      "America/New_York",
	"edt":      "America/New_York",
	"et":       "America/New_York",
	"central":  "America/Chicago",
	"cst":      "America/Chicago",
	"cdt":      "America/Chicago",
	"ct":       "America/Chicago",
	"mountain": "America/Denver",
	"mst":      "America/Denver",
	"mdt":      "America/Denver",
	"mt":       "America/Denver",
	"pacific":  "America/Los_Angeles",
	"pst":      "America/Los_Angeles",
	"pdt":      "America/Los_Angeles",
	"pt":       "America/Los_Angeles",
	"alaska":   "America/Anchorage",
	"akst":     "America/Anchorage",
	"akdt":     "America/Anchorage",
	"hawaii":   "Pacific/Honolulu",
	"hst":      "Pacific/Honolulu",
	"gmt":      "GMT",
	"utc":      "UTC",
	"bst":      "Europe/London",
	"cet":      "Europe/Paris",
	"jst":      "Asia/Tokyo",
	"aest":     "Australia/Sydney",
}

// NormalizeTimezone maps common abbreviations (case-insensitive) to IANA
// names. Anything else is returned unchanged.
func NormalizeTimezone(name string) string {
	if z, ok := zoneAliases[strings.ToLower(strings.TrimSpace(name))]; ok {
		return z
	}
	return name
}

// LoadZone resolves a zone name or abbreviation. Empty means UTC.
func LoadZone(name string) (*time.Location, error) {
	if strings.TrimSpace(name) == "" {
		return time.UTC, nil
	}
	loc, err := time.LoadLocation(NormalizeTimezone(name))
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrUnknownTimezone, name)
	}
	return loc, nil
}

package geocoding

import (
	"strings"
	"unicode"
)

// Query is a comma-separated location split into its likely parts.
type Query struct {
	City    string
	State   string
	Zip     string
	Country string
	Full    string
}

// ParseQuery splits "City, State, Zip-or-Country, Country". The third part
// is treated as a postal code when it is numeric or starts with five digits.
func ParseQuery(input string) Query {
	q := Query{Full: strings.TrimSpace(input)}
	raw := strings.Split(input, ",")
	parts := make([]string, len(raw))
	for i, p := range raw {
		parts[i] = strings.TrimSpace(p)
	}
	if len(parts) >= 1 {
		q.City = parts[0]
	}
	if len(parts) >= 2 {
		q.State = parts[1]
	}
	if len(parts) >= 3 {
		if looksLikePostalCode(parts[2]) {
			q.Zip = parts[2]
		} else {
			q.Country = parts[2]
		}
	}
	if len(parts) >= 4 {
		q.Country = parts[3]
	}
	return q
}

// Components joins the non-empty parts with ", ".
func (q Query) Components() string {
	var parts []string
	for _, p := range []string{q.City, q.State, q.Zip, q.Country} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, ", ")
}

// Candidates lists the strings to try in order: the full input, the joined
// components, then the country alone. Duplicates and blanks are dropped.
func (q Query) Candidates() []string {
	seen := make(map[string]bool, 3)
	var out []string
	for _, c := range []string{q.Full, q.Components(), q.Country} {
		key := strings.ToLower(c)
		if c == "" || seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, c)
	}
	return out
}

func looksLikePostalCode(s string) bool {
	if s == "" {
		return false
	}
	if allDigits(s) {
		return true
	}
	return len(s) >= 5 && allDigits(s[:5])
}

func allDigits(s string) bool {
	for _, r := range s {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}

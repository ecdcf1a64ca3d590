package probe

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"

	"github.com/google/uuid"

	"github.com/okian/cosmicpos/pkg/logger"
)

// Constants for random number generation.
const (
	randomFloatDivisor = 1000000
	minBirthYear       = 1900
	birthYearSpan      = 120
	minCurrentYear     = 2000
	currentYearSpan    = 50
	maxDay             = 28
)

var timezones = []string{
	"UTC", "Eastern", "Central", "Mountain", "Pacific", "Alaska", "Hawaii",
	"GMT", "BST", "CET", "JST", "AEST", "Europe/Berlin", "Asia/Kolkata",
	"America/Sao_Paulo", "Africa/Nairobi",
}

// getRandomFloat returns a random float64 in [0, 1) using crypto/rand.
func getRandomFloat() float64 {
	n, _ := rand.Int(rand.Reader, big.NewInt(randomFloatDivisor))
	return float64(n.Int64()) / float64(randomFloatDivisor)
}

func randomInt(n int) int {
	v, _ := rand.Int(rand.Reader, big.NewInt(int64(n)))
	return int(v.Int64())
}

func randomDate(minYear, span int) string {
	return fmt.Sprintf("%04d-%02d-%02d", minYear+randomInt(span), 1+randomInt(12), 1+randomInt(maxDay))
}

func randomClock() string {
	return fmt.Sprintf("%02d:%02d:%02d", randomInt(24), randomInt(60), randomInt(60))
}

func randomLatitude() float64  { return -90 + getRandomFloat()*180 }
func randomLongitude() float64 { return -180 + getRandomFloat()*360 }

// generateRequests creates n random, valid calculate requests.
func generateRequests(ctx context.Context, n int, stats *Stats) ([]Request, error) {
	logger.Get().Info(ctx, "generating calculate requests", logger.Int("count", n))

	reqs := make([]Request, n)
	for i := range reqs {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("context cancelled during generation: %w", err)
		}
		reqs[i] = generateSingleRequest()
	}

	stats.Generated = len(reqs)
	return reqs, nil
}

// generateSingleRequest covers the four current-event shapes: both given,
// only a date, only a location, or neither.
func generateSingleRequest() Request {
	label := uuid.NewString()
	r := Request{
		Label:          label,
		BirthDate:      randomDate(minBirthYear, birthYearSpan),
		BirthTime:      randomClock(),
		BirthTimezone:  timezones[randomInt(len(timezones))],
		BirthLatitude:  randomLatitude(),
		BirthLongitude: randomLongitude(),
		BirthAddress:   "probe " + label,
	}

	shape := randomInt(4)
	if shape&1 == 1 {
		date := randomDate(minCurrentYear, currentYearSpan)
		clock := randomClock()
		zone := timezones[randomInt(len(timezones))]
		r.CurrentDate, r.CurrentTime, r.CurrentTimezone = &date, &clock, &zone
	}
	if shape&2 == 2 {
		lat, lon := randomLatitude(), randomLongitude()
		addr := "probe current " + label
		r.CurrentLatitude, r.CurrentLongitude, r.CurrentAddress = &lat, &lon, &addr
	}
	return r
}

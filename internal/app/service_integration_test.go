package service_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/okian/cosmicpos/internal/adapters/geocoding"
	service "github.com/okian/cosmicpos/internal/app"
	"github.com/okian/cosmicpos/pkg/logger"
)

// nominatimStub answers known places and returns an empty list otherwise.
func nominatimStub(hits *atomic.Int32) *httptest.Server {
	places := map[string]string{
		"kansas city, mo": `[{"lat":"39.0997","lon":"-94.5786","display_name":"Kansas City, Missouri, United States"}]`,
		"boulder, co":     `[{"lat":"40.0150","lon":"-105.2705","display_name":"Boulder, Colorado, United States"}]`,
		"france":          `[{"lat":"46.6034","lon":"1.8883","display_name":"France"}]`,
	}
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		body, ok := places[strings.ToLower(r.URL.Query().Get("q"))]
		if !ok {
			body = `[]`
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(body))
	}))
}

func TestServiceIntegration(t *testing.T) {
	Convey("Given a service wired to a geocoding pipeline", t, func() {
		var hits atomic.Int32
		srv := nominatimStub(&hits)
		defer srv.Close()

		client := geocoding.NewClient(
			geocoding.WithBaseURL(srv.URL),
			geocoding.WithBackoff(0),
			geocoding.WithRateLimit(0),
			geocoding.WithLogger(logger.Nop()),
		)
		resolver := geocoding.NewResolver(geocoding.NewCachedLookup(client, 16), logger.Nop())
		svc := service.New(
			service.WithLogger(logger.Nop()),
			service.WithGeocoder(resolver),
		)

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		Convey("When geocoding both places and calculating", func() {
			birth, err := svc.Geocode(ctx, "Kansas City, MO")
			So(err, ShouldBeNil)
			current, err := svc.Geocode(ctx, "Boulder, CO")
			So(err, ShouldBeNil)

			calc, err := svc.Calculate(ctx, service.CalculateInput{
				Birth: service.EventInput{
					Date:      "1971-11-17",
					Time:      "06:00:00",
					Timezone:  "Mountain",
					Latitude:  &birth.Latitude,
					Longitude: &birth.Longitude,
					Address:   birth.Label,
				},
				Current: service.EventInput{
					Date:      "2025-10-09",
					Latitude:  &current.Latitude,
					Longitude: &current.Longitude,
					Address:   current.Label,
				},
			})
			So(err, ShouldBeNil)

			Convey("Then the resolved labels flow into the result", func() {
				So(calc.Result.Birth.Event.Location.Label, ShouldEqual, "Kansas City, Missouri, United States")
				So(calc.Result.Current.Event.Location.Label, ShouldEqual, "Boulder, Colorado, United States")
				So(calc.Result.MagnitudeKm, ShouldBeBetween, 1e12, 1e13)
			})
		})

		Convey("When the same place is geocoded twice", func() {
			_, err := svc.Geocode(ctx, "Kansas City, MO")
			So(err, ShouldBeNil)
			_, err = svc.Geocode(ctx, "kansas city, mo")
			So(err, ShouldBeNil)

			Convey("Then the upstream is hit once", func() {
				So(hits.Load(), ShouldEqual, int32(1))
			})
		})

		Convey("When only the country is known", func() {
			loc, err := svc.Geocode(ctx, "Nowhere, Region, France")
			So(err, ShouldBeNil)

			Convey("Then the country fallback is used", func() {
				So(loc.Label, ShouldEqual, "France")
				So(hits.Load(), ShouldEqual, int32(2))
			})
		})

		Convey("When the place does not exist", func() {
			_, err := svc.Geocode(ctx, "Atlantis")
			So(err, ShouldWrap, geocoding.ErrNotFound)
		})

		Convey("When many calculations run concurrently", func() {
			var wg sync.WaitGroup
			var failed atomic.Int32
			for i := 0; i < 32; i++ {
				wg.Add(1)
				go func() {
					defer wg.Done()
					if _, err := svc.Calculate(ctx, kansasCityInput()); err != nil {
						failed.Add(1)
					}
				}()
			}
			wg.Wait()

			Convey("Then all succeed and are counted", func() {
				So(failed.Load(), ShouldEqual, int32(0))
				So(svc.GetStats()["calculations"], ShouldEqual, int64(32))
			})
		})
	})
}

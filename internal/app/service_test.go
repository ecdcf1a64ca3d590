package service_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"
	_ "time/tzdata"

	"github.com/jonboulle/clockwork"
	. "github.com/smartystreets/goconvey/convey"

	service "github.com/okian/cosmicpos/internal/app"
	"github.com/okian/cosmicpos/internal/datetime"
	"github.com/okian/cosmicpos/internal/domain/spacetime"
	"github.com/okian/cosmicpos/pkg/logger"
	"github.com/okian/cosmicpos/pkg/metrics"
)

func init() {
	// Initialize logging for tests
	err := logger.Init()
	if err != nil {
		panic(err)
	}
}

func ptr(f float64) *float64 { return &f }

func kansasCityInput() service.CalculateInput {
	return service.CalculateInput{
		Birth: service.EventInput{
			Date:      "1971-11-17",
			Time:      "06:00:00",
			Timezone:  "Mountain",
			Latitude:  ptr(39.1001),
			Longitude: ptr(-94.5781),
			Address:   "Kansas City, MO, USA",
		},
		Current: service.EventInput{
			Date:      "2025-10-09",
			Time:      "12:00",
			Timezone:  "utc",
			Latitude:  ptr(40.0150),
			Longitude: ptr(-105.2705),
			Address:   "Boulder, CO, USA",
		},
	}
}

type stubGeocoder struct {
	loc spacetime.Location
	err error
}

func (g stubGeocoder) Resolve(_ context.Context, _ string) (spacetime.Location, error) {
	return g.loc, g.err
}

func TestService_New(t *testing.T) {
	Convey("Given a new service with default options", t, func() {
		svc := service.New()

		Convey("Then it should have sensible defaults", func() {
			So(svc, ShouldNotBeNil)
			So(svc.GeocoderEnabled(), ShouldBeFalse)
			stats := svc.GetStats()
			So(stats["referenceZone"], ShouldEqual, "UTC")
			So(stats["calculations"], ShouldEqual, int64(0))
		})
	})
}

func TestService_Calculate(t *testing.T) {
	Convey("Given a service", t, func() {
		svc := service.New(service.WithLogger(logger.Nop()))
		ctx := context.Background()

		Convey("When calculating the Kansas City to Boulder journey", func() {
			calc, err := svc.Calculate(ctx, kansasCityInput())
			So(err, ShouldBeNil)
			res := calc.Result

			Convey("Then the birth instant honours the timezone alias", func() {
				want := time.Date(1971, time.November, 17, 13, 0, 0, 0, time.UTC)
				So(res.Birth.Event.Instant.Equal(want), ShouldBeTrue)
			})

			Convey("Then elapsed time is about 53.9 years", func() {
				So(res.ElapsedYears, ShouldAlmostEqual, 53.89, 0.01)
			})

			Convey("Then derived figures agree with the result", func() {
				So(calc.Speed.KmS, ShouldEqual, res.Birth.Velocities.TotalMagnitude())
				So(calc.Perspective.DistanceKm, ShouldEqual, res.MagnitudeKm)
				So(len(calc.Spacecraft), ShouldEqual, 5)
				So(calc.Spacecraft[0].Name, ShouldEqual, "Parker Solar Probe")
			})

			Convey("Then the success is counted", func() {
				So(svc.GetStats()["calculations"], ShouldEqual, int64(1))
			})
		})

		Convey("When the birth address is blank", func() {
			in := kansasCityInput()
			in.Birth.Address = "  "
			calc, err := svc.Calculate(ctx, in)
			So(err, ShouldBeNil)
			So(calc.Result.Birth.Event.Location.Label, ShouldEqual, service.UnknownAddress)
		})

		Convey("When the birth time is omitted", func() {
			in := kansasCityInput()
			in.Birth.Time = ""
			in.Birth.Timezone = ""
			calc, err := svc.Calculate(ctx, in)
			So(err, ShouldBeNil)
			So(calc.Result.Birth.Event.Instant.Hour(), ShouldEqual, 12)
		})

		Convey("When required fields are missing", func() {
			in := kansasCityInput()
			in.Birth.Date = ""
			_, err := svc.Calculate(ctx, in)
			So(errors.Is(err, service.ErrMissingField), ShouldBeTrue)

			in = kansasCityInput()
			in.Birth.Longitude = nil
			_, err = svc.Calculate(ctx, in)
			So(errors.Is(err, service.ErrMissingField), ShouldBeTrue)
			So(err.Error(), ShouldContainSubstring, "birth_longitude")
		})

		Convey("When the birth latitude is out of range", func() {
			in := kansasCityInput()
			in.Birth.Latitude = ptr(91)
			_, err := svc.Calculate(ctx, in)
			So(errors.Is(err, spacetime.ErrInvalidLocation), ShouldBeTrue)
			So(service.Outcome(err), ShouldEqual, metrics.OutcomeInvalid)
		})

		Convey("When the birth date is not a calendar date", func() {
			in := kansasCityInput()
			in.Birth.Date = "2023-02-30"
			_, err := svc.Calculate(ctx, in)
			So(errors.Is(err, spacetime.ErrInvalidTimestamp), ShouldBeTrue)
		})

		Convey("When the timezone is unknown", func() {
			in := kansasCityInput()
			in.Birth.Timezone = "Mars/Olympus_Mons"
			_, err := svc.Calculate(ctx, in)
			So(errors.Is(err, datetime.ErrUnknownTimezone), ShouldBeTrue)
			So(service.Outcome(err), ShouldEqual, metrics.OutcomeInvalid)
			So(svc.GetStats()["failures"], ShouldEqual, int64(1))
		})
	})
}

func TestService_CurrentDefaults(t *testing.T) {
	Convey("Given a service with a fake clock", t, func() {
		now := time.Date(2030, time.March, 3, 3, 3, 3, 0, time.UTC)
		svc := service.New(
			service.WithLogger(logger.Nop()),
			service.WithClock(clockwork.NewFakeClockAt(now)),
		)

		Convey("When no current event is given", func() {
			in := kansasCityInput()
			in.Current = service.EventInput{}
			calc, err := svc.Calculate(context.Background(), in)
			So(err, ShouldBeNil)

			Convey("Then the clock and birth location are used", func() {
				So(calc.Result.Current.Event.Instant.Equal(now), ShouldBeTrue)
				So(calc.Result.Current.Event.Location, ShouldResemble, calc.Result.Birth.Event.Location)
			})
		})

		Convey("When only the current location is given", func() {
			in := kansasCityInput()
			in.Current.Date = ""
			calc, err := svc.Calculate(context.Background(), in)
			So(err, ShouldBeNil)
			So(calc.Result.Current.Event.Instant.Equal(now), ShouldBeTrue)
			So(calc.Result.Current.Event.Location.Label, ShouldEqual, "Boulder, CO, USA")
		})

		Convey("When the current latitude has no longitude", func() {
			in := kansasCityInput()
			in.Current.Longitude = nil
			_, err := svc.Calculate(context.Background(), in)
			So(errors.Is(err, service.ErrMissingField), ShouldBeTrue)
		})
	})
}

func TestService_Report(t *testing.T) {
	Convey("Given a service", t, func() {
		svc := service.New(service.WithLogger(logger.Nop()))

		Convey("When rendering a report", func() {
			out, err := svc.Report(context.Background(), kansasCityInput())
			So(err, ShouldBeNil)

			Convey("Then it contains both events", func() {
				text := string(out)
				So(text, ShouldContainSubstring, "COSMIC POSITION REPORT")
				So(text, ShouldContainSubstring, "Location: Kansas City, MO, USA")
				So(strings.Count(text, "TOTAL VELOCITY"), ShouldEqual, 2)
				So(svc.GetStats()["reports"], ShouldEqual, int64(1))
			})
		})

		Convey("When the input is invalid", func() {
			in := kansasCityInput()
			in.Birth.Date = "not-a-date"
			_, err := svc.Report(context.Background(), in)
			So(err, ShouldNotBeNil)
		})
	})
}

func TestService_Geocode(t *testing.T) {
	Convey("Given a service without a geocoder", t, func() {
		svc := service.New(service.WithLogger(logger.Nop()))
		_, err := svc.Geocode(context.Background(), "Paris")
		So(err, ShouldEqual, service.ErrGeocoderDisabled)
	})

	Convey("Given a service with a geocoder", t, func() {
		want := spacetime.Location{Latitude: 48.85, Longitude: 2.35, Label: "Paris, France"}
		svc := service.New(
			service.WithLogger(logger.Nop()),
			service.WithGeocoder(stubGeocoder{loc: want}),
		)

		loc, err := svc.Geocode(context.Background(), "Paris")
		So(err, ShouldBeNil)
		So(loc, ShouldResemble, want)
		So(svc.GeocoderEnabled(), ShouldBeTrue)
		So(svc.GetStats()["geocodes"], ShouldEqual, int64(1))
	})

	Convey("Given a failing geocoder", t, func() {
		boom := errors.New("boom")
		svc := service.New(
			service.WithLogger(logger.Nop()),
			service.WithGeocoder(stubGeocoder{err: boom}),
		)
		_, err := svc.Geocode(context.Background(), "Paris")
		So(err, ShouldEqual, boom)
	})
}

func TestService_Forces(t *testing.T) {
	Convey("Given a service", t, func() {
		svc := service.New(service.WithLogger(logger.Nop()))
		cat, err := svc.Forces(context.Background())
		So(err, ShouldBeNil)
		So(len(cat.Categories), ShouldEqual, 6)
	})
}

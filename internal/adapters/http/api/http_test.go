package api_test

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	_ "time/tzdata"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/okian/cosmicpos/internal/adapters/geocoding"
	"github.com/okian/cosmicpos/internal/adapters/http/api"
	service "github.com/okian/cosmicpos/internal/app"
	"github.com/okian/cosmicpos/internal/domain/forces"
	"github.com/okian/cosmicpos/internal/domain/spacetime"
	"github.com/okian/cosmicpos/pkg/logger"
)

const kansasCityBody = `{
	"birth_date": "1971-11-17",
	"birth_time": "06:00:00",
	"birth_timezone": "Mountain",
	"birth_latitude": 39.1001,
	"birth_longitude": -94.5781,
	"birth_address": "Kansas City, MO, USA",
	"current_date": "2025-10-09",
	"current_time": null,
	"current_timezone": null,
	"current_latitude": 40.0150,
	"current_longitude": -105.2705,
	"current_address": "Boulder, CO, USA"
}`

type mockGeocoder struct {
	loc spacetime.Location
	err error
}

func (m mockGeocoder) Resolve(_ context.Context, _ string) (spacetime.Location, error) {
	return m.loc, m.err
}

// failingDeps returns err from every operation.
type failingDeps struct {
	err error
}

func (f failingDeps) Calculate(context.Context, service.CalculateInput) (service.Calculation, error) {
	return service.Calculation{}, f.err
}

func (f failingDeps) Report(context.Context, service.CalculateInput) ([]byte, error) {
	return nil, f.err
}

func (f failingDeps) Geocode(context.Context, string) (spacetime.Location, error) {
	return spacetime.Location{}, f.err
}

func (f failingDeps) Forces(context.Context) (forces.Catalog, error) {
	return forces.Catalog{}, f.err
}

type mockStatsProvider struct {
	stats map[string]interface{}
}

func (m *mockStatsProvider) GetStats() map[string]interface{} {
	return m.stats
}

func newMux(deps api.Dependencies) *http.ServeMux {
	mux := http.NewServeMux()
	stats := &mockStatsProvider{stats: map[string]interface{}{"calculations": 3}}
	api.NewServer(deps, stats, api.WithMaxBodyBytes(4096)).Register(context.Background(), mux)
	return mux
}

func newService(g service.Geocoder) *service.Service {
	opts := []service.Option{service.WithLogger(logger.Nop())}
	if g != nil {
		opts = append(opts, service.WithGeocoder(g))
	}
	return service.New(opts...)
}

func do(mux http.Handler, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, req)
	return w
}

func decode(w *httptest.ResponseRecorder) map[string]any {
	var out map[string]any
	So(json.Unmarshal(w.Body.Bytes(), &out), ShouldBeNil)
	return out
}

func TestServer_Register(t *testing.T) {
	Convey("Given a registered server", t, func() {
		mux := newMux(newService(nil))

		Convey("Then the health endpoint reports healthy", func() {
			w := do(mux, http.MethodGet, "/api/health", "")
			So(w.Code, ShouldEqual, http.StatusOK)
			body := decode(w)
			So(body["status"], ShouldEqual, "healthy")
			So(body["service"], ShouldEqual, api.ServiceName)
		})

		Convey("Then /metrics and /healthz expose Prometheus text", func() {
			for _, path := range []string{"/metrics", "/healthz"} {
				w := do(mux, http.MethodGet, path, "")
				So(w.Code, ShouldEqual, http.StatusOK)
				So(w.Body.String(), ShouldContainSubstring, "cosmicpos_")
			}
		})

		Convey("Then stats are served as JSON", func() {
			w := do(mux, http.MethodGet, "/api/stats", "")
			So(w.Code, ShouldEqual, http.StatusOK)
			So(decode(w)["calculations"], ShouldEqual, 3.0)
		})

		Convey("Then every response carries a request id", func() {
			w := do(mux, http.MethodGet, "/api/health", "")
			So(w.Header().Get(api.RequestIDHeader), ShouldNotBeBlank)

			req := httptest.NewRequest(http.MethodGet, "/api/health", http.NoBody)
			req.Header.Set(api.RequestIDHeader, "abc-123")
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, req)
			So(rec.Header().Get(api.RequestIDHeader), ShouldEqual, "abc-123")
		})
	})

	Convey("Given a nil mux", t, func() {
		So(func() {
			api.NewServer(newService(nil), &mockStatsProvider{}).Register(context.Background(), nil)
		}, ShouldPanic)
	})
}

func TestCalculateHandler(t *testing.T) {
	Convey("Given a server backed by the real service", t, func() {
		mux := newMux(newService(nil))

		Convey("When posting the Kansas City journey", func() {
			w := do(mux, http.MethodPost, "/api/calculate", kansasCityBody)
			So(w.Code, ShouldEqual, http.StatusOK)
			body := decode(w)

			Convey("Then the response has every section", func() {
				So(body["success"], ShouldEqual, true)
				for _, key := range []string{"birth", "current", "displacement", "speed", "perspective", "spacecraft_comparisons"} {
					So(body, ShouldContainKey, key)
				}
			})

			Convey("Then the birth datetime keeps its offset", func() {
				birth := body["birth"].(map[string]any)
				So(birth["datetime"], ShouldEqual, "1971-11-17T06:00:00-07:00")
				velocities := birth["velocities"].(map[string]any)
				So(velocities, ShouldContainKey, "earth_rotation")
				So(velocities, ShouldContainKey, "total")
				So(len(velocities), ShouldEqual, 10)
			})

			Convey("Then the displacement is consistent", func() {
				d := body["displacement"].(map[string]any)
				So(d["magnitude_km"].(float64), ShouldBeBetween, 1e12, 1e13)
				So(d["time_elapsed_years"].(float64), ShouldAlmostEqual, 53.89, 0.01)
				So(len(d["vector_km"].([]any)), ShouldEqual, 3)
			})

			Convey("Then spacecraft are fastest first", func() {
				crafts := body["spacecraft_comparisons"].([]any)
				So(len(crafts), ShouldEqual, 5)
				So(crafts[0].(map[string]any)["name"], ShouldEqual, "Parker Solar Probe")
			})
		})

		Convey("When the current event is omitted", func() {
			w := do(mux, http.MethodPost, "/api/calculate",
				`{"birth_date":"2000-01-01","birth_latitude":0,"birth_longitude":0}`)
			So(w.Code, ShouldEqual, http.StatusOK)
			cur := decode(w)["current"].(map[string]any)
			So(cur["location"].(map[string]any)["address"], ShouldEqual, service.UnknownAddress)
		})

		Convey("When the body is not JSON", func() {
			w := do(mux, http.MethodPost, "/api/calculate", `{`)
			So(w.Code, ShouldEqual, http.StatusBadRequest)
			body := decode(w)
			So(body["success"], ShouldEqual, false)
			So(body["code"], ShouldEqual, "bad_request")
		})

		Convey("When required fields are missing", func() {
			w := do(mux, http.MethodPost, "/api/calculate", `{"birth_latitude":1,"birth_longitude":1}`)
			So(w.Code, ShouldEqual, http.StatusBadRequest)
			So(decode(w)["error"], ShouldContainSubstring, "missing birth_date")
		})

		Convey("When the latitude is out of range", func() {
			w := do(mux, http.MethodPost, "/api/calculate",
				`{"birth_date":"2000-01-01","birth_latitude":95,"birth_longitude":0}`)
			So(w.Code, ShouldEqual, http.StatusBadRequest)
			body := decode(w)
			So(body["code"], ShouldEqual, "invalid_location")
			So(body["error"], ShouldContainSubstring, "latitude 95 outside [-90, 90]")
		})

		Convey("When the current longitude is out of range", func() {
			w := do(mux, http.MethodPost, "/api/calculate",
				`{"birth_date":"2000-01-01","birth_latitude":0,"birth_longitude":0,"current_latitude":0,"current_longitude":200}`)
			So(w.Code, ShouldEqual, http.StatusBadRequest)
			body := decode(w)
			So(body["code"], ShouldEqual, "invalid_location")
			So(body["error"], ShouldContainSubstring, "current")
		})

		Convey("When the date is not a calendar date", func() {
			w := do(mux, http.MethodPost, "/api/calculate",
				`{"birth_date":"2023-02-30","birth_latitude":0,"birth_longitude":0}`)
			So(w.Code, ShouldEqual, http.StatusBadRequest)
			So(decode(w)["code"], ShouldEqual, "invalid_timestamp")
		})

		Convey("When the date is not a date at all", func() {
			w := do(mux, http.MethodPost, "/api/calculate",
				`{"birth_date":"yesterday","birth_latitude":0,"birth_longitude":0}`)
			So(w.Code, ShouldEqual, http.StatusBadRequest)
			So(decode(w)["code"], ShouldEqual, "invalid_timestamp")
		})

		Convey("When the date has unpadded month and day", func() {
			w := do(mux, http.MethodPost, "/api/calculate",
				`{"birth_date":"1971-1-7","birth_latitude":0,"birth_longitude":0,"current_date":"1971-1-8"}`)
			So(w.Code, ShouldEqual, http.StatusOK)
			So(decode(w)["birth"].(map[string]any)["datetime"], ShouldEqual, "1971-01-07T12:00:00Z")
		})

		Convey("When the time is out of range", func() {
			w := do(mux, http.MethodPost, "/api/calculate",
				`{"birth_date":"2023-02-03","birth_time":"25:00","birth_latitude":0,"birth_longitude":0}`)
			So(w.Code, ShouldEqual, http.StatusBadRequest)
			So(decode(w)["code"], ShouldEqual, "invalid_timestamp")
		})

		Convey("When the timezone is unknown", func() {
			w := do(mux, http.MethodPost, "/api/calculate",
				`{"birth_date":"2023-02-03","birth_timezone":"Nowhere/Land","birth_latitude":0,"birth_longitude":0}`)
			So(w.Code, ShouldEqual, http.StatusBadRequest)
			So(decode(w)["code"], ShouldEqual, "invalid_timestamp")
		})

		Convey("When the current latitude has no longitude", func() {
			w := do(mux, http.MethodPost, "/api/calculate",
				`{"birth_date":"2023-02-03","birth_latitude":0,"birth_longitude":0,"current_latitude":10}`)
			So(w.Code, ShouldEqual, http.StatusBadRequest)
			So(decode(w)["error"], ShouldContainSubstring, "current_longitude")
		})

		Convey("When the body exceeds the limit", func() {
			big := fmt.Sprintf(`{"birth_date":"2000-01-01","birth_address":"%s"}`, strings.Repeat("x", 5000))
			w := do(mux, http.MethodPost, "/api/calculate", big)
			So(w.Code, ShouldEqual, http.StatusBadRequest)
		})

		Convey("When using the wrong method", func() {
			w := do(mux, http.MethodGet, "/api/calculate", "")
			So(w.Code, ShouldEqual, http.StatusMethodNotAllowed)
		})
	})

	Convey("Given a service that overflows", t, func() {
		mux := newMux(failingDeps{err: fmt.Errorf("%w: huge", spacetime.ErrArithmeticOverflow)})
		w := do(mux, http.MethodPost, "/api/calculate",
			`{"birth_date":"2000-01-01","birth_latitude":0,"birth_longitude":0}`)
		So(w.Code, ShouldEqual, http.StatusUnprocessableEntity)
		So(decode(w)["code"], ShouldEqual, "arithmetic_overflow")
	})

	Convey("Given a service that fails unexpectedly", t, func() {
		mux := newMux(failingDeps{err: errors.New("boom")})
		w := do(mux, http.MethodPost, "/api/calculate",
			`{"birth_date":"2000-01-01","birth_latitude":0,"birth_longitude":0}`)
		So(w.Code, ShouldEqual, http.StatusInternalServerError)
		So(decode(w)["request_id"], ShouldNotBeBlank)
	})
}

func TestReportHandler(t *testing.T) {
	Convey("Given a server backed by the real service", t, func() {
		mux := newMux(newService(nil))

		Convey("When posting a journey", func() {
			w := do(mux, http.MethodPost, "/api/report", kansasCityBody)

			Convey("Then a text report is returned", func() {
				So(w.Code, ShouldEqual, http.StatusOK)
				So(w.Header().Get("Content-Type"), ShouldEqual, "text/plain; charset=utf-8")
				So(w.Body.String(), ShouldContainSubstring, "COSMIC POSITION REPORT")
				So(w.Body.String(), ShouldContainSubstring, "Location: Boulder, CO, USA")
			})
		})

		Convey("When the request is invalid", func() {
			w := do(mux, http.MethodPost, "/api/report", `{}`)
			So(w.Code, ShouldEqual, http.StatusBadRequest)
			So(w.Header().Get("Content-Type"), ShouldStartWith, "application/json")
		})
	})
}

func TestGeocodeHandler(t *testing.T) {
	Convey("Given a server with a geocoder", t, func() {
		want := spacetime.Location{Latitude: 39.0997, Longitude: -94.5786, Label: "Kansas City, Missouri"}
		mux := newMux(newService(mockGeocoder{loc: want}))

		Convey("When geocoding a place", func() {
			w := do(mux, http.MethodPost, "/api/geocode", `{"location":"Kansas City, MO"}`)
			So(w.Code, ShouldEqual, http.StatusOK)
			body := decode(w)
			So(body["success"], ShouldEqual, true)
			So(body["latitude"], ShouldEqual, 39.0997)
			So(body["longitude"], ShouldEqual, -94.5786)
			So(body["address"], ShouldEqual, "Kansas City, Missouri")
		})

		Convey("When the location is missing", func() {
			w := do(mux, http.MethodPost, "/api/geocode", `{}`)
			So(w.Code, ShouldEqual, http.StatusBadRequest)
			So(decode(w)["error"], ShouldContainSubstring, "missing location")
		})
	})

	Convey("Given a geocoder that finds nothing", t, func() {
		mux := newMux(newService(mockGeocoder{err: fmt.Errorf("%w: atlantis", geocoding.ErrNotFound)}))
		w := do(mux, http.MethodPost, "/api/geocode", `{"location":"Atlantis"}`)
		So(w.Code, ShouldEqual, http.StatusNotFound)
	})

	Convey("Given an unavailable upstream", t, func() {
		mux := newMux(newService(mockGeocoder{err: fmt.Errorf("%w: status 503", geocoding.ErrUpstream)}))
		w := do(mux, http.MethodPost, "/api/geocode", `{"location":"Paris"}`)
		So(w.Code, ShouldEqual, http.StatusBadGateway)
	})

	Convey("Given the geocoder is disabled", t, func() {
		mux := newMux(newService(nil))
		w := do(mux, http.MethodPost, "/api/geocode", `{"location":"Paris"}`)
		So(w.Code, ShouldEqual, http.StatusServiceUnavailable)
		So(decode(w)["code"], ShouldEqual, "geocoder_disabled")
	})
}

func TestForcesHandler(t *testing.T) {
	Convey("Given a server", t, func() {
		mux := newMux(newService(nil))

		Convey("When fetching the catalog", func() {
			w := do(mux, http.MethodGet, "/api/forces", "")
			So(w.Code, ShouldEqual, http.StatusOK)
			body := decode(w)

			Convey("Then every category is present", func() {
				So(body["success"], ShouldEqual, true)
				catalog := body["catalog"].(map[string]any)
				So(len(catalog), ShouldEqual, 6)
				So(catalog, ShouldContainKey, "galactic_motions")
			})
		})

		Convey("When the client accepts plain text", func() {
			req := httptest.NewRequest(http.MethodGet, "/api/forces", nil)
			req.Header.Set("Accept", "text/plain")
			w := httptest.NewRecorder()
			mux.ServeHTTP(w, req)

			Convey("Then the rendered catalog is returned", func() {
				So(w.Code, ShouldEqual, http.StatusOK)
				So(w.Header().Get("Content-Type"), ShouldStartWith, "text/plain")
				So(w.Body.String(), ShouldContainSubstring, "COMPREHENSIVE CATALOG OF FORCES AND MOTIONS")
				So(w.Body.String(), ShouldContainSubstring, "GALACTIC MOTIONS")
				So(w.Body.String(), ShouldContainSubstring, "• Gravity (Earth)")
			})
		})

		Convey("When the client prefers JSON", func() {
			req := httptest.NewRequest(http.MethodGet, "/api/forces", nil)
			req.Header.Set("Accept", "application/json, text/plain")
			w := httptest.NewRecorder()
			mux.ServeHTTP(w, req)
			So(w.Header().Get("Content-Type"), ShouldStartWith, "application/json")
		})

		Convey("When posting to the catalog", func() {
			w := do(mux, http.MethodPost, "/api/forces", "")
			So(w.Code, ShouldEqual, http.StatusMethodNotAllowed)
		})
	})
}

func TestKindError(t *testing.T) {
	Convey("Given a wrapped kind error", t, func() {
		cause := errors.New("unexpected EOF")
		err := api.WrapKind("api.calculate", api.ErrBadRequest, cause)

		Convey("Then both kind and cause are reachable", func() {
			So(errors.Is(err, api.ErrBadRequest), ShouldBeTrue)
			So(errors.Is(err, cause), ShouldBeTrue)
			So(err.Error(), ShouldEqual, "api.calculate: bad request: unexpected EOF")
		})

		Convey("Then a bare kind formats without a cause", func() {
			So(api.NewKind("api.forces", api.ErrUnsupported).Error(), ShouldEqual, "api.forces: method not allowed")
		})
	})
}

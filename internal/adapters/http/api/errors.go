package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/okian/cosmicpos/internal/adapters/geocoding"
	service "github.com/okian/cosmicpos/internal/app"
	"github.com/okian/cosmicpos/internal/datetime"
	"github.com/okian/cosmicpos/internal/domain/spacetime"
)

// Sentinel kinds for API errors.
var (
	ErrBadRequest  = errors.New("bad request")
	ErrUnsupported = errors.New("method not allowed")
)

// KindError tags an error with the operation that produced it and a
// sentinel kind that decides the HTTP status.
type KindError struct {
	Op   string
	Kind error
	Err  error
}

func (e *KindError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s: %v", e.Op, e.Kind)
	}
	return fmt.Sprintf("%s: %v: %v", e.Op, e.Kind, e.Err)
}

// Unwrap exposes both the kind and the cause to errors.Is.
func (e *KindError) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

// NewKind returns an error of the given kind.
func NewKind(op string, kind error) error {
	return &KindError{Op: op, Kind: kind}
}

// WrapKind tags err with op and kind.
func WrapKind(op string, kind, err error) error {
	return &KindError{Op: op, Kind: kind, Err: err}
}

// statusFor maps an error to its HTTP status and machine-readable code.
func statusFor(err error) (int, string) {
	switch {
	case errors.Is(err, ErrUnsupported):
		return http.StatusMethodNotAllowed, "method_not_allowed"
	case errors.Is(err, ErrBadRequest),
		errors.Is(err, service.ErrMissingField),
		errors.Is(err, geocoding.ErrEmptyQuery):
		return http.StatusBadRequest, "bad_request"
	case errors.Is(err, spacetime.ErrInvalidLocation):
		return http.StatusBadRequest, "invalid_location"
	case errors.Is(err, spacetime.ErrInvalidTimestamp),
		errors.Is(err, datetime.ErrUnknownTimezone):
		return http.StatusBadRequest, "invalid_timestamp"
	case errors.Is(err, spacetime.ErrArithmeticOverflow):
		return http.StatusUnprocessableEntity, "arithmetic_overflow"
	case errors.Is(err, geocoding.ErrNotFound):
		return http.StatusNotFound, "not_found"
	case errors.Is(err, service.ErrGeocoderDisabled):
		return http.StatusServiceUnavailable, "geocoder_disabled"
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout, "timeout"
	case errors.Is(err, geocoding.ErrUpstream):
		return http.StatusBadGateway, "upstream_error"
	default:
		return http.StatusInternalServerError, "internal_error"
	}
}

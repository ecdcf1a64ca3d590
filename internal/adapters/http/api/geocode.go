package api

import (
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/okian/cosmicpos/pkg/logger"
)

// GeocodeHandler resolves place names.
type GeocodeHandler struct {
	deps         Dependencies
	validate     *validator.Validate
	maxBodyBytes int64
	logger       logger.Logger
}

// HandleGeocode handles POST /api/geocode requests.
func (h *GeocodeHandler) HandleGeocode(w http.ResponseWriter, r *http.Request) {
	const op = "api.geocode"
	if r.Method != http.MethodPost {
		writeError(w, r, NewKind(op, ErrUnsupported))
		return
	}
	var req geocodeRequest
	if err := decodeJSON(w, r, h.maxBodyBytes, &req); err != nil {
		writeError(w, r, WrapKind(op, ErrBadRequest, err))
		return
	}
	if err := h.validate.Struct(req); err != nil {
		writeError(w, r, WrapKind(op, ErrBadRequest, describeValidation(err)))
		return
	}

	loc, err := h.deps.Geocode(r.Context(), req.Location)
	if err != nil {
		if status := writeError(w, r, fmt.Errorf("%s: %w", op, err)); status >= http.StatusInternalServerError {
			h.logger.Warn(r.Context(), "geocode failed",
				logger.String("request_id", RequestID(r.Context())),
				logger.String("location", req.Location),
				logger.Error(err))
		}
		return
	}
	writeJSON(w, http.StatusOK, geocodeResponse{
		Success:   true,
		Latitude:  loc.Latitude,
		Longitude: loc.Longitude,
		Address:   loc.Label,
	})
}

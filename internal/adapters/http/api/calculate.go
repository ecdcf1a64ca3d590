package api

import (
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"

	service "github.com/okian/cosmicpos/internal/app"
	"github.com/okian/cosmicpos/pkg/logger"
)

// CalculateHandler serves displacement calculations as JSON or text.
type CalculateHandler struct {
	deps         Dependencies
	validate     *validator.Validate
	maxBodyBytes int64
	logger       logger.Logger
}

// HandleCalculate handles POST /api/calculate requests.
func (h *CalculateHandler) HandleCalculate(w http.ResponseWriter, r *http.Request) {
	const op = "api.calculate"
	in, err := h.parse(w, r, op)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	calc, err := h.deps.Calculate(r.Context(), in)
	if err != nil {
		h.fail(w, r, fmt.Errorf("%s: %w", op, err))
		return
	}
	writeJSON(w, http.StatusOK, newCalculateResponse(calc))
}

// HandleReport handles POST /api/report requests with a plain text body.
func (h *CalculateHandler) HandleReport(w http.ResponseWriter, r *http.Request) {
	const op = "api.report"
	in, err := h.parse(w, r, op)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	text, err := h.deps.Report(r.Context(), in)
	if err != nil {
		h.fail(w, r, fmt.Errorf("%s: %w", op, err))
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(text)
}

func (h *CalculateHandler) parse(w http.ResponseWriter, r *http.Request, op string) (service.CalculateInput, error) {
	if r.Method != http.MethodPost {
		return service.CalculateInput{}, NewKind(op, ErrUnsupported)
	}
	var req calculateRequest
	if err := decodeJSON(w, r, h.maxBodyBytes, &req); err != nil {
		return service.CalculateInput{}, WrapKind(op, ErrBadRequest, err)
	}
	if err := h.validate.Struct(req); err != nil {
		return service.CalculateInput{}, WrapKind(op, ErrBadRequest, describeValidation(err))
	}
	return req.input(), nil
}

func (h *CalculateHandler) fail(w http.ResponseWriter, r *http.Request, err error) {
	if status := writeError(w, r, err); status >= http.StatusInternalServerError {
		h.logger.Error(r.Context(), "request failed",
			logger.String("request_id", RequestID(r.Context())),
			logger.Int("status", status),
			logger.Error(err))
	}
}

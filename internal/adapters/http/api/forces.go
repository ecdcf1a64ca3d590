package api

import (
	"bytes"
	"fmt"
	"mime"
	"net/http"
	"strings"

	"github.com/okian/cosmicpos/internal/domain/forces"
	"github.com/okian/cosmicpos/internal/report"
)

// ForcesHandler serves the forces catalog.
type ForcesHandler struct {
	deps Dependencies
}

type forcesResponse struct {
	Success bool           `json:"success"`
	Catalog forces.Catalog `json:"catalog"`
}

// HandleForces handles GET /api/forces requests. Clients that accept
// text/plain get the rendered catalog instead of JSON.
func (h *ForcesHandler) HandleForces(w http.ResponseWriter, r *http.Request) {
	const op = "api.forces"
	if r.Method != http.MethodGet {
		writeError(w, r, NewKind(op, ErrUnsupported))
		return
	}
	cat, err := h.deps.Forces(r.Context())
	if err != nil {
		writeError(w, r, fmt.Errorf("%s: %w", op, err))
		return
	}
	if !wantsText(r) {
		writeJSON(w, http.StatusOK, forcesResponse{Success: true, Catalog: cat})
		return
	}

	var buf bytes.Buffer
	if err := report.RenderForces(&buf, cat); err != nil {
		writeError(w, r, fmt.Errorf("%s: %w", op, err))
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes())
}

// wantsText reports whether the first media type in Accept is text/plain.
func wantsText(r *http.Request) bool {
	first, _, _ := strings.Cut(r.Header.Get("Accept"), ",")
	mt, _, err := mime.ParseMediaType(strings.TrimSpace(first))
	return err == nil && mt == "text/plain"
}

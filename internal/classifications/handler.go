package classifications

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"lexclause/internal/clause"
	"lexclause/pkg/handlers"
	"lexclause/pkg/routes"
)

// Handler provides HTTP endpoints for classification operations.
type Handler struct {
	sys    System
	logger *slog.Logger
}

// NewHandler creates a Handler with the given system and logger.
func NewHandler(sys System, logger *slog.Logger) *Handler {
	return &Handler{
		sys:    sys,
		logger: logger.With("handler", "classifications"),
	}
}

// Routes returns the route group definition for classification endpoints.
func (h *Handler) Routes() routes.Group {
	return routes.Group{
		Prefix: "",
		Routes: []routes.Route{
			{Method: "POST", Pattern: "/classify", Handler: h.Classify},
			{Method: "GET", Pattern: "/health", Handler: h.Health},
		},
	}
}

// Classify validates the request body against the request schema, resolves
// the document source, and runs the classification pipeline. Failures are
// returned in the same envelope as successes, with the error field set and
// results empty.
func (h *Handler) Classify(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		h.respondError(w, http.StatusBadRequest, fmt.Errorf("%w: %v", ErrInvalidRequest, err))
		return
	}

	if err := validateRequest(body); err != nil {
		h.respondError(w, http.StatusBadRequest, err)
		return
	}

	var req ClassifyRequest
	if err := json.Unmarshal(body, &req); err != nil {
		h.respondError(w, http.StatusBadRequest, fmt.Errorf("%w: %v", ErrInvalidRequest, err))
		return
	}

	cmd := ClassifyCommand{
		Text:        req.Text,
		Model:       req.Model,
		ClauseTypes: req.ClauseTypes,
	}

	if req.PDFBase64 != "" {
		pdf, err := base64.StdEncoding.DecodeString(req.PDFBase64)
		if err != nil {
			h.respondError(w, http.StatusBadRequest, fmt.Errorf("%w: pdf_base64 is not valid base64", ErrInvalidRequest))
			return
		}
		cmd.PDF = pdf
	}

	result, err := h.sys.Classify(r.Context(), cmd)
	if err != nil {
		h.respondError(w, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

// Health reports service readiness and the active configuration surface.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	handlers.RespondJSON(w, http.StatusOK, h.sys.Health())
}

// respondError writes the error-shaped result envelope: empty results and a
// descriptive error string, never a raw stack trace.
func (h *Handler) respondError(w http.ResponseWriter, status int, err error) {
	h.logger.Error("request failed", "status", status, "error", err)
	handlers.RespondJSON(w, status, clause.ErrorResult(err))
}

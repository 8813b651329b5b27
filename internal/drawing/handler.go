package drawing

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/monet-draw/monet/internal/auth"
	"github.com/monet-draw/monet/internal/script"
	"github.com/monet-draw/monet/internal/typeid"
)

type Handler struct {
	service        *Service
	maxScriptBytes int64
}

func NewHandler(service *Service, maxScriptBytes int64) *Handler {
	return &Handler{service: service, maxScriptBytes: maxScriptBytes}
}

// Create stores the script in the request body and its rendering.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	userID := auth.UserIDFromContext(r.Context())

	doc, err := script.Parse(http.MaxBytesReader(w, r.Body, h.maxScriptBytes))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeJSON(w, http.StatusRequestEntityTooLarge, map[string]string{"error": "script too large"})
			return
		}
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	drawing, err := h.service.Create(r.Context(), userID, doc)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, drawing)
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	userID := auth.UserIDFromContext(r.Context())

	drawings, err := h.service.List(r.Context(), userID)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, drawings)
}

func (h *Handler) GetSVG(w http.ResponseWriter, r *http.Request) {
	userID := auth.UserIDFromContext(r.Context())
	drawingID, ok := drawingIDFromPath(w, r)
	if !ok {
		return
	}

	svg, err := h.service.SVG(r.Context(), drawingID, userID)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "image/svg+xml")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(svg))
}

func (h *Handler) GetScript(w http.ResponseWriter, r *http.Request) {
	userID := auth.UserIDFromContext(r.Context())
	drawingID, ok := drawingIDFromPath(w, r)
	if !ok {
		return
	}

	doc, err := h.service.Script(r.Context(), drawingID, userID)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, doc)
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	userID := auth.UserIDFromContext(r.Context())
	drawingID, ok := drawingIDFromPath(w, r)
	if !ok {
		return
	}

	if err := h.service.Delete(r.Context(), drawingID, userID); err != nil {
		handleServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// drawingIDFromPath answers 400 when the {drawingId} path variable is not a
// drawing typeid.
func drawingIDFromPath(w http.ResponseWriter, r *http.Request) (string, bool) {
	id := mux.Vars(r)["drawingId"]
	if err := typeid.Validate(id, typeid.PrefixDrawing); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid drawing id"})
		return "", false
	}
	return id, true
}

func handleServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrNotFound):
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "not found"})
	case errors.Is(err, ErrForbidden):
		writeJSON(w, http.StatusForbidden, map[string]string{"error": "forbidden"})
	case script.IsInvalid(err):
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
	default:
		slog.Error("service error", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal error"})
	}
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

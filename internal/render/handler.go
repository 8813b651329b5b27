// Package render serves scripts and samples rendered as SVG over HTTP.
package render

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gorilla/mux"

	"github.com/monet-draw/monet/internal/canvas"
	"github.com/monet-draw/monet/internal/script"
)

type Handler struct {
	maxScriptBytes int64
	maxCommands    int
	opts           []canvas.Option
}

func NewHandler(maxScriptBytes int64, maxCommands int, opts ...canvas.Option) *Handler {
	return &Handler{maxScriptBytes: maxScriptBytes, maxCommands: maxCommands, opts: opts}
}

// Render answers a JSON script with its SVG document. The document is
// rendered in memory first so a bad command still gets a 400.
func (h *Handler) Render(w http.ResponseWriter, r *http.Request) {
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
	if err := doc.Validate(h.maxCommands); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	var buf bytes.Buffer
	if err := script.Render(&buf, doc, h.opts...); err != nil {
		if script.IsInvalid(err) {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
			return
		}
		slog.Error("render script", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal error"})
		return
	}

	if r.URL.Query().Get("download") != "" {
		w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s.svg"`, sanitizeName(doc.Name)))
	}
	w.Header().Set("Content-Type", "image/svg+xml")
	w.WriteHeader(http.StatusOK)
	w.Write(buf.Bytes())
}

type sampleInfo struct {
	Name   string `json:"name"`
	SVG    string `json:"svg"`
	Script string `json:"script"`
}

func (h *Handler) ListSamples(w http.ResponseWriter, r *http.Request) {
	names := script.SampleNames()
	samples := make([]sampleInfo, len(names))
	for i, name := range names {
		samples[i] = sampleInfo{
			Name:   name,
			SVG:    "/samples/" + name + ".svg",
			Script: "/samples/" + name + ".json",
		}
	}
	writeJSON(w, http.StatusOK, samples)
}

// SampleSVG streams a sample straight into the response.
func (h *Handler) SampleSVG(w http.ResponseWriter, r *http.Request) {
	doc, ok := h.sample(w, r)
	if !ok {
		return
	}

	w.Header().Set("Content-Type", "image/svg+xml")
	w.WriteHeader(http.StatusOK)
	if err := script.Render(w, doc, h.opts...); err != nil {
		slog.Error("render sample", "sample", doc.Name, "error", err)
	}
}

func (h *Handler) SampleScript(w http.ResponseWriter, r *http.Request) {
	doc, ok := h.sample(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, doc)
}

func (h *Handler) sample(w http.ResponseWriter, r *http.Request) (*script.Document, bool) {
	doc, err := script.Sample(mux.Vars(r)["name"])
	if err != nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": err.Error()})
		return nil, false
	}
	return doc, true
}

// sanitizeName keeps a file name to ASCII letters, digits, '-' and '_'.
func sanitizeName(name string) string {
	if name == "" {
		return "drawing"
	}
	return strings.Map(func(r rune) rune {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') || r == '-' || r == '_' {
			return r
		}
		return '-'
	}, name)
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

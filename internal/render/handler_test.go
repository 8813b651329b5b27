package render

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/monet-draw/monet/internal/canvas"
	"github.com/monet-draw/monet/internal/script"
)

func newTestRouter(maxBytes int64, maxCommands int) http.Handler {
	h := NewHandler(maxBytes, maxCommands, canvas.WithUnit("px"), canvas.WithClipIDs(func() string { return "clip" }))
	r := mux.NewRouter()
	r.HandleFunc("/render", h.Render).Methods("POST")
	r.HandleFunc("/samples", h.ListSamples).Methods("GET")
	r.HandleFunc("/samples/{name}.svg", h.SampleSVG).Methods("GET")
	r.HandleFunc("/samples/{name}.json", h.SampleScript).Methods("GET")
	return r
}

func do(h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

const triangle = `{"name": "tri angle", "width": 100, "height": 100, "commands": [
	{"op": "moveTo", "points": [{"x": 0, "y": 0}]},
	{"op": "lineTo", "points": [{"x": 100, "y": 0}]},
	{"op": "lineTo", "points": [{"x": 100, "y": 100}]},
	{"op": "closePath"},
	{"op": "strokePath"}
]}`

func TestRender(t *testing.T) {
	rec := do(newTestRouter(1<<20, 0), "POST", "/render", triangle)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "image/svg+xml", rec.Header().Get("Content-Type"))
	assert.Empty(t, rec.Header().Get("Content-Disposition"))
	assert.Contains(t, rec.Body.String(), `width="100px"`)
	assert.Contains(t, rec.Body.String(), `d="M 0,0 100,0 100,100 z"`)
}

func TestRenderDownload(t *testing.T) {
	rec := do(newTestRouter(1<<20, 0), "POST", "/render?download=1", triangle)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, `attachment; filename="tri-angle.svg"`, rec.Header().Get("Content-Disposition"))
}

func TestRenderRejects(t *testing.T) {
	tests := []struct {
		name        string
		maxBytes    int64
		maxCommands int
		body        string
		status      int
	}{
		{"bad json", 1 << 20, 0, `{"width":`, http.StatusBadRequest},
		{"too large", 16, 0, triangle, http.StatusRequestEntityTooLarge},
		{"too many commands", 1 << 20, 2, triangle, http.StatusBadRequest},
		{"bad size", 1 << 20, 0, `{"width": -1, "height": 1, "commands": []}`, http.StatusBadRequest},
		{"unknown op", 1 << 20, 0, `{"width": 1, "height": 1, "commands": [{"op": "smear"}]}`, http.StatusBadRequest},
		{"scope", 1 << 20, 0, `{"width": 1, "height": 1, "commands": [{"op": "removeClip"}]}`, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(newTestRouter(tt.maxBytes, tt.maxCommands), "POST", "/render", tt.body)
			assert.Equal(t, tt.status, rec.Code, rec.Body.String())
			assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
		})
	}
}

func TestSamples(t *testing.T) {
	r := newTestRouter(1<<20, 0)

	rec := do(r, "GET", "/samples", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var list []sampleInfo
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &list))
	require.Len(t, list, len(script.SampleNames()))
	assert.Equal(t, "/samples/"+list[0].Name+".svg", list[0].SVG)

	rec = do(r, "GET", "/samples/spirograph.svg", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, strings.HasSuffix(rec.Body.String(), "</svg>\n"))
	assert.Greater(t, strings.Count(rec.Body.String(), "<line"), 4000)

	rec = do(r, "GET", "/samples/simple.json", "")
	require.Equal(t, http.StatusOK, rec.Code)
	doc, err := script.ParseBytes(rec.Body.Bytes())
	require.NoError(t, err)
	assert.Equal(t, "simple", doc.Name)

	rec = do(r, "GET", "/samples/missing.svg", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestSanitizeName(t *testing.T) {
	assert.Equal(t, "drawing", sanitizeName(""))
	assert.Equal(t, "a-b_c-1", sanitizeName("a/b_c.1"))
}

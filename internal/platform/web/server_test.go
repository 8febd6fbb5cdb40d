package web

import (
	"encoding/json"
	"image/png"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/lifeguide/internal/level"
	_ "github.com/vovakirdan/lifeguide/internal/life"
	"github.com/vovakirdan/lifeguide/internal/storage"
)

func newTestServer(t *testing.T, opts ...Option) http.Handler {
	t.Helper()
	levels, err := level.Builtin().LoadAll()
	require.NoError(t, err)
	return NewServer(levels, opts...).Router()
}

func get(t *testing.T, h http.Handler, path string) *httptest.ResponseRecorder {
	t.Helper()
	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
	return w
}

func TestListLevels(t *testing.T) {
	w := get(t, newTestServer(t), "/levels")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))

	var out []LevelSummary
	require.NoError(t, json.NewDecoder(w.Body).Decode(&out))
	require.Len(t, out, 3)
	assert.Equal(t, "01-block", out[0].ID)
	assert.Equal(t, 24, out[1].Width)
	assert.Equal(t, 7, out[1].Target)
	assert.Equal(t, 1, out[1].Detectors)
}

func TestShowLevel(t *testing.T) {
	h := newTestServer(t)

	w := get(t, h, "/levels/02-glider-lane")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var out LevelDetail
	require.NoError(t, json.NewDecoder(w.Body).Decode(&out))
	assert.Equal(t, "Glider Lane", out.Name)
	assert.Equal(t, [4]int{12, 10, 10, 8}, out.Editable)
	assert.Contains(t, out.Patterns, "glider")
	assert.Equal(t, 5, strings.Count(out.Preview, "#"))
	assert.NotEmpty(t, out.Metadata["hint"])

	w = get(t, h, "/levels/nope")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "not found")
}

func TestRenderFrame(t *testing.T) {
	h := newTestServer(t)

	w := get(t, h, "/levels/02-glider-lane/frame.png?gen=4&cell=4")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "image/png", w.Header().Get("Content-Type"))
	assert.Equal(t, "4", w.Header().Get("X-Generation"))
	assert.Empty(t, w.Header().Get("X-Solved"))

	img, err := png.Decode(w.Body)
	require.NoError(t, err)
	assert.Equal(t, 24*4, img.Bounds().Dx())
	assert.Equal(t, 18*4, img.Bounds().Dy())
}

func TestRenderFrameRejectsBadParams(t *testing.T) {
	h := newTestServer(t)

	tests := []struct {
		name string
		path string
		want int
	}{
		{"negative generation", "/levels/01-block/frame.png?gen=-1", http.StatusBadRequest},
		{"not a number", "/levels/01-block/frame.png?gen=abc", http.StatusBadRequest},
		{"too many generations", "/levels/01-block/frame.png?gen=999999", http.StatusBadRequest},
		{"zero cell", "/levels/01-block/frame.png?cell=0", http.StatusBadRequest},
		{"huge cell", "/levels/01-block/frame.png?cell=500", http.StatusBadRequest},
		{"unknown level", "/levels/missing/frame.png", http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := get(t, h, tt.path)
			assert.Equal(t, tt.want, w.Code, w.Body.String())
		})
	}
}

func TestListResults(t *testing.T) {
	w := get(t, newTestServer(t), "/levels/01-block/results")
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)

	store, err := storage.Open(filepath.Join(t.TempDir(), "results.db"))
	require.NoError(t, err)
	defer store.Close()

	for _, r := range []storage.Result{
		{LevelID: "01-block", Rule: "life", Generations: 9, Placed: 2, Solved: true},
		{LevelID: "01-block", Rule: "life", Generations: 3, Placed: 1, Solved: true},
		{LevelID: "01-block", Rule: "life", Generations: 1, Placed: 1, Solved: false},
	} {
		_, err := store.SaveResult(r)
		require.NoError(t, err)
	}

	w = get(t, newTestServer(t, WithStore(store)), "/levels/01-block/results?limit=5")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var out []ResultEntry
	require.NoError(t, json.NewDecoder(w.Body).Decode(&out))
	require.Len(t, out, 2)
	assert.Equal(t, 3, out[0].Generations)
	assert.Equal(t, 9, out[1].Generations)
}

func TestListRules(t *testing.T) {
	w := get(t, newTestServer(t), "/rules")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "highlife")
}

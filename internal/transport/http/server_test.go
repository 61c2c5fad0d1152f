package tornadohttp

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tornado/internal/tornado"
)

func testSpec() *tornado.ChartSpec {
	return &tornado.ChartSpec{
		Baseline: 0.8,
		Order:    []string{"accelTime", "price"},
		Entries: []tornado.Entry{
			{Variable: "price", Level: tornado.LevelHigh, Value: 10, Centered: 0.15, ImpactRange: 0.8},
			{Variable: "accelTime", Level: tornado.LevelLow, Value: 6, Centered: -0.05, ImpactRange: 0.1},
		},
		Axis: tornado.Axis{Lower: -0.7, Upper: 0.2},
		XLab: "Result",
		YLab: "Parameter",
	}
}

func TestNewServerRequiresSource(t *testing.T) {
	_, err := NewServer(ServerConfig{Addr: ":0"})
	assert.Error(t, err)
}

func TestServeChartPage(t *testing.T) {
	srv, err := NewServer(ServerConfig{
		Addr: ":0",
		Source: func() Snapshot {
			return Snapshot{Spec: testSpec(), HTML: []byte("<html>chart</html>")}
		},
	})
	require.NoError(t, err)

	w := httptest.NewRecorder()
	srv.router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "chart")
	assert.Contains(t, w.Header().Get("Content-Type"), "text/html")
}

func TestServeSpecJSON(t *testing.T) {
	srv, err := NewServer(ServerConfig{
		Addr: ":0",
		Source: func() Snapshot {
			return Snapshot{Spec: testSpec(), HTML: []byte("x")}
		},
	})
	require.NoError(t, err)

	w := httptest.NewRecorder()
	srv.router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/spec", nil))
	require.Equal(t, http.StatusOK, w.Code)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &decoded))
	assert.Equal(t, 0.8, decoded["baseline"])
	order, ok := decoded["order"].([]any)
	require.True(t, ok)
	assert.Equal(t, "accelTime", order[0])
}

func TestServeBrokenSnapshot(t *testing.T) {
	srv, err := NewServer(ServerConfig{
		Addr: ":0",
		Source: func() Snapshot {
			return Snapshot{Err: errors.New("input table is missing column \"result\"")}
		},
	})
	require.NoError(t, err)

	w := httptest.NewRecorder()
	srv.router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Contains(t, w.Body.String(), "missing column")

	w = httptest.NewRecorder()
	srv.router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/spec", nil))
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

func TestHealthz(t *testing.T) {
	srv, err := NewServer(ServerConfig{
		Addr:   ":0",
		Source: func() Snapshot { return Snapshot{} },
	})
	require.NoError(t, err)

	w := httptest.NewRecorder()
	srv.router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}

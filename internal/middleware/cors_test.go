package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agu27/EuroPlan/internal/middleware"
)

const devOrigin = "http://localhost:5173"

// okHandler always returns 200.
var okHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
})

func TestCORSHandler_allowedOrigin(t *testing.T) {
	h := middleware.NewCORSHandler([]string{devOrigin})(okHandler)

	req := httptest.NewRequest(http.MethodGet, "/backup", nil)
	req.Header.Set("Origin", devOrigin)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, devOrigin, rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "Content-Disposition", rec.Header().Get("Access-Control-Expose-Headers"))
}

// TestCORSHandler_preflight covers the OPTIONS request a browser sends before
// a PUT with a JSON body.
func TestCORSHandler_preflight(t *testing.T) {
	h := middleware.NewCORSHandler([]string{devOrigin})(okHandler)

	req := httptest.NewRequest(http.MethodOptions, "/segments/s1/items/i1", nil)
	req.Header.Set("Origin", devOrigin)
	req.Header.Set("Access-Control-Request-Method", http.MethodPut)
	// rs/cors compares request headers lowercased, as browsers send them.
	req.Header.Set("Access-Control-Request-Headers", "content-type")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.True(t, rec.Code == http.StatusNoContent || rec.Code == http.StatusOK,
		"expected 2xx for OPTIONS preflight, got %d", rec.Code)
	assert.Equal(t, devOrigin, rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Contains(t, rec.Header().Get("Access-Control-Allow-Methods"), http.MethodPut)
}

func TestCORSHandler_disallowedOrigin(t *testing.T) {
	h := middleware.NewCORSHandler([]string{devOrigin})(okHandler)

	req := httptest.NewRequest(http.MethodGet, "/summary", nil)
	req.Header.Set("Origin", "http://evil.example.com")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
}

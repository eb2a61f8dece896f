package router

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"fintrack/config"
	"fintrack/middleware"

	"github.com/stretchr/testify/assert"
)

func testConfig() *config.Config {
	cfg := &config.Config{
		Server: config.ServerConfig{Mode: "test"},
		JWT:    config.JWTConfig{Secret: "router-secret", ExpireTime: time.Hour},
		Auth: config.AuthConfig{
			LoginMaxAttempts: 5,
			LoginWindow:      time.Minute,
			VerificationTTL:  24 * time.Hour,
			ResetTTL:         time.Hour,
		},
	}
	middleware.InitJWT(cfg)
	return cfg
}

func TestHealth(t *testing.T) {
	r := SetupRouter(testConfig())
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	r := SetupRouter(testConfig())
	paths := []struct{ method, path string }{
		{http.MethodGet, "/api/transactions"},
		{http.MethodGet, "/api/budgets"},
		{http.MethodGet, "/api/goals"},
		{http.MethodGet, "/api/users/profile"},
		{http.MethodGet, "/api/insights"},
		{http.MethodGet, "/api/export/csv"},
		{http.MethodGet, "/api/auth/verify"},
	}
	for _, p := range paths {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(p.method, p.path, nil))
		assert.Equal(t, http.StatusUnauthorized, w.Code, p.path)
	}
}

func TestCORSPreflight(t *testing.T) {
	r := SetupRouter(testConfig())
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodOptions, "/api/transactions", nil))

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}

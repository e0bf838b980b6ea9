package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Dan9191/library-fees/internal/config"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sign(t *testing.T, method jwt.SigningMethod, secret string, expires time.Time) string {
	t.Helper()
	token := jwt.NewWithClaims(method, jwt.RegisteredClaims{
		Subject:   "librarian",
		ExpiresAt: jwt.NewNumericDate(expires),
	})
	s, err := token.SignedString([]byte(secret))
	require.NoError(t, err)
	return s
}

func TestAuthMiddleware(t *testing.T) {
	const secret = "test-secret"
	var subject string
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		subject, _ = r.Context().Value(SubjectKey).(string)
		w.WriteHeader(http.StatusNoContent)
	})
	h := AuthMiddleware(&config.Config{JWTSecret: secret})(next)

	tests := []struct {
		name   string
		header string
		want   int
	}{
		{name: "valid token", header: "Bearer " + sign(t, jwt.SigningMethodHS256, secret, time.Now().Add(time.Hour)), want: http.StatusNoContent},
		{name: "missing header", header: "", want: http.StatusUnauthorized},
		{name: "not bearer", header: "Basic abc", want: http.StatusUnauthorized},
		{name: "wrong secret", header: "Bearer " + sign(t, jwt.SigningMethodHS256, "other", time.Now().Add(time.Hour)), want: http.StatusUnauthorized},
		{name: "expired", header: "Bearer " + sign(t, jwt.SigningMethodHS256, secret, time.Now().Add(-time.Hour)), want: http.StatusUnauthorized},
		{name: "wrong algorithm", header: "Bearer " + sign(t, jwt.SigningMethodHS512, secret, time.Now().Add(time.Hour)), want: http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			subject = ""
			req := httptest.NewRequest(http.MethodGet, "/api/v1/dates/range", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)

			assert.Equal(t, tt.want, rec.Code)
			if tt.want == http.StatusNoContent {
				assert.Equal(t, "librarian", subject)
			}
		})
	}
}

func TestAuthMiddleware_Disabled(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
	h := AuthMiddleware(&config.Config{})(next)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusNoContent, rec.Code)
}

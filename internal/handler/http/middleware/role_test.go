package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/jwtauth/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func requestWithRole(t *testing.T, role string) *http.Request {
	t.Helper()
	auth := jwtauth.New("HS256", []byte("test-secret"), nil)
	token, _, err := auth.Encode(map[string]interface{}{"user_id": "u-1", "role": role})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	return req.WithContext(jwtauth.NewContext(req.Context(), token, nil))
}

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestAdminOnly(t *testing.T) {
	tests := []struct {
		role     string
		expected int
	}{
		{"admin", http.StatusOK},
		{"manager", http.StatusForbidden},
		{"employee", http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.role, func(t *testing.T) {
			rec := httptest.NewRecorder()
			AdminOnly(okHandler()).ServeHTTP(rec, requestWithRole(t, tt.role))
			assert.Equal(t, tt.expected, rec.Code)
		})
	}
}

func TestManagerOrAdmin(t *testing.T) {
	tests := []struct {
		role     string
		expected int
	}{
		{"admin", http.StatusOK},
		{"manager", http.StatusOK},
		{"employee", http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.role, func(t *testing.T) {
			rec := httptest.NewRecorder()
			ManagerOrAdmin(okHandler()).ServeHTTP(rec, requestWithRole(t, tt.role))
			assert.Equal(t, tt.expected, rec.Code)
		})
	}
}

func TestRoleMiddlewareWithoutClaims(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)

	rec := httptest.NewRecorder()
	AdminOnly(okHandler()).ServeHTTP(rec, req)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/jwtauth/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func requestWithTokenType(t *testing.T, auth *jwtauth.JWTAuth, tokenType string) *http.Request {
	t.Helper()
	token, _, err := auth.Encode(map[string]interface{}{"user_id": "u-1", "type": tokenType})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	return req.WithContext(jwtauth.NewContext(req.Context(), token, nil))
}

func TestAuthRequired(t *testing.T) {
	auth := jwtauth.New("HS256", []byte("test-secret"), nil)

	tests := []struct {
		name      string
		tokenType string
		expected  int
	}{
		{"access token passes", "access", http.StatusOK},
		{"refresh token is rejected", "refresh", http.StatusUnauthorized},
		{"missing type is rejected", "", http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			AuthRequired(auth)(okHandler()).ServeHTTP(rec, requestWithTokenType(t, auth, tt.tokenType))
			assert.Equal(t, tt.expected, rec.Code)
		})
	}
}

func TestAuthRequiredWithoutToken(t *testing.T) {
	auth := jwtauth.New("HS256", []byte("test-secret"), nil)
	req := httptest.NewRequest(http.MethodGet, "/", nil)

	rec := httptest.NewRecorder()
	AuthRequired(auth)(okHandler()).ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

package middleware

import (
	"net/http"

	"github.com/go-chi/jwtauth/v5"
	"github.com/hamkke-hr/hr-backend-go/internal/domain/auth"
	"github.com/hamkke-hr/hr-backend-go/internal/handler/http/response"
)

// AuthRequired rejects requests without a verified access token.
// Refresh tokens verify against the same key but carry type "refresh",
// so they are turned away here.
func AuthRequired(ja *jwtauth.JWTAuth) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, claims, err := jwtauth.FromContext(r.Context())
			if err != nil {
				response.Unauthorized(w, err.Error())
				return
			}
			if token == nil {
				response.HandleError(w, auth.ErrInvalidToken)
				return
			}
			if tokenType, ok := claims["type"].(string); !ok || tokenType != "access" {
				response.HandleError(w, auth.ErrInvalidToken)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

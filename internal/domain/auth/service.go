package auth

import "context"

// AuthService defines authentication operations. Account provisioning is
// admin-driven; there is no self-service signup.
type AuthService interface {
	Login(ctx context.Context, req LoginRequest) (TokenResponse, error)
	Register(ctx context.Context, req RegisterRequest) (TokenResponse, error)
	RefreshToken(ctx context.Context, req RefreshTokenRequest) (TokenResponse, error)
	Logout(ctx context.Context, refreshToken string) error
}

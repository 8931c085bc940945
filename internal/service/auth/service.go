package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/hamkke-hr/hr-backend-go/internal/domain/auth"
	"github.com/hamkke-hr/hr-backend-go/internal/domain/user"
	"github.com/hamkke-hr/hr-backend-go/internal/pkg/jwt"
	"github.com/hamkke-hr/hr-backend-go/internal/repository/postgresql"
)

type AuthServiceImpl struct {
	userRepo   user.UserRepository
	tokenRepo  postgresql.RefreshTokenRepository
	jwtService jwt.Service
}

func NewAuthService(
	userRepo user.UserRepository,
	tokenRepo postgresql.RefreshTokenRepository,
	jwtService jwt.Service,
) *AuthServiceImpl {
	return &AuthServiceImpl{
		userRepo:   userRepo,
		tokenRepo:  tokenRepo,
		jwtService: jwtService,
	}
}

// Login implements auth.AuthService.
func (a *AuthServiceImpl) Login(ctx context.Context, req auth.LoginRequest) (auth.TokenResponse, error) {
	if err := req.Validate(); err != nil {
		return auth.TokenResponse{}, err
	}

	u, err := a.userRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return auth.TokenResponse{}, auth.ErrInvalidCredentials
		}
		return auth.TokenResponse{}, err
	}
	if u.PasswordHash == nil {
		return auth.TokenResponse{}, auth.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(*u.PasswordHash), []byte(req.Password)); err != nil {
		return auth.TokenResponse{}, auth.ErrInvalidCredentials
	}

	return a.issueTokens(ctx, u)
}

// Register implements auth.AuthService. Provisioning is admin-only; the
// handler gates it.
func (a *AuthServiceImpl) Register(ctx context.Context, req auth.RegisterRequest) (auth.TokenResponse, error) {
	if err := req.Validate(); err != nil {
		return auth.TokenResponse{}, err
	}

	if _, err := a.userRepo.GetByEmail(ctx, req.Email); err == nil {
		return auth.TokenResponse{}, user.ErrEmailExists
	} else if !errors.Is(err, user.ErrUserNotFound) {
		return auth.TokenResponse{}, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return auth.TokenResponse{}, fmt.Errorf("failed to hash password: %w", err)
	}
	hashStr := string(hash)

	newUser := user.User{
		Email:        req.Email,
		PasswordHash: &hashStr,
		Name:         &req.Name,
		Department:   req.Department,
		Position:     req.Position,
		Role:         user.RoleEmployee,
		Status:       user.StatusActive,
	}
	if req.HireDate != nil {
		hireDate, err := time.Parse("2006-01-02", *req.HireDate)
		if err != nil {
			return auth.TokenResponse{}, fmt.Errorf("failed to parse hire date: %w", err)
		}
		newUser.HireDate = &hireDate
	}

	created, err := a.userRepo.Create(ctx, newUser)
	if err != nil {
		return auth.TokenResponse{}, err
	}
	return a.issueTokens(ctx, created)
}

// RefreshToken implements auth.AuthService. Tokens rotate: the presented
// token is revoked and a fresh pair is issued.
func (a *AuthServiceImpl) RefreshToken(ctx context.Context, req auth.RefreshTokenRequest) (auth.TokenResponse, error) {
	userID, err := a.jwtService.ParseRefreshToken(req.RefreshToken)
	if err != nil {
		return auth.TokenResponse{}, auth.ErrInvalidToken
	}

	revoked, err := a.tokenRepo.IsRevoked(ctx, req.RefreshToken)
	if err != nil {
		return auth.TokenResponse{}, err
	}
	if revoked {
		return auth.TokenResponse{}, auth.ErrRefreshTokenRevoked
	}

	u, err := a.userRepo.GetByID(ctx, userID)
	if err != nil {
		return auth.TokenResponse{}, err
	}

	pair, err := a.generatePair(u)
	if err != nil {
		return auth.TokenResponse{}, err
	}
	if err := a.tokenRepo.Rotate(ctx, req.RefreshToken, u.ID, pair.RefreshToken, pair.RefreshTokenExpiresIn); err != nil {
		return auth.TokenResponse{}, fmt.Errorf("failed to rotate refresh token: %w", err)
	}
	return pair, nil
}

// Logout implements auth.AuthService.
func (a *AuthServiceImpl) Logout(ctx context.Context, refreshToken string) error {
	if refreshToken == "" {
		return nil
	}
	if _, err := a.jwtService.ParseRefreshToken(refreshToken); err != nil {
		// An unparseable token cannot be replayed; nothing to revoke.
		return nil
	}
	return a.tokenRepo.Revoke(ctx, refreshToken)
}

func (a *AuthServiceImpl) issueTokens(ctx context.Context, u user.User) (auth.TokenResponse, error) {
	pair, err := a.generatePair(u)
	if err != nil {
		return auth.TokenResponse{}, err
	}
	if err := a.tokenRepo.Store(ctx, u.ID, pair.RefreshToken, pair.RefreshTokenExpiresIn); err != nil {
		return auth.TokenResponse{}, fmt.Errorf("failed to store refresh token: %w", err)
	}
	return pair, nil
}

func (a *AuthServiceImpl) generatePair(u user.User) (auth.TokenResponse, error) {
	accessToken, accessExpiresAt, err := a.jwtService.GenerateAccessToken(u.ID, u.Email, u.Role)
	if err != nil {
		return auth.TokenResponse{}, fmt.Errorf("failed to generate access token: %w", err)
	}

	refreshToken, refreshExpiresAt, err := a.jwtService.GenerateRefreshToken(u.ID)
	if err != nil {
		return auth.TokenResponse{}, fmt.Errorf("failed to generate refresh token: %w", err)
	}

	return auth.TokenResponse{
		AccessToken:           accessToken,
		AccessTokenExpiresIn:  accessExpiresAt,
		RefreshToken:          refreshToken,
		RefreshTokenExpiresIn: refreshExpiresAt,
	}, nil
}

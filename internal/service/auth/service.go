package auth

import (
	"context"
	"log/slog"

	"github.com/cmlabs-hris/ponto-backend-go/internal/domain/auth"
	"github.com/cmlabs-hris/ponto-backend-go/internal/pkg/jwt"
	"golang.org/x/crypto/bcrypt"
)

// adminSubject is the subject of every admin token; the kiosk has a
// single admin PIN.
const adminSubject = "kiosk-admin"

type AuthServiceImpl struct {
	jwt.Service
	pinHash []byte
}

func NewAuthService(jwtService jwt.Service, pinHash string) auth.AuthService {
	return &AuthServiceImpl{
		Service: jwtService,
		pinHash: []byte(pinHash),
	}
}

// Login implements auth.AuthService.
func (a *AuthServiceImpl) Login(ctx context.Context, req auth.LoginRequest) (auth.TokenResponse, error) {
	if err := req.Validate(); err != nil {
		return auth.TokenResponse{}, err
	}

	if len(a.pinHash) == 0 {
		return auth.TokenResponse{}, auth.ErrAuthDisabled
	}

	if err := bcrypt.CompareHashAndPassword(a.pinHash, []byte(req.PIN)); err != nil {
		slog.Warn("Admin login rejected")
		return auth.TokenResponse{}, auth.ErrInvalidCredentials
	}

	token, expiresAt, err := a.Service.GenerateAccessToken(adminSubject, auth.RoleAdmin)
	if err != nil {
		return auth.TokenResponse{}, err
	}

	slog.Info("Admin logged in")

	return auth.TokenResponse{
		AccessToken: token,
		TokenType:   "Bearer",
		ExpiresAt:   expiresAt,
	}, nil
}

// Logout implements auth.AuthService.
func (a *AuthServiceImpl) Logout(ctx context.Context, token string) error {
	parsed, err := a.Service.JWTAuth().Decode(token)
	if err != nil {
		return auth.ErrInvalidToken
	}

	a.Service.RevokeToken(token, parsed.Expiration().Unix())
	return nil
}

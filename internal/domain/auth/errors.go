package auth

import "errors"

var (
	ErrInvalidCredentials = errors.New("invalid PIN")
	ErrInvalidToken       = errors.New("invalid or expired token")
	ErrTokenRevoked       = errors.New("token has been revoked")
	ErrAdminRequired      = errors.New("admin privilege required")
	ErrAuthDisabled       = errors.New("admin access is not configured")
)

package auth

import "github.com/cmlabs-hris/ponto-backend-go/internal/pkg/validator"

// RoleAdmin is the role carried by kiosk admin tokens.
const RoleAdmin = "admin"

type LoginRequest struct {
	PIN string `json:"pin"`
}

func (r *LoginRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.PIN) {
		errs = append(errs, validator.ValidationError{
			Field:   "pin",
			Message: "pin is required",
		})
	} else if len(r.PIN) < 4 || len(r.PIN) > 12 || !validator.IsNumeric(r.PIN) {
		errs = append(errs, validator.ValidationError{
			Field:   "pin",
			Message: "pin must be 4 to 12 digits",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresAt   int64  `json:"expires_at"`
}

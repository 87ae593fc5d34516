package auth

import (
	"github.com/saikrishna-dev/mandimitra-backend/internal/users"
	"github.com/saikrishna-dev/mandimitra-backend/pkg/enums"
)

// RegisterRequest contains the payload required for onboarding a new user.
type RegisterRequest struct {
	Username          string              `json:"username" validate:"required,min=3"`
	Password          string              `json:"password" validate:"required,min=6"`
	Name              string              `json:"name" validate:"required"`
	Mobile            string              `json:"mobile" validate:"required"`
	Address           *string             `json:"address,omitempty"`
	Role              enums.Role          `json:"role" validate:"required"`
	DocumentType      *enums.DocumentType `json:"documentType,omitempty"`
	DocumentNumber    *string             `json:"documentNumber,omitempty"`
	PreferredLanguage enums.Language      `json:"preferredLanguage,omitempty"`
}

// LoginRequest captures the user credentials sent to the login endpoint.
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse contains the tokens and user produced by a successful login.
type LoginResponse struct {
	AccessToken  string         `json:"accessToken"`
	RefreshToken string         `json:"refreshToken"`
	User         *users.UserDTO `json:"user"`
}

// RefreshRequest carries the expired access token's refresh credential.
type RefreshRequest struct {
	RefreshToken string `json:"refreshToken" validate:"required"`
}

// RefreshResponse returns the rotated token pair.
type RefreshResponse struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

package users

import (
	"time"

	"github.com/google/uuid"

	"github.com/saikrishna-dev/mandimitra-backend/pkg/db/models"
	"github.com/saikrishna-dev/mandimitra-backend/pkg/enums"
)

// UserDTO is the transport shape that omits sensitive credentials.
type UserDTO struct {
	ID                uuid.UUID           `json:"id"`
	Username          string              `json:"username"`
	Name              string              `json:"name"`
	Mobile            string              `json:"mobile"`
	Address           *string             `json:"address,omitempty"`
	Role              enums.Role          `json:"role"`
	DocumentType      *enums.DocumentType `json:"documentType,omitempty"`
	DocumentVerified  bool                `json:"documentVerified"`
	PreferredLanguage enums.Language      `json:"preferredLanguage"`
	CreatedAt         time.Time           `json:"createdAt"`
	UpdatedAt         time.Time           `json:"updatedAt"`
}

// CreateUserDTO holds the data required by the repo to persist a new user.
type CreateUserDTO struct {
	Username          string
	PasswordHash      string
	Name              string
	Mobile            string
	Address           *string
	Role              enums.Role
	DocumentType      *enums.DocumentType
	DocumentNumber    *string
	PreferredLanguage enums.Language
}

func FromModel(u *models.User) *UserDTO {
	if u == nil {
		return nil
	}

	return &UserDTO{
		ID:                u.ID,
		Username:          u.Username,
		Name:              u.Name,
		Mobile:            u.Mobile,
		Address:           u.Address,
		Role:              u.Role,
		DocumentType:      u.DocumentType,
		DocumentVerified:  u.DocumentVerified,
		PreferredLanguage: u.PreferredLanguage,
		CreatedAt:         u.CreatedAt,
		UpdatedAt:         u.UpdatedAt,
	}
}

func (c CreateUserDTO) ToModel() *models.User {
	lang := c.PreferredLanguage
	if !lang.IsValid() {
		lang = enums.DefaultLanguage
	}

	return &models.User{
		Username:          c.Username,
		PasswordHash:      c.PasswordHash,
		Name:              c.Name,
		Mobile:            c.Mobile,
		Address:           c.Address,
		Role:              c.Role,
		DocumentType:      c.DocumentType,
		DocumentNumber:    c.DocumentNumber,
		PreferredLanguage: lang,
	}
}

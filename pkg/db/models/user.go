package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/saikrishna-dev/mandimitra-backend/pkg/enums"
)

// User represents the canonical identity entity for both marketplace sides.
type User struct {
	ID                uuid.UUID           `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Username          string              `gorm:"column:username;not null;uniqueIndex" json:"username"`
	PasswordHash      string              `gorm:"column:password_hash;not null" json:"-"`
	Name              string              `gorm:"column:name;not null" json:"name"`
	Mobile            string              `gorm:"column:mobile;not null" json:"mobile"`
	Address           *string             `gorm:"column:address" json:"address,omitempty"`
	Role              enums.Role          `gorm:"column:role;type:text;not null" json:"role"`
	DocumentType      *enums.DocumentType `gorm:"column:document_type;type:text" json:"documentType,omitempty"`
	DocumentNumber    *string             `gorm:"column:document_number" json:"documentNumber,omitempty"`
	DocumentVerified  bool                `gorm:"column:document_verified;not null;default:false" json:"documentVerified"`
	PreferredLanguage enums.Language      `gorm:"column:preferred_language;type:text;not null;default:'hi'" json:"preferredLanguage"`
	CreatedAt         time.Time           `gorm:"column:created_at;autoCreateTime" json:"createdAt"`
	UpdatedAt         time.Time           `gorm:"column:updated_at;autoUpdateTime" json:"updatedAt"`
}

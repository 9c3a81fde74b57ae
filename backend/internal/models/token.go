package models

import (
	"time"

	"github.com/gofrs/uuid"
)

// Token tracks an issued refresh token by its JTI so refresh can rotate and
// logout can revoke.
type Token struct {
	ID           uuid.UUID `json:"id" gorm:"primaryKey;type:uuid;default:uuid_generate_v4()"`
	UserID       uuid.UUID `json:"user_id" gorm:"type:uuid;not null;index"`
	JTI          uuid.UUID `json:"jti" gorm:"type:uuid;uniqueIndex"`
	RefreshToken string    `json:"refresh_token" gorm:"type:text"`
	ExpiresAt    time.Time `json:"expires_at"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

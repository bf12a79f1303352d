package domain

import (
	"time"

	"github.com/google/uuid"
)

// UniqueNumberPrefix is the reserved prefix every handle starts with.
// A handle is exactly 9 digits: the prefix plus 7 random digits.
const (
	UniqueNumberPrefix = "73"
	UniqueNumberLength = 9
)

type Profile struct {
	UserID       uuid.UUID `json:"user_id"`
	UniqueNumber string    `json:"unique_number"`
	DisplayName  *string   `json:"display_name,omitempty"`
	AvatarURL    *string   `json:"avatar_url,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

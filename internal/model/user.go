// internal/model/user.go
package model

import (
	"time"

	"github.com/google/uuid"
)

// User is a platform account linked to an external identity subject.
// User IDs are derived deterministically from the Auth0 subject so that
// repeated provisioning calls converge on the same row.
type User struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	Email     string    `gorm:"type:citext;uniqueIndex;not null" json:"email"`
	Auth0Sub  *string   `gorm:"type:text;uniqueIndex" json:"auth0_sub,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

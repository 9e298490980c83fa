package entity

import (
	"time"

	"gorm.io/gorm"
)

// Session is a persisted refresh token. Access tokens are stateless JWTs;
// revoking a session invalidates the refresh path only.
type Session struct {
	gorm.Model
	Token     string `gorm:"size:36;uniqueIndex"`
	UserID    uint
	User      User `json:"-"`
	ExpiresAt time.Time
}

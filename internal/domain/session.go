package domain

import (
	"time"

	"github.com/google/uuid"
)

// SessionState tracks the lifecycle of a login session. Sessions are never
// deleted; invalidation only moves them to SessionInvalidated.
type SessionState string

const (
	SessionActive      SessionState = "active"
	SessionInvalidated SessionState = "invalidated"
)

type Session struct {
	ID        uuid.UUID    `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	UserID    uuid.UUID    `json:"user" gorm:"type:uuid;not null;index"`
	State     SessionState `json:"-" gorm:"type:varchar(16);not null;default:'active'"`
	UserAgent string       `json:"userAgent"`
	CreatedAt time.Time    `json:"createdAt"`
	UpdatedAt time.Time    `json:"updatedAt"`
}

// Valid reports whether the session can still back token refreshes.
func (s *Session) Valid() bool {
	return s.State == SessionActive
}

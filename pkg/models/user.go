package models

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	ID           int    `json:"id" db:"id"`
	Username     string `json:"username" db:"username"`
	PasswordHash string `json:"-" db:"password_hash"`
	FirstName    string `json:"first_name" db:"first_name"`
	LastName     string `json:"last_name" db:"last_name"`
}

// Session binds an opaque key handed to web clients to a user.
type Session struct {
	Key        uuid.UUID `json:"session_key" db:"session_key"`
	UserID     int       `json:"user_id" db:"user_id"`
	ExpireDate time.Time `json:"expire_date" db:"expire_date"`
}

func (s *Session) IsExpired(now time.Time) bool {
	return !now.Before(s.ExpireDate)
}

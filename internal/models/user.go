package models

import "time"

type User struct {
	ID             int64  `json:"id"`
	FullName       string `json:"full_name"`
	Email          string `json:"email"`
	PasswordHash   string `json:"-"` // never leaves the API
	RoleID         int    `json:"role_id"`
	TelegramChatID int64  `json:"-"`

	// refresh token is an opaque value stored server-side
	RefreshToken     *string    `json:"-"`
	RefreshExpiresAt *time.Time `json:"-"`
	RefreshRevoked   bool       `json:"-"`

	CreatedAt time.Time `json:"created_at"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

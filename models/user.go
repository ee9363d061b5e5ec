package models

import "time"

// UserInfo is the display record for a principal, owned by the relational
// user directory.
type UserInfo struct {
	FirstName string `json:"first_name" db:"first_name"`
	LastName  string `json:"last_name" db:"last_name"`
}

// Account is an identity record: a principal, the email it signed up with
// and a bcrypt password hash. Owned by the identity layer.
type Account struct {
	UserID       string    `db:"user_id"`
	Email        string    `db:"email"`
	PasswordHash string    `db:"password_hash"`
	CreatedAt    time.Time `db:"created_at"`
}

type SignUpRequest struct {
	Email     string `json:"email" binding:"required,email"`
	Password  string `json:"password" binding:"required,min=8"`
	FirstName string `json:"first_name" binding:"required"`
	LastName  string `json:"last_name" binding:"required"`
}

type LogInRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// AuthResponse is returned by signup and login.
type AuthResponse struct {
	Token  string `json:"token"`
	UserID string `json:"user_id"`
}

// GetUsersInfoRequest carries a comma-separated list of principals, the
// format the original clients send.
type GetUsersInfoRequest struct {
	UserIDs string `json:"user_ids"`
}

type AddUserInfoRequest struct {
	UserID    string `json:"user_id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

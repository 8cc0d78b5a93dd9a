package models

import "time"

// Role names for users. The analytics summary endpoints require RoleAdmin.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// User represents an account that can log in and own a health profile and feedback.
type User struct {
	ID           int64     `json:"id"`
	Name         string    `json:"name"`
	Role         string    `json:"role"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

// LoginRequest is the payload for POST /v1/auth/login.
type LoginRequest struct {
	Username string `json:"username" validate:"required,min=1,max=100"`
	Password string `json:"password" validate:"required,min=1,max=100"`
}

// LoginResponse is returned on successful login. Profile is nil when the user
// has no health profile on record.
type LoginResponse struct {
	User    User           `json:"user"`
	Profile *HealthProfile `json:"profile,omitempty"`
	Token   string         `json:"token"`
}

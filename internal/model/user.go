package model

import "time"

// User represents a user in the database.
type User struct {
	ID           string
	Username     string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
}

// Identity is the authenticated caller attached to a request.
type Identity struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

// Identity returns the caller view of the user.
func (u User) Identity() Identity {
	return Identity{ID: u.ID, Username: u.Username, Email: u.Email}
}

// SignupRequest represents a user registration request.
type SignupRequest struct {
	Username string `json:"username" validate:"required,min=3,max=32"`
	Email    string `json:"email" validate:"required,email,max=254"`
	Password string `json:"password" validate:"required,min=8,bcryptlen"`
}

// LoginRequest represents a user login request.
type LoginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required,bcryptlen"`
}

// RefreshRequest carries a refresh token to exchange for a new access token.
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

// UpdateUserRequest replaces the mutable profile fields. An empty password keeps the current one.
type UpdateUserRequest struct {
	Username string `json:"username" validate:"required,min=3,max=32"`
	Email    string `json:"email" validate:"required,email,max=254"`
	Password string `json:"password" validate:"omitempty,min=8,bcryptlen"`
}

// UserResponse represents user data safe for API responses (no sensitive fields).
// Email is only filled in when the caller reads their own record.
type UserResponse struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

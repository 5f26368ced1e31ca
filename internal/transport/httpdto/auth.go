package httpdto

import "lumina-chat/internal/domain/user"

// RegisterRequest is used for POST /register
type RegisterRequest struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Username  string `json:"username"`
	Password  string `json:"password"`
}

// LoginRequest is used for POST /login. At least one of email/username must
// be present alongside the password.
type LoginRequest struct {
	Email    string `json:"email,omitempty"`
	Username string `json:"username,omitempty"`
	Password string `json:"password"`
}

// AuthResponse is returned after successful registration or login
type AuthResponse struct {
	Message   string             `json:"message"`
	User      user.PublicProfile `json:"user"`
	Token     string             `json:"token"`
	ExpiresIn int64              `json:"expiresIn"`
}

// MeResponse is returned by GET /me
type MeResponse struct {
	User user.PublicProfile `json:"user"`
}

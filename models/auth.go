package models

import (
	"github.com/golang-jwt/jwt/v5"
)

// EmailDomain is the synthetic domain appended to usernames. The auth
// layer is email-based internally but the portal only exposes usernames.
const EmailDomain = "platform.local"

// SyntheticEmail maps a username to its internal email form.
func SyntheticEmail(username string) string {
	return username + "@" + EmailDomain
}

type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

type SessionResponse struct {
	UserID   string `json:"user_id"`
	Username string `json:"username"`
	IsAdmin  bool   `json:"is_admin"`
}

type Claims struct {
	UserID string `json:"user_id"`
	jwt.RegisteredClaims
}

package handlers

import (
	"errors"
	"log"
	"net/http"

	"eduportal_backend/middleware"
	"eduportal_backend/models"
	"eduportal_backend/store"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	users        store.UserStore
	tokenService *middleware.TokenService
}

func NewAuthHandler(users store.UserStore, tokens store.TokenStore, jwtSecret []byte) *AuthHandler {
	return &AuthHandler{
		users:        users,
		tokenService: middleware.NewTokenService(tokens, jwtSecret),
	}
}

// Login authenticates a username/password pair. Usernames are mapped to
// their synthetic email form before lookup.
func (h *AuthHandler) Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.users.GetUserByEmail(models.SyntheticEmail(req.Username))
	if errors.Is(err, store.ErrNotFound) || (err == nil && !middleware.VerifyPassword(user.PasswordHash, req.Password)) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
		return
	} else if err != nil {
		log.Printf("Error querying user: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to verify credentials"})
		return
	}

	tokens, err := h.tokenService.GenerateTokens(user.ID)
	if err != nil {
		log.Printf("Error generating tokens: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate tokens"})
		return
	}

	c.JSON(http.StatusOK, tokens)
}

func (h *AuthHandler) RefreshToken(c *gin.Context) {
	var req models.RefreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	userID, err := h.tokenService.ValidateRefreshToken(req.RefreshToken)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid refresh token"})
		return
	}

	tokens, err := h.tokenService.GenerateTokens(userID)
	if err != nil {
		log.Printf("Error generating tokens: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate tokens"})
		return
	}

	if err := h.tokenService.InvalidateRefreshToken(req.RefreshToken); err != nil {
		log.Printf("Error invalidating old refresh token: %v", err)
	}

	c.JSON(http.StatusOK, tokens)
}

func (h *AuthHandler) Logout(c *gin.Context) {
	var req models.RefreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.tokenService.InvalidateRefreshToken(req.RefreshToken); err != nil {
		log.Printf("Error invalidating refresh token: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to logout"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Successfully logged out"})
}

// Session returns the caller's resolved session. The admin flag is read
// from the role table on every call, never cached.
func (h *AuthHandler) Session(c *gin.Context) {
	userID := c.GetString("userID")

	user, err := h.users.GetUser(userID)
	if errors.Is(err, store.ErrNotFound) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Session user no longer exists"})
		return
	} else if err != nil {
		log.Printf("Error fetching session user: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to resolve session"})
		return
	}

	isAdmin, err := h.users.IsAdmin(userID)
	if err != nil {
		log.Printf("Error checking admin role: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to resolve session"})
		return
	}

	c.JSON(http.StatusOK, models.SessionResponse{
		UserID:   user.ID,
		Username: user.Username,
		IsAdmin:  isAdmin,
	})
}

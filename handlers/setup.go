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

// Fixed bootstrap admin credentials. The setup endpoint is a one-time
// convenience for a fresh deployment; it is idempotent and safe to call
// repeatedly.
const (
	SetupAdminUsername = "btc123"
	SetupAdminPassword = "@Vip1u2"
)

type SetupHandler struct {
	users store.UserStore
}

func NewSetupHandler(users store.UserStore) *SetupHandler {
	return &SetupHandler{users: users}
}

// SetupAdmin creates the well-known administrator account if and only
// if it does not exist yet.
func (h *SetupHandler) SetupAdmin(c *gin.Context) {
	_, err := h.users.GetUserByUsername(SetupAdminUsername)
	if err == nil {
		c.JSON(http.StatusOK, gin.H{
			"success":  true,
			"message":  "Admin user already exists",
			"username": SetupAdminUsername,
		})
		return
	}
	if !errors.Is(err, store.ErrNotFound) {
		log.Printf("Error checking for admin user: %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Failed to check for admin user"})
		return
	}

	hashedPassword, err := middleware.HashPassword(SetupAdminPassword)
	if err != nil {
		log.Printf("Error hashing admin password: %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Failed to create admin user"})
		return
	}

	user, err := h.users.CreateUser(models.User{
		Username:     SetupAdminUsername,
		Email:        models.SyntheticEmail(SetupAdminUsername),
		PasswordHash: hashedPassword,
	})
	if err != nil {
		log.Printf("Error creating admin user: %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Failed to create admin user"})
		return
	}

	if err := h.users.AssignRole(user.ID, models.RoleAdmin); err != nil {
		log.Printf("Error assigning admin role: %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Failed to assign admin role"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"message":  "Admin user created successfully",
		"username": SetupAdminUsername,
	})
}

package handlers

import (
	"errors"
	"log"
	"net/http"
	"strings"

	"eduportal_backend/middleware"
	"eduportal_backend/models"
	"eduportal_backend/store"

	"github.com/gin-gonic/gin"
)

type UserHandler struct {
	users store.UserStore
}

func NewUserHandler(users store.UserStore) *UserHandler {
	return &UserHandler{users: users}
}

// checkPermission re-reads the caller's admin role on every call.
func (h *UserHandler) checkPermission(userID string) (bool, error) {
	return h.users.IsAdmin(userID)
}

// GetUsers lists all accounts with their role rows, newest first.
func (h *UserHandler) GetUsers(c *gin.Context) {
	userID := c.GetString("userID")

	hasPermission, err := h.checkPermission(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to verify permissions"})
		return
	}
	if !hasPermission {
		c.JSON(http.StatusForbidden, gin.H{"error": "Only admins can manage users"})
		return
	}

	users, err := h.users.ListUsers()
	if err != nil {
		log.Printf("Error fetching users: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch users"})
		return
	}

	c.JSON(http.StatusOK, users)
}

// CreateUser creates an account and then its role row. The two writes
// are sequential and not transactional: a role-write failure after a
// successful account write leaves an account with no role.
func (h *UserHandler) CreateUser(c *gin.Context) {
	userID := c.GetString("userID")

	hasPermission, err := h.checkPermission(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to verify permissions"})
		return
	}
	if !hasPermission {
		c.JSON(http.StatusForbidden, gin.H{"error": "Only admins can manage users"})
		return
	}

	var req models.CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	username := strings.TrimSpace(req.Username)
	if username == "" || strings.TrimSpace(req.Password) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Username and password are required"})
		return
	}

	if _, err := h.users.GetUserByUsername(username); err == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Username already taken"})
		return
	} else if !errors.Is(err, store.ErrNotFound) {
		log.Printf("Error checking username: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to check username"})
		return
	}

	hashedPassword, err := middleware.HashPassword(req.Password)
	if err != nil {
		log.Printf("Error hashing password: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to process password"})
		return
	}

	user, err := h.users.CreateUser(models.User{
		Username:     username,
		Email:        models.SyntheticEmail(username),
		PasswordHash: hashedPassword,
	})
	if err != nil {
		log.Printf("Error creating user: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create user"})
		return
	}

	if err := h.users.AssignRole(user.ID, req.Role); err != nil {
		log.Printf("Error assigning role to user %s: %v", user.ID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "User created but role assignment failed"})
		return
	}
	user.Roles = []string{req.Role}

	c.JSON(http.StatusCreated, user)
}

// DeleteUser removes an account. An admin cannot delete their own
// account through this endpoint.
func (h *UserHandler) DeleteUser(c *gin.Context) {
	userID := c.GetString("userID")

	hasPermission, err := h.checkPermission(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to verify permissions"})
		return
	}
	if !hasPermission {
		c.JSON(http.StatusForbidden, gin.H{"error": "Only admins can manage users"})
		return
	}

	targetID := c.Param("id")
	if targetID == userID {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Cannot delete your own account"})
		return
	}

	err = h.users.DeleteUser(targetID)
	if errors.Is(err, store.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	} else if err != nil {
		log.Printf("Error deleting user: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete user"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "User deleted"})
}

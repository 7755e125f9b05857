package handlers

import (
	"errors"
	"log"
	"net/http"
	"strings"

	"eduportal_backend/models"
	"eduportal_backend/store"

	"github.com/gin-gonic/gin"
)

type SectionHandler struct {
	sections store.SectionStore
	users    store.UserStore
}

func NewSectionHandler(sections store.SectionStore, users store.UserStore) *SectionHandler {
	return &SectionHandler{sections: sections, users: users}
}

// checkPermission re-reads the caller's admin role on every call.
func (h *SectionHandler) checkPermission(userID string) (bool, error) {
	return h.users.IsAdmin(userID)
}

// GetSections lists all sections, newest first. Any authenticated user
// may browse sections.
func (h *SectionHandler) GetSections(c *gin.Context) {
	sections, err := h.sections.ListSections()
	if err != nil {
		log.Printf("Error fetching sections: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch sections"})
		return
	}

	c.JSON(http.StatusOK, sections)
}

func (h *SectionHandler) CreateSection(c *gin.Context) {
	userID := c.GetString("userID")

	hasPermission, err := h.checkPermission(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to verify permissions"})
		return
	}
	if !hasPermission {
		c.JSON(http.StatusForbidden, gin.H{"error": "Only admins can manage sections"})
		return
	}

	var req models.CreateSectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Section name is required"})
		return
	}

	section, err := h.sections.CreateSection(models.Section{
		Name:      name,
		CreatedBy: userID,
	})
	if err != nil {
		log.Printf("Error creating section: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create section"})
		return
	}

	c.JSON(http.StatusCreated, section)
}

func (h *SectionHandler) DeleteSection(c *gin.Context) {
	userID := c.GetString("userID")

	hasPermission, err := h.checkPermission(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to verify permissions"})
		return
	}
	if !hasPermission {
		c.JSON(http.StatusForbidden, gin.H{"error": "Only admins can manage sections"})
		return
	}

	err = h.sections.DeleteSection(c.Param("id"))
	if errors.Is(err, store.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Section not found"})
		return
	} else if err != nil {
		log.Printf("Error deleting section: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete section"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Section deleted"})
}

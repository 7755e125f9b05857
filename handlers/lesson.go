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

type LessonHandler struct {
	lessons store.LessonStore
	users   store.UserStore
}

func NewLessonHandler(lessons store.LessonStore, users store.UserStore) *LessonHandler {
	return &LessonHandler{lessons: lessons, users: users}
}

// checkPermission re-reads the caller's admin role on every call.
func (h *LessonHandler) checkPermission(userID string) (bool, error) {
	return h.users.IsAdmin(userID)
}

// GetLessons lists the lessons of one section, newest first.
func (h *LessonHandler) GetLessons(c *gin.Context) {
	lessons, err := h.lessons.ListLessons(c.Param("id"))
	if err != nil {
		log.Printf("Error fetching lessons: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch lessons"})
		return
	}

	c.JSON(http.StatusOK, lessons)
}

// GetLesson returns one lesson for playback, with the resolved embed
// address alongside the raw URL.
func (h *LessonHandler) GetLesson(c *gin.Context) {
	lesson, err := h.lessons.GetLesson(c.Param("id"))
	if errors.Is(err, store.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Lesson not found"})
		return
	} else if err != nil {
		log.Printf("Error fetching lesson: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch lesson"})
		return
	}

	c.JSON(http.StatusOK, models.LessonPlaybackResponse{
		Lesson:   lesson,
		EmbedURL: models.YoutubeEmbedURL(lesson.YoutubeURL),
	})
}

func (h *LessonHandler) CreateLesson(c *gin.Context) {
	userID := c.GetString("userID")

	hasPermission, err := h.checkPermission(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to verify permissions"})
		return
	}
	if !hasPermission {
		c.JSON(http.StatusForbidden, gin.H{"error": "Only admins can manage lessons"})
		return
	}

	var req models.CreateLessonRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	name := strings.TrimSpace(req.Name)
	youtubeURL := strings.TrimSpace(req.YoutubeURL)
	if name == "" || youtubeURL == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Lesson name and video URL are required"})
		return
	}

	lesson, err := h.lessons.CreateLesson(models.Lesson{
		SectionID:  c.Param("id"),
		Name:       name,
		YoutubeURL: youtubeURL,
		CreatedBy:  userID,
	})
	if errors.Is(err, store.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Section not found"})
		return
	} else if err != nil {
		log.Printf("Error creating lesson: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create lesson"})
		return
	}

	c.JSON(http.StatusCreated, lesson)
}

func (h *LessonHandler) DeleteLesson(c *gin.Context) {
	userID := c.GetString("userID")

	hasPermission, err := h.checkPermission(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to verify permissions"})
		return
	}
	if !hasPermission {
		c.JSON(http.StatusForbidden, gin.H{"error": "Only admins can manage lessons"})
		return
	}

	err = h.lessons.DeleteLesson(c.Param("id"))
	if errors.Is(err, store.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Lesson not found"})
		return
	} else if err != nil {
		log.Printf("Error deleting lesson: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete lesson"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Lesson deleted"})
}

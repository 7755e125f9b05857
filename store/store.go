package store

import (
	"errors"
	"time"

	"eduportal_backend/models"
)

// ErrNotFound is returned when a record does not exist, including a
// delete of an already-deleted id.
var ErrNotFound = errors.New("record not found")

type SectionStore interface {
	// ListSections returns all sections ordered by creation time descending.
	ListSections() ([]models.Section, error)
	CreateSection(section models.Section) (models.Section, error)
	DeleteSection(id string) error
}

type LessonStore interface {
	// ListLessons returns the lessons of one section ordered by creation
	// time descending.
	ListLessons(sectionID string) ([]models.Lesson, error)
	GetLesson(id string) (models.Lesson, error)
	// CreateLesson fails with ErrNotFound when the referenced section does
	// not exist; the referential rule lives in the store, not the caller.
	CreateLesson(lesson models.Lesson) (models.Lesson, error)
	DeleteLesson(id string) error
}

type UserStore interface {
	// ListUsers returns all users with their role rows, ordered by
	// creation time descending.
	ListUsers() ([]models.User, error)
	GetUser(id string) (models.User, error)
	GetUserByEmail(email string) (models.User, error)
	GetUserByUsername(username string) (models.User, error)
	CreateUser(user models.User) (models.User, error)
	AssignRole(userID, role string) error
	// IsAdmin reports whether at least one admin role row exists for the
	// user. Callers must query this fresh on every admin-gated request.
	IsAdmin(userID string) (bool, error)
	DeleteUser(id string) error
}

type TokenStore interface {
	SaveRefreshToken(userID, token string, expiresAt time.Time) error
	// LookupRefreshToken returns the owning user id for an unexpired
	// token, or ErrNotFound.
	LookupRefreshToken(token string) (string, error)
	DeleteRefreshToken(token string) error
}

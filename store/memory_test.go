package store

import (
	"testing"
	"time"

	"eduportal_backend/models"

	"github.com/stretchr/testify/assert"
)

func TestListSectionsOrdering(t *testing.T) {
	mem := NewMemory()

	t1 := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	t2 := t1.Add(time.Hour)
	t3 := t2.Add(time.Hour)
	for _, s := range []models.Section{
		{Name: "B", CreatedAt: t2},
		{Name: "A", CreatedAt: t1},
		{Name: "C", CreatedAt: t3},
	} {
		if _, err := mem.CreateSection(s); err != nil {
			t.Fatalf("CreateSection() failed: %v", err)
		}
	}

	sections, err := mem.ListSections()
	assert.NoError(t, err)
	assert.Len(t, sections, 3)
	assert.Equal(t, "C", sections[0].Name)
	assert.Equal(t, "B", sections[1].Name)
	assert.Equal(t, "A", sections[2].Name)
}

func TestIsAdmin(t *testing.T) {
	mem := NewMemory()
	user, err := mem.CreateUser(models.User{Username: "sam", Email: "sam@platform.local"})
	if err != nil {
		t.Fatalf("CreateUser() failed: %v", err)
	}

	// No role rows at all.
	isAdmin, err := mem.IsAdmin(user.ID)
	assert.NoError(t, err)
	assert.False(t, isAdmin)

	// Only a student row.
	assert.NoError(t, mem.AssignRole(user.ID, models.RoleStudent))
	isAdmin, err = mem.IsAdmin(user.ID)
	assert.NoError(t, err)
	assert.False(t, isAdmin)

	// At least one admin row alongside others.
	assert.NoError(t, mem.AssignRole(user.ID, models.RoleAdmin))
	isAdmin, err = mem.IsAdmin(user.ID)
	assert.NoError(t, err)
	assert.True(t, isAdmin)
}

func TestDeleteSectionCascadesLessons(t *testing.T) {
	mem := NewMemory()
	section, err := mem.CreateSection(models.Section{Name: "Algebra"})
	if err != nil {
		t.Fatalf("CreateSection() failed: %v", err)
	}
	lesson, err := mem.CreateLesson(models.Lesson{
		SectionID:  section.ID,
		Name:       "Intro",
		YoutubeURL: "https://youtu.be/abc123",
	})
	if err != nil {
		t.Fatalf("CreateLesson() failed: %v", err)
	}

	assert.NoError(t, mem.DeleteSection(section.ID))

	_, err = mem.GetLesson(lesson.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCreateLessonUnknownSection(t *testing.T) {
	mem := NewMemory()

	_, err := mem.CreateLesson(models.Lesson{
		SectionID:  "no-such-section",
		Name:       "Intro",
		YoutubeURL: "https://youtu.be/abc123",
	})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDeleteNotFound(t *testing.T) {
	mem := NewMemory()

	assert.ErrorIs(t, mem.DeleteSection("nope"), ErrNotFound)
	assert.ErrorIs(t, mem.DeleteLesson("nope"), ErrNotFound)
	assert.ErrorIs(t, mem.DeleteUser("nope"), ErrNotFound)
}

func TestRefreshTokenExpiry(t *testing.T) {
	mem := NewMemory()

	assert.NoError(t, mem.SaveRefreshToken("user-1", "live", time.Now().Add(time.Hour)))
	assert.NoError(t, mem.SaveRefreshToken("user-1", "expired", time.Now().Add(-time.Hour)))

	userID, err := mem.LookupRefreshToken("live")
	assert.NoError(t, err)
	assert.Equal(t, "user-1", userID)

	_, err = mem.LookupRefreshToken("expired")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = mem.LookupRefreshToken("unknown")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestListUsersIncludesRoleRows(t *testing.T) {
	mem := NewMemory()

	t1 := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	older, err := mem.CreateUser(models.User{Username: "older", Email: "older@platform.local", CreatedAt: t1})
	if err != nil {
		t.Fatalf("CreateUser() failed: %v", err)
	}
	newer, err := mem.CreateUser(models.User{Username: "newer", Email: "newer@platform.local", CreatedAt: t1.Add(time.Hour)})
	if err != nil {
		t.Fatalf("CreateUser() failed: %v", err)
	}
	assert.NoError(t, mem.AssignRole(older.ID, models.RoleStudent))
	assert.NoError(t, mem.AssignRole(newer.ID, models.RoleAdmin))

	users, err := mem.ListUsers()
	assert.NoError(t, err)
	assert.Len(t, users, 2)
	assert.Equal(t, "newer", users[0].Username)
	assert.Equal(t, []string{models.RoleAdmin}, users[0].Roles)
	assert.Equal(t, "older", users[1].Username)
	assert.Equal(t, []string{models.RoleStudent}, users[1].Roles)
}

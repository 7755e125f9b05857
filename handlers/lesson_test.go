package handlers

import (
	"net/http"
	"testing"
	"time"

	"eduportal_backend/models"

	"github.com/stretchr/testify/assert"
)

func TestCreateLessonRequiresAdmin(t *testing.T) {
	r, mem := setup(t)
	student := createUser(t, mem, "sam", "pw123456", models.RoleStudent)
	section, err := mem.CreateSection(models.Section{Name: "Algebra"})
	if err != nil {
		t.Fatalf("CreateSection() failed: %v", err)
	}

	rec := doRequest(t, r, http.MethodPost, "/sections/"+section.ID+"/lessons", authToken(t, student.ID),
		models.CreateLessonRequest{Name: "Intro", YoutubeURL: "https://youtu.be/abc123"})
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestCreateLessonWhitespaceFields(t *testing.T) {
	r, mem := setup(t)
	admin := createUser(t, mem, "adele", "pw123456", models.RoleAdmin)
	section, err := mem.CreateSection(models.Section{Name: "Algebra"})
	if err != nil {
		t.Fatalf("CreateSection() failed: %v", err)
	}

	rec := doRequest(t, r, http.MethodPost, "/sections/"+section.ID+"/lessons", authToken(t, admin.ID),
		models.CreateLessonRequest{Name: "   ", YoutubeURL: "https://youtu.be/abc123"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doRequest(t, r, http.MethodPost, "/sections/"+section.ID+"/lessons", authToken(t, admin.ID),
		models.CreateLessonRequest{Name: "Intro", YoutubeURL: "  \t "})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	lessons, err := mem.ListLessons(section.ID)
	assert.NoError(t, err)
	assert.Empty(t, lessons)
}

func TestCreateLessonMissingSection(t *testing.T) {
	r, mem := setup(t)
	admin := createUser(t, mem, "adele", "pw123456", models.RoleAdmin)

	rec := doRequest(t, r, http.MethodPost, "/sections/no-such-section/lessons", authToken(t, admin.ID),
		models.CreateLessonRequest{Name: "Intro", YoutubeURL: "https://youtu.be/abc123"})
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestListLessonsScopedToSectionNewestFirst(t *testing.T) {
	r, mem := setup(t)
	student := createUser(t, mem, "sam", "pw123456", models.RoleStudent)
	algebra, err := mem.CreateSection(models.Section{Name: "Algebra"})
	if err != nil {
		t.Fatalf("CreateSection() failed: %v", err)
	}
	geometry, err := mem.CreateSection(models.Section{Name: "Geometry"})
	if err != nil {
		t.Fatalf("CreateSection() failed: %v", err)
	}

	base := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	for i, name := range []string{"Old", "New"} {
		_, err := mem.CreateLesson(models.Lesson{
			SectionID:  algebra.ID,
			Name:       name,
			YoutubeURL: "https://youtu.be/abc123",
			CreatedAt:  base.Add(time.Duration(i) * time.Hour),
		})
		if err != nil {
			t.Fatalf("CreateLesson() failed: %v", err)
		}
	}
	if _, err := mem.CreateLesson(models.Lesson{
		SectionID:  geometry.ID,
		Name:       "Other",
		YoutubeURL: "https://youtu.be/xyz789",
	}); err != nil {
		t.Fatalf("CreateLesson() failed: %v", err)
	}

	rec := doRequest(t, r, http.MethodGet, "/sections/"+algebra.ID+"/lessons", authToken(t, student.ID), nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	var lessons []models.Lesson
	decodeBody(t, rec, &lessons)
	assert.Len(t, lessons, 2)
	assert.Equal(t, "New", lessons[0].Name)
	assert.Equal(t, "Old", lessons[1].Name)
}

func TestGetLessonIncludesEmbedURL(t *testing.T) {
	r, mem := setup(t)
	student := createUser(t, mem, "sam", "pw123456", models.RoleStudent)
	section, err := mem.CreateSection(models.Section{Name: "Algebra"})
	if err != nil {
		t.Fatalf("CreateSection() failed: %v", err)
	}
	lesson, err := mem.CreateLesson(models.Lesson{
		SectionID:  section.ID,
		Name:       "Intro",
		YoutubeURL: "https://www.youtube.com/watch?v=xyz789&t=5",
	})
	if err != nil {
		t.Fatalf("CreateLesson() failed: %v", err)
	}

	rec := doRequest(t, r, http.MethodGet, "/lessons/"+lesson.ID, authToken(t, student.ID), nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	var resp models.LessonPlaybackResponse
	decodeBody(t, rec, &resp)
	assert.Equal(t, lesson.ID, resp.ID)
	assert.Equal(t, "https://www.youtube.com/embed/xyz789?autoplay=1", resp.EmbedURL)
}

func TestGetLessonNotFound(t *testing.T) {
	r, mem := setup(t)
	student := createUser(t, mem, "sam", "pw123456", models.RoleStudent)

	rec := doRequest(t, r, http.MethodGet, "/lessons/no-such-id", authToken(t, student.ID), nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestDeleteLesson(t *testing.T) {
	r, mem := setup(t)
	admin := createUser(t, mem, "adele", "pw123456", models.RoleAdmin)
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

	rec := doRequest(t, r, http.MethodDelete, "/lessons/"+lesson.ID, authToken(t, admin.ID), nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = doRequest(t, r, http.MethodDelete, "/lessons/"+lesson.ID, authToken(t, admin.ID), nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

package handlers

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	"eduportal_backend/middleware"
	"eduportal_backend/models"
	"eduportal_backend/store"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

var testJWTSecret = []byte("test-secret")

// setup wires a test router over an in-memory store, mirroring the
// production route table.
func setup(t *testing.T) (*gin.Engine, *store.Memory) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	mem := store.NewMemory()
	r := gin.New()

	authHandler := NewAuthHandler(mem, mem, testJWTSecret)
	sectionHandler := NewSectionHandler(mem, mem)
	lessonHandler := NewLessonHandler(mem, mem)
	userHandler := NewUserHandler(mem)
	setupHandler := NewSetupHandler(mem)

	r.POST("/login", authHandler.Login)
	r.POST("/refresh", authHandler.RefreshToken)
	r.POST("/setup-admin", setupHandler.SetupAdmin)

	protected := r.Group("/")
	protected.Use(middleware.AuthMiddleware(testJWTSecret))
	{
		protected.GET("/session", authHandler.Session)
		protected.GET("/sections", sectionHandler.GetSections)
		protected.POST("/sections", sectionHandler.CreateSection)
		protected.DELETE("/sections/:id", sectionHandler.DeleteSection)
		protected.GET("/sections/:id/lessons", lessonHandler.GetLessons)
		protected.POST("/sections/:id/lessons", lessonHandler.CreateLesson)
		protected.GET("/lessons/:id", lessonHandler.GetLesson)
		protected.DELETE("/lessons/:id", lessonHandler.DeleteLesson)
		protected.GET("/users", userHandler.GetUsers)
		protected.POST("/users", userHandler.CreateUser)
		protected.DELETE("/users/:id", userHandler.DeleteUser)
		protected.POST("/logout", authHandler.Logout)
	}

	return r, mem
}

func createUser(t *testing.T, mem *store.Memory, username, password, role string, createdAt ...time.Time) models.User {
	t.Helper()

	hash, err := middleware.HashPassword(password)
	if err != nil {
		t.Fatalf("createUser() failed: %v", err)
	}
	user := models.User{
		Username:     username,
		Email:        models.SyntheticEmail(username),
		PasswordHash: hash,
	}
	if len(createdAt) > 0 {
		user.CreatedAt = createdAt[0]
	}
	user, err = mem.CreateUser(user)
	if err != nil {
		t.Fatalf("createUser() failed: %v", err)
	}
	if role != "" {
		if err := mem.AssignRole(user.ID, role); err != nil {
			t.Fatalf("createUser() failed: %v", err)
		}
	}
	return user
}

func authToken(t *testing.T, userID string) string {
	t.Helper()

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, &models.Claims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	})
	signed, err := token.SignedString(testJWTSecret)
	if err != nil {
		t.Fatalf("authToken() failed: %v", err)
	}
	return signed
}

func doRequest(t *testing.T, r *gin.Engine, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("doRequest() failed: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder, dst any) {
	t.Helper()

	if err := json.Unmarshal(rec.Body.Bytes(), dst); err != nil {
		t.Fatalf("decodeBody() failed: %v", err)
	}
}

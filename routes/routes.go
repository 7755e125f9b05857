package routes

import (
	"database/sql"

	"eduportal_backend/handlers"
	"eduportal_backend/middleware"
	"eduportal_backend/store"

	"github.com/gin-gonic/gin"
)

// SetupRoutes configures all the routes for the application
func SetupRoutes(r *gin.Engine, database *sql.DB, jwtSecret []byte) {
	sections := store.NewPostgresSectionStore(database)
	lessons := store.NewPostgresLessonStore(database)
	users := store.NewPostgresUserStore(database)
	tokens := store.NewPostgresTokenStore(database)

	authHandler := handlers.NewAuthHandler(users, tokens, jwtSecret)
	sectionHandler := handlers.NewSectionHandler(sections, users)
	lessonHandler := handlers.NewLessonHandler(lessons, users)
	userHandler := handlers.NewUserHandler(users)
	setupHandler := handlers.NewSetupHandler(users)
	healthHandler := handlers.NewHealthHandler(database)

	// Public routes
	r.GET("/health", healthHandler.HealthCheck)
	r.POST("/login", authHandler.Login)
	r.POST("/refresh", authHandler.RefreshToken)
	r.POST("/setup-admin", setupHandler.SetupAdmin)

	// Protected routes
	protected := r.Group("/")
	protected.Use(middleware.AuthMiddleware(jwtSecret))
	{
		// Session route
		protected.GET("/session", authHandler.Session)

		// Section routes
		protected.GET("/sections", sectionHandler.GetSections)
		protected.POST("/sections", sectionHandler.CreateSection)
		protected.DELETE("/sections/:id", sectionHandler.DeleteSection)

		// Lesson routes
		protected.GET("/sections/:id/lessons", lessonHandler.GetLessons)
		protected.POST("/sections/:id/lessons", lessonHandler.CreateLesson)
		protected.GET("/lessons/:id", lessonHandler.GetLesson)
		protected.DELETE("/lessons/:id", lessonHandler.DeleteLesson)

		// User routes
		protected.GET("/users", userHandler.GetUsers)
		protected.POST("/users", userHandler.CreateUser)
		protected.DELETE("/users/:id", userHandler.DeleteUser)

		// Logout route
		protected.POST("/logout", authHandler.Logout)
	}
}

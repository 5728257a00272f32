package http

import (
	"github.com/gin-gonic/gin"

	httpH "github.com/sarun2104/training-app/internal/http/handlers"
	httpMW "github.com/sarun2104/training-app/internal/http/middleware"
)

type RouterConfig struct {
	AuthHandler    *httpH.AuthHandler
	AuthMiddleware *httpMW.AuthMiddleware

	CatalogHandler      *httpH.CatalogHandler
	QuestionHandler     *httpH.QuestionHandler
	EmployeeHandler     *httpH.EmployeeHandler
	AssignmentHandler   *httpH.AssignmentHandler
	CourseHandler       *httpH.CourseHandler
	QuizHandler         *httpH.QuizHandler
	NotificationHandler *httpH.NotificationHandler
	CapstoneHandler     *httpH.CapstoneHandler
	ReportHandler       *httpH.ReportHandler

	HealthHandler *httpH.HealthHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	r := gin.Default()
	r.Use(httpMW.CORS())

	// Health
	if cfg.HealthHandler != nil {
		r.GET("/healthcheck", cfg.HealthHandler.HealthCheck)
	}

	api := r.Group("/api")
	{
		// Auth (public)
		if cfg.AuthHandler != nil {
			api.POST("/auth/login", cfg.AuthHandler.Login)
		}
	}

	protected := api.Group("/")
	{
		if cfg.AuthMiddleware != nil {
			protected.Use(cfg.AuthMiddleware.RequireAuth())
		}

		// Auth (protected)
		if cfg.AuthHandler != nil {
			protected.GET("/auth/me", cfg.AuthHandler.Me)
			protected.POST("/auth/logout", cfg.AuthHandler.Logout)
		}

		// Employee-facing
		if cfg.CourseHandler != nil {
			protected.GET("/courses", cfg.CourseHandler.MyCourses)
			protected.GET("/courses/:id", cfg.CourseHandler.CourseDetail)
			protected.POST("/courses/:id/start", cfg.CourseHandler.StartCourse)
		}
		if cfg.QuizHandler != nil {
			protected.GET("/courses/:id/quiz", cfg.QuizHandler.Questions)
			protected.POST("/courses/:id/quiz", cfg.QuizHandler.Submit)
			protected.GET("/courses/:id/attempts", cfg.QuizHandler.Attempts)
			protected.GET("/attempts/:attempt_id/responses", cfg.QuizHandler.AttemptResponses)
		}
		if cfg.NotificationHandler != nil {
			protected.GET("/notifications", cfg.NotificationHandler.List)
			protected.POST("/notifications/:id/read", cfg.NotificationHandler.MarkRead)
			protected.POST("/notifications/read-all", cfg.NotificationHandler.MarkAllRead)
		}
		if cfg.CapstoneHandler != nil {
			protected.GET("/capstones", cfg.CapstoneHandler.List)
			protected.GET("/capstones/:id", cfg.CapstoneHandler.Get)
		}
		if cfg.EmployeeHandler != nil {
			protected.GET("/profile", cfg.EmployeeHandler.MyProfile)
			protected.GET("/profile/avatar", cfg.EmployeeHandler.MyAvatar)
		}

		// Admin
		admin := protected.Group("/admin")
		{
			if cfg.AuthMiddleware != nil {
				admin.Use(cfg.AuthMiddleware.RequireAdmin())
			}

			if cfg.CatalogHandler != nil {
				admin.GET("/tracks", cfg.CatalogHandler.ListTracks)
				admin.GET("/tree", cfg.CatalogHandler.Tree)
				admin.POST("/tracks", cfg.CatalogHandler.CreateTrack)
				admin.POST("/subtracks", cfg.CatalogHandler.CreateSubTrack)
				admin.POST("/courses", cfg.CatalogHandler.CreateCourse)
				admin.POST("/links", cfg.CatalogHandler.AddLink)
				admin.POST("/rename", cfg.CatalogHandler.Rename)
			}
			if cfg.QuestionHandler != nil {
				admin.POST("/questions", cfg.QuestionHandler.Create)
				admin.GET("/questions", cfg.QuestionHandler.List)
				admin.GET("/questions/:id", cfg.QuestionHandler.Get)
				admin.PUT("/questions/:id", cfg.QuestionHandler.Update)
			}
			if cfg.EmployeeHandler != nil {
				admin.POST("/employees", cfg.EmployeeHandler.Create)
				admin.GET("/employees", cfg.EmployeeHandler.List)
			}
			if cfg.AssignmentHandler != nil {
				admin.POST("/assignments", cfg.AssignmentHandler.Assign)
			}
			if cfg.CapstoneHandler != nil {
				admin.POST("/capstones", cfg.CapstoneHandler.Create)
			}
			if cfg.ReportHandler != nil {
				admin.GET("/reports/employees", cfg.ReportHandler.EmployeeReport)
				admin.GET("/reports/courses", cfg.ReportHandler.CourseStatistics)
				admin.GET("/reports/courses/:id", cfg.ReportHandler.CourseDetail)
				admin.GET("/reports/export", cfg.ReportHandler.ExportXLSX)
			}
		}
	}

	return r
}

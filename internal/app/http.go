package app

import (
	apphttp "github.com/sarun2104/training-app/internal/http"
	httpH "github.com/sarun2104/training-app/internal/http/handlers"
	httpMW "github.com/sarun2104/training-app/internal/http/middleware"
	"github.com/sarun2104/training-app/internal/pkg/logger"
)

func wireServer(log *logger.Logger, s Services) *apphttp.Server {
	authMW := httpMW.NewAuthMiddleware(log, s.Auth)

	return apphttp.NewServer(log, apphttp.RouterConfig{
		AuthHandler:    httpH.NewAuthHandler(log, s.Auth, s.Employee),
		AuthMiddleware: authMW,

		CatalogHandler:      httpH.NewCatalogHandler(log, s.Catalog),
		QuestionHandler:     httpH.NewQuestionHandler(log, s.Question),
		EmployeeHandler:     httpH.NewEmployeeHandler(log, s.Employee),
		AssignmentHandler:   httpH.NewAssignmentHandler(log, s.Assignment),
		CourseHandler:       httpH.NewCourseHandler(log, s.Progress, s.Catalog),
		QuizHandler:         httpH.NewQuizHandler(log, s.Quiz),
		NotificationHandler: httpH.NewNotificationHandler(log, s.Notification),
		CapstoneHandler:     httpH.NewCapstoneHandler(log, s.Capstone),
		ReportHandler:       httpH.NewReportHandler(log, s.Report),

		HealthHandler: httpH.NewHealthHandler(),
	})
}

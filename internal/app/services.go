package app

import (
	"gorm.io/gorm"

	goredis "github.com/sarun2104/training-app/internal/clients/redis"
	"github.com/sarun2104/training-app/internal/data/graph"
	"github.com/sarun2104/training-app/internal/pkg/logger"
	"github.com/sarun2104/training-app/internal/services"
)

type Services struct {
	Auth         services.AuthService
	Avatar       services.AvatarService
	Employee     services.EmployeeService
	Catalog      services.CatalogService
	Question     services.QuestionService
	Assignment   services.AssignmentService
	Progress     services.ProgressService
	Quiz         services.QuizService
	Notification services.NotificationService
	Report       services.ReportService
	Capstone     services.CapstoneService
}

func wireServices(db *gorm.DB, log *logger.Logger, cfg Config, r Repos, store *graph.CatalogStore, bus goredis.NotifyBus) (Services, error) {
	avatar, err := services.NewAvatarService(log)
	if err != nil {
		return Services{}, err
	}

	notification := services.NewNotificationService(db, log, r.Notification, bus)
	progress := services.NewProgressService(db, log, r.Progress, store)

	return Services{
		Auth:         services.NewAuthService(db, log, r.Employee, cfg.JWTSecretKey, cfg.AccessTokenTTL),
		Avatar:       avatar,
		Employee:     services.NewEmployeeService(db, log, r.Employee, r.Progress, avatar),
		Catalog:      services.NewCatalogService(store, log),
		Question:     services.NewQuestionService(db, log, store, r.MCQ),
		Assignment:   services.NewAssignmentService(db, log, r.Employee, r.Progress, store, notification),
		Progress:     progress,
		Quiz:         services.NewQuizService(db, log, r.MCQ, r.Quiz, r.Progress, progress, store, notification, cfg.PassingScore),
		Notification: notification,
		Report:       services.NewReportService(db, log, r.Employee, r.Progress, r.Quiz, store),
		Capstone:     services.NewCapstoneService(db, log, r.Capstone),
	}, nil
}

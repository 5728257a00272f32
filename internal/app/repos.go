package app

import (
	"gorm.io/gorm"

	"github.com/sarun2104/training-app/internal/data/repos"
	"github.com/sarun2104/training-app/internal/pkg/logger"
)

type Repos struct {
	Employee     repos.EmployeeRepo
	MCQ          repos.MCQRepo
	Progress     repos.ProgressRepo
	Quiz         repos.QuizRepo
	Notification repos.NotificationRepo
	Capstone     repos.CapstoneRepo
}

func wireRepos(db *gorm.DB, log *logger.Logger) Repos {
	return Repos{
		Employee:     repos.NewEmployeeRepo(db, log),
		MCQ:          repos.NewMCQRepo(db, log),
		Progress:     repos.NewProgressRepo(db, log),
		Quiz:         repos.NewQuizRepo(db, log),
		Notification: repos.NewNotificationRepo(db, log),
		Capstone:     repos.NewCapstoneRepo(db, log),
	}
}

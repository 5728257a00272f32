package db

import (
	"gorm.io/gorm"

	types "github.com/sarun2104/training-app/internal/domain"
)

func AutoMigrateAll(db *gorm.DB) error {
	return db.AutoMigrate(
		// Identity
		&types.Employee{},
		&types.EmployeeProfile{},

		// Question bank
		&types.MCQ{},

		// Progress + quiz transactions. The composite unique indexes on
		// employee_course_progress(employee_id, course_id) and
		// quiz_attempts(employee_id, course_id, attempt_number) are what the
		// resolver's idempotent upsert and the attempt-number retry rely on.
		&types.EmployeeCourseProgress{},
		&types.QuizAttempt{},
		&types.QuizResponse{},

		// Notifications + capstones
		&types.Notification{},
		&types.Capstone{},
	)
}

func (s *PostgresService) AutoMigrateAll() error {
	s.log.Info("Auto migrating postgres tables...")
	if err := AutoMigrateAll(s.db); err != nil {
		s.log.Error("Auto migration failed for postgres tables", "error", err)
		return err
	}
	return nil
}

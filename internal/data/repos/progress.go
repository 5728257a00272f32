package repos

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	types "github.com/sarun2104/training-app/internal/domain"
	"github.com/sarun2104/training-app/internal/pkg/logger"
)

type ProgressRepo interface {
	UpsertAssigned(ctx context.Context, tx *gorm.DB, rows []*types.EmployeeCourseProgress) error
	GetByEmployeeAndCourse(ctx context.Context, tx *gorm.DB, employeeID, courseID string) (*types.EmployeeCourseProgress, error)
	GetByEmployee(ctx context.Context, tx *gorm.DB, employeeID string) ([]*types.EmployeeCourseProgress, error)
	GetByCourse(ctx context.Context, tx *gorm.DB, courseID string) ([]*types.EmployeeCourseProgress, error)
	MarkStarted(ctx context.Context, tx *gorm.DB, employeeID, courseID string, at time.Time) error
	ApplyOutcome(ctx context.Context, tx *gorm.DB, employeeID, courseID, status string, completedAt *time.Time, timeTakenMinutes *float64) error
	CountByStatus(ctx context.Context, tx *gorm.DB, employeeID string) (map[string]int64, error)
	StatusCountsByCourse(ctx context.Context, tx *gorm.DB) (map[string]map[string]int64, error)
}

type progressRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewProgressRepo(db *gorm.DB, baseLog *logger.Logger) ProgressRepo {
	repoLog := baseLog.With("repo", "ProgressRepo")
	return &progressRepo{db: db, log: repoLog}
}

// UpsertAssigned inserts one assigned row per course, skipping pairs that
// already have a row. Existing rows keep their status, timestamps, and
// original grant untouched, which is what makes re-assignment a no-op.
func (r *progressRepo) UpsertAssigned(ctx context.Context, tx *gorm.DB, rows []*types.EmployeeCourseProgress) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if len(rows) == 0 {
		return nil
	}

	return transaction.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "employee_id"}, {Name: "course_id"}},
			DoNothing: true,
		}).
		Create(&rows).Error
}

func (r *progressRepo) GetByEmployeeAndCourse(ctx context.Context, tx *gorm.DB, employeeID, courseID string) (*types.EmployeeCourseProgress, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var row types.EmployeeCourseProgress
	if err := transaction.WithContext(ctx).
		Where("employee_id = ? AND course_id = ?", employeeID, courseID).
		First(&row).Error; err != nil {
		return nil, err
	}
	return &row, nil
}

func (r *progressRepo) GetByEmployee(ctx context.Context, tx *gorm.DB, employeeID string) ([]*types.EmployeeCourseProgress, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.EmployeeCourseProgress
	if err := transaction.WithContext(ctx).
		Where("employee_id = ?", employeeID).
		Order("created_at").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *progressRepo) GetByCourse(ctx context.Context, tx *gorm.DB, courseID string) ([]*types.EmployeeCourseProgress, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.EmployeeCourseProgress
	if err := transaction.WithContext(ctx).
		Where("course_id = ?", courseID).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

// MarkStarted moves an assigned row to in_progress. started_at is only ever
// written once; repeated starts keep the first timestamp.
func (r *progressRepo) MarkStarted(ctx context.Context, tx *gorm.DB, employeeID, courseID string, at time.Time) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	return transaction.WithContext(ctx).
		Model(&types.EmployeeCourseProgress{}).
		Where("employee_id = ? AND course_id = ?", employeeID, courseID).
		Updates(map[string]any{
			"status":     types.StatusInProgress,
			"started_at": gorm.Expr("COALESCE(started_at, ?)", at),
			"updated_at": at,
		}).Error
}

// ApplyOutcome overwrites the row's terminal state. Newest attempt wins, so
// a failed row can flip to completed and back.
func (r *progressRepo) ApplyOutcome(ctx context.Context, tx *gorm.DB, employeeID, courseID, status string, completedAt *time.Time, timeTakenMinutes *float64) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	return transaction.WithContext(ctx).
		Model(&types.EmployeeCourseProgress{}).
		Where("employee_id = ? AND course_id = ?", employeeID, courseID).
		Updates(map[string]any{
			"status":             status,
			"completed_at":       completedAt,
			"time_taken_minutes": timeTakenMinutes,
			"updated_at":         time.Now().UTC(),
		}).Error
}

func (r *progressRepo) CountByStatus(ctx context.Context, tx *gorm.DB, employeeID string) (map[string]int64, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	type row struct {
		Status string
		N      int64
	}
	var rows []row
	if err := transaction.WithContext(ctx).
		Model(&types.EmployeeCourseProgress{}).
		Select("status, count(*) AS n").
		Where("employee_id = ?", employeeID).
		Group("status").
		Scan(&rows).Error; err != nil {
		return nil, err
	}

	counts := make(map[string]int64, len(rows))
	for _, r := range rows {
		counts[r.Status] = r.N
	}
	return counts, nil
}

// StatusCountsByCourse aggregates the whole table for course statistics:
// course_id → status → row count.
func (r *progressRepo) StatusCountsByCourse(ctx context.Context, tx *gorm.DB) (map[string]map[string]int64, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	type row struct {
		CourseID string
		Status   string
		N        int64
	}
	var rows []row
	if err := transaction.WithContext(ctx).
		Model(&types.EmployeeCourseProgress{}).
		Select("course_id, status, count(*) AS n").
		Group("course_id, status").
		Scan(&rows).Error; err != nil {
		return nil, err
	}

	out := map[string]map[string]int64{}
	for _, r := range rows {
		if out[r.CourseID] == nil {
			out[r.CourseID] = map[string]int64{}
		}
		out[r.CourseID][r.Status] = r.N
	}
	return out, nil
}

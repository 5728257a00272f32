package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/sarun2104/training-app/internal/domain"
	"github.com/sarun2104/training-app/internal/pkg/logger"
)

type QuizRepo interface {
	CreateAttempt(ctx context.Context, tx *gorm.DB, attempt *types.QuizAttempt) (*types.QuizAttempt, error)
	MaxAttemptNumber(ctx context.Context, tx *gorm.DB, employeeID, courseID string) (int, error)
	GetAttemptsByEmployeeAndCourse(ctx context.Context, tx *gorm.DB, employeeID, courseID string) ([]*types.QuizAttempt, error)
	GetAttemptsByEmployee(ctx context.Context, tx *gorm.DB, employeeID string) ([]*types.QuizAttempt, error)
	GetAttemptsByCourse(ctx context.Context, tx *gorm.DB, courseID string) ([]*types.QuizAttempt, error)
	ScoreStatsByCourse(ctx context.Context, tx *gorm.DB) (map[string]ScoreStats, error)
	CreateResponses(ctx context.Context, tx *gorm.DB, responses []*types.QuizResponse) error
	GetResponsesByAttempt(ctx context.Context, tx *gorm.DB, attemptID uuid.UUID) ([]*types.QuizResponse, error)
}

type quizRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewQuizRepo(db *gorm.DB, baseLog *logger.Logger) QuizRepo {
	repoLog := baseLog.With("repo", "QuizRepo")
	return &quizRepo{db: db, log: repoLog}
}

func (r *quizRepo) CreateAttempt(ctx context.Context, tx *gorm.DB, attempt *types.QuizAttempt) (*types.QuizAttempt, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if err := transaction.WithContext(ctx).Create(attempt).Error; err != nil {
		return nil, err
	}
	return attempt, nil
}

// MaxAttemptNumber returns 0 when the employee has no attempts for the course.
func (r *quizRepo) MaxAttemptNumber(ctx context.Context, tx *gorm.DB, employeeID, courseID string) (int, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var max int
	if err := transaction.WithContext(ctx).
		Model(&types.QuizAttempt{}).
		Select("COALESCE(MAX(attempt_number), 0)").
		Where("employee_id = ? AND course_id = ?", employeeID, courseID).
		Scan(&max).Error; err != nil {
		return 0, err
	}
	return max, nil
}

func (r *quizRepo) GetAttemptsByEmployeeAndCourse(ctx context.Context, tx *gorm.DB, employeeID, courseID string) ([]*types.QuizAttempt, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.QuizAttempt
	if err := transaction.WithContext(ctx).
		Where("employee_id = ? AND course_id = ?", employeeID, courseID).
		Order("attempt_number").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *quizRepo) GetAttemptsByEmployee(ctx context.Context, tx *gorm.DB, employeeID string) ([]*types.QuizAttempt, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.QuizAttempt
	if err := transaction.WithContext(ctx).
		Where("employee_id = ?", employeeID).
		Order("attempted_at").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *quizRepo) GetAttemptsByCourse(ctx context.Context, tx *gorm.DB, courseID string) ([]*types.QuizAttempt, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.QuizAttempt
	if err := transaction.WithContext(ctx).
		Where("course_id = ?", courseID).
		Order("attempted_at").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

// ScoreStats is a per-course aggregate over all attempts.
type ScoreStats struct {
	CourseID string  `gorm:"column:course_id"`
	Attempts int64   `gorm:"column:attempts"`
	AvgScore float64 `gorm:"column:avg_score"`
	Passes   int64   `gorm:"column:passes"`
}

func (r *quizRepo) ScoreStatsByCourse(ctx context.Context, tx *gorm.DB) (map[string]ScoreStats, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var rows []ScoreStats
	if err := transaction.WithContext(ctx).
		Model(&types.QuizAttempt{}).
		Select("course_id, count(*) AS attempts, AVG(score) AS avg_score, COUNT(*) FILTER (WHERE passed) AS passes").
		Group("course_id").
		Scan(&rows).Error; err != nil {
		return nil, err
	}

	out := make(map[string]ScoreStats, len(rows))
	for _, row := range rows {
		out[row.CourseID] = row
	}
	return out, nil
}

func (r *quizRepo) CreateResponses(ctx context.Context, tx *gorm.DB, responses []*types.QuizResponse) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if len(responses) == 0 {
		return nil
	}

	return transaction.WithContext(ctx).Create(&responses).Error
}

func (r *quizRepo) GetResponsesByAttempt(ctx context.Context, tx *gorm.DB, attemptID uuid.UUID) ([]*types.QuizResponse, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.QuizResponse
	if err := transaction.WithContext(ctx).
		Where("attempt_id = ?", attemptID).
		Order("created_at").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

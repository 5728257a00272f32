package repos

import (
	"context"

	"gorm.io/gorm"

	types "github.com/sarun2104/training-app/internal/domain"
	"github.com/sarun2104/training-app/internal/pkg/logger"
)

type MCQRepo interface {
	Create(ctx context.Context, tx *gorm.DB, mcq *types.MCQ) (*types.MCQ, error)
	GetByID(ctx context.Context, tx *gorm.DB, questionID string) (*types.MCQ, error)
	GetByIDs(ctx context.Context, tx *gorm.DB, questionIDs []string) ([]*types.MCQ, error)
	List(ctx context.Context, tx *gorm.DB) ([]*types.MCQ, error)
	Update(ctx context.Context, tx *gorm.DB, mcq *types.MCQ) error
}

type mcqRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewMCQRepo(db *gorm.DB, baseLog *logger.Logger) MCQRepo {
	repoLog := baseLog.With("repo", "MCQRepo")
	return &mcqRepo{db: db, log: repoLog}
}

func (r *mcqRepo) Create(ctx context.Context, tx *gorm.DB, mcq *types.MCQ) (*types.MCQ, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if err := transaction.WithContext(ctx).Create(mcq).Error; err != nil {
		return nil, err
	}
	return mcq, nil
}

func (r *mcqRepo) GetByID(ctx context.Context, tx *gorm.DB, questionID string) (*types.MCQ, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var mcq types.MCQ
	if err := transaction.WithContext(ctx).
		Where("question_id = ?", questionID).
		First(&mcq).Error; err != nil {
		return nil, err
	}
	return &mcq, nil
}

func (r *mcqRepo) GetByIDs(ctx context.Context, tx *gorm.DB, questionIDs []string) ([]*types.MCQ, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.MCQ
	if len(questionIDs) == 0 {
		return results, nil
	}

	if err := transaction.WithContext(ctx).
		Where("question_id IN ?", questionIDs).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *mcqRepo) List(ctx context.Context, tx *gorm.DB) ([]*types.MCQ, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.MCQ
	if err := transaction.WithContext(ctx).
		Order("question_id").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *mcqRepo) Update(ctx context.Context, tx *gorm.DB, mcq *types.MCQ) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	return transaction.WithContext(ctx).Save(mcq).Error
}

package repos

import (
	"context"

	"gorm.io/gorm"

	types "github.com/sarun2104/training-app/internal/domain"
	"github.com/sarun2104/training-app/internal/pkg/logger"
)

type CapstoneRepo interface {
	Create(ctx context.Context, tx *gorm.DB, capstone *types.Capstone) (*types.Capstone, error)
	GetByID(ctx context.Context, tx *gorm.DB, capstoneID string) (*types.Capstone, error)
	List(ctx context.Context, tx *gorm.DB) ([]*types.Capstone, error)
	Update(ctx context.Context, tx *gorm.DB, capstone *types.Capstone) error
	Delete(ctx context.Context, tx *gorm.DB, capstoneID string) (int64, error)
}

type capstoneRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewCapstoneRepo(db *gorm.DB, baseLog *logger.Logger) CapstoneRepo {
	repoLog := baseLog.With("repo", "CapstoneRepo")
	return &capstoneRepo{db: db, log: repoLog}
}

func (r *capstoneRepo) Create(ctx context.Context, tx *gorm.DB, capstone *types.Capstone) (*types.Capstone, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if err := transaction.WithContext(ctx).Create(capstone).Error; err != nil {
		return nil, err
	}
	return capstone, nil
}

func (r *capstoneRepo) GetByID(ctx context.Context, tx *gorm.DB, capstoneID string) (*types.Capstone, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var capstone types.Capstone
	if err := transaction.WithContext(ctx).
		Where("capstone_id = ?", capstoneID).
		First(&capstone).Error; err != nil {
		return nil, err
	}
	return &capstone, nil
}

func (r *capstoneRepo) List(ctx context.Context, tx *gorm.DB) ([]*types.Capstone, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.Capstone
	if err := transaction.WithContext(ctx).
		Order("capstone_name").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *capstoneRepo) Update(ctx context.Context, tx *gorm.DB, capstone *types.Capstone) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	return transaction.WithContext(ctx).Save(capstone).Error
}

func (r *capstoneRepo) Delete(ctx context.Context, tx *gorm.DB, capstoneID string) (int64, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	res := transaction.WithContext(ctx).
		Where("capstone_id = ?", capstoneID).
		Delete(&types.Capstone{})
	return res.RowsAffected, res.Error
}

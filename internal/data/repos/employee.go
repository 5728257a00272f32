package repos

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	types "github.com/sarun2104/training-app/internal/domain"
	"github.com/sarun2104/training-app/internal/pkg/logger"
)

type EmployeeRepo interface {
	Create(ctx context.Context, tx *gorm.DB, employee *types.Employee) (*types.Employee, error)
	GetByID(ctx context.Context, tx *gorm.DB, employeeID string) (*types.Employee, error)
	GetByEmail(ctx context.Context, tx *gorm.DB, email string) (*types.Employee, error)
	List(ctx context.Context, tx *gorm.DB) ([]*types.Employee, error)
	Update(ctx context.Context, tx *gorm.DB, employee *types.Employee) error
	UpsertProfile(ctx context.Context, tx *gorm.DB, profile *types.EmployeeProfile) error
	GetProfile(ctx context.Context, tx *gorm.DB, employeeID string) (*types.EmployeeProfile, error)
}

type employeeRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewEmployeeRepo(db *gorm.DB, baseLog *logger.Logger) EmployeeRepo {
	repoLog := baseLog.With("repo", "EmployeeRepo")
	return &employeeRepo{db: db, log: repoLog}
}

func (r *employeeRepo) Create(ctx context.Context, tx *gorm.DB, employee *types.Employee) (*types.Employee, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if err := transaction.WithContext(ctx).Create(employee).Error; err != nil {
		return nil, err
	}
	return employee, nil
}

func (r *employeeRepo) GetByID(ctx context.Context, tx *gorm.DB, employeeID string) (*types.Employee, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var employee types.Employee
	if err := transaction.WithContext(ctx).
		Where("employee_id = ?", employeeID).
		First(&employee).Error; err != nil {
		return nil, err
	}
	return &employee, nil
}

func (r *employeeRepo) GetByEmail(ctx context.Context, tx *gorm.DB, email string) (*types.Employee, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var employee types.Employee
	if err := transaction.WithContext(ctx).
		Where("email = ?", email).
		First(&employee).Error; err != nil {
		return nil, err
	}
	return &employee, nil
}

func (r *employeeRepo) List(ctx context.Context, tx *gorm.DB) ([]*types.Employee, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.Employee
	if err := transaction.WithContext(ctx).
		Order("employee_name").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *employeeRepo) Update(ctx context.Context, tx *gorm.DB, employee *types.Employee) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	return transaction.WithContext(ctx).Save(employee).Error
}

// UpsertProfile writes the profile row keyed by employee_id so repeated
// saves replace instead of duplicating.
func (r *employeeRepo) UpsertProfile(ctx context.Context, tx *gorm.DB, profile *types.EmployeeProfile) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	return transaction.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "employee_id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"designation", "avatar_color", "avatar_png", "updated_at",
			}),
		}).
		Create(profile).Error
}

func (r *employeeRepo) GetProfile(ctx context.Context, tx *gorm.DB, employeeID string) (*types.EmployeeProfile, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var profile types.EmployeeProfile
	if err := transaction.WithContext(ctx).
		Where("employee_id = ?", employeeID).
		First(&profile).Error; err != nil {
		return nil, err
	}
	return &profile, nil
}

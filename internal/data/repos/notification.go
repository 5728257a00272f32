package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/sarun2104/training-app/internal/domain"
	"github.com/sarun2104/training-app/internal/pkg/logger"
)

type NotificationRepo interface {
	Create(ctx context.Context, tx *gorm.DB, notifications []*types.Notification) error
	GetByEmployee(ctx context.Context, tx *gorm.DB, employeeID string, unreadOnly bool, limit int) ([]*types.Notification, error)
	MarkRead(ctx context.Context, tx *gorm.DB, employeeID string, notificationID uuid.UUID) (int64, error)
	MarkAllRead(ctx context.Context, tx *gorm.DB, employeeID string) (int64, error)
	CountUnread(ctx context.Context, tx *gorm.DB, employeeID string) (int64, error)
}

type notificationRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewNotificationRepo(db *gorm.DB, baseLog *logger.Logger) NotificationRepo {
	repoLog := baseLog.With("repo", "NotificationRepo")
	return &notificationRepo{db: db, log: repoLog}
}

func (r *notificationRepo) Create(ctx context.Context, tx *gorm.DB, notifications []*types.Notification) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if len(notifications) == 0 {
		return nil
	}

	return transaction.WithContext(ctx).Create(&notifications).Error
}

// GetByEmployee returns newest first. A limit <= 0 means no bound.
func (r *notificationRepo) GetByEmployee(ctx context.Context, tx *gorm.DB, employeeID string, unreadOnly bool, limit int) ([]*types.Notification, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	q := transaction.WithContext(ctx).
		Where("employee_id = ?", employeeID)
	if unreadOnly {
		q = q.Where("is_read = false")
	}
	if limit > 0 {
		q = q.Limit(limit)
	}

	var results []*types.Notification
	if err := q.Order("created_at DESC").Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

// MarkRead is scoped to the owner so one employee cannot ack another's
// notification. The returned count is 0 when nothing matched.
func (r *notificationRepo) MarkRead(ctx context.Context, tx *gorm.DB, employeeID string, notificationID uuid.UUID) (int64, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	res := transaction.WithContext(ctx).
		Model(&types.Notification{}).
		Where("id = ? AND employee_id = ?", notificationID, employeeID).
		Update("is_read", true)
	return res.RowsAffected, res.Error
}

func (r *notificationRepo) MarkAllRead(ctx context.Context, tx *gorm.DB, employeeID string) (int64, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	res := transaction.WithContext(ctx).
		Model(&types.Notification{}).
		Where("employee_id = ? AND is_read = false", employeeID).
		Update("is_read", true)
	return res.RowsAffected, res.Error
}

func (r *notificationRepo) CountUnread(ctx context.Context, tx *gorm.DB, employeeID string) (int64, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var n int64
	if err := transaction.WithContext(ctx).
		Model(&types.Notification{}).
		Where("employee_id = ? AND is_read = false", employeeID).
		Count(&n).Error; err != nil {
		return 0, err
	}
	return n, nil
}

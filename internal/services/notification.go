package services

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	goredis "github.com/sarun2104/training-app/internal/clients/redis"
	"github.com/sarun2104/training-app/internal/data/repos"
	types "github.com/sarun2104/training-app/internal/domain"
	"github.com/sarun2104/training-app/internal/pkg/apperr"
	"github.com/sarun2104/training-app/internal/pkg/logger"
)

const notificationPageSize = 50

type NotificationService interface {
	List(ctx context.Context, employeeID string, unreadOnly bool) ([]*types.Notification, error)
	MarkRead(ctx context.Context, employeeID string, notificationID uuid.UUID) error
	MarkAllRead(ctx context.Context, employeeID string) (int64, error)
	CountUnread(ctx context.Context, employeeID string) (int64, error)
	CreateInTx(ctx context.Context, tx *gorm.DB, notifications []*types.Notification) error
	PublishEvents(ctx context.Context, notifications []*types.Notification)
}

type notificationService struct {
	db               *gorm.DB
	log              *logger.Logger
	notificationRepo repos.NotificationRepo
	bus              goredis.NotifyBus
}

// NewNotificationService accepts a nil bus; fan-out is then skipped and the
// rows alone carry the notification.
func NewNotificationService(db *gorm.DB, log *logger.Logger, notificationRepo repos.NotificationRepo, bus goredis.NotifyBus) NotificationService {
	serviceLog := log.With("service", "NotificationService")
	return &notificationService{
		db:               db,
		log:              serviceLog,
		notificationRepo: notificationRepo,
		bus:              bus,
	}
}

func (ns *notificationService) List(ctx context.Context, employeeID string, unreadOnly bool) ([]*types.Notification, error) {
	rows, err := ns.notificationRepo.GetByEmployee(ctx, nil, employeeID, unreadOnly, notificationPageSize)
	if err != nil {
		return nil, apperr.StoreUnavailable("notification_list_failed", err)
	}
	return rows, nil
}

func (ns *notificationService) MarkRead(ctx context.Context, employeeID string, notificationID uuid.UUID) error {
	n, err := ns.notificationRepo.MarkRead(ctx, nil, employeeID, notificationID)
	if err != nil {
		return apperr.StoreUnavailable("notification_update_failed", err)
	}
	if n == 0 {
		return apperr.NotFound("notification_not_found", "notification %s not found for employee %s", notificationID, employeeID)
	}
	return nil
}

func (ns *notificationService) MarkAllRead(ctx context.Context, employeeID string) (int64, error) {
	n, err := ns.notificationRepo.MarkAllRead(ctx, nil, employeeID)
	if err != nil {
		return 0, apperr.StoreUnavailable("notification_update_failed", err)
	}
	return n, nil
}

func (ns *notificationService) CountUnread(ctx context.Context, employeeID string) (int64, error) {
	n, err := ns.notificationRepo.CountUnread(ctx, nil, employeeID)
	if err != nil {
		return 0, apperr.StoreUnavailable("notification_count_failed", err)
	}
	return n, nil
}

// CreateInTx lets callers fold notification rows into their own transaction
// so the event and the work it describes commit together.
func (ns *notificationService) CreateInTx(ctx context.Context, tx *gorm.DB, notifications []*types.Notification) error {
	return ns.notificationRepo.Create(ctx, tx, notifications)
}

// PublishEvents is best-effort: a dead bus never fails the request, the rows
// are already committed.
func (ns *notificationService) PublishEvents(ctx context.Context, notifications []*types.Notification) {
	if ns.bus == nil {
		return
	}
	for _, n := range notifications {
		if err := ns.bus.Publish(ctx, goredis.EventFromNotification(n)); err != nil {
			ns.log.Warn("notification publish failed", "employee_id", n.EmployeeID, "error", err)
		}
	}
}

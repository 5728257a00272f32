package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	goredis "github.com/redis/go-redis/v9"

	types "github.com/sarun2104/training-app/internal/domain"
	"github.com/sarun2104/training-app/internal/pkg/logger"
)

// NotifyEvent is the fan-out payload published whenever a notification row is
// written, so socket/SSE frontends on other instances can push it live.
type NotifyEvent struct {
	EmployeeID       string `json:"employee_id"`
	NotificationType string `json:"notification_type"`
	Title            string `json:"title"`
	Message          string `json:"message"`
	CourseID         string `json:"course_id,omitempty"`
}

func EventFromNotification(n *types.Notification) NotifyEvent {
	return NotifyEvent{
		EmployeeID:       n.EmployeeID,
		NotificationType: n.NotificationType,
		Title:            n.Title,
		Message:          n.Message,
		CourseID:         n.CourseID,
	}
}

type NotifyBus interface {
	Publish(ctx context.Context, event NotifyEvent) error
	StartForwarder(ctx context.Context, onEvent func(e NotifyEvent)) error
	Close() error
}

type notifyBus struct {
	log     *logger.Logger
	rdb     *goredis.Client
	channel string
}

func NewNotifyBus(log *logger.Logger) (NotifyBus, error) {
	if log == nil {
		return nil, fmt.Errorf("logger required")
	}

	addr := strings.TrimSpace(os.Getenv("REDIS_ADDR"))
	if addr == "" {
		return nil, fmt.Errorf("missing REDIS_ADDR")
	}
	ch := strings.TrimSpace(os.Getenv("REDIS_CHANNEL"))
	if ch == "" {
		ch = "notifications"
	}

	rdb := goredis.NewClient(&goredis.Options{
		Addr:        addr,
		DialTimeout: 5 * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	return &notifyBus{
		log:     log.With("service", "RedisNotifyBus"),
		rdb:     rdb,
		channel: ch,
	}, nil
}

func (b *notifyBus) Publish(ctx context.Context, event NotifyEvent) error {
	if b == nil || b.rdb == nil {
		return fmt.Errorf("redis notify bus not initialized")
	}
	raw, err := json.Marshal(event)
	if err != nil {
		return err
	}
	return b.rdb.Publish(ctx, b.channel, raw).Err()
}

func (b *notifyBus) StartForwarder(ctx context.Context, onEvent func(e NotifyEvent)) error {
	if b == nil || b.rdb == nil {
		return fmt.Errorf("redis notify bus not initialized")
	}
	if onEvent == nil {
		return fmt.Errorf("onEvent callback required")
	}

	sub := b.rdb.Subscribe(ctx, b.channel)

	// ensures subscription actually started
	if _, err := sub.Receive(ctx); err != nil {
		_ = sub.Close()
		return fmt.Errorf("redis subscribe: %w", err)
	}

	go func() {
		ch := sub.Channel()
		for {
			select {
			case <-ctx.Done():
				_ = sub.Close()
				return
			case m, ok := <-ch:
				if !ok || m == nil {
					_ = sub.Close()
					return
				}
				var event NotifyEvent
				if err := json.Unmarshal([]byte(m.Payload), &event); err != nil {
					b.log.Warn("bad redis notify payload", "error", err)
					continue
				}
				onEvent(event)
			}
		}
	}()

	return nil
}

func (b *notifyBus) Close() error {
	if b == nil || b.rdb == nil {
		return nil
	}
	return b.rdb.Close()
}

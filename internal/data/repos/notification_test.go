package repos

import (
	"context"
	"testing"

	"github.com/google/uuid"

	"github.com/sarun2104/training-app/internal/data/repos/testutil"
	types "github.com/sarun2104/training-app/internal/domain"
)

func TestNotificationRepo(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)

	ctx := context.Background()
	repo := NewNotificationRepo(db, testutil.Logger(t))

	e := testutil.SeedEmployee(t, ctx, tx, "emp-notif-1", "notif1@example.com")
	other := testutil.SeedEmployee(t, ctx, tx, "emp-notif-2", "notif2@example.com")

	batch := []*types.Notification{
		{EmployeeID: e.EmployeeID, NotificationType: types.NotificationCourseAssigned, Title: "New course", Message: "m1", CourseID: "c1"},
		{EmployeeID: e.EmployeeID, NotificationType: types.NotificationQuizGraded, Title: "Quiz graded", Message: "m2", CourseID: "c1"},
	}
	if err := repo.Create(ctx, tx, batch); err != nil {
		t.Fatalf("Create: %v", err)
	}

	unread, err := repo.CountUnread(ctx, tx, e.EmployeeID)
	if err != nil || unread != 2 {
		t.Fatalf("CountUnread: err=%v n=%d", err, unread)
	}

	// Acking with the wrong owner must not touch the row.
	if n, err := repo.MarkRead(ctx, tx, other.EmployeeID, batch[0].ID); err != nil || n != 0 {
		t.Fatalf("MarkRead wrong owner: err=%v n=%d", err, n)
	}
	if n, err := repo.MarkRead(ctx, tx, e.EmployeeID, batch[0].ID); err != nil || n != 1 {
		t.Fatalf("MarkRead: err=%v n=%d", err, n)
	}

	rows, err := repo.GetByEmployee(ctx, tx, e.EmployeeID, true, 0)
	if err != nil || len(rows) != 1 {
		t.Fatalf("GetByEmployee unread: err=%v len=%d", err, len(rows))
	}

	// The page bound is applied in the query, not after the fetch.
	limited, err := repo.GetByEmployee(ctx, tx, e.EmployeeID, false, 1)
	if err != nil || len(limited) != 1 {
		t.Fatalf("GetByEmployee limited: err=%v len=%d", err, len(limited))
	}

	if n, err := repo.MarkAllRead(ctx, tx, e.EmployeeID); err != nil || n != 1 {
		t.Fatalf("MarkAllRead: err=%v n=%d", err, n)
	}

	if n, err := repo.MarkRead(ctx, tx, e.EmployeeID, uuid.New()); err != nil || n != 0 {
		t.Fatalf("MarkRead unknown id: err=%v n=%d", err, n)
	}
}

package repos

import (
	"context"
	"testing"

	"github.com/sarun2104/training-app/internal/data/repos/testutil"
)

func TestCapstoneRepo(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)

	ctx := context.Background()
	repo := NewCapstoneRepo(db, testutil.Logger(t))

	c1 := testutil.SeedCapstone(t, ctx, tx, "cap-1", "Churn Prediction")
	testutil.SeedCapstone(t, ctx, tx, "cap-2", "Anomaly Detection")

	got, err := repo.GetByID(ctx, tx, c1.CapstoneID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.CapstoneName != "Churn Prediction" {
		t.Fatalf("name = %q", got.CapstoneName)
	}

	rows, err := repo.List(ctx, tx)
	if err != nil || len(rows) != 2 {
		t.Fatalf("List: err=%v len=%d", err, len(rows))
	}
	if rows[0].CapstoneName != "Anomaly Detection" {
		t.Fatalf("list not ordered by name: %q first", rows[0].CapstoneName)
	}

	got.DurationWeeks = 6
	if err := repo.Update(ctx, tx, got); err != nil {
		t.Fatalf("Update: %v", err)
	}

	n, err := repo.Delete(ctx, tx, c1.CapstoneID)
	if err != nil || n != 1 {
		t.Fatalf("Delete: err=%v n=%d", err, n)
	}
}

package repos

import (
	"context"
	"testing"
	"time"

	"github.com/sarun2104/training-app/internal/data/repos/testutil"
	types "github.com/sarun2104/training-app/internal/domain"
)

func TestProgressRepoUpsertAssignedIsIdempotent(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)

	ctx := context.Background()
	repo := NewProgressRepo(db, testutil.Logger(t))

	e := testutil.SeedEmployee(t, ctx, tx, "emp-progress-1", "progress1@example.com")

	rows := []*types.EmployeeCourseProgress{
		{EmployeeID: e.EmployeeID, CourseID: "course-a", AssignmentType: types.AssignmentTypeTrack, AssignmentID: "track-1", Status: types.StatusAssigned},
		{EmployeeID: e.EmployeeID, CourseID: "course-b", AssignmentType: types.AssignmentTypeTrack, AssignmentID: "track-1", Status: types.StatusAssigned},
	}
	if err := repo.UpsertAssigned(ctx, tx, rows); err != nil {
		t.Fatalf("UpsertAssigned: %v", err)
	}

	// Move one row forward, then replay the same grant. The in-flight row
	// must keep its state.
	if err := repo.MarkStarted(ctx, tx, e.EmployeeID, "course-a", time.Now().UTC()); err != nil {
		t.Fatalf("MarkStarted: %v", err)
	}
	replay := []*types.EmployeeCourseProgress{
		{EmployeeID: e.EmployeeID, CourseID: "course-a", AssignmentType: types.AssignmentTypeCourse, AssignmentID: "course-a", Status: types.StatusAssigned},
	}
	if err := repo.UpsertAssigned(ctx, tx, replay); err != nil {
		t.Fatalf("UpsertAssigned replay: %v", err)
	}

	row, err := repo.GetByEmployeeAndCourse(ctx, tx, e.EmployeeID, "course-a")
	if err != nil {
		t.Fatalf("GetByEmployeeAndCourse: %v", err)
	}
	if row.Status != types.StatusInProgress {
		t.Fatalf("status = %q, want %q", row.Status, types.StatusInProgress)
	}
	if row.AssignmentType != types.AssignmentTypeTrack {
		t.Fatalf("assignment_type = %q, want original grant %q", row.AssignmentType, types.AssignmentTypeTrack)
	}
}

func TestProgressRepoMarkStartedKeepsFirstTimestamp(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)

	ctx := context.Background()
	repo := NewProgressRepo(db, testutil.Logger(t))

	e := testutil.SeedEmployee(t, ctx, tx, "emp-progress-2", "progress2@example.com")
	testutil.SeedProgress(t, ctx, tx, e.EmployeeID, "course-x", types.StatusAssigned)

	first := time.Date(2026, 8, 1, 9, 0, 0, 0, time.UTC)
	if err := repo.MarkStarted(ctx, tx, e.EmployeeID, "course-x", first); err != nil {
		t.Fatalf("MarkStarted: %v", err)
	}
	if err := repo.MarkStarted(ctx, tx, e.EmployeeID, "course-x", first.Add(time.Hour)); err != nil {
		t.Fatalf("MarkStarted again: %v", err)
	}

	row, err := repo.GetByEmployeeAndCourse(ctx, tx, e.EmployeeID, "course-x")
	if err != nil {
		t.Fatalf("GetByEmployeeAndCourse: %v", err)
	}
	if row.StartedAt == nil || !row.StartedAt.Equal(first) {
		t.Fatalf("started_at = %v, want %v", row.StartedAt, first)
	}
}

func TestProgressRepoApplyOutcomeOverwritesSettledState(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)

	ctx := context.Background()
	repo := NewProgressRepo(db, testutil.Logger(t))

	e := testutil.SeedEmployee(t, ctx, tx, "emp-progress-3", "progress3@example.com")
	testutil.SeedProgress(t, ctx, tx, e.EmployeeID, "course-y", types.StatusInProgress)

	done := time.Now().UTC().Truncate(time.Second)
	if err := repo.ApplyOutcome(ctx, tx, e.EmployeeID, "course-y", types.StatusFailed, nil, nil); err != nil {
		t.Fatalf("ApplyOutcome failed-state: %v", err)
	}
	if err := repo.ApplyOutcome(ctx, tx, e.EmployeeID, "course-y", types.StatusCompleted, testutil.PtrTime(done), testutil.PtrFloat(42.5)); err != nil {
		t.Fatalf("ApplyOutcome completed-state: %v", err)
	}

	row, err := repo.GetByEmployeeAndCourse(ctx, tx, e.EmployeeID, "course-y")
	if err != nil {
		t.Fatalf("GetByEmployeeAndCourse: %v", err)
	}
	if row.Status != types.StatusCompleted {
		t.Fatalf("status = %q, want %q", row.Status, types.StatusCompleted)
	}
	if row.TimeTakenMinutes == nil || *row.TimeTakenMinutes != 42.5 {
		t.Fatalf("time_taken_minutes = %v, want 42.5", row.TimeTakenMinutes)
	}
}

func TestProgressRepoCountByStatus(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)

	ctx := context.Background()
	repo := NewProgressRepo(db, testutil.Logger(t))

	e := testutil.SeedEmployee(t, ctx, tx, "emp-progress-4", "progress4@example.com")
	testutil.SeedProgress(t, ctx, tx, e.EmployeeID, "c1", types.StatusAssigned)
	testutil.SeedProgress(t, ctx, tx, e.EmployeeID, "c2", types.StatusCompleted)
	testutil.SeedProgress(t, ctx, tx, e.EmployeeID, "c3", types.StatusCompleted)

	counts, err := repo.CountByStatus(ctx, tx, e.EmployeeID)
	if err != nil {
		t.Fatalf("CountByStatus: %v", err)
	}
	if counts[types.StatusAssigned] != 1 || counts[types.StatusCompleted] != 2 {
		t.Fatalf("counts = %v", counts)
	}
}

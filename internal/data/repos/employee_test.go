package repos

import (
	"context"
	"testing"

	"github.com/sarun2104/training-app/internal/data/repos/testutil"
	types "github.com/sarun2104/training-app/internal/domain"
)

func TestEmployeeRepo(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)

	ctx := context.Background()
	repo := NewEmployeeRepo(db, testutil.Logger(t))

	e := &types.Employee{
		EmployeeID:   "emp-repo-1",
		EmployeeName: "Priya N",
		Email:        "priya@example.com",
		Department:   "Data",
		Role:         types.RoleEmployee,
		PasswordHash: "hash",
	}
	if _, err := repo.Create(ctx, tx, e); err != nil {
		t.Fatalf("Create: %v", err)
	}

	byID, err := repo.GetByID(ctx, tx, e.EmployeeID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if byID.Email != e.Email {
		t.Fatalf("email = %q, want %q", byID.Email, e.Email)
	}

	byEmail, err := repo.GetByEmail(ctx, tx, e.Email)
	if err != nil {
		t.Fatalf("GetByEmail: %v", err)
	}
	if byEmail.EmployeeID != e.EmployeeID {
		t.Fatalf("employee_id = %q, want %q", byEmail.EmployeeID, e.EmployeeID)
	}

	byID.Department = "Platform"
	if err := repo.Update(ctx, tx, byID); err != nil {
		t.Fatalf("Update: %v", err)
	}
}

func TestEmployeeRepoProfileUpsert(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)

	ctx := context.Background()
	repo := NewEmployeeRepo(db, testutil.Logger(t))

	e := testutil.SeedEmployee(t, ctx, tx, "emp-repo-2", "profile@example.com")

	p1 := &types.EmployeeProfile{EmployeeID: e.EmployeeID, Designation: "Analyst", AvatarColor: "#336699"}
	if err := repo.UpsertProfile(ctx, tx, p1); err != nil {
		t.Fatalf("UpsertProfile: %v", err)
	}

	p2 := &types.EmployeeProfile{EmployeeID: e.EmployeeID, Designation: "Senior Analyst", AvatarColor: "#336699"}
	if err := repo.UpsertProfile(ctx, tx, p2); err != nil {
		t.Fatalf("UpsertProfile second save: %v", err)
	}

	got, err := repo.GetProfile(ctx, tx, e.EmployeeID)
	if err != nil {
		t.Fatalf("GetProfile: %v", err)
	}
	if got.Designation != "Senior Analyst" {
		t.Fatalf("designation = %q, want updated value", got.Designation)
	}
}

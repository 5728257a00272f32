package repos

import (
	"context"
	"testing"

	"gorm.io/datatypes"

	"github.com/sarun2104/training-app/internal/data/repos/testutil"
	types "github.com/sarun2104/training-app/internal/domain"
)

func TestQuizRepoAttemptNumbering(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)

	ctx := context.Background()
	repo := NewQuizRepo(db, testutil.Logger(t))

	e := testutil.SeedEmployee(t, ctx, tx, "emp-quiz-1", "quiz1@example.com")

	max, err := repo.MaxAttemptNumber(ctx, tx, e.EmployeeID, "course-q")
	if err != nil {
		t.Fatalf("MaxAttemptNumber empty: %v", err)
	}
	if max != 0 {
		t.Fatalf("max = %d, want 0 with no attempts", max)
	}

	testutil.SeedAttempt(t, ctx, tx, e.EmployeeID, "course-q", 1, false)
	testutil.SeedAttempt(t, ctx, tx, e.EmployeeID, "course-q", 2, true)
	// A different course must not bleed into the count.
	testutil.SeedAttempt(t, ctx, tx, e.EmployeeID, "course-other", 7, true)

	max, err = repo.MaxAttemptNumber(ctx, tx, e.EmployeeID, "course-q")
	if err != nil {
		t.Fatalf("MaxAttemptNumber: %v", err)
	}
	if max != 2 {
		t.Fatalf("max = %d, want 2", max)
	}

	rows, err := repo.GetAttemptsByEmployeeAndCourse(ctx, tx, e.EmployeeID, "course-q")
	if err != nil || len(rows) != 2 {
		t.Fatalf("GetAttemptsByEmployeeAndCourse: err=%v len=%d", err, len(rows))
	}
	if rows[0].AttemptNumber != 1 || rows[1].AttemptNumber != 2 {
		t.Fatalf("attempts out of order: %d, %d", rows[0].AttemptNumber, rows[1].AttemptNumber)
	}
}

func TestQuizRepoDuplicateAttemptNumberRejected(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)

	ctx := context.Background()
	repo := NewQuizRepo(db, testutil.Logger(t))

	e := testutil.SeedEmployee(t, ctx, tx, "emp-quiz-2", "quiz2@example.com")
	testutil.SeedAttempt(t, ctx, tx, e.EmployeeID, "course-q", 1, true)

	dup := &types.QuizAttempt{
		EmployeeID:     e.EmployeeID,
		CourseID:       "course-q",
		AttemptNumber:  1,
		Score:          20,
		TotalQuestions: 5,
		CorrectAnswers: 1,
		PassingScore:   70,
	}
	if _, err := repo.CreateAttempt(ctx, tx, dup); err == nil {
		t.Fatal("expected unique violation for duplicate attempt number")
	}
}

func TestQuizRepoResponses(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)

	ctx := context.Background()
	repo := NewQuizRepo(db, testutil.Logger(t))

	e := testutil.SeedEmployee(t, ctx, tx, "emp-quiz-3", "quiz3@example.com")
	attempt := testutil.SeedAttempt(t, ctx, tx, e.EmployeeID, "course-q", 1, true)

	responses := []*types.QuizResponse{
		{AttemptID: attempt.ID, QuestionID: "q1", SelectedAnswer: datatypes.JSON([]byte(`"A"`)), IsCorrect: true},
		{AttemptID: attempt.ID, QuestionID: "q2", SelectedAnswer: datatypes.JSON([]byte(`["B","C"]`)), IsCorrect: false},
	}
	if err := repo.CreateResponses(ctx, tx, responses); err != nil {
		t.Fatalf("CreateResponses: %v", err)
	}

	rows, err := repo.GetResponsesByAttempt(ctx, tx, attempt.ID)
	if err != nil || len(rows) != 2 {
		t.Fatalf("GetResponsesByAttempt: err=%v len=%d", err, len(rows))
	}
}

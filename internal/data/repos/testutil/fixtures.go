package testutil

import (
	"context"
	"testing"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	types "github.com/sarun2104/training-app/internal/domain"
)

func SeedEmployee(tb testing.TB, ctx context.Context, tx *gorm.DB, employeeID, email string) *types.Employee {
	tb.Helper()
	e := &types.Employee{
		EmployeeID:   employeeID,
		EmployeeName: "Test Employee",
		Email:        email,
		Department:   "Engineering",
		Role:         types.RoleEmployee,
		PasswordHash: "x",
	}
	if err := tx.WithContext(ctx).Create(e).Error; err != nil {
		tb.Fatalf("seed employee: %v", err)
	}
	return e
}

func SeedMCQ(tb testing.TB, ctx context.Context, tx *gorm.DB, questionID string, correct []string, multi bool) *types.MCQ {
	tb.Helper()
	m := &types.MCQ{
		QuestionID:         questionID,
		QuestionText:       "q?",
		OptionA:            "a",
		OptionB:            "b",
		OptionC:            "c",
		OptionD:            "d",
		MultipleAnswerFlag: multi,
	}
	if err := m.SetCorrectLetters(correct); err != nil {
		tb.Fatalf("seed mcq answers: %v", err)
	}
	if err := tx.WithContext(ctx).Create(m).Error; err != nil {
		tb.Fatalf("seed mcq: %v", err)
	}
	return m
}

func SeedProgress(tb testing.TB, ctx context.Context, tx *gorm.DB, employeeID, courseID, status string) *types.EmployeeCourseProgress {
	tb.Helper()
	p := &types.EmployeeCourseProgress{
		EmployeeID:     employeeID,
		CourseID:       courseID,
		AssignmentType: types.AssignmentTypeCourse,
		AssignmentID:   courseID,
		Status:         status,
	}
	if err := tx.WithContext(ctx).Create(p).Error; err != nil {
		tb.Fatalf("seed progress: %v", err)
	}
	return p
}

func SeedAttempt(tb testing.TB, ctx context.Context, tx *gorm.DB, employeeID, courseID string, number int, passed bool) *types.QuizAttempt {
	tb.Helper()
	a := &types.QuizAttempt{
		EmployeeID:     employeeID,
		CourseID:       courseID,
		AttemptNumber:  number,
		Score:          80,
		TotalQuestions: 5,
		CorrectAnswers: 4,
		Passed:         passed,
		PassingScore:   70,
		AttemptedAt:    time.Now().UTC(),
	}
	if err := tx.WithContext(ctx).Create(a).Error; err != nil {
		tb.Fatalf("seed attempt: %v", err)
	}
	return a
}

func SeedCapstone(tb testing.TB, ctx context.Context, tx *gorm.DB, capstoneID, name string) *types.Capstone {
	tb.Helper()
	c := &types.Capstone{
		CapstoneID:    capstoneID,
		CapstoneName:  name,
		Tags:          datatypes.JSON([]byte(`["ml"]`)),
		DurationWeeks: 4,
		Guidelines:    datatypes.JSON([]byte(`["read the dataset card"]`)),
	}
	if err := tx.WithContext(ctx).Create(c).Error; err != nil {
		tb.Fatalf("seed capstone: %v", err)
	}
	return c
}

func PtrTime(v time.Time) *time.Time { return &v }

func PtrFloat(v float64) *float64 { return &v }

package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type QuizAttempt struct {
	ID             uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"attempt_id"`
	EmployeeID     string    `gorm:"not null;uniqueIndex:idx_attempt_number;column:employee_id" json:"employee_id"`
	CourseID       string    `gorm:"not null;uniqueIndex:idx_attempt_number;column:course_id" json:"course_id"`
	AttemptNumber  int       `gorm:"not null;uniqueIndex:idx_attempt_number;column:attempt_number" json:"attempt_number"`
	Score          float64   `gorm:"not null;column:score" json:"score"`
	TotalQuestions int       `gorm:"not null;column:total_questions" json:"total_questions"`
	CorrectAnswers int       `gorm:"not null;column:correct_answers" json:"correct_answers"`
	Passed         bool      `gorm:"not null;column:passed" json:"passed"`
	PassingScore   float64   `gorm:"not null;column:passing_score" json:"passing_score"`
	AttemptedAt    time.Time `gorm:"not null;default:now();column:attempted_at" json:"attempted_at"`
}

func (QuizAttempt) TableName() string {
	return "quiz_attempts"
}

// QuizResponse stores one submitted answer. SelectedAnswer keeps the wire
// shape (letter or array) so review screens can show exactly what was sent.
type QuizResponse struct {
	ID             uuid.UUID      `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"response_id"`
	AttemptID      uuid.UUID      `gorm:"type:uuid;not null;index;column:attempt_id" json:"attempt_id"`
	QuestionID     string         `gorm:"not null;column:question_id" json:"question_id"`
	SelectedAnswer datatypes.JSON `gorm:"not null;column:selected_answer" json:"selected_answer"`
	IsCorrect      bool           `gorm:"not null;column:is_correct" json:"is_correct"`
	CreatedAt      time.Time      `gorm:"not null;default:now()" json:"created_at"`
}

func (QuizResponse) TableName() string {
	return "quiz_responses"
}

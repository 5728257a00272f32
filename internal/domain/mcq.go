package domain

import (
	"encoding/json"
	"fmt"
	"time"

	"gorm.io/datatypes"
)

// MCQ is the authoritative content of a quiz question. The graph holds only a
// Question node plus a has_question edge; everything gradeable lives here,
// keyed by the same question_id.
type MCQ struct {
	QuestionID         string         `gorm:"primaryKey;column:question_id" json:"question_id"`
	QuestionText       string         `gorm:"not null;column:question_text" json:"question_text"`
	OptionA            string         `gorm:"not null;column:option_a" json:"option_a"`
	OptionB            string         `gorm:"not null;column:option_b" json:"option_b"`
	OptionC            string         `gorm:"not null;column:option_c" json:"option_c"`
	OptionD            string         `gorm:"not null;column:option_d" json:"option_d"`
	CorrectAnswers     datatypes.JSON `gorm:"not null;column:correct_answers" json:"-"`
	MultipleAnswerFlag bool           `gorm:"not null;default:false;column:multiple_answer_flag" json:"multiple_answer_flag"`
	CreatedAt          time.Time      `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt          time.Time      `gorm:"not null;default:now()" json:"updated_at"`
}

func (MCQ) TableName() string {
	return "mcqs"
}

func (m *MCQ) CorrectLetters() ([]string, error) {
	var letters []string
	if err := json.Unmarshal(m.CorrectAnswers, &letters); err != nil {
		return nil, fmt.Errorf("mcq %s: decode correct_answers: %w", m.QuestionID, err)
	}
	if len(letters) == 0 {
		return nil, fmt.Errorf("mcq %s: empty correct_answers", m.QuestionID)
	}
	return letters, nil
}

func (m *MCQ) SetCorrectLetters(letters []string) error {
	raw, err := json.Marshal(letters)
	if err != nil {
		return err
	}
	m.CorrectAnswers = datatypes.JSON(raw)
	return nil
}

// IsMultiSelect reports whether the question is graded by set equality. A
// question with more than one correct letter is multi-select even when the
// flag was left false.
func (m *MCQ) IsMultiSelect() (bool, error) {
	letters, err := m.CorrectLetters()
	if err != nil {
		return false, err
	}
	return m.MultipleAnswerFlag || len(letters) > 1, nil
}

func (m *MCQ) Options() map[string]string {
	return map[string]string{
		"A": m.OptionA,
		"B": m.OptionB,
		"C": m.OptionC,
		"D": m.OptionD,
	}
}

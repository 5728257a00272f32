package services

import (
	"testing"

	types "github.com/sarun2104/training-app/internal/domain"
)

func TestGradeSelectionSingle(t *testing.T) {
	correct := []string{"B"}

	cases := []struct {
		name   string
		answer types.Answer
		want   bool
	}{
		{"right letter", types.SingleAnswer("B"), true},
		{"wrong letter", types.SingleAnswer("A"), false},
		{"lowercase normalized", types.SingleAnswer("b"), true},
		{"set shape rejected even when content matches", types.MultiAnswer("B"), false},
		{"set with right letter among others", types.MultiAnswer("A", "B"), false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := gradeSelection(correct, false, tc.answer); got != tc.want {
				t.Fatalf("gradeSelection = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestGradeSelectionMulti(t *testing.T) {
	correct := []string{"A", "C"}

	cases := []struct {
		name   string
		answer types.Answer
		want   bool
	}{
		{"exact set", types.MultiAnswer("A", "C"), true},
		{"order ignored", types.MultiAnswer("C", "A"), true},
		{"subset", types.MultiAnswer("A"), false},
		{"superset", types.MultiAnswer("A", "C", "D"), false},
		{"disjoint", types.MultiAnswer("B", "D"), false},
		{"bare letter rejected", types.SingleAnswer("A"), false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := gradeSelection(correct, true, tc.answer); got != tc.want {
				t.Fatalf("gradeSelection = %v, want %v", got, tc.want)
			}
		})
	}
}

// A single correct letter with the multi flag set still demands set shape.
func TestGradeSelectionFlagForcesSetShape(t *testing.T) {
	correct := []string{"D"}
	if gradeSelection(correct, true, types.SingleAnswer("D")) {
		t.Fatal("bare letter must not satisfy a flagged multi-select question")
	}
	if !gradeSelection(correct, true, types.MultiAnswer("D")) {
		t.Fatal("single-element set should satisfy a flagged multi-select question")
	}
}

func TestGradeAllScoresAndOrder(t *testing.T) {
	qs := &quizService{}

	mk := func(id string, correct []string, multi bool) *types.MCQ {
		m := &types.MCQ{QuestionID: id, MultipleAnswerFlag: multi}
		if err := m.SetCorrectLetters(correct); err != nil {
			t.Fatalf("SetCorrectLetters: %v", err)
		}
		return m
	}
	mcqs := map[string]*types.MCQ{
		"q1": mk("q1", []string{"A"}, false),
		"q2": mk("q2", []string{"B", "C"}, false), // |correct|>1 forces multi
		"q3": mk("q3", []string{"D"}, false),
	}
	answers := map[string]types.Answer{
		"q1": types.SingleAnswer("A"),
		"q2": types.MultiAnswer("C", "B"),
		"q3": types.SingleAnswer("A"),
	}

	graded, correct, err := qs.gradeAll(answers, mcqs)
	if err != nil {
		t.Fatalf("gradeAll: %v", err)
	}
	if correct != 2 {
		t.Fatalf("correct = %d, want 2", correct)
	}
	if len(graded) != 3 {
		t.Fatalf("graded len = %d, want 3", len(graded))
	}
	// Responses are persisted in sorted question order.
	for i, want := range []string{"q1", "q2", "q3"} {
		if graded[i].mcq.QuestionID != want {
			t.Fatalf("graded[%d] = %s, want %s", i, graded[i].mcq.QuestionID, want)
		}
	}
	if !graded[1].isCorrect || graded[2].isCorrect {
		t.Fatalf("per-question results wrong: q2=%v q3=%v", graded[1].isCorrect, graded[2].isCorrect)
	}
}

// The review screen renders entirely from the submission response, so each
// missed question must carry its full option text.
func TestBuildIncorrectReviewsCarriesOptions(t *testing.T) {
	mcq := &types.MCQ{
		QuestionID:   "q1",
		QuestionText: "pick one",
		OptionA:      "first",
		OptionB:      "second",
		OptionC:      "third",
		OptionD:      "fourth",
	}
	if err := mcq.SetCorrectLetters([]string{"B"}); err != nil {
		t.Fatalf("SetCorrectLetters: %v", err)
	}
	graded := []gradedAnswer{
		{mcq: mcq, answer: types.SingleAnswer("A"), correct: []string{"B"}, isCorrect: false},
		{mcq: mcq, answer: types.SingleAnswer("B"), correct: []string{"B"}, isCorrect: true},
	}

	reviews := buildIncorrectReviews(graded)
	if len(reviews) != 1 {
		t.Fatalf("reviews len = %d, want 1", len(reviews))
	}
	r := reviews[0]
	if r.QuestionID != "q1" || r.QuestionText != "pick one" {
		t.Fatalf("wrong question in review: %+v", r)
	}
	want := map[string]string{"A": "first", "B": "second", "C": "third", "D": "fourth"}
	for letter, text := range want {
		if r.Options[letter] != text {
			t.Fatalf("option %s = %q, want %q", letter, r.Options[letter], text)
		}
	}
	if len(r.CorrectAnswers) != 1 || r.CorrectAnswers[0] != "B" {
		t.Fatalf("correct answers = %v", r.CorrectAnswers)
	}
}

func TestIsUniqueViolation(t *testing.T) {
	err := errString("ERROR: duplicate key value violates unique constraint \"idx_attempt_number\" (SQLSTATE 23505)")
	if !isUniqueViolation(err) {
		t.Fatal("postgres unique violation not recognized")
	}
	if isUniqueViolation(errString("connection refused")) {
		t.Fatal("unrelated error misclassified")
	}
}

type errString string

func (e errString) Error() string { return string(e) }

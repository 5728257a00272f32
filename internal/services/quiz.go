package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/sarun2104/training-app/internal/data/graph"
	"github.com/sarun2104/training-app/internal/data/repos"
	types "github.com/sarun2104/training-app/internal/domain"
	"github.com/sarun2104/training-app/internal/pkg/apperr"
	"github.com/sarun2104/training-app/internal/pkg/logger"
)

// QuizQuestionView is a question as shown to the learner: no correct answers.
type QuizQuestionView struct {
	QuestionID         string            `json:"question_id"`
	QuestionText       string            `json:"question_text"`
	Options            map[string]string `json:"options"`
	MultipleAnswerFlag bool              `json:"multiple_answer_flag"`
}

type SubmitQuizInput struct {
	CourseID string
	Answers  map[string]types.Answer
}

// IncorrectReview is the per-question feedback returned for missed answers.
// Options carries the full option text so the review screen can render the
// question without a second lookup.
type IncorrectReview struct {
	QuestionID     string            `json:"question_id"`
	QuestionText   string            `json:"question_text"`
	Options        map[string]string `json:"options"`
	YourAnswer     types.Answer      `json:"your_answer"`
	CorrectAnswers []string          `json:"correct_answers"`
}

type SubmitQuizResult struct {
	AttemptID      uuid.UUID         `json:"attempt_id"`
	AttemptNumber  int               `json:"attempt_number"`
	Score          float64           `json:"score"`
	TotalQuestions int               `json:"total_questions"`
	CorrectAnswers int               `json:"correct_answers"`
	Passed         bool              `json:"passed"`
	PassingScore   float64           `json:"passing_score"`
	CourseStatus   string            `json:"course_status"`
	Incorrect      []IncorrectReview `json:"incorrect_questions,omitempty"`
}

type QuizService interface {
	QuestionsForCourse(ctx context.Context, employeeID, courseID string) ([]QuizQuestionView, error)
	Submit(ctx context.Context, employeeID string, input SubmitQuizInput) (*SubmitQuizResult, error)
	Attempts(ctx context.Context, employeeID, courseID string) ([]*types.QuizAttempt, error)
	AttemptResponses(ctx context.Context, employeeID string, attemptID uuid.UUID) ([]*types.QuizResponse, error)
}

type quizService struct {
	db           *gorm.DB
	log          *logger.Logger
	mcqRepo      repos.MCQRepo
	quizRepo     repos.QuizRepo
	progressRepo repos.ProgressRepo
	progress     ProgressService
	store        *graph.CatalogStore
	notifier     NotificationService
	passingScore float64
}

func NewQuizService(db *gorm.DB, log *logger.Logger, mcqRepo repos.MCQRepo, quizRepo repos.QuizRepo, progressRepo repos.ProgressRepo, progress ProgressService, store *graph.CatalogStore, notifier NotificationService, passingScore float64) QuizService {
	serviceLog := log.With("service", "QuizService")
	return &quizService{
		db:           db,
		log:          serviceLog,
		mcqRepo:      mcqRepo,
		quizRepo:     quizRepo,
		progressRepo: progressRepo,
		progress:     progress,
		store:        store,
		notifier:     notifier,
		passingScore: passingScore,
	}
}

func (qs *quizService) QuestionsForCourse(ctx context.Context, employeeID, courseID string) ([]QuizQuestionView, error) {
	if _, err := qs.progress.RequireAccess(ctx, nil, employeeID, courseID); err != nil {
		return nil, err
	}

	questionIDs, err := qs.store.CourseQuestionIDs(ctx, courseID)
	if err != nil {
		return nil, err
	}
	if len(questionIDs) == 0 {
		return []QuizQuestionView{}, nil
	}

	mcqs, err := qs.mcqRepo.GetByIDs(ctx, nil, questionIDs)
	if err != nil {
		return nil, apperr.StoreUnavailable("question_lookup_failed", err)
	}
	if len(mcqs) != len(questionIDs) {
		return nil, apperr.NotFound("question_content_missing", "course %s references %d questions but only %d have content", courseID, len(questionIDs), len(mcqs))
	}

	views := make([]QuizQuestionView, 0, len(mcqs))
	for _, m := range mcqs {
		views = append(views, QuizQuestionView{
			QuestionID:         m.QuestionID,
			QuestionText:       m.QuestionText,
			Options:            m.Options(),
			MultipleAnswerFlag: m.MultipleAnswerFlag,
		})
	}
	return views, nil
}

// gradeSelection is the single grading rule. A question is graded by set
// equality when its flag is set or it has more than one correct letter; a
// set-shaped answer to a single-select question (and the reverse) is wrong,
// never an error.
func gradeSelection(correct []string, multiSelect bool, answer types.Answer) bool {
	if multiSelect {
		if !answer.Set {
			return false
		}
		if len(answer.Letters) != len(correct) {
			return false
		}
		got := answer.SortedLetters()
		want := append([]string(nil), correct...)
		sort.Strings(want)
		for i := range got {
			if got[i] != want[i] {
				return false
			}
		}
		return true
	}
	if answer.Set {
		return false
	}
	return len(answer.Letters) == 1 && answer.Letters[0] == correct[0]
}

type gradedAnswer struct {
	mcq       *types.MCQ
	answer    types.Answer
	correct   []string
	isCorrect bool
}

func (qs *quizService) gradeAll(answers map[string]types.Answer, mcqsByID map[string]*types.MCQ) ([]gradedAnswer, int, error) {
	// Deterministic order for stored responses.
	ids := make([]string, 0, len(answers))
	for id := range answers {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	graded := make([]gradedAnswer, 0, len(ids))
	correctCount := 0
	for _, id := range ids {
		mcq := mcqsByID[id]
		letters, err := mcq.CorrectLetters()
		if err != nil {
			return nil, 0, apperr.StoreUnavailable("question_content_invalid", err)
		}
		multi := mcq.MultipleAnswerFlag || len(letters) > 1
		ok := gradeSelection(letters, multi, answers[id])
		if ok {
			correctCount++
		}
		graded = append(graded, gradedAnswer{mcq: mcq, answer: answers[id], correct: letters, isCorrect: ok})
	}
	return graded, correctCount, nil
}

func (qs *quizService) Submit(ctx context.Context, employeeID string, input SubmitQuizInput) (*SubmitQuizResult, error) {
	if len(input.Answers) == 0 {
		return nil, apperr.Validation("empty_submission", "a submission must answer at least one question")
	}
	for id, answer := range input.Answers {
		if err := answer.Validate(); err != nil {
			return nil, apperr.Validation("bad_answer", "question %s: %v", id, err)
		}
	}

	progressRow, err := qs.progress.RequireAccess(ctx, nil, employeeID, input.CourseID)
	if err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(input.Answers))
	for id := range input.Answers {
		ids = append(ids, id)
	}
	mcqs, err := qs.mcqRepo.GetByIDs(ctx, nil, ids)
	if err != nil {
		return nil, apperr.StoreUnavailable("question_lookup_failed", err)
	}
	mcqsByID := make(map[string]*types.MCQ, len(mcqs))
	for _, m := range mcqs {
		mcqsByID[m.QuestionID] = m
	}
	for _, id := range ids {
		if mcqsByID[id] == nil {
			return nil, apperr.NotFound("question_not_found", "question %s does not exist", id)
		}
	}

	graded, correctCount, err := qs.gradeAll(input.Answers, mcqsByID)
	if err != nil {
		return nil, err
	}

	total := len(graded)
	score := 100 * float64(correctCount) / float64(total)
	passed := score >= qs.passingScore
	now := time.Now().UTC()

	attempt := &types.QuizAttempt{
		EmployeeID:     employeeID,
		CourseID:       input.CourseID,
		Score:          score,
		TotalQuestions: total,
		CorrectAnswers: correctCount,
		Passed:         passed,
		PassingScore:   qs.passingScore,
		AttemptedAt:    now,
	}

	newStatus := types.StatusFailed
	var completedAt *time.Time
	var timeTaken *float64
	if passed {
		newStatus = types.StatusCompleted
		completedAt = &now
		if progressRow.StartedAt != nil {
			minutes := now.Sub(*progressRow.StartedAt).Minutes()
			timeTaken = &minutes
		}
	}

	notification := &types.Notification{
		EmployeeID:       employeeID,
		NotificationType: types.NotificationQuizGraded,
		Title:            "Quiz graded",
		CourseID:         input.CourseID,
	}

	run := func() error {
		attempt.ID = uuid.New()
		return qs.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			maxN, err := qs.quizRepo.MaxAttemptNumber(ctx, tx, employeeID, input.CourseID)
			if err != nil {
				return err
			}
			attempt.AttemptNumber = maxN + 1

			if _, err := qs.quizRepo.CreateAttempt(ctx, tx, attempt); err != nil {
				return err
			}

			responses := make([]*types.QuizResponse, 0, len(graded))
			for _, g := range graded {
				raw, err := json.Marshal(g.answer)
				if err != nil {
					return err
				}
				responses = append(responses, &types.QuizResponse{
					AttemptID:      attempt.ID,
					QuestionID:     g.mcq.QuestionID,
					SelectedAnswer: datatypes.JSON(raw),
					IsCorrect:      g.isCorrect,
				})
			}
			if err := qs.quizRepo.CreateResponses(ctx, tx, responses); err != nil {
				return err
			}

			if err := qs.progressRepo.ApplyOutcome(ctx, tx, employeeID, input.CourseID, newStatus, completedAt, timeTaken); err != nil {
				return err
			}

			notification.Message = fmt.Sprintf("Attempt %d scored %.1f%% (%s)", attempt.AttemptNumber, score, newStatus)
			return qs.notifier.CreateInTx(ctx, tx, []*types.Notification{notification})
		})
	}

	if err := run(); err != nil {
		if !isUniqueViolation(err) {
			return nil, apperr.StoreUnavailable("quiz_submit_failed", err)
		}
		// Concurrent attempt grabbed our number. Recompute once.
		if err := run(); err != nil {
			return nil, apperr.StoreUnavailable("quiz_submit_failed", err)
		}
	}

	qs.notifier.PublishEvents(ctx, []*types.Notification{notification})

	result := &SubmitQuizResult{
		AttemptID:      attempt.ID,
		AttemptNumber:  attempt.AttemptNumber,
		Score:          score,
		TotalQuestions: total,
		CorrectAnswers: correctCount,
		Passed:         passed,
		PassingScore:   qs.passingScore,
		CourseStatus:   newStatus,
	}
	result.Incorrect = buildIncorrectReviews(graded)

	qs.log.Info("Quiz graded",
		"employee_id", employeeID,
		"course_id", input.CourseID,
		"attempt", attempt.AttemptNumber,
		"score", score,
		"passed", passed)
	return result, nil
}

func buildIncorrectReviews(graded []gradedAnswer) []IncorrectReview {
	var out []IncorrectReview
	for _, g := range graded {
		if g.isCorrect {
			continue
		}
		out = append(out, IncorrectReview{
			QuestionID:     g.mcq.QuestionID,
			QuestionText:   g.mcq.QuestionText,
			Options:        g.mcq.Options(),
			YourAnswer:     g.answer,
			CorrectAnswers: g.correct,
		})
	}
	return out
}

func (qs *quizService) Attempts(ctx context.Context, employeeID, courseID string) ([]*types.QuizAttempt, error) {
	rows, err := qs.quizRepo.GetAttemptsByEmployeeAndCourse(ctx, nil, employeeID, courseID)
	if err != nil {
		return nil, apperr.StoreUnavailable("attempt_list_failed", err)
	}
	return rows, nil
}

// AttemptResponses is owner-scoped: the attempt must belong to the caller.
func (qs *quizService) AttemptResponses(ctx context.Context, employeeID string, attemptID uuid.UUID) ([]*types.QuizResponse, error) {
	rows, err := qs.quizRepo.GetResponsesByAttempt(ctx, nil, attemptID)
	if err != nil {
		return nil, apperr.StoreUnavailable("response_list_failed", err)
	}
	if len(rows) > 0 {
		attempts, err := qs.quizRepo.GetAttemptsByEmployee(ctx, nil, employeeID)
		if err != nil {
			return nil, apperr.StoreUnavailable("attempt_list_failed", err)
		}
		owned := false
		for _, a := range attempts {
			if a.ID == attemptID {
				owned = true
				break
			}
		}
		if !owned {
			return nil, apperr.NotFound("attempt_not_found", "attempt %s not found for employee %s", attemptID, employeeID)
		}
	}
	return rows, nil
}

func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "SQLSTATE 23505") || strings.Contains(msg, "duplicate key value violates unique constraint")
}

package services

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/sarun2104/training-app/internal/data/graph"
	"github.com/sarun2104/training-app/internal/data/repos"
	types "github.com/sarun2104/training-app/internal/domain"
	"github.com/sarun2104/training-app/internal/pkg/apperr"
	"github.com/sarun2104/training-app/internal/pkg/contentid"
	"github.com/sarun2104/training-app/internal/pkg/logger"
)

type CreateQuestionInput struct {
	CourseID           string   `json:"course_id"`
	QuestionText       string   `json:"question_text"`
	OptionA            string   `json:"option_a"`
	OptionB            string   `json:"option_b"`
	OptionC            string   `json:"option_c"`
	OptionD            string   `json:"option_d"`
	CorrectAnswers     []string `json:"correct_answers"`
	MultipleAnswerFlag bool     `json:"multiple_answer_flag"`
}

type QuestionService interface {
	Create(ctx context.Context, input CreateQuestionInput) (*types.MCQ, error)
	Get(ctx context.Context, questionID string) (*types.MCQ, error)
	List(ctx context.Context) ([]*types.MCQ, error)
	Update(ctx context.Context, questionID string, input CreateQuestionInput) (*types.MCQ, error)
}

type questionService struct {
	db      *gorm.DB
	log     *logger.Logger
	store   *graph.CatalogStore
	mcqRepo repos.MCQRepo
}

func NewQuestionService(db *gorm.DB, log *logger.Logger, store *graph.CatalogStore, mcqRepo repos.MCQRepo) QuestionService {
	serviceLog := log.With("service", "QuestionService")
	return &questionService{db: db, log: serviceLog, store: store, mcqRepo: mcqRepo}
}

func validateQuestionInput(input *CreateQuestionInput) error {
	input.QuestionText = strings.TrimSpace(input.QuestionText)
	if input.QuestionText == "" {
		return apperr.Validation("missing_question_text", "question text is required")
	}
	for _, opt := range []string{input.OptionA, input.OptionB, input.OptionC, input.OptionD} {
		if strings.TrimSpace(opt) == "" {
			return apperr.Validation("missing_options", "all four options are required")
		}
	}
	if len(input.CorrectAnswers) == 0 {
		return apperr.Validation("missing_correct_answers", "at least one correct answer is required")
	}
	seen := map[string]bool{}
	for i, l := range input.CorrectAnswers {
		l = strings.ToUpper(strings.TrimSpace(l))
		if !types.ValidOptionLetter(l) {
			return apperr.Validation("bad_correct_answer", "correct answer %q is not one of A-D", l)
		}
		if seen[l] {
			return apperr.Validation("duplicate_correct_answer", "correct answer %q repeated", l)
		}
		seen[l] = true
		input.CorrectAnswers[i] = l
	}
	return nil
}

// Create writes the question content to Postgres and hangs the Question node
// off the course in the same breath. A graph failure rolls back the row.
func (qs *questionService) Create(ctx context.Context, input CreateQuestionInput) (*types.MCQ, error) {
	if err := validateQuestionInput(&input); err != nil {
		return nil, err
	}
	if strings.TrimSpace(input.CourseID) == "" {
		return nil, apperr.Validation("missing_course", "course_id is required")
	}

	mcq := &types.MCQ{
		QuestionID:         contentid.FromName(input.QuestionText),
		QuestionText:       input.QuestionText,
		OptionA:            input.OptionA,
		OptionB:            input.OptionB,
		OptionC:            input.OptionC,
		OptionD:            input.OptionD,
		MultipleAnswerFlag: input.MultipleAnswerFlag,
	}
	if err := mcq.SetCorrectLetters(input.CorrectAnswers); err != nil {
		return nil, apperr.Validation("bad_correct_answers", "could not encode correct answers: %v", err)
	}

	if _, err := qs.mcqRepo.GetByID(ctx, nil, mcq.QuestionID); err == nil {
		return nil, apperr.Conflict("question_exists", "question %s already exists", mcq.QuestionID)
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.StoreUnavailable("question_lookup_failed", err)
	}

	if err := qs.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := qs.mcqRepo.Create(ctx, tx, mcq); err != nil {
			return apperr.StoreUnavailable("question_create_failed", err)
		}
		return qs.store.AttachQuestion(ctx, mcq.QuestionID, input.CourseID)
	}); err != nil {
		var ae *apperr.Error
		if errors.As(err, &ae) {
			return nil, err
		}
		return nil, apperr.StoreUnavailable("question_create_failed", err)
	}

	qs.log.Info("Question created", "question_id", mcq.QuestionID, "course_id", input.CourseID)
	return mcq, nil
}

func (qs *questionService) Get(ctx context.Context, questionID string) (*types.MCQ, error) {
	mcq, err := qs.mcqRepo.GetByID(ctx, nil, questionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("question_not_found", "question %s does not exist", questionID)
		}
		return nil, apperr.StoreUnavailable("question_lookup_failed", err)
	}
	return mcq, nil
}

func (qs *questionService) List(ctx context.Context) ([]*types.MCQ, error) {
	rows, err := qs.mcqRepo.List(ctx, nil)
	if err != nil {
		return nil, apperr.StoreUnavailable("question_list_failed", err)
	}
	return rows, nil
}

// Update edits content in place. The id stays: question ids are referenced
// from the graph and from stored responses, so text edits must not re-key.
func (qs *questionService) Update(ctx context.Context, questionID string, input CreateQuestionInput) (*types.MCQ, error) {
	if err := validateQuestionInput(&input); err != nil {
		return nil, err
	}

	mcq, err := qs.Get(ctx, questionID)
	if err != nil {
		return nil, err
	}

	mcq.QuestionText = input.QuestionText
	mcq.OptionA = input.OptionA
	mcq.OptionB = input.OptionB
	mcq.OptionC = input.OptionC
	mcq.OptionD = input.OptionD
	mcq.MultipleAnswerFlag = input.MultipleAnswerFlag
	if err := mcq.SetCorrectLetters(input.CorrectAnswers); err != nil {
		return nil, apperr.Validation("bad_correct_answers", "could not encode correct answers: %v", err)
	}

	if err := qs.mcqRepo.Update(ctx, nil, mcq); err != nil {
		return nil, apperr.StoreUnavailable("question_update_failed", err)
	}
	return mcq, nil
}

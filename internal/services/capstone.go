package services

import (
	"context"
	"encoding/json"
	"errors"
	"strings"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/sarun2104/training-app/internal/data/repos"
	types "github.com/sarun2104/training-app/internal/domain"
	"github.com/sarun2104/training-app/internal/pkg/apperr"
	"github.com/sarun2104/training-app/internal/pkg/contentid"
	"github.com/sarun2104/training-app/internal/pkg/logger"
)

type CreateCapstoneInput struct {
	CapstoneName  string   `json:"capstone_name"`
	Tags          []string `json:"tags"`
	DurationWeeks int      `json:"duration_weeks"`
	DatasetLink   string   `json:"dataset_link"`
	Guidelines    []string `json:"guidelines"`
}

type CapstoneService interface {
	Create(ctx context.Context, input CreateCapstoneInput) (*types.Capstone, error)
	List(ctx context.Context) ([]*types.Capstone, error)
	Get(ctx context.Context, capstoneID string) (*types.Capstone, error)
}

type capstoneService struct {
	db           *gorm.DB
	log          *logger.Logger
	capstoneRepo repos.CapstoneRepo
}

func NewCapstoneService(db *gorm.DB, log *logger.Logger, capstoneRepo repos.CapstoneRepo) CapstoneService {
	serviceLog := log.With("service", "CapstoneService")
	return &capstoneService{db: db, log: serviceLog, capstoneRepo: capstoneRepo}
}

func (cs *capstoneService) Create(ctx context.Context, input CreateCapstoneInput) (*types.Capstone, error) {
	input.CapstoneName = contentid.Normalize(input.CapstoneName)
	if input.CapstoneName == "" {
		return nil, apperr.Validation("missing_name", "capstone name is required")
	}
	if input.DurationWeeks < 0 {
		return nil, apperr.Validation("bad_duration", "duration_weeks cannot be negative")
	}

	tags, err := json.Marshal(input.Tags)
	if err != nil {
		return nil, apperr.Validation("bad_tags", "could not encode tags: %v", err)
	}
	guidelines, err := json.Marshal(input.Guidelines)
	if err != nil {
		return nil, apperr.Validation("bad_guidelines", "could not encode guidelines: %v", err)
	}

	capstone := &types.Capstone{
		CapstoneID:    contentid.New(input.CapstoneName),
		CapstoneName:  input.CapstoneName,
		Tags:          datatypes.JSON(tags),
		DurationWeeks: input.DurationWeeks,
		DatasetLink:   strings.TrimSpace(input.DatasetLink),
		Guidelines:    datatypes.JSON(guidelines),
	}

	if _, err := cs.capstoneRepo.GetByID(ctx, nil, capstone.CapstoneID); err == nil {
		return nil, apperr.Conflict("capstone_exists", "capstone %q already exists", input.CapstoneName)
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.StoreUnavailable("capstone_lookup_failed", err)
	}

	if _, err := cs.capstoneRepo.Create(ctx, nil, capstone); err != nil {
		return nil, apperr.StoreUnavailable("capstone_create_failed", err)
	}
	cs.log.Info("Capstone created", "capstone_id", capstone.CapstoneID)
	return capstone, nil
}

func (cs *capstoneService) List(ctx context.Context) ([]*types.Capstone, error) {
	rows, err := cs.capstoneRepo.List(ctx, nil)
	if err != nil {
		return nil, apperr.StoreUnavailable("capstone_list_failed", err)
	}
	return rows, nil
}

func (cs *capstoneService) Get(ctx context.Context, capstoneID string) (*types.Capstone, error) {
	capstone, err := cs.capstoneRepo.GetByID(ctx, nil, capstoneID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("capstone_not_found", "capstone %s does not exist", capstoneID)
		}
		return nil, apperr.StoreUnavailable("capstone_lookup_failed", err)
	}
	return capstone, nil
}

package services

import (
	"context"
	"errors"
	"strings"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/sarun2104/training-app/internal/data/repos"
	types "github.com/sarun2104/training-app/internal/domain"
	"github.com/sarun2104/training-app/internal/pkg/apperr"
	"github.com/sarun2104/training-app/internal/pkg/logger"
)

type CreateEmployeeInput struct {
	EmployeeID   string `json:"employee_id"`
	EmployeeName string `json:"employee_name"`
	Email        string `json:"email"`
	Department   string `json:"department"`
	Designation  string `json:"designation"`
	Role         string `json:"role"`
	Password     string `json:"password"`
}

// ProfileView is the employee-facing profile: the stored row plus live
// progress counts.
type ProfileView struct {
	Employee    *types.Employee  `json:"employee"`
	Designation string           `json:"designation,omitempty"`
	AvatarColor string           `json:"avatar_color,omitempty"`
	Counts      map[string]int64 `json:"course_counts"`
}

type EmployeeService interface {
	Create(ctx context.Context, input CreateEmployeeInput) (*types.Employee, error)
	List(ctx context.Context) ([]*types.Employee, error)
	Get(ctx context.Context, employeeID string) (*types.Employee, error)
	Profile(ctx context.Context, employeeID string) (*ProfileView, error)
	AvatarPNG(ctx context.Context, employeeID string) ([]byte, error)
}

type employeeService struct {
	db            *gorm.DB
	log           *logger.Logger
	employeeRepo  repos.EmployeeRepo
	progressRepo  repos.ProgressRepo
	avatarService AvatarService
}

func NewEmployeeService(db *gorm.DB, log *logger.Logger, employeeRepo repos.EmployeeRepo, progressRepo repos.ProgressRepo, avatarService AvatarService) EmployeeService {
	serviceLog := log.With("service", "EmployeeService")
	return &employeeService{
		db:            db,
		log:           serviceLog,
		employeeRepo:  employeeRepo,
		progressRepo:  progressRepo,
		avatarService: avatarService,
	}
}

func (es *employeeService) Create(ctx context.Context, input CreateEmployeeInput) (*types.Employee, error) {
	input.EmployeeID = strings.TrimSpace(input.EmployeeID)
	input.EmployeeName = strings.TrimSpace(input.EmployeeName)
	input.Email = strings.ToLower(strings.TrimSpace(input.Email))

	if input.EmployeeID == "" || input.EmployeeName == "" || input.Email == "" || input.Password == "" {
		return nil, apperr.Validation("missing_fields", "employee_id, employee_name, email and password are required")
	}
	role := input.Role
	if role == "" {
		role = types.RoleEmployee
	}
	if role != types.RoleAdmin && role != types.RoleEmployee {
		return nil, apperr.Validation("bad_role", "role must be admin or employee")
	}

	if _, err := es.employeeRepo.GetByID(ctx, nil, input.EmployeeID); err == nil {
		return nil, apperr.Conflict("employee_exists", "employee %s already exists", input.EmployeeID)
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.StoreUnavailable("employee_lookup_failed", err)
	}
	if _, err := es.employeeRepo.GetByEmail(ctx, nil, input.Email); err == nil {
		return nil, apperr.Conflict("email_exists", "email %s is already registered", input.Email)
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.StoreUnavailable("employee_lookup_failed", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, apperr.StoreUnavailable("password_hash_failed", err)
	}

	employee := &types.Employee{
		EmployeeID:   input.EmployeeID,
		EmployeeName: input.EmployeeName,
		Email:        input.Email,
		Department:   input.Department,
		Role:         role,
		PasswordHash: string(hash),
	}

	profile, err := es.avatarService.BuildProfile(employee, input.Designation)
	if err != nil {
		return nil, apperr.StoreUnavailable("avatar_render_failed", err)
	}

	if err := es.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := es.employeeRepo.Create(ctx, tx, employee); err != nil {
			return err
		}
		return es.employeeRepo.UpsertProfile(ctx, tx, profile)
	}); err != nil {
		return nil, apperr.StoreUnavailable("employee_create_failed", err)
	}

	es.log.Info("Employee created", "employee_id", employee.EmployeeID, "role", employee.Role)
	return employee, nil
}

func (es *employeeService) List(ctx context.Context) ([]*types.Employee, error) {
	results, err := es.employeeRepo.List(ctx, nil)
	if err != nil {
		return nil, apperr.StoreUnavailable("employee_list_failed", err)
	}
	return results, nil
}

func (es *employeeService) Get(ctx context.Context, employeeID string) (*types.Employee, error) {
	employee, err := es.employeeRepo.GetByID(ctx, nil, employeeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("employee_not_found", "employee %s does not exist", employeeID)
		}
		return nil, apperr.StoreUnavailable("employee_lookup_failed", err)
	}
	return employee, nil
}

func (es *employeeService) Profile(ctx context.Context, employeeID string) (*ProfileView, error) {
	employee, err := es.Get(ctx, employeeID)
	if err != nil {
		return nil, err
	}

	counts, err := es.progressRepo.CountByStatus(ctx, nil, employeeID)
	if err != nil {
		return nil, apperr.StoreUnavailable("progress_counts_failed", err)
	}

	view := &ProfileView{Employee: employee, Counts: counts}
	profile, err := es.employeeRepo.GetProfile(ctx, nil, employeeID)
	if err == nil {
		view.Designation = profile.Designation
		view.AvatarColor = profile.AvatarColor
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.StoreUnavailable("profile_lookup_failed", err)
	}
	return view, nil
}

// AvatarPNG returns the stored image, rendering and persisting one on the
// fly for profiles created before avatars existed.
func (es *employeeService) AvatarPNG(ctx context.Context, employeeID string) ([]byte, error) {
	profile, err := es.employeeRepo.GetProfile(ctx, nil, employeeID)
	if err == nil && len(profile.AvatarPNG) > 0 {
		return profile.AvatarPNG, nil
	}
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.StoreUnavailable("profile_lookup_failed", err)
	}

	employee, err := es.Get(ctx, employeeID)
	if err != nil {
		return nil, err
	}
	fresh, err := es.avatarService.BuildProfile(employee, "")
	if err != nil {
		return nil, apperr.StoreUnavailable("avatar_render_failed", err)
	}
	if profile != nil {
		fresh.Designation = profile.Designation
	}
	if err := es.employeeRepo.UpsertProfile(ctx, nil, fresh); err != nil {
		return nil, apperr.StoreUnavailable("profile_save_failed", err)
	}
	return fresh.AvatarPNG, nil
}

package services

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/sarun2104/training-app/internal/data/graph"
	"github.com/sarun2104/training-app/internal/data/repos"
	types "github.com/sarun2104/training-app/internal/domain"
	"github.com/sarun2104/training-app/internal/pkg/apperr"
	"github.com/sarun2104/training-app/internal/pkg/logger"
)

// CourseProgressView is a progress row joined with the course name from the
// graph side.
type CourseProgressView struct {
	types.EmployeeCourseProgress
	CourseName string `json:"course_name"`
}

type ProgressService interface {
	MyCourses(ctx context.Context, employeeID string) ([]CourseProgressView, error)
	StartCourse(ctx context.Context, employeeID, courseID string) (*types.EmployeeCourseProgress, error)
	RequireAccess(ctx context.Context, tx *gorm.DB, employeeID, courseID string) (*types.EmployeeCourseProgress, error)
}

type progressService struct {
	db           *gorm.DB
	log          *logger.Logger
	progressRepo repos.ProgressRepo
	store        *graph.CatalogStore
}

func NewProgressService(db *gorm.DB, log *logger.Logger, progressRepo repos.ProgressRepo, store *graph.CatalogStore) ProgressService {
	serviceLog := log.With("service", "ProgressService")
	return &progressService{
		db:           db,
		log:          serviceLog,
		progressRepo: progressRepo,
		store:        store,
	}
}

func (ps *progressService) MyCourses(ctx context.Context, employeeID string) ([]CourseProgressView, error) {
	rows, err := ps.progressRepo.GetByEmployee(ctx, nil, employeeID)
	if err != nil {
		return nil, apperr.StoreUnavailable("progress_list_failed", err)
	}

	courseIDs := make([]string, 0, len(rows))
	for _, row := range rows {
		courseIDs = append(courseIDs, row.CourseID)
	}
	names, err := ps.store.CourseNames(ctx, courseIDs)
	if err != nil {
		return nil, err
	}

	views := make([]CourseProgressView, 0, len(rows))
	for _, row := range rows {
		views = append(views, CourseProgressView{
			EmployeeCourseProgress: *row,
			CourseName:             names[row.CourseID],
		})
	}
	return views, nil
}

// RequireAccess returns the caller's progress row for the course, or
// Forbidden when no assignment ever granted access.
func (ps *progressService) RequireAccess(ctx context.Context, tx *gorm.DB, employeeID, courseID string) (*types.EmployeeCourseProgress, error) {
	row, err := ps.progressRepo.GetByEmployeeAndCourse(ctx, tx, employeeID, courseID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.Forbidden("course_not_assigned", "course %s is not assigned to employee %s", courseID, employeeID)
		}
		return nil, apperr.StoreUnavailable("progress_lookup_failed", err)
	}
	return row, nil
}

// StartCourse moves assigned → in_progress. Starting again, or starting a
// course already settled, changes nothing and returns the current row.
func (ps *progressService) StartCourse(ctx context.Context, employeeID, courseID string) (*types.EmployeeCourseProgress, error) {
	row, err := ps.RequireAccess(ctx, nil, employeeID, courseID)
	if err != nil {
		return nil, err
	}

	if row.Status != types.StatusAssigned {
		return row, nil
	}

	now := time.Now().UTC()
	if err := ps.progressRepo.MarkStarted(ctx, nil, employeeID, courseID, now); err != nil {
		return nil, apperr.StoreUnavailable("progress_start_failed", err)
	}

	row.Status = types.StatusInProgress
	if row.StartedAt == nil {
		row.StartedAt = &now
	}
	ps.log.Info("Course started", "employee_id", employeeID, "course_id", courseID)
	return row, nil
}

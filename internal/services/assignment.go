package services

import (
	"context"
	"fmt"
	"sort"

	"gorm.io/gorm"

	"github.com/sarun2104/training-app/internal/data/graph"
	"github.com/sarun2104/training-app/internal/data/repos"
	types "github.com/sarun2104/training-app/internal/domain"
	"github.com/sarun2104/training-app/internal/pkg/apperr"
	"github.com/sarun2104/training-app/internal/pkg/logger"
)

type AssignInput struct {
	EmployeeID     string `json:"employee_id"`
	AssignmentType string `json:"assignment_type"`
	AssignmentID   string `json:"assignment_id"`
}

type AssignResult struct {
	EmployeeID     string   `json:"employee_id"`
	AssignmentType string   `json:"assignment_type"`
	AssignmentID   string   `json:"assignment_id"`
	CourseIDs      []string `json:"course_ids"`
}

type AssignmentService interface {
	Assign(ctx context.Context, input AssignInput) (*AssignResult, error)
}

type assignmentService struct {
	db           *gorm.DB
	log          *logger.Logger
	employeeRepo repos.EmployeeRepo
	progressRepo repos.ProgressRepo
	store        *graph.CatalogStore
	notifier     NotificationService
}

func NewAssignmentService(db *gorm.DB, log *logger.Logger, employeeRepo repos.EmployeeRepo, progressRepo repos.ProgressRepo, store *graph.CatalogStore, notifier NotificationService) AssignmentService {
	serviceLog := log.With("service", "AssignmentService")
	return &assignmentService{
		db:           db,
		log:          serviceLog,
		employeeRepo: employeeRepo,
		progressRepo: progressRepo,
		store:        store,
		notifier:     notifier,
	}
}

// Assign resolves a grant to its reachable course set and opens one progress
// row per course. Re-assigning is a no-op for courses the employee already
// holds; the notification still fires for the assignment event itself.
func (s *assignmentService) Assign(ctx context.Context, input AssignInput) (*AssignResult, error) {
	if !types.ValidAssignmentType(input.AssignmentType) {
		return nil, apperr.Validation("bad_assignment_type", "assignment_type must be track, subtrack or course")
	}
	kind, _ := types.KindForAssignmentType(input.AssignmentType)

	employee, err := s.employeeRepo.GetByID(ctx, nil, input.EmployeeID)
	if err != nil {
		return nil, apperr.NotFound("employee_not_found", "employee %s does not exist", input.EmployeeID)
	}

	exists, err := s.store.NodeExists(ctx, kind, input.AssignmentID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, apperr.NotFound("assignment_target_not_found", "%s %s does not exist", input.AssignmentType, input.AssignmentID)
	}

	courseIDs, err := s.store.CoursesReachable(ctx, input.AssignmentType, input.AssignmentID)
	if err != nil {
		return nil, err
	}
	sort.Strings(courseIDs)

	if err := s.store.RecordAssignment(ctx, employee.EmployeeID, kind, input.AssignmentID); err != nil {
		return nil, err
	}

	notification := &types.Notification{
		EmployeeID:       employee.EmployeeID,
		NotificationType: types.NotificationCourseAssigned,
		Title:            "New training assigned",
		Message:          fmt.Sprintf("You have been assigned %s %s (%d courses)", input.AssignmentType, input.AssignmentID, len(courseIDs)),
	}
	if input.AssignmentType == types.AssignmentTypeCourse {
		notification.CourseID = input.AssignmentID
	}

	rows := make([]*types.EmployeeCourseProgress, 0, len(courseIDs))
	for _, courseID := range courseIDs {
		rows = append(rows, &types.EmployeeCourseProgress{
			EmployeeID:     employee.EmployeeID,
			CourseID:       courseID,
			AssignmentType: input.AssignmentType,
			AssignmentID:   input.AssignmentID,
			Status:         types.StatusAssigned,
		})
	}

	if err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.progressRepo.UpsertAssigned(ctx, tx, rows); err != nil {
			return err
		}
		return s.notifier.CreateInTx(ctx, tx, []*types.Notification{notification})
	}); err != nil {
		return nil, apperr.StoreUnavailable("assignment_write_failed", err)
	}

	s.notifier.PublishEvents(ctx, []*types.Notification{notification})

	s.log.Info("Assignment resolved",
		"employee_id", employee.EmployeeID,
		"assignment_type", input.AssignmentType,
		"assignment_id", input.AssignmentID,
		"courses", len(courseIDs))

	return &AssignResult{
		EmployeeID:     employee.EmployeeID,
		AssignmentType: input.AssignmentType,
		AssignmentID:   input.AssignmentID,
		CourseIDs:      courseIDs,
	}, nil
}

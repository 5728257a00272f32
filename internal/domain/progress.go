package domain

import (
	"time"

	"github.com/google/uuid"
)

const (
	StatusAssigned   = "assigned"
	StatusInProgress = "in_progress"
	StatusCompleted  = "completed"
	StatusFailed     = "failed"
)

const (
	AssignmentTypeTrack    = "track"
	AssignmentTypeSubTrack = "subtrack"
	AssignmentTypeCourse   = "course"
)

func ValidAssignmentType(t string) bool {
	switch t {
	case AssignmentTypeTrack, AssignmentTypeSubTrack, AssignmentTypeCourse:
		return true
	default:
		return false
	}
}

// EmployeeCourseProgress is the one row per (employee, course) pair tracking
// the learner through the assigned → in_progress → completed/failed machine.
// AssignmentType/AssignmentID record the grant that first opened access.
type EmployeeCourseProgress struct {
	ID               uuid.UUID  `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"progress_id"`
	EmployeeID       string     `gorm:"not null;uniqueIndex:idx_employee_course;column:employee_id" json:"employee_id"`
	CourseID         string     `gorm:"not null;uniqueIndex:idx_employee_course;column:course_id" json:"course_id"`
	AssignmentType   string     `gorm:"not null;column:assignment_type" json:"assignment_type"`
	AssignmentID     string     `gorm:"not null;column:assignment_id" json:"assignment_id"`
	Status           string     `gorm:"not null;default:assigned;column:status" json:"status"`
	StartedAt        *time.Time `gorm:"column:started_at" json:"started_at,omitempty"`
	CompletedAt      *time.Time `gorm:"column:completed_at" json:"completed_at,omitempty"`
	TimeTakenMinutes *float64   `gorm:"column:time_taken_minutes" json:"time_taken_minutes,omitempty"`
	CreatedAt        time.Time  `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt        time.Time  `gorm:"not null;default:now()" json:"updated_at"`
}

func (EmployeeCourseProgress) TableName() string {
	return "employee_course_progress"
}

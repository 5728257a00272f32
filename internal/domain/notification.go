package domain

import (
	"time"

	"github.com/google/uuid"
)

const (
	NotificationCourseAssigned = "course_assigned"
	NotificationQuizGraded     = "quiz_graded"
)

type Notification struct {
	ID               uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"notification_id"`
	EmployeeID       string    `gorm:"not null;index;column:employee_id" json:"employee_id"`
	NotificationType string    `gorm:"not null;column:notification_type" json:"notification_type"`
	Title            string    `gorm:"not null;column:title" json:"title"`
	Message          string    `gorm:"not null;column:message" json:"message"`
	CourseID         string    `gorm:"column:course_id" json:"course_id,omitempty"`
	IsRead           bool      `gorm:"not null;default:false;column:is_read" json:"is_read"`
	CreatedAt        time.Time `gorm:"not null;default:now()" json:"created_at"`
}

func (Notification) TableName() string {
	return "notifications"
}

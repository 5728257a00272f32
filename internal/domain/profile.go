package domain

import (
	"time"

	"github.com/google/uuid"
)

type EmployeeProfile struct {
	ID          uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	EmployeeID  string    `gorm:"uniqueIndex;not null;column:employee_id" json:"employee_id"`
	Designation string    `gorm:"column:designation" json:"designation,omitempty"`
	AvatarColor string    `gorm:"column:avatar_color" json:"avatar_color,omitempty"`
	AvatarPNG   []byte    `gorm:"type:bytea;column:avatar_png" json:"-"`
	CreatedAt   time.Time `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt   time.Time `gorm:"not null;default:now()" json:"updated_at"`
}

func (EmployeeProfile) TableName() string {
	return "employee_profiles"
}

package domain

import (
	"time"
)

const (
	RoleAdmin    = "admin"
	RoleEmployee = "employee"
)

type Employee struct {
	EmployeeID   string    `gorm:"primaryKey;column:employee_id" json:"employee_id"`
	EmployeeName string    `gorm:"not null;column:employee_name" json:"employee_name"`
	Email        string    `gorm:"uniqueIndex;not null;column:email" json:"email"`
	Department   string    `gorm:"column:department" json:"department,omitempty"`
	Role         string    `gorm:"not null;default:employee;column:role" json:"role"`
	PasswordHash string    `gorm:"not null;column:password_hash" json:"-"`
	CreatedAt    time.Time `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt    time.Time `gorm:"not null;default:now()" json:"updated_at"`
}

func (Employee) TableName() string {
	return "employees"
}

func (e *Employee) IsAdmin() bool {
	return e.Role == RoleAdmin
}

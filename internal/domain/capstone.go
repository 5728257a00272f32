package domain

import (
	"time"

	"gorm.io/datatypes"
)

type Capstone struct {
	CapstoneID    string         `gorm:"primaryKey;column:capstone_id" json:"capstone_id"`
	CapstoneName  string         `gorm:"not null;column:capstone_name" json:"capstone_name"`
	Tags          datatypes.JSON `gorm:"column:tags" json:"tags,omitempty"`
	DurationWeeks int            `gorm:"not null;default:0;column:duration_weeks" json:"duration_weeks"`
	DatasetLink   string         `gorm:"column:dataset_link" json:"dataset_link,omitempty"`
	Guidelines    datatypes.JSON `gorm:"column:guidelines" json:"guidelines,omitempty"`
	CreatedAt     time.Time      `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt     time.Time      `gorm:"not null;default:now()" json:"updated_at"`
}

func (Capstone) TableName() string {
	return "capstones"
}

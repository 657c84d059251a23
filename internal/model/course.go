package model

import (
	"time"

	"gorm.io/gorm"
)

// Course is owned by the administrative side of the portal. The exam
// subsystem only reads it.
type Course struct {
	ID        uint           `gorm:"primarykey" json:"id"`
	Code      string         `json:"code" gorm:"not null;uniqueIndex"` // "CSC 201"
	Title     string         `json:"title" gorm:"not null"`
	Level     int            `json:"level" gorm:"not null"` // 100, 200, ...
	Units     int            `json:"units" gorm:"not null;default:0"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

package model

import (
	"time"

	"gorm.io/gorm"
)

// Registration ties a student to a course for one session/semester.
// Dropping a course soft-deletes the row.
type Registration struct {
	ID        uint           `gorm:"primarykey" json:"id"`
	UserID    uint           `json:"user_id" gorm:"not null;uniqueIndex:idx_registration_scope"`
	CourseID  uint           `json:"course_id" gorm:"not null;uniqueIndex:idx_registration_scope"`
	Course    Course         `json:"course,omitempty" gorm:"foreignKey:CourseID"`
	Session   string         `json:"session" gorm:"not null;uniqueIndex:idx_registration_scope"`  // "2024/2025"
	Semester  string         `json:"semester" gorm:"not null;uniqueIndex:idx_registration_scope"` // "First"
	CreatedAt time.Time      `json:"created_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

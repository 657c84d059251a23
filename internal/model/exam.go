package model

import "time"

// Exam is the per-start configuration snapshot of a CBT instance. A new row
// is written on every start call; rows are never shared between students.
type Exam struct {
	ID              uint      `gorm:"primarykey" json:"id"`
	CourseID        uint      `json:"course_id" gorm:"not null;index"`
	Course          Course    `json:"course,omitempty" gorm:"foreignKey:CourseID"`
	Title           string    `json:"title" gorm:"not null"`
	DurationMinutes int       `json:"duration_minutes" gorm:"not null"`
	TotalQuestions  int       `json:"total_questions" gorm:"not null"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

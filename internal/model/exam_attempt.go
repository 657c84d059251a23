package model

import (
	"time"

	"gorm.io/datatypes"
)

// ExamAttempt is one student's timed sitting of an Exam. CompletedAt, Score
// and AnswersJSON are written together, once, by the grading update.
type ExamAttempt struct {
	ID             uint           `gorm:"primarykey" json:"id"`
	UserID         uint           `json:"user_id" gorm:"not null;index"`
	ExamID         uint           `json:"exam_id" gorm:"not null;index"`
	Exam           Exam           `json:"exam,omitempty" gorm:"foreignKey:ExamID"`
	Score          *int           `json:"score"`
	TotalQuestions int            `json:"total_questions" gorm:"not null"`
	AnswersJSON    datatypes.JSON `json:"-" gorm:"column:answers_json"`
	StartedAt      time.Time      `json:"started_at" gorm:"not null"`
	CompletedAt    *time.Time     `json:"completed_at"`
	Questions      []ExamQuestion `json:"questions,omitempty" gorm:"foreignKey:AttemptID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
}

func (a *ExamAttempt) IsCompleted() bool {
	return a.CompletedAt != nil
}

// ExpiresAt is advisory: nothing finalizes an attempt when it passes.
func (a *ExamAttempt) ExpiresAt() time.Time {
	return a.StartedAt.Add(time.Duration(a.Exam.DurationMinutes) * time.Minute)
}

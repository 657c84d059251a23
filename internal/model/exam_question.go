package model

import (
	"time"

	"gorm.io/datatypes"
)

const OptionsPerQuestion = 4

// ExamQuestion is a frozen, attempt-scoped multiple-choice question.
type ExamQuestion struct {
	ID                 uint                        `gorm:"primarykey" json:"id"`
	AttemptID          uint                        `json:"attempt_id" gorm:"not null;uniqueIndex:idx_attempt_question_order"`
	QuestionText       string                      `json:"question_text" gorm:"type:text;not null"`
	Options            datatypes.JSONSlice[string] `json:"options" gorm:"column:options_json;not null"`
	CorrectAnswerIndex int                         `json:"correct_answer_index" gorm:"not null"`
	QuestionOrder      int                         `json:"question_order" gorm:"not null;uniqueIndex:idx_attempt_question_order"`
	CreatedAt          time.Time                   `json:"created_at"`
}

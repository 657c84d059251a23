package dto

import (
	"time"

	"github.com/lshigami/smartcampus/internal/model"
)

const (
	AttemptStatusInProgress = "in_progress"
	AttemptStatusCompleted  = "completed"
)

// ExamMetaDTO describes the virtual exam an attempt was started against.
type ExamMetaDTO struct {
	ID              uint   `json:"id"`
	CourseID        uint   `json:"course_id"`
	CourseCode      string `json:"course_code"`
	CourseTitle     string `json:"course_title"`
	Title           string `json:"title"`
	DurationMinutes int    `json:"duration_minutes"`
	TotalQuestions  int    `json:"total_questions"`
}

// ExamQuestionDTO is a question as shown to the student. CorrectAnswer is
// only populated once the attempt has been graded.
type ExamQuestionDTO struct {
	ID            uint     `json:"id"`
	QuestionText  string   `json:"question_text"`
	Options       []string `json:"options"`
	QuestionOrder int      `json:"question_order"`
	CorrectAnswer *int     `json:"correct_answer,omitempty"`
}

type AttemptDTO struct {
	ID               uint        `json:"id"`
	UserID           uint        `json:"user_id"`
	ExamID           uint        `json:"exam_id"`
	Exam             ExamMetaDTO `json:"exam"`
	Status           string      `json:"status"`
	Score            *int        `json:"score"`
	TotalQuestions   int         `json:"total_questions"`
	Percentage       *float64    `json:"percentage"`
	Grade            string      `json:"grade,omitempty"`
	StartedAt        time.Time   `json:"started_at"`
	CompletedAt      *time.Time  `json:"completed_at"`
	ExpiresAt        time.Time   `json:"expires_at"`
	RemainingSeconds int64       `json:"remaining_seconds"`
}

type StartExamResponse struct {
	AttemptID uint              `json:"attempt_id"`
	Exam      ExamMetaDTO       `json:"exam"`
	StartedAt time.Time         `json:"started_at"`
	ExpiresAt time.Time         `json:"expires_at"`
	Questions []ExamQuestionDTO `json:"questions"`
}

// AttemptViewResponse backs GET /exams?attempt_id and GET /exam_questions.
// Answers is only present after grading; Warning flags an attempt that has
// no persisted questions.
type AttemptViewResponse struct {
	Attempt   AttemptDTO            `json:"attempt"`
	Questions []ExamQuestionDTO     `json:"questions"`
	Answers   model.AnswerReviewMap `json:"answers,omitempty"`
	Warning   string                `json:"warning,omitempty"`
}

type SubmitAnswersResponse struct {
	AttemptID      uint    `json:"attempt_id"`
	Score          int     `json:"score"`
	TotalQuestions int     `json:"total_questions"`
	Percentage     float64 `json:"percentage"`
	Grade          string  `json:"grade"`
}

// RegisteredExamDTO is a course the student may start a CBT for this term.
type RegisteredExamDTO struct {
	CourseID               uint   `json:"course_id"`
	CourseCode             string `json:"course_code"`
	CourseTitle            string `json:"course_title"`
	Level                  int    `json:"level"`
	Units                  int    `json:"units"`
	Session                string `json:"session"`
	Semester               string `json:"semester"`
	DefaultDurationMinutes int    `json:"default_duration_minutes"`
	DefaultTotalQuestions  int    `json:"default_total_questions"`
}

type AttemptHistoryResponse struct {
	Attempts []AttemptDTO `json:"attempts"`
}

// ResultQuestionDTO is one reviewed question. Fields that depend on grading
// are null while the attempt is still in progress.
type ResultQuestionDTO struct {
	Order         int      `json:"order"`
	QuestionID    uint     `json:"question_id"`
	QuestionText  string   `json:"question_text"`
	Options       []string `json:"options"`
	CorrectAnswer *int     `json:"correct_answer"`
	UserAnswer    *int     `json:"user_answer"`
	IsCorrect     *bool    `json:"is_correct"`
}

type ExamResultsResponse struct {
	Attempt   AttemptDTO          `json:"attempt"`
	Questions []ResultQuestionDTO `json:"questions"`
}

// ErrorResponse is the body of every non-2xx response. Error is the stable
// machine-checkable kind.
type ErrorResponse struct {
	Error   string   `json:"error"`
	Message string   `json:"message"`
	Details []string `json:"details,omitempty"`
}

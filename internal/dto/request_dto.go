package dto

// StartExamRequest starts a new CBT attempt. Omitted duration and question
// count fall back to the configured defaults; explicit values out of range
// are rejected, never clamped.
type StartExamRequest struct {
	CourseID        uint `json:"course_id" binding:"required"`
	DurationMinutes *int `json:"duration_minutes"` // 15-180
	TotalQuestions  *int `json:"total_questions"`  // 5-50
}

// SubmitAnswersRequest is shared by PUT /exams and POST /exam_questions.
// Answers are keyed by question id; a null value means unanswered.
type SubmitAnswersRequest struct {
	AttemptID uint            `json:"attempt_id" binding:"required"`
	Answers   map[string]*int `json:"answers" binding:"required"`
}

// AttemptAuditQuery filters the admin attempt listing.
type AttemptAuditQuery struct {
	UserID   *uint `form:"user_id"`
	CourseID *uint `form:"course_id"`
}

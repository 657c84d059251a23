package service

import (
	"time"

	"github.com/jinzhu/copier"
	"github.com/lshigami/smartcampus/internal/dto"
	"github.com/lshigami/smartcampus/internal/model"
	"github.com/rs/zerolog/log"
)

func toExamMetaDTO(exam model.Exam) dto.ExamMetaDTO {
	var meta dto.ExamMetaDTO
	if err := copier.Copy(&meta, &exam); err != nil {
		log.Error().Err(err).Uint("examID", exam.ID).Msg("Failed to copy exam to DTO")
	}
	meta.CourseCode = exam.Course.Code
	meta.CourseTitle = exam.Course.Title
	return meta
}

// toAttemptDTO expects attempt.Exam (and its Course) to be loaded.
func toAttemptDTO(attempt *model.ExamAttempt, now time.Time) dto.AttemptDTO {
	var out dto.AttemptDTO
	if err := copier.Copy(&out, attempt); err != nil {
		log.Error().Err(err).Uint("attemptID", attempt.ID).Msg("Failed to copy attempt to DTO")
	}
	out.Exam = toExamMetaDTO(attempt.Exam)
	out.ExpiresAt = attempt.ExpiresAt()

	if attempt.IsCompleted() {
		out.Status = dto.AttemptStatusCompleted
		out.TotalQuestions = gradedTotal(attempt)
		if attempt.Score != nil {
			pct := Percentage(*attempt.Score, out.TotalQuestions)
			out.Percentage = &pct
			out.Grade = LetterGrade(pct)
		}
		return out
	}

	out.Status = dto.AttemptStatusInProgress
	if remaining := out.ExpiresAt.Sub(now); remaining > 0 {
		out.RemainingSeconds = int64(remaining / time.Second)
	}
	return out
}

// gradedTotal is the number of questions the grader saw, which is what the
// submit response reported. The stored review has one entry per graded
// question; the requested count is only used when the review is unreadable.
func gradedTotal(attempt *model.ExamAttempt) int {
	review, err := model.DecodeAnswerReviews(attempt.AnswersJSON)
	if err != nil || review == nil {
		return attempt.TotalQuestions
	}
	return len(review)
}

// toQuestionDTOs never includes the correct option unless revealKey is set.
func toQuestionDTOs(questions []model.ExamQuestion, revealKey bool) []dto.ExamQuestionDTO {
	out := make([]dto.ExamQuestionDTO, len(questions))
	for i, q := range questions {
		out[i] = dto.ExamQuestionDTO{
			ID:            q.ID,
			QuestionText:  q.QuestionText,
			Options:       append([]string(nil), q.Options...),
			QuestionOrder: q.QuestionOrder,
		}
		if revealKey {
			correct := q.CorrectAnswerIndex
			out[i].CorrectAnswer = &correct
		}
	}
	return out
}

package service

import (
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/lshigami/smartcampus/internal/dto"
	"github.com/lshigami/smartcampus/internal/model"
	"github.com/lshigami/smartcampus/internal/repository"
	"github.com/rs/zerolog/log"
)

const (
	FormatJSON = "json"
	FormatCSV  = "csv"
)

var csvHeader = []string{
	"order", "question", "option_a", "option_b", "option_c", "option_d",
	"correct_answer", "user_answer", "is_correct",
}

// RenderedResults is a ready-to-send results payload.
type RenderedResults struct {
	ContentType string
	Filename    string
	Body        []byte
}

type ResultsService interface {
	// StudentResults only reveals the answer key once the attempt is graded.
	StudentResults(ctx context.Context, userID, attemptID uint, format string) (*RenderedResults, error)
	// AuditResults is the read-only administrative view of any attempt.
	AuditResults(ctx context.Context, attemptID uint, format string) (*RenderedResults, error)
}

type resultsService struct {
	attemptRepo  repository.ExamAttemptRepository
	questionRepo repository.ExamQuestionRepository
	now          func() time.Time
}

func NewResultsService(attemptRepo repository.ExamAttemptRepository, questionRepo repository.ExamQuestionRepository) ResultsService {
	return &resultsService{
		attemptRepo:  attemptRepo,
		questionRepo: questionRepo,
		now:          time.Now,
	}
}

func (s *resultsService) StudentResults(ctx context.Context, userID, attemptID uint, format string) (*RenderedResults, error) {
	if attemptID == 0 {
		return nil, validationError("attempt_id is required")
	}
	attempt, err := s.attemptRepo.FindByIDAndUser(ctx, attemptID, userID)
	if err != nil {
		return nil, attemptLookupError(err, attemptID)
	}
	return s.render(ctx, attempt, format, attempt.IsCompleted())
}

func (s *resultsService) AuditResults(ctx context.Context, attemptID uint, format string) (*RenderedResults, error) {
	if attemptID == 0 {
		return nil, validationError("attempt_id is required")
	}
	attempt, err := s.attemptRepo.FindByID(ctx, attemptID)
	if err != nil {
		return nil, attemptLookupError(err, attemptID)
	}
	return s.render(ctx, attempt, format, true)
}

func (s *resultsService) render(ctx context.Context, attempt *model.ExamAttempt, format string, revealKey bool) (*RenderedResults, error) {
	questions, err := s.questionRepo.FindByAttemptID(ctx, attempt.ID)
	if err != nil {
		log.Error().Err(err).Uint("attemptID", attempt.ID).Msg("Failed to load questions for results")
		return nil, internalError(err, "Failed to load results")
	}
	return RenderResults(attempt, questions, format, revealKey, s.now())
}

// BuildResults projects an attempt and its questions into the review
// payload. Ungraded attempts yield null user answers and correctness; the
// correct option is null unless revealKey is set.
func BuildResults(attempt *model.ExamAttempt, questions []model.ExamQuestion, revealKey bool, now time.Time) dto.ExamResultsResponse {
	review, err := model.DecodeAnswerReviews(attempt.AnswersJSON)
	if err != nil {
		log.Warn().Err(err).Uint("attemptID", attempt.ID).Msg("Stored answer review is unreadable")
	}

	out := dto.ExamResultsResponse{
		Attempt:   toAttemptDTO(attempt, now),
		Questions: make([]dto.ResultQuestionDTO, len(questions)),
	}
	for i, q := range questions {
		row := dto.ResultQuestionDTO{
			Order:        q.QuestionOrder,
			QuestionID:   q.ID,
			QuestionText: q.QuestionText,
			Options:      append([]string(nil), q.Options...),
		}
		if revealKey {
			correct := q.CorrectAnswerIndex
			row.CorrectAnswer = &correct
		}
		if r, ok := review[q.ID]; ok {
			row.UserAnswer = r.SubmittedIndex
			isCorrect := r.IsCorrect
			row.IsCorrect = &isCorrect
		}
		out.Questions[i] = row
	}
	return out
}

// RenderResults encodes the review payload as JSON or RFC 4180 CSV. An empty
// format means JSON.
func RenderResults(attempt *model.ExamAttempt, questions []model.ExamQuestion, format string, revealKey bool, now time.Time) (*RenderedResults, error) {
	format = strings.ToLower(strings.TrimSpace(format))
	if format == "" {
		format = FormatJSON
	}
	results := BuildResults(attempt, questions, revealKey, now)

	switch format {
	case FormatJSON:
		body, err := json.Marshal(results)
		if err != nil {
			return nil, internalError(err, "Failed to render results")
		}
		return &RenderedResults{
			ContentType: "application/json; charset=utf-8",
			Filename:    fmt.Sprintf("exam_results_%d.json", attempt.ID),
			Body:        body,
		}, nil
	case FormatCSV:
		body, err := encodeResultsCSV(results.Questions)
		if err != nil {
			return nil, internalError(err, "Failed to render results")
		}
		return &RenderedResults{
			ContentType: "text/csv; charset=utf-8",
			Filename:    fmt.Sprintf("exam_results_%d.csv", attempt.ID),
			Body:        body,
		}, nil
	default:
		return nil, validationError("format must be %q or %q", FormatJSON, FormatCSV)
	}
}

func encodeResultsCSV(rows []dto.ResultQuestionDTO) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(csvHeader); err != nil {
		return nil, err
	}
	for _, row := range rows {
		record := make([]string, 0, len(csvHeader))
		record = append(record, strconv.Itoa(row.Order), row.QuestionText)
		for i := 0; i < model.OptionsPerQuestion; i++ {
			opt := ""
			if i < len(row.Options) {
				opt = row.Options[i]
			}
			record = append(record, opt)
		}
		record = append(record, optionalInt(row.CorrectAnswer), optionalInt(row.UserAnswer), optionalBool(row.IsCorrect))
		if err := w.Write(record); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func optionalInt(v *int) string {
	if v == nil {
		return ""
	}
	return strconv.Itoa(*v)
}

func optionalBool(v *bool) string {
	switch {
	case v == nil:
		return ""
	case *v:
		return "1"
	default:
		return "0"
	}
}

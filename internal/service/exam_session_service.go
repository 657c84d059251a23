package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/lshigami/smartcampus/config"
	"github.com/lshigami/smartcampus/internal/dto"
	"github.com/lshigami/smartcampus/internal/model"
	"github.com/lshigami/smartcampus/internal/repository"
	"github.com/rs/zerolog/log"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	MinDurationMinutes = 15
	MaxDurationMinutes = 180
	MinTotalQuestions  = 5
	MaxTotalQuestions  = 50

	warningNoQuestions = "This attempt has no questions on record. Contact the exam administrator."
)

type ExamSessionService interface {
	StartAttempt(ctx context.Context, userID uint, req dto.StartExamRequest) (*dto.StartExamResponse, error)
	// GetAttempt accepts an attempt id or, for stale links, an exam id.
	GetAttempt(ctx context.Context, userID, handle uint) (*dto.AttemptViewResponse, error)
	// GetQuestions only accepts a real attempt id owned by the user.
	GetQuestions(ctx context.Context, userID, attemptID uint) (*dto.AttemptViewResponse, error)
	SubmitAnswers(ctx context.Context, userID uint, req dto.SubmitAnswersRequest) (*dto.SubmitAnswersResponse, error)
	ListRegisteredExams(ctx context.Context, userID uint) ([]dto.RegisteredExamDTO, error)
	ListHistory(ctx context.Context, userID uint) (*dto.AttemptHistoryResponse, error)
}

type examSessionService struct {
	courseRepo   repository.CourseRepository
	examRepo     repository.ExamRepository
	attemptRepo  repository.ExamAttemptRepository
	questionRepo repository.ExamQuestionRepository
	academic     AcademicService
	source       QuestionSource
	examCfg      config.Exam
	now          func() time.Time
}

func NewExamSessionService(
	courseRepo repository.CourseRepository,
	examRepo repository.ExamRepository,
	attemptRepo repository.ExamAttemptRepository,
	questionRepo repository.ExamQuestionRepository,
	academic AcademicService,
	source QuestionSource,
	cfg *config.Config,
) ExamSessionService {
	return &examSessionService{
		courseRepo:   courseRepo,
		examRepo:     examRepo,
		attemptRepo:  attemptRepo,
		questionRepo: questionRepo,
		academic:     academic,
		source:       source,
		examCfg:      cfg.Exam,
		now:          time.Now,
	}
}

func (s *examSessionService) StartAttempt(ctx context.Context, userID uint, req dto.StartExamRequest) (*dto.StartExamResponse, error) {
	duration, total, err := s.examParameters(req)
	if err != nil {
		return nil, err
	}

	course, err := s.courseRepo.FindByID(ctx, req.CourseID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		log.Warn().Uint("userID", userID).Uint("courseID", req.CourseID).Msg("StartAttempt: course not found")
		return nil, newError(KindForbidden, nil, "You are not registered for this course")
	}
	if err != nil {
		log.Error().Err(err).Uint("courseID", req.CourseID).Msg("StartAttempt: failed to load course")
		return nil, internalError(err, "Failed to start exam")
	}

	registered, err := s.academic.IsRegistered(ctx, userID, course.ID)
	if err != nil {
		return nil, err
	}
	if !registered {
		log.Warn().Uint("userID", userID).Uint("courseID", course.ID).Msg("StartAttempt: user is not registered for course")
		return nil, newError(KindForbidden, nil, "You are not registered for this course")
	}

	exam := &model.Exam{
		CourseID:        course.ID,
		Title:           fmt.Sprintf("%s - %s CBT", course.Code, course.Title),
		DurationMinutes: duration,
		TotalQuestions:  total,
	}
	if err := s.examRepo.Create(ctx, exam); err != nil {
		log.Error().Err(err).Uint("courseID", course.ID).Msg("StartAttempt: failed to create exam")
		return nil, internalError(err, "Failed to start exam")
	}
	exam.Course = *course

	attempt, err := s.createAttempt(ctx, userID, exam)
	if err != nil {
		return nil, err
	}
	questions, err := s.ensureQuestions(ctx, attempt)
	if err != nil {
		return nil, err
	}

	log.Info().
		Uint("userID", userID).
		Uint("attemptID", attempt.ID).
		Uint("examID", exam.ID).
		Int("questions", len(questions)).
		Msg("Exam attempt started")

	return &dto.StartExamResponse{
		AttemptID: attempt.ID,
		Exam:      toExamMetaDTO(*exam),
		StartedAt: attempt.StartedAt,
		ExpiresAt: attempt.ExpiresAt(),
		Questions: toQuestionDTOs(questions, s.examCfg.ExposeAnswersOnStart),
	}, nil
}

func (s *examSessionService) examParameters(req dto.StartExamRequest) (int, int, error) {
	duration := s.examCfg.DefaultDurationMinutes
	if req.DurationMinutes != nil {
		duration = *req.DurationMinutes
	}
	total := s.examCfg.DefaultTotalQuestions
	if req.TotalQuestions != nil {
		total = *req.TotalQuestions
	}
	if req.CourseID == 0 {
		return 0, 0, validationError("course_id is required")
	}
	if duration < MinDurationMinutes || duration > MaxDurationMinutes {
		return 0, 0, validationError("duration_minutes must be between %d and %d", MinDurationMinutes, MaxDurationMinutes)
	}
	if total < MinTotalQuestions || total > MaxTotalQuestions {
		return 0, 0, validationError("total_questions must be between %d and %d", MinTotalQuestions, MaxTotalQuestions)
	}
	return duration, total, nil
}

// createAttempt expects exam.Course to be loaded.
func (s *examSessionService) createAttempt(ctx context.Context, userID uint, exam *model.Exam) (*model.ExamAttempt, error) {
	attempt := &model.ExamAttempt{
		UserID:         userID,
		ExamID:         exam.ID,
		TotalQuestions: exam.TotalQuestions,
		StartedAt:      s.now(),
	}
	if err := s.attemptRepo.Create(ctx, attempt); err != nil {
		log.Error().Err(err).Uint("examID", exam.ID).Uint("userID", userID).Msg("Failed to create exam attempt")
		return nil, internalError(err, "Failed to start exam")
	}
	attempt.Exam = *exam
	return attempt, nil
}

// ensureQuestions materializes the frozen question set at most once. If rows
// already exist they are returned untouched; if a concurrent caller wins the
// unique (attempt_id, question_order) index, its rows are returned instead.
func (s *examSessionService) ensureQuestions(ctx context.Context, attempt *model.ExamAttempt) ([]model.ExamQuestion, error) {
	existing, err := s.questionRepo.FindByAttemptID(ctx, attempt.ID)
	if err != nil {
		log.Error().Err(err).Uint("attemptID", attempt.ID).Msg("Failed to load exam questions")
		return nil, internalError(err, "Failed to load exam questions")
	}
	if len(existing) > 0 {
		return existing, nil
	}

	course := attempt.Exam.Course
	generated := s.source.GenerateQuestions(ctx, course.Title, course.Code, attempt.TotalQuestions, course.Level)
	rows := make([]model.ExamQuestion, len(generated))
	for i, q := range generated {
		rows[i] = model.ExamQuestion{
			AttemptID:          attempt.ID,
			QuestionText:       q.Text,
			Options:            q.Options,
			CorrectAnswerIndex: q.CorrectIndex,
			QuestionOrder:      i + 1,
		}
	}

	if err := s.questionRepo.CreateBatch(ctx, rows); err != nil {
		winner, findErr := s.questionRepo.FindByAttemptID(ctx, attempt.ID)
		if findErr == nil && len(winner) > 0 {
			log.Warn().Err(err).Uint("attemptID", attempt.ID).Msg("Question set was materialized concurrently, using existing rows")
			return winner, nil
		}
		log.Error().Err(err).Uint("attemptID", attempt.ID).Msg("Failed to save exam questions")
		return nil, internalError(err, "Failed to save exam questions")
	}
	return rows, nil
}

// resolveAttemptHandle maps an id from a possibly stale client link to an
// attempt owned by userID, trying in order:
//  1. an attempt with that id owned by the user;
//  2. the user's most recent attempt on an exam with that id;
//  3. an exam with that id, on a course the user is registered for, which
//     gets a brand-new attempt with a materialized question set.
//
// Anything else is not found. Paths 2 and 3 are logged so legacy links can
// be tracked down.
func (s *examSessionService) resolveAttemptHandle(ctx context.Context, userID, handle uint) (*model.ExamAttempt, error) {
	attempt, err := s.attemptRepo.FindByIDAndUser(ctx, handle, userID)
	if err == nil {
		return attempt, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		log.Error().Err(err).Uint("handle", handle).Msg("Failed to look up attempt")
		return nil, internalError(err, "Failed to load attempt")
	}

	attempt, err = s.attemptRepo.FindLatestByExamAndUser(ctx, handle, userID)
	if err == nil {
		log.Warn().Uint("userID", userID).Uint("examID", handle).Uint("attemptID", attempt.ID).
			Msg("Attempt handle resolved as exam id to latest attempt")
		return attempt, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		log.Error().Err(err).Uint("handle", handle).Msg("Failed to look up attempt by exam")
		return nil, internalError(err, "Failed to load attempt")
	}

	exam, err := s.examRepo.FindByIDWithCourse(ctx, handle)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, newError(KindNotFound, nil, "Attempt not found")
	}
	if err != nil {
		log.Error().Err(err).Uint("handle", handle).Msg("Failed to look up exam")
		return nil, internalError(err, "Failed to load attempt")
	}
	registered, err := s.academic.IsRegistered(ctx, userID, exam.CourseID)
	if err != nil {
		return nil, err
	}
	if !registered {
		return nil, newError(KindNotFound, nil, "Attempt not found")
	}

	attempt, err = s.createAttempt(ctx, userID, exam)
	if err != nil {
		return nil, err
	}
	if _, err := s.ensureQuestions(ctx, attempt); err != nil {
		return nil, err
	}
	log.Warn().Uint("userID", userID).Uint("examID", exam.ID).Uint("attemptID", attempt.ID).
		Msg("Attempt handle named an exam with no attempt, created a new attempt")
	return attempt, nil
}

func (s *examSessionService) GetAttempt(ctx context.Context, userID, handle uint) (*dto.AttemptViewResponse, error) {
	if handle == 0 {
		return nil, validationError("attempt_id is required")
	}
	attempt, err := s.resolveAttemptHandle(ctx, userID, handle)
	if err != nil {
		return nil, err
	}
	return s.attemptView(ctx, attempt)
}

func (s *examSessionService) GetQuestions(ctx context.Context, userID, attemptID uint) (*dto.AttemptViewResponse, error) {
	if attemptID == 0 {
		return nil, validationError("attempt_id is required")
	}
	attempt, err := s.findOwnedAttempt(ctx, userID, attemptID)
	if err != nil {
		return nil, err
	}
	return s.attemptView(ctx, attempt)
}

func (s *examSessionService) attemptView(ctx context.Context, attempt *model.ExamAttempt) (*dto.AttemptViewResponse, error) {
	questions, err := s.questionRepo.FindByAttemptID(ctx, attempt.ID)
	if err != nil {
		log.Error().Err(err).Uint("attemptID", attempt.ID).Msg("Failed to load exam questions")
		return nil, internalError(err, "Failed to load exam questions")
	}

	graded := attempt.IsCompleted()
	view := &dto.AttemptViewResponse{
		Attempt:   toAttemptDTO(attempt, s.now()),
		Questions: toQuestionDTOs(questions, graded),
	}
	if len(questions) == 0 {
		log.Warn().Uint("attemptID", attempt.ID).Uint("userID", attempt.UserID).Msg("Attempt has no persisted questions")
		view.Warning = warningNoQuestions
	}
	if graded {
		review, err := model.DecodeAnswerReviews(attempt.AnswersJSON)
		if err != nil {
			log.Warn().Err(err).Uint("attemptID", attempt.ID).Msg("Stored answer review is unreadable")
		}
		view.Answers = review
	}
	return view, nil
}

func (s *examSessionService) findOwnedAttempt(ctx context.Context, userID, attemptID uint) (*model.ExamAttempt, error) {
	attempt, err := s.attemptRepo.FindByIDAndUser(ctx, attemptID, userID)
	if err != nil {
		return nil, attemptLookupError(err, attemptID)
	}
	return attempt, nil
}

func (s *examSessionService) SubmitAnswers(ctx context.Context, userID uint, req dto.SubmitAnswersRequest) (*dto.SubmitAnswersResponse, error) {
	if req.AttemptID == 0 {
		return nil, validationError("attempt_id is required")
	}
	submitted, err := parseSubmittedAnswers(req.Answers)
	if err != nil {
		return nil, err
	}

	attempt, err := s.findOwnedAttempt(ctx, userID, req.AttemptID)
	if err != nil {
		return nil, err
	}
	if attempt.IsCompleted() {
		log.Warn().Uint("attemptID", attempt.ID).Uint("userID", userID).Msg("Rejected submission for completed attempt")
		return nil, newError(KindAlreadySubmitted, nil, "Exam already submitted")
	}

	questions, err := s.questionRepo.FindByAttemptID(ctx, attempt.ID)
	if err != nil {
		log.Error().Err(err).Uint("attemptID", attempt.ID).Msg("Failed to load exam questions for grading")
		return nil, internalError(err, "Failed to grade exam")
	}
	if len(questions) == 0 {
		log.Warn().Uint("attemptID", attempt.ID).Msg("Grading an attempt with no persisted questions")
	}

	result := Grade(gradeKeysFor(questions), submitted)
	answers, err := json.Marshal(result.Review)
	if err != nil {
		return nil, internalError(err, "Failed to grade exam")
	}

	completedAt := s.now()
	ok, err := s.attemptRepo.Complete(ctx, attempt.ID, userID, result.Score, datatypes.JSON(answers), completedAt)
	if err != nil {
		log.Error().Err(err).Uint("attemptID", attempt.ID).Msg("Failed to save graded attempt")
		return nil, internalError(err, "Failed to grade exam")
	}
	if !ok {
		log.Warn().Uint("attemptID", attempt.ID).Uint("userID", userID).Msg("Concurrent submission lost the grading race")
		return nil, newError(KindAlreadySubmitted, nil, "Exam already submitted")
	}

	if completedAt.After(attempt.ExpiresAt()) {
		log.Info().Uint("attemptID", attempt.ID).Time("expiresAt", attempt.ExpiresAt()).Msg("Late submission accepted")
	}
	log.Info().
		Uint("attemptID", attempt.ID).
		Uint("userID", userID).
		Int("score", result.Score).
		Int("total", result.Total).
		Msg("Exam attempt graded")

	return &dto.SubmitAnswersResponse{
		AttemptID:      attempt.ID,
		Score:          result.Score,
		TotalQuestions: result.Total,
		Percentage:     result.Percentage,
		Grade:          LetterGrade(result.Percentage),
	}, nil
}

// parseSubmittedAnswers converts JSON object keys to question ids. A null
// value is kept as unanswered; anything outside the option range is rejected.
func parseSubmittedAnswers(raw map[string]*int) (map[uint]*int, error) {
	out := make(map[uint]*int, len(raw))
	for key, value := range raw {
		id, err := strconv.ParseUint(key, 10, 32)
		if err != nil || id == 0 {
			return nil, validationError("answers: %q is not a question id", key)
		}
		if value != nil && (*value < 0 || *value >= model.OptionsPerQuestion) {
			return nil, validationError("answers: option %d for question %d is out of range", *value, id)
		}
		out[uint(id)] = value
	}
	return out, nil
}

func (s *examSessionService) ListRegisteredExams(ctx context.Context, userID uint) ([]dto.RegisteredExamDTO, error) {
	term, courses, err := s.academic.RegisteredCourses(ctx, userID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.RegisteredExamDTO, len(courses))
	for i, c := range courses {
		out[i] = dto.RegisteredExamDTO{
			CourseID:               c.ID,
			CourseCode:             c.Code,
			CourseTitle:            c.Title,
			Level:                  c.Level,
			Units:                  c.Units,
			Session:                term.Session,
			Semester:               term.Semester,
			DefaultDurationMinutes: s.examCfg.DefaultDurationMinutes,
			DefaultTotalQuestions:  s.examCfg.DefaultTotalQuestions,
		}
	}
	return out, nil
}

func (s *examSessionService) ListHistory(ctx context.Context, userID uint) (*dto.AttemptHistoryResponse, error) {
	attempts, err := s.attemptRepo.FindAllByUser(ctx, userID)
	if err != nil {
		log.Error().Err(err).Uint("userID", userID).Msg("Failed to list attempts")
		return nil, internalError(err, "Failed to load exam history")
	}
	now := s.now()
	out := &dto.AttemptHistoryResponse{Attempts: make([]dto.AttemptDTO, len(attempts))}
	for i := range attempts {
		out.Attempts[i] = toAttemptDTO(&attempts[i], now)
	}
	return out, nil
}

package service

import (
	"context"
	"time"

	"github.com/lshigami/smartcampus/internal/dto"
	"github.com/lshigami/smartcampus/internal/repository"
	"github.com/rs/zerolog/log"
)

// AdminAuditService is the read-only administrative view over attempts. It
// never mutates an attempt or its questions.
type AdminAuditService interface {
	ListAttempts(ctx context.Context, query dto.AttemptAuditQuery) ([]dto.AttemptDTO, error)
	Results(ctx context.Context, attemptID uint, format string) (*RenderedResults, error)
}

type adminAuditService struct {
	attemptRepo repository.ExamAttemptRepository
	results     ResultsService
	now         func() time.Time
}

func NewAdminAuditService(attemptRepo repository.ExamAttemptRepository, results ResultsService) AdminAuditService {
	return &adminAuditService{attemptRepo: attemptRepo, results: results, now: time.Now}
}

func (s *adminAuditService) ListAttempts(ctx context.Context, query dto.AttemptAuditQuery) ([]dto.AttemptDTO, error) {
	attempts, err := s.attemptRepo.FindAll(ctx, repository.AttemptFilter{
		UserID:   query.UserID,
		CourseID: query.CourseID,
	})
	if err != nil {
		log.Error().Err(err).Interface("query", query).Msg("Admin ListAttempts: repository error")
		return nil, internalError(err, "Failed to list attempts")
	}
	now := s.now()
	out := make([]dto.AttemptDTO, len(attempts))
	for i := range attempts {
		out[i] = toAttemptDTO(&attempts[i], now)
	}
	return out, nil
}

func (s *adminAuditService) Results(ctx context.Context, attemptID uint, format string) (*RenderedResults, error) {
	return s.results.AuditResults(ctx, attemptID, format)
}

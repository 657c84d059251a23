package service

import (
	"context"
	"strings"

	"github.com/lshigami/smartcampus/config"
	"github.com/lshigami/smartcampus/internal/model"
	"github.com/lshigami/smartcampus/internal/repository"
	"github.com/rs/zerolog/log"
)

// Term is the academic session/semester pair that scopes registrations.
type Term struct {
	Session  string
	Semester string
}

// AcademicService is the read-only view of settings and registrations the
// exam flow depends on.
type AcademicService interface {
	CurrentTerm(ctx context.Context) (Term, error)
	IsRegistered(ctx context.Context, userID, courseID uint) (bool, error)
	RegisteredCourses(ctx context.Context, userID uint) (Term, []model.Course, error)
}

type academicService struct {
	settingRepo      repository.SettingRepository
	registrationRepo repository.RegistrationRepository
	defaults         config.Academic
}

func NewAcademicService(settingRepo repository.SettingRepository, registrationRepo repository.RegistrationRepository, cfg *config.Config) AcademicService {
	return &academicService{
		settingRepo:      settingRepo,
		registrationRepo: registrationRepo,
		defaults:         cfg.Academic,
	}
}

func (s *academicService) CurrentTerm(ctx context.Context) (Term, error) {
	session, err := s.settingOrDefault(ctx, model.SettingCurrentSession, s.defaults.DefaultSession)
	if err != nil {
		return Term{}, err
	}
	semester, err := s.settingOrDefault(ctx, model.SettingCurrentSemester, s.defaults.DefaultSemester)
	if err != nil {
		return Term{}, err
	}
	return Term{Session: session, Semester: semester}, nil
}

func (s *academicService) settingOrDefault(ctx context.Context, key, fallback string) (string, error) {
	value, found, err := s.settingRepo.Get(ctx, key)
	if err != nil {
		log.Error().Err(err).Str("key", key).Msg("Failed to read setting")
		return "", internalError(err, "Failed to read academic settings")
	}
	if !found || strings.TrimSpace(value) == "" {
		return fallback, nil
	}
	return value, nil
}

func (s *academicService) IsRegistered(ctx context.Context, userID, courseID uint) (bool, error) {
	term, err := s.CurrentTerm(ctx)
	if err != nil {
		return false, err
	}
	ok, err := s.registrationRepo.Exists(ctx, userID, courseID, term.Session, term.Semester)
	if err != nil {
		log.Error().Err(err).Uint("userID", userID).Uint("courseID", courseID).Msg("Failed to check course registration")
		return false, internalError(err, "Failed to check course registration")
	}
	return ok, nil
}

func (s *academicService) RegisteredCourses(ctx context.Context, userID uint) (Term, []model.Course, error) {
	term, err := s.CurrentTerm(ctx)
	if err != nil {
		return Term{}, nil, err
	}
	courses, err := s.registrationRepo.FindCoursesForUser(ctx, userID, term.Session, term.Semester)
	if err != nil {
		log.Error().Err(err).Uint("userID", userID).Msg("Failed to list registered courses")
		return Term{}, nil, internalError(err, "Failed to list registered courses")
	}
	return term, courses, nil
}

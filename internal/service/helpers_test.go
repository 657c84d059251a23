package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/lshigami/smartcampus/config"
	"github.com/lshigami/smartcampus/database"
	"github.com/lshigami/smartcampus/internal/model"
	"github.com/lshigami/smartcampus/internal/repository"
	"gorm.io/gorm"
)

var fixedNow = time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)

type stubGenerator struct {
	mu    sync.Mutex
	text  string
	err   error
	calls int
}

func (g *stubGenerator) GenerateText(ctx context.Context, prompt string) (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.calls++
	return g.text, g.err
}

func (g *stubGenerator) Name() string { return "stub" }

func (g *stubGenerator) callCount() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.calls
}

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := database.OpenInMemory()
	if err != nil {
		t.Fatalf("newTestDB: %v", err)
	}
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})
	return db
}

func testConfig() *config.Config {
	return &config.Config{
		AI: config.AI{TotalTimeout: time.Second},
		Exam: config.Exam{
			DefaultDurationMinutes: 60,
			DefaultTotalQuestions:  20,
		},
		Academic: config.Academic{
			DefaultSession:  "2024/2025",
			DefaultSemester: "First",
		},
	}
}

type sessionFixture struct {
	db           *gorm.DB
	gen          *stubGenerator
	cfg          *config.Config
	svc          *examSessionService
	results      *resultsService
	examRepo     repository.ExamRepository
	attemptRepo  repository.ExamAttemptRepository
	questionRepo repository.ExamQuestionRepository
	course       *model.Course
}

const (
	studentID  = uint(1)
	outsiderID = uint(2)
)

// newSessionFixture wires the real repositories over an in-memory database
// with one course that studentID is registered for in the default term.
func newSessionFixture(t *testing.T, cfg *config.Config) *sessionFixture {
	t.Helper()
	if cfg == nil {
		cfg = testConfig()
	}
	db := newTestDB(t)
	ctx := context.Background()

	courseRepo := repository.NewCourseRepository(db)
	registrationRepo := repository.NewRegistrationRepository(db)
	f := &sessionFixture{
		db:           db,
		gen:          &stubGenerator{},
		cfg:          cfg,
		examRepo:     repository.NewExamRepository(db),
		attemptRepo:  repository.NewExamAttemptRepository(db),
		questionRepo: repository.NewExamQuestionRepository(db),
	}

	f.course = &model.Course{Code: "CSC 201", Title: "Data Structures", Level: 200, Units: 3}
	if err := courseRepo.Create(ctx, f.course); err != nil {
		t.Fatalf("create course: %v", err)
	}
	reg := &model.Registration{UserID: studentID, CourseID: f.course.ID, Session: "2024/2025", Semester: "First"}
	if err := registrationRepo.Create(ctx, reg); err != nil {
		t.Fatalf("create registration: %v", err)
	}

	academic := NewAcademicService(repository.NewSettingRepository(db), registrationRepo, cfg)
	source := NewQuestionSource(f.gen, cfg)
	f.svc = NewExamSessionService(courseRepo, f.examRepo, f.attemptRepo, f.questionRepo, academic, source, cfg).(*examSessionService)
	f.svc.now = func() time.Time { return fixedNow }
	f.results = NewResultsService(f.attemptRepo, f.questionRepo).(*resultsService)
	f.results.now = func() time.Time { return fixedNow }
	return f
}

func intPtr(v int) *int { return &v }

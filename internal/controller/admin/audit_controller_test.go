package admin

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/lshigami/smartcampus/config"
	"github.com/lshigami/smartcampus/database"
	"github.com/lshigami/smartcampus/internal/dto"
	"github.com/lshigami/smartcampus/internal/middleware"
	"github.com/lshigami/smartcampus/internal/model"
	"github.com/lshigami/smartcampus/internal/repository"
	"github.com/lshigami/smartcampus/internal/service"
)

const testSecret = "audit-test-secret"

type offlineGenerator struct{}

func (offlineGenerator) GenerateText(ctx context.Context, prompt string) (string, error) {
	return "", service.ErrNoCredential
}

func (offlineGenerator) Name() string { return "offline" }

func TestAuditEndpoints(t *testing.T) {
	gin.SetMode(gin.TestMode)
	db, err := database.OpenInMemory()
	if err != nil {
		t.Fatalf("open database: %v", err)
	}
	defer func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	}()

	cfg := &config.Config{
		AI:       config.AI{TotalTimeout: time.Second},
		Exam:     config.Exam{DefaultDurationMinutes: 60, DefaultTotalQuestions: 5},
		Academic: config.Academic{DefaultSession: "2024/2025", DefaultSemester: "First"},
	}
	ctx := context.Background()
	courseRepo := repository.NewCourseRepository(db)
	registrationRepo := repository.NewRegistrationRepository(db)
	attemptRepo := repository.NewExamAttemptRepository(db)
	questionRepo := repository.NewExamQuestionRepository(db)

	course := &model.Course{Code: "STA 111", Title: "Descriptive Statistics", Level: 100}
	if err := courseRepo.Create(ctx, course); err != nil {
		t.Fatalf("create course: %v", err)
	}
	if err := registrationRepo.Create(ctx, &model.Registration{UserID: 5, CourseID: course.ID, Session: "2024/2025", Semester: "First"}); err != nil {
		t.Fatalf("register: %v", err)
	}

	academic := service.NewAcademicService(repository.NewSettingRepository(db), registrationRepo, cfg)
	sessions := service.NewExamSessionService(courseRepo, repository.NewExamRepository(db), attemptRepo, questionRepo,
		academic, service.NewQuestionSource(offlineGenerator{}, cfg), cfg)
	started, err := sessions.StartAttempt(ctx, 5, dto.StartExamRequest{CourseID: course.ID})
	if err != nil {
		t.Fatalf("StartAttempt: %v", err)
	}

	results := service.NewResultsService(attemptRepo, questionRepo)
	router := gin.New()
	api := router.Group("/api/v1", middleware.RequireAuth(testSecret))
	NewAuditController(service.NewAdminAuditService(attemptRepo, results)).RegisterRoutes(api.Group("/admin", middleware.RequireAdmin()))

	adminToken, _ := middleware.IssueToken(testSecret, 99, middleware.RoleAdmin, time.Hour)
	studentToken, _ := middleware.IssueToken(testSecret, 5, middleware.RoleStudent, time.Hour)

	get := func(path, token string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		req.Header.Set("Authorization", "Bearer "+token)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		return w
	}

	if w := get("/api/v1/admin/attempts", studentToken); w.Code != http.StatusForbidden {
		t.Errorf("student listing status = %d, want 403", w.Code)
	}

	tests := []struct {
		query string
		want  int
	}{
		{"", 1},
		{"?user_id=5", 1},
		{"?user_id=6", 0},
		{fmt.Sprintf("?course_id=%d", course.ID), 1},
		{fmt.Sprintf("?course_id=%d", course.ID+1), 0},
	}
	for _, tt := range tests {
		w := get("/api/v1/admin/attempts"+tt.query, adminToken)
		if w.Code != http.StatusOK {
			t.Fatalf("list%s status = %d", tt.query, w.Code)
		}
		var attempts []dto.AttemptDTO
		if err := json.Unmarshal(w.Body.Bytes(), &attempts); err != nil {
			t.Fatalf("decode: %v", err)
		}
		if len(attempts) != tt.want {
			t.Errorf("list%s returned %d attempts, want %d", tt.query, len(attempts), tt.want)
		}
	}

	if w := get("/api/v1/admin/attempts?user_id=x", adminToken); w.Code != http.StatusBadRequest {
		t.Errorf("bad filter status = %d, want 400", w.Code)
	}

	w := get(fmt.Sprintf("/api/v1/admin/attempts/%d/results", started.AttemptID), adminToken)
	if w.Code != http.StatusOK {
		t.Fatalf("results status = %d, body %s", w.Code, w.Body.String())
	}
	var review dto.ExamResultsResponse
	if err := json.Unmarshal(w.Body.Bytes(), &review); err != nil {
		t.Fatalf("decode results: %v", err)
	}
	if len(review.Questions) != 5 {
		t.Fatalf("got %d result rows, want 5", len(review.Questions))
	}
	for _, q := range review.Questions {
		if q.CorrectAnswer == nil || q.UserAnswer != nil || q.IsCorrect != nil {
			t.Errorf("ungraded audit row = %+v", q)
		}
	}

	if w := get("/api/v1/admin/attempts/999/results", adminToken); w.Code != http.StatusNotFound {
		t.Errorf("missing attempt status = %d, want 404", w.Code)
	}
	if w := get("/api/v1/admin/attempts/0/results", adminToken); w.Code != http.StatusBadRequest {
		t.Errorf("zero attempt id status = %d, want 400", w.Code)
	}
}

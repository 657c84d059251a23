package repository

import (
	"context"
	"testing"
	"time"

	"github.com/lshigami/smartcampus/database"
	"github.com/lshigami/smartcampus/internal/model"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

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

// seedAttempt creates a course, an exam on it and one attempt for userID.
func seedAttempt(t *testing.T, db *gorm.DB, code string, userID uint) (*model.Course, *model.ExamAttempt) {
	t.Helper()
	ctx := context.Background()
	course := &model.Course{Code: code, Title: "Course " + code, Level: 100, Units: 2}
	if err := NewCourseRepository(db).Create(ctx, course); err != nil {
		t.Fatalf("create course: %v", err)
	}
	exam := &model.Exam{CourseID: course.ID, Title: code + " CBT", DurationMinutes: 30, TotalQuestions: 5}
	if err := NewExamRepository(db).Create(ctx, exam); err != nil {
		t.Fatalf("create exam: %v", err)
	}
	attempt := &model.ExamAttempt{UserID: userID, ExamID: exam.ID, TotalQuestions: 5, StartedAt: time.Now()}
	if err := NewExamAttemptRepository(db).Create(ctx, attempt); err != nil {
		t.Fatalf("create attempt: %v", err)
	}
	return course, attempt
}

func TestExamAttemptCompleteOnlyOnce(t *testing.T) {
	db := newTestDB(t)
	repo := NewExamAttemptRepository(db)
	ctx := context.Background()
	_, attempt := seedAttempt(t, db, "MTH 101", 1)

	ok, err := repo.Complete(ctx, attempt.ID, 2, 5, datatypes.JSON(`{}`), time.Now())
	if err != nil || ok {
		t.Fatalf("Complete by non-owner = %v, %v; want false", ok, err)
	}

	ok, err = repo.Complete(ctx, attempt.ID, 1, 4, datatypes.JSON(`{"1":{"submitted":0,"correct":0,"is_correct":true}}`), time.Now())
	if err != nil || !ok {
		t.Fatalf("first Complete = %v, %v; want true", ok, err)
	}
	ok, err = repo.Complete(ctx, attempt.ID, 1, 0, datatypes.JSON(`{}`), time.Now())
	if err != nil || ok {
		t.Fatalf("second Complete = %v, %v; want false", ok, err)
	}

	got, err := repo.FindByIDAndUser(ctx, attempt.ID, 1)
	if err != nil {
		t.Fatalf("FindByIDAndUser: %v", err)
	}
	if got.Score == nil || *got.Score != 4 || got.CompletedAt == nil {
		t.Fatalf("attempt after completion = %+v", got)
	}
	review, err := model.DecodeAnswerReviews(got.AnswersJSON)
	if err != nil || len(review) != 1 || !review[1].IsCorrect {
		t.Errorf("stored review = %v, %v", review, err)
	}
	if got.Exam.Course.Code != "MTH 101" {
		t.Errorf("exam course not preloaded: %+v", got.Exam)
	}
}

func TestExamAttemptLookups(t *testing.T) {
	db := newTestDB(t)
	repo := NewExamAttemptRepository(db)
	ctx := context.Background()
	course, first := seedAttempt(t, db, "PHY 101", 1)
	other, _ := seedAttempt(t, db, "CHM 101", 2)

	second := &model.ExamAttempt{UserID: 1, ExamID: first.ExamID, TotalQuestions: 5, StartedAt: first.StartedAt.Add(time.Minute)}
	if err := repo.Create(ctx, second); err != nil {
		t.Fatalf("create second attempt: %v", err)
	}

	latest, err := repo.FindLatestByExamAndUser(ctx, first.ExamID, 1)
	if err != nil || latest.ID != second.ID {
		t.Fatalf("latest = %v, %v; want attempt %d", latest, err, second.ID)
	}
	if _, err := repo.FindByIDAndUser(ctx, first.ID, 2); err != gorm.ErrRecordNotFound {
		t.Errorf("non-owner lookup err = %v, want ErrRecordNotFound", err)
	}

	mine, err := repo.FindAllByUser(ctx, 1)
	if err != nil || len(mine) != 2 {
		t.Fatalf("FindAllByUser = %d attempts, %v", len(mine), err)
	}
	if mine[0].ID != second.ID {
		t.Errorf("attempts not newest first: %d, %d", mine[0].ID, mine[1].ID)
	}

	tests := []struct {
		name   string
		filter AttemptFilter
		want   int
	}{
		{"no filter", AttemptFilter{}, 3},
		{"by course", AttemptFilter{CourseID: &course.ID}, 2},
		{"by other course", AttemptFilter{CourseID: &other.ID}, 1},
		{"by user and course", AttemptFilter{UserID: uintPtr(2), CourseID: &course.ID}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := repo.FindAll(ctx, tt.filter)
			if err != nil {
				t.Fatalf("FindAll: %v", err)
			}
			if len(got) != tt.want {
				t.Errorf("got %d attempts, want %d", len(got), tt.want)
			}
		})
	}
}

func uintPtr(v uint) *uint { return &v }

func TestExamQuestionBatchIsFrozen(t *testing.T) {
	db := newTestDB(t)
	repo := NewExamQuestionRepository(db)
	ctx := context.Background()
	_, attempt := seedAttempt(t, db, "CSC 101", 1)

	batch := func(prefix string) []model.ExamQuestion {
		qs := make([]model.ExamQuestion, 3)
		for i := range qs {
			qs[i] = model.ExamQuestion{
				AttemptID:          attempt.ID,
				QuestionText:       prefix + string(rune('A'+i)),
				Options:            []string{"a", "b", "c", "d"},
				CorrectAnswerIndex: i,
				QuestionOrder:      3 - i,
			}
		}
		return qs
	}

	first := batch("first ")
	if err := repo.CreateBatch(ctx, first); err != nil {
		t.Fatalf("CreateBatch: %v", err)
	}
	for i, q := range first {
		if q.ID == 0 {
			t.Errorf("question %d has no id after insert", i)
		}
	}
	if err := repo.CreateBatch(ctx, batch("second ")); err == nil {
		t.Fatal("second batch for the same attempt was accepted")
	}

	got, err := repo.FindByAttemptID(ctx, attempt.ID)
	if err != nil {
		t.Fatalf("FindByAttemptID: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("got %d questions, want 3", len(got))
	}
	for i, q := range got {
		if q.QuestionOrder != i+1 {
			t.Errorf("position %d has order %d", i, q.QuestionOrder)
		}
		if q.QuestionText[:6] != "first " {
			t.Errorf("question %d text %q from rejected batch", i, q.QuestionText)
		}
		if len(q.Options) != 4 || q.Options[3] != "d" {
			t.Errorf("question %d options = %v", i, q.Options)
		}
	}
}

func TestSettingRepository(t *testing.T) {
	db := newTestDB(t)
	repo := NewSettingRepository(db)
	ctx := context.Background()

	if _, found, err := repo.Get(ctx, model.SettingCurrentSession); err != nil || found {
		t.Fatalf("Get on empty table = found %v, err %v", found, err)
	}
	if err := repo.Set(ctx, model.SettingCurrentSession, "2023/2024"); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if err := repo.Set(ctx, model.SettingCurrentSession, "2024/2025"); err != nil {
		t.Fatalf("Set again: %v", err)
	}
	value, found, err := repo.Get(ctx, model.SettingCurrentSession)
	if err != nil || !found || value != "2024/2025" {
		t.Fatalf("Get = %q, %v, %v", value, found, err)
	}
}

func TestRegistrationRepository(t *testing.T) {
	db := newTestDB(t)
	repo := NewRegistrationRepository(db)
	courses := NewCourseRepository(db)
	ctx := context.Background()

	csc := &model.Course{Code: "CSC 201", Title: "Data Structures", Level: 200}
	mth := &model.Course{Code: "MTH 201", Title: "Linear Algebra", Level: 200}
	for _, c := range []*model.Course{mth, csc} {
		if err := courses.Create(ctx, c); err != nil {
			t.Fatalf("create course: %v", err)
		}
	}
	regs := []*model.Registration{
		{UserID: 1, CourseID: csc.ID, Session: "2024/2025", Semester: "First"},
		{UserID: 1, CourseID: mth.ID, Session: "2024/2025", Semester: "First"},
		{UserID: 1, CourseID: mth.ID, Session: "2024/2025", Semester: "Second"},
	}
	for _, r := range regs {
		if err := repo.Create(ctx, r); err != nil {
			t.Fatalf("create registration: %v", err)
		}
	}

	ok, err := repo.Exists(ctx, 1, csc.ID, "2024/2025", "First")
	if err != nil || !ok {
		t.Fatalf("Exists = %v, %v; want true", ok, err)
	}
	if ok, _ := repo.Exists(ctx, 1, csc.ID, "2024/2025", "Second"); ok {
		t.Error("registration matched the wrong semester")
	}

	list, err := repo.FindCoursesForUser(ctx, 1, "2024/2025", "First")
	if err != nil || len(list) != 2 || list[0].Code != "CSC 201" {
		t.Fatalf("FindCoursesForUser = %+v, %v", list, err)
	}

	// Dropping a course soft-deletes the registration.
	if err := db.Delete(regs[0]).Error; err != nil {
		t.Fatalf("drop registration: %v", err)
	}
	if ok, _ := repo.Exists(ctx, 1, csc.ID, "2024/2025", "First"); ok {
		t.Error("dropped registration still counts")
	}
	list, _ = repo.FindCoursesForUser(ctx, 1, "2024/2025", "First")
	if len(list) != 1 || list[0].Code != "MTH 201" {
		t.Errorf("courses after drop = %+v", list)
	}

	found, err := courses.FindByCode(ctx, "MTH 201")
	if err != nil || found.ID != mth.ID {
		t.Errorf("FindByCode = %+v, %v", found, err)
	}
}

package service

import (
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"strings"
	"testing"

	"github.com/lshigami/smartcampus/internal/dto"
	"github.com/lshigami/smartcampus/internal/model"
	"gorm.io/datatypes"
)

func readCSV(t *testing.T, body []byte) [][]string {
	t.Helper()
	records, err := csv.NewReader(bytes.NewReader(body)).ReadAll()
	if err != nil {
		t.Fatalf("parse CSV: %v", err)
	}
	return records
}

func TestRenderResultsCSVRoundTrip(t *testing.T) {
	tricky := `Which of "A, B" is a stack?`
	attempt := &model.ExamAttempt{ID: 7, UserID: studentID, TotalQuestions: 2, StartedAt: fixedNow}
	questions := []model.ExamQuestion{
		{ID: 1, QuestionText: tricky, Options: []string{`say "push"`, "pop, peek", "queue", "heap"}, CorrectAnswerIndex: 1, QuestionOrder: 1},
		{ID: 2, QuestionText: "Line one\nline two", Options: []string{"only", "two"}, CorrectAnswerIndex: 0, QuestionOrder: 2},
	}
	review, _ := json.Marshal(model.AnswerReviewMap{
		1: {SubmittedIndex: intPtr(1), CorrectIndex: 1, IsCorrect: true},
		2: {SubmittedIndex: nil, CorrectIndex: 0, IsCorrect: false},
	})
	completed := fixedNow
	attempt.CompletedAt = &completed
	attempt.Score = intPtr(1)
	attempt.AnswersJSON = datatypes.JSON(review)

	rendered, err := RenderResults(attempt, questions, "CSV", true, fixedNow)
	if err != nil {
		t.Fatalf("RenderResults: %v", err)
	}
	if !strings.HasPrefix(rendered.ContentType, "text/csv") || rendered.Filename != "exam_results_7.csv" {
		t.Errorf("content type %q, filename %q", rendered.ContentType, rendered.Filename)
	}

	records := readCSV(t, rendered.Body)
	if len(records) != 3 {
		t.Fatalf("got %d records, want header + 2", len(records))
	}
	if strings.Join(records[0], ",") != strings.Join(csvHeader, ",") {
		t.Errorf("header = %v", records[0])
	}

	want := [][]string{
		{"1", tricky, `say "push"`, "pop, peek", "queue", "heap", "1", "1", "1"},
		{"2", "Line one\nline two", "only", "two", "", "", "0", "", "0"},
	}
	for i, row := range want {
		got := records[i+1]
		if len(got) != len(row) {
			t.Fatalf("row %d has %d fields, want %d", i+1, len(got), len(row))
		}
		for j := range row {
			if got[j] != row[j] {
				t.Errorf("row %d field %s = %q, want %q", i+1, csvHeader[j], got[j], row[j])
			}
		}
	}
}

func TestRenderResultsUngraded(t *testing.T) {
	attempt := &model.ExamAttempt{ID: 3, UserID: studentID, TotalQuestions: 1, StartedAt: fixedNow}
	questions := []model.ExamQuestion{
		{ID: 5, QuestionText: "Q", Options: []string{"a", "b", "c", "d"}, CorrectAnswerIndex: 2, QuestionOrder: 1},
	}

	rendered, err := RenderResults(attempt, questions, "csv", false, fixedNow)
	if err != nil {
		t.Fatalf("RenderResults csv: %v", err)
	}
	records := readCSV(t, rendered.Body)
	if got := records[1][6:]; got[0] != "" || got[1] != "" || got[2] != "" {
		t.Errorf("ungraded row tail = %q, want empty cells", got)
	}

	rendered, err = RenderResults(attempt, questions, "", false, fixedNow)
	if err != nil {
		t.Fatalf("RenderResults json: %v", err)
	}
	var payload dto.ExamResultsResponse
	if err := json.Unmarshal(rendered.Body, &payload); err != nil {
		t.Fatalf("decode JSON: %v", err)
	}
	q := payload.Questions[0]
	if q.CorrectAnswer != nil || q.UserAnswer != nil || q.IsCorrect != nil {
		t.Errorf("ungraded question = %+v, want null grading fields", q)
	}
	if payload.Attempt.Status != dto.AttemptStatusInProgress || payload.Attempt.Score != nil {
		t.Errorf("attempt = %+v", payload.Attempt)
	}
}

func TestRenderResultsRejectsUnknownFormat(t *testing.T) {
	_, err := RenderResults(&model.ExamAttempt{ID: 1}, nil, "xml", true, fixedNow)
	if KindOf(err) != KindValidation {
		t.Fatalf("kind = %q, want validation", KindOf(err))
	}
}

func TestStudentAndAuditResults(t *testing.T) {
	f := newSessionFixture(t, nil)
	ctx := context.Background()
	started := startAttempt(t, f, studentID, 5)

	decode := func(r *RenderedResults) dto.ExamResultsResponse {
		t.Helper()
		var payload dto.ExamResultsResponse
		if err := json.Unmarshal(r.Body, &payload); err != nil {
			t.Fatalf("decode: %v", err)
		}
		return payload
	}

	student, err := f.results.StudentResults(ctx, studentID, started.AttemptID, "json")
	if err != nil {
		t.Fatalf("StudentResults: %v", err)
	}
	for _, q := range decode(student).Questions {
		if q.CorrectAnswer != nil {
			t.Fatal("student results reveal the key before grading")
		}
	}

	audit, err := f.results.AuditResults(ctx, started.AttemptID, "json")
	if err != nil {
		t.Fatalf("AuditResults: %v", err)
	}
	payload := decode(audit)
	if len(payload.Questions) != 5 {
		t.Fatalf("audit has %d questions", len(payload.Questions))
	}
	for i, q := range payload.Questions {
		if q.CorrectAnswer == nil || *q.CorrectAnswer != i%4 {
			t.Errorf("audit question %d correct = %v", i, q.CorrectAnswer)
		}
		if q.Order != i+1 {
			t.Errorf("audit question %d order = %d", i, q.Order)
		}
	}

	if _, err := f.results.StudentResults(ctx, outsiderID, started.AttemptID, "json"); KindOf(err) != KindNotFound {
		t.Errorf("outsider: kind = %q, want not_found", KindOf(err))
	}
	if _, err := f.results.StudentResults(ctx, studentID, 0, "json"); KindOf(err) != KindValidation {
		t.Errorf("missing id: kind = %q, want validation", KindOf(err))
	}
	if _, err := f.results.AuditResults(ctx, 9999, "csv"); KindOf(err) != KindNotFound {
		t.Errorf("unknown attempt: kind = %q, want not_found", KindOf(err))
	}

	questions := loadQuestions(t, f, started.AttemptID)
	if _, err := f.svc.SubmitAnswers(ctx, studentID, dto.SubmitAnswersRequest{
		AttemptID: started.AttemptID,
		Answers:   answersFor(questions, []int{0, 1, 0, 0, 0}),
	}); err != nil {
		t.Fatalf("SubmitAnswers: %v", err)
	}
	student, err = f.results.StudentResults(ctx, studentID, started.AttemptID, "json")
	if err != nil {
		t.Fatalf("StudentResults after grading: %v", err)
	}
	graded := decode(student)
	correct := 0
	for _, q := range graded.Questions {
		if q.CorrectAnswer == nil || q.IsCorrect == nil || q.UserAnswer == nil {
			t.Fatalf("graded question missing fields: %+v", q)
		}
		if *q.IsCorrect {
			correct++
		}
	}
	if correct != 3 || graded.Attempt.Score == nil || *graded.Attempt.Score != 3 {
		t.Errorf("correct = %d, score = %v; want 3", correct, graded.Attempt.Score)
	}
}

package service

import "github.com/lshigami/smartcampus/internal/model"

// GradeKey is the part of a frozen question the grader needs.
type GradeKey struct {
	QuestionID   uint
	CorrectIndex int
}

type GradeResult struct {
	Score      int
	Total      int
	Percentage float64
	Review     model.AnswerReviewMap
}

// Grade maps strictly by question id. A nil or missing submission is
// unanswered and never correct; there is no partial credit or negative
// marking. Submissions for ids outside keys are ignored.
func Grade(keys []GradeKey, submitted map[uint]*int) GradeResult {
	review := make(model.AnswerReviewMap, len(keys))
	score := 0
	for _, key := range keys {
		var answer *int
		if v, ok := submitted[key.QuestionID]; ok && v != nil {
			a := *v
			answer = &a
		}
		correct := answer != nil && *answer == key.CorrectIndex
		if correct {
			score++
		}
		review[key.QuestionID] = model.AnswerReview{
			SubmittedIndex: answer,
			CorrectIndex:   key.CorrectIndex,
			IsCorrect:      correct,
		}
	}
	return GradeResult{
		Score:      score,
		Total:      len(keys),
		Percentage: Percentage(score, len(keys)),
		Review:     review,
	}
}

func gradeKeysFor(questions []model.ExamQuestion) []GradeKey {
	keys := make([]GradeKey, len(questions))
	for i, q := range questions {
		keys[i] = GradeKey{QuestionID: q.ID, CorrectIndex: q.CorrectAnswerIndex}
	}
	return keys
}

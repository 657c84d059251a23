package model

import "encoding/json"

// AnswerReview is the per-question outcome stored verbatim in
// exam_attempts.answers_json at grading time.
type AnswerReview struct {
	SubmittedIndex *int `json:"submitted"`
	CorrectIndex   int  `json:"correct"`
	IsCorrect      bool `json:"is_correct"`
}

// AnswerReviewMap is keyed by question id (JSON object keys are the decimal ids).
type AnswerReviewMap map[uint]AnswerReview

// DecodeAnswerReviews returns nil for an ungraded attempt.
func DecodeAnswerReviews(raw []byte) (AnswerReviewMap, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return nil, nil
	}
	var m AnswerReviewMap
	if err := json.Unmarshal(raw, &m); err != nil {
		return nil, err
	}
	return m, nil
}

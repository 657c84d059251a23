package model

import (
	"encoding/json"
	"testing"
)

func TestDecodeAnswerReviews(t *testing.T) {
	for _, raw := range []string{"", "null"} {
		got, err := DecodeAnswerReviews([]byte(raw))
		if err != nil || got != nil {
			t.Errorf("DecodeAnswerReviews(%q) = %v, %v; want nil", raw, got, err)
		}
	}

	raw := `{"12":{"submitted":2,"correct":2,"is_correct":true},"13":{"submitted":null,"correct":1,"is_correct":false}}`
	got, err := DecodeAnswerReviews([]byte(raw))
	if err != nil {
		t.Fatalf("DecodeAnswerReviews: %v", err)
	}
	if r := got[12]; r.SubmittedIndex == nil || *r.SubmittedIndex != 2 || !r.IsCorrect {
		t.Errorf("review 12 = %+v", r)
	}
	if r := got[13]; r.SubmittedIndex != nil || r.CorrectIndex != 1 || r.IsCorrect {
		t.Errorf("review 13 = %+v", r)
	}

	if _, err := DecodeAnswerReviews([]byte(`[1,2]`)); err == nil {
		t.Error("expected error for non-object payload")
	}
}

func TestAnswerReviewMapKeysAreQuestionIDs(t *testing.T) {
	submitted := 0
	body, err := json.Marshal(AnswerReviewMap{42: {SubmittedIndex: &submitted, CorrectIndex: 3}})
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	want := `{"42":{"submitted":0,"correct":3,"is_correct":false}}`
	if string(body) != want {
		t.Errorf("got %s, want %s", body, want)
	}
}

package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/lshigami/smartcampus/config"
	"github.com/lshigami/smartcampus/internal/model"
	"github.com/rs/zerolog/log"
)

// GeneratedQuestion is content only; it is not bound to any attempt.
type GeneratedQuestion struct {
	Text         string
	Options      []string
	CorrectIndex int
}

// QuestionSource always yields exactly count well-formed questions. Provider
// failures degrade to the deterministic fallback and are only logged.
type QuestionSource interface {
	GenerateQuestions(ctx context.Context, courseTitle, courseCode string, count, level int) []GeneratedQuestion
}

var fallbackTopics = []string{
	"Fundamental Concepts",
	"Key Principles",
	"Practical Applications",
	"Problem Analysis",
	"Recent Developments",
}

// aiQuestion is the item shape requested from the provider.
type aiQuestion struct {
	Question      string   `json:"question" validate:"required"`
	Options       []string `json:"options" validate:"len=4,dive,required"`
	CorrectAnswer *int     `json:"correct_answer" validate:"required,min=0,max=3"`
}

type questionSource struct {
	generator    TextGenerator
	totalTimeout time.Duration
	validate     *validator.Validate
}

func NewQuestionSource(generator TextGenerator, cfg *config.Config) QuestionSource {
	return &questionSource{
		generator:    generator,
		totalTimeout: totalTimeoutOf(cfg.AI),
		validate:     validator.New(),
	}
}

func (s *questionSource) GenerateQuestions(ctx context.Context, courseTitle, courseCode string, count, level int) []GeneratedQuestion {
	if count <= 0 {
		return []GeneratedQuestion{}
	}
	logCtx := log.With().Str("courseCode", courseCode).Int("count", count).Str("provider", s.generator.Name()).Logger()

	aiCtx, cancel := context.WithTimeout(ctx, s.totalTimeout)
	defer cancel()

	raw, err := s.generator.GenerateText(aiCtx, buildQuestionPrompt(courseTitle, courseCode, count, level))
	if err != nil {
		reason := "provider_error"
		switch {
		case errors.Is(err, ErrNoCredential):
			reason = "missing_credential"
		case errors.Is(err, context.DeadlineExceeded):
			reason = "timeout"
		}
		logCtx.Warn().Err(err).Str("reason", reason).Msg("Question generation fell back to local generator")
		return FallbackQuestions(courseTitle, courseCode, count)
	}

	valid := s.parseQuestions(raw)
	if len(valid) == 0 {
		logCtx.Warn().Str("reason", "invalid_payload").Int("rawLength", len(raw)).Msg("Question generation fell back to local generator")
		return FallbackQuestions(courseTitle, courseCode, count)
	}
	if len(valid) < count {
		logCtx.Warn().Int("valid", len(valid)).Msg("Provider returned fewer valid questions than requested, padding with fallback")
		valid = append(valid, FallbackQuestions(courseTitle, courseCode, count)[len(valid):]...)
	}
	return valid[:count]
}

// parseQuestions keeps every item that passes validation and drops the rest.
func (s *questionSource) parseQuestions(raw string) []GeneratedQuestion {
	items, err := extractJSONItems(raw)
	if err != nil {
		log.Debug().Err(err).Msg("Could not extract question array from provider response")
		return nil
	}

	out := make([]GeneratedQuestion, 0, len(items))
	for i, item := range items {
		var q aiQuestion
		if err := json.Unmarshal(item, &q); err != nil {
			log.Debug().Err(err).Int("item", i).Msg("Skipping undecodable question item")
			continue
		}
		q.Question = strings.TrimSpace(q.Question)
		for j := range q.Options {
			q.Options[j] = strings.TrimSpace(q.Options[j])
		}
		if err := s.validate.Struct(q); err != nil {
			log.Debug().Err(err).Int("item", i).Msg("Skipping invalid question item")
			continue
		}
		out = append(out, GeneratedQuestion{
			Text:         q.Question,
			Options:      q.Options,
			CorrectIndex: *q.CorrectAnswer,
		})
	}
	return out
}

// extractJSONItems strips markdown fences and accepts either a bare array or
// an object with a "questions" array.
func extractJSONItems(raw string) ([]json.RawMessage, error) {
	text := stripCodeFence(raw)

	if strings.HasPrefix(text, "{") {
		var wrapped struct {
			Questions []json.RawMessage `json:"questions"`
		}
		if err := json.Unmarshal([]byte(text), &wrapped); err == nil && len(wrapped.Questions) > 0 {
			return wrapped.Questions, nil
		}
	}

	// Decode the first complete array of objects. Anything after it, and
	// bracketed prose before it, is ignored.
	var lastErr error
	for offset := 0; offset < len(text); {
		start := strings.Index(text[offset:], "[")
		if start == -1 {
			break
		}
		start += offset
		var items []json.RawMessage
		err := json.NewDecoder(strings.NewReader(text[start:])).Decode(&items)
		if err == nil && len(items) > 0 && strings.HasPrefix(strings.TrimSpace(string(items[0])), "{") {
			return items, nil
		}
		if err != nil {
			lastErr = err
		}
		offset = start + 1
	}
	if lastErr != nil {
		return nil, fmt.Errorf("decode question array: %w", lastErr)
	}
	return nil, fmt.Errorf("no JSON array in response")
}

func stripCodeFence(raw string) string {
	text := strings.TrimSpace(raw)
	if !strings.HasPrefix(text, "```") {
		return text
	}
	if nl := strings.Index(text, "\n"); nl != -1 {
		text = text[nl+1:]
	} else {
		text = strings.TrimPrefix(text, "```")
	}
	text = strings.TrimSpace(text)
	text = strings.TrimSuffix(text, "```")
	return strings.TrimSpace(text)
}

// FallbackQuestions synthesizes count filler questions with no external
// dependency. Topics cycle through fallbackTopics and the correct option is
// round-robin: question i has correct index i%4.
func FallbackQuestions(courseTitle, courseCode string, count int) []GeneratedQuestion {
	if count <= 0 {
		return []GeneratedQuestion{}
	}
	out := make([]GeneratedQuestion, count)
	for i := 0; i < count; i++ {
		topic := fallbackTopics[i%len(fallbackTopics)]
		options := make([]string, model.OptionsPerQuestion)
		for j := range options {
			options[j] = fmt.Sprintf("Statement %c on %s", 'A'+j, strings.ToLower(topic))
		}
		out[i] = GeneratedQuestion{
			Text:         fmt.Sprintf("Question %d: Which statement about %s in %s (%s) is most accurate?", i+1, strings.ToLower(topic), courseTitle, courseCode),
			Options:      options,
			CorrectIndex: i % model.OptionsPerQuestion,
		}
	}
	return out
}

func buildQuestionPrompt(courseTitle, courseCode string, count, level int) string {
	var sb strings.Builder
	sb.WriteString("You are an experienced university examiner setting a computer-based test.\n")
	sb.WriteString(fmt.Sprintf("Course: %s (%s)\n", courseTitle, courseCode))
	if level > 0 {
		sb.WriteString(fmt.Sprintf("Level: %d level undergraduate students\n", level))
	}
	sb.WriteString(fmt.Sprintf("\nWrite exactly %d multiple-choice questions covering the course syllabus.\n", count))
	sb.WriteString("Each question must have exactly 4 options and exactly one correct option.\n")
	sb.WriteString("Vary the position of the correct option.\n\n")
	sb.WriteString("Respond ONLY with a JSON array, no prose and no markdown, in this format:\n")
	sb.WriteString(`[{"question": "<question text>", "options": ["<A>", "<B>", "<C>", "<D>"], "correct_answer": <0-3>}]`)
	sb.WriteString("\n")
	return sb.String()
}

package service

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"github.com/lshigami/smartcampus/config"
	"github.com/rs/zerolog/log"
	"google.golang.org/api/googleapi/transport"
	"google.golang.org/api/option"
)

type geminiGenerator struct {
	client *genai.Client
	model  *genai.GenerativeModel
}

// NewGeminiGenerator builds a JSON-mode Gemini model. Dialing is bounded by
// the connect timeout; calls are bounded by the caller's context deadline.
func NewGeminiGenerator(cfg config.AI) (TextGenerator, error) {
	ctx := context.Background()
	client, err := genai.NewClient(ctx,
		option.WithAPIKey(cfg.GeminiApiKey),
		option.WithHTTPClient(geminiHTTPClient(cfg)),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize Gemini client: %w", err)
	}
	modelName := cfg.GeminiModel
	if modelName == "" {
		modelName = "gemini-1.5-flash"
	}
	model := client.GenerativeModel(modelName)
	model.SetTemperature(0.4)
	model.ResponseMIMEType = "application/json"
	return &geminiGenerator{client: client, model: model}, nil
}

// geminiHTTPClient carries the API key itself: a custom HTTP client replaces
// the transport genai would otherwise build from option.WithAPIKey.
func geminiHTTPClient(cfg config.AI) *http.Client {
	return &http.Client{
		Transport: &transport.APIKey{
			Key:       cfg.GeminiApiKey,
			Transport: aiTransport(cfg),
		},
	}
}

func (g *geminiGenerator) Name() string { return "gemini" }

func (g *geminiGenerator) Close() error {
	return g.client.Close()
}

func (g *geminiGenerator) GenerateText(ctx context.Context, prompt string) (string, error) {
	resp, err := g.model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("gemini generate content: %w", err)
	}

	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		log.Warn().Msg("Gemini returned no candidates or parts in response.")
		return "", fmt.Errorf("gemini returned no content")
	}

	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if txt, ok := part.(genai.Text); ok {
			sb.WriteString(string(txt))
		}
	}
	if sb.Len() == 0 {
		return "", fmt.Errorf("gemini returned no text content")
	}
	return sb.String(), nil
}

package service

import (
	"context"
	"fmt"
	"net/http"

	"github.com/lshigami/smartcampus/config"
	openai "github.com/sashabaranov/go-openai"
)

type openAIGenerator struct {
	api   *openai.Client
	model string
}

// NewOpenAIGenerator talks to any OpenAI-compatible endpoint. The HTTP client
// enforces the connect timeout on dialing and the total timeout per request.
func NewOpenAIGenerator(cfg config.AI) TextGenerator {
	clientConfig := openai.DefaultConfig(cfg.OpenAIApiKey)
	if cfg.OpenAIBaseURL != "" {
		clientConfig.BaseURL = cfg.OpenAIBaseURL
	}
	clientConfig.HTTPClient = &http.Client{
		Timeout:   totalTimeoutOf(cfg),
		Transport: aiTransport(cfg),
	}
	return &openAIGenerator{
		api:   openai.NewClientWithConfig(clientConfig),
		model: cfg.OpenAIModel,
	}
}

func (g *openAIGenerator) Name() string { return "openai" }

func (g *openAIGenerator) GenerateText(ctx context.Context, prompt string) (string, error) {
	resp, err := g.api.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: g.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: "You write university exam questions and answer with JSON only."},
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
		Temperature: 0.4,
	})
	if err != nil {
		return "", fmt.Errorf("LLM API call: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("LLM returned no choices")
	}
	return resp.Choices[0].Message.Content, nil
}

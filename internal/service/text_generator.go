package service

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/lshigami/smartcampus/config"
	"github.com/rs/zerolog/log"
)

// ErrNoCredential is returned by a generator built without an API key.
var ErrNoCredential = errors.New("generative AI credential is not configured")

// TextGenerator sends one prompt to a generative text provider.
type TextGenerator interface {
	GenerateText(ctx context.Context, prompt string) (string, error)
	Name() string
}

// NewTextGenerator picks the provider named by AI_PROVIDER. A missing key is
// not a startup error: the generator reports ErrNoCredential on every call
// and question generation falls back locally.
func NewTextGenerator(cfg *config.Config) (TextGenerator, error) {
	switch cfg.AI.Provider {
	case "openai":
		if cfg.AI.OpenAIApiKey == "" {
			log.Warn().Msg("OPENAI_API_KEY is not set. Question generation will use the local fallback.")
			return unavailableGenerator{name: "openai"}, nil
		}
		return NewOpenAIGenerator(cfg.AI), nil
	default:
		if cfg.AI.GeminiApiKey == "" {
			log.Warn().Msg("GEMINI_API_KEY is not set. Question generation will use the local fallback.")
			return unavailableGenerator{name: "gemini"}, nil
		}
		return NewGeminiGenerator(cfg.AI)
	}
}

const (
	defaultConnectTimeout = 10 * time.Second
	defaultTotalTimeout   = 30 * time.Second
)

// aiTransport bounds dialing and the TLS handshake by the connect timeout.
// The total timeout is applied by the caller's context or http.Client.
func aiTransport(cfg config.AI) *http.Transport {
	connectTimeout := cfg.ConnectTimeout
	if connectTimeout <= 0 {
		connectTimeout = defaultConnectTimeout
	}
	return &http.Transport{
		Proxy:               http.ProxyFromEnvironment,
		DialContext:         (&net.Dialer{Timeout: connectTimeout}).DialContext,
		TLSHandshakeTimeout: connectTimeout,
	}
}

func totalTimeoutOf(cfg config.AI) time.Duration {
	if cfg.TotalTimeout <= 0 {
		return defaultTotalTimeout
	}
	return cfg.TotalTimeout
}

type unavailableGenerator struct {
	name string
}

func (g unavailableGenerator) GenerateText(context.Context, string) (string, error) {
	return "", ErrNoCredential
}

func (g unavailableGenerator) Name() string { return g.name }

package service

import (
	"context"
	"errors"
	"io"
	"net/http"
	"testing"
	"time"

	"github.com/lshigami/smartcampus/config"
	"google.golang.org/api/googleapi/transport"
)

func TestAITransportTimeouts(t *testing.T) {
	tests := []struct {
		name    string
		connect time.Duration
		want    time.Duration
	}{
		{"configured", 3 * time.Second, 3 * time.Second},
		{"default", 0, defaultConnectTimeout},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr := aiTransport(config.AI{ConnectTimeout: tt.connect})
			if tr.TLSHandshakeTimeout != tt.want {
				t.Errorf("TLS handshake timeout = %v, want %v", tr.TLSHandshakeTimeout, tt.want)
			}
			if tr.DialContext == nil {
				t.Error("transport has no bounded dialer")
			}
		})
	}
}

func TestGeminiHTTPClientCarriesKeyAndConnectTimeout(t *testing.T) {
	client := geminiHTTPClient(config.AI{GeminiApiKey: "test-key", ConnectTimeout: 2 * time.Second})

	keyed, ok := client.Transport.(*transport.APIKey)
	if !ok {
		t.Fatalf("transport = %T, want *transport.APIKey", client.Transport)
	}
	if keyed.Key != "test-key" {
		t.Errorf("key = %q", keyed.Key)
	}
	inner, ok := keyed.Transport.(*http.Transport)
	if !ok {
		t.Fatalf("inner transport = %T, want *http.Transport", keyed.Transport)
	}
	if inner.TLSHandshakeTimeout != 2*time.Second || inner.DialContext == nil {
		t.Errorf("inner transport is not bounded by the connect timeout: %+v", inner)
	}
}

func TestGeminiGeneratorIsClosable(t *testing.T) {
	gen, err := NewGeminiGenerator(config.AI{GeminiApiKey: "test-key", ConnectTimeout: time.Second})
	if err != nil {
		t.Fatalf("NewGeminiGenerator: %v", err)
	}
	closer, ok := gen.(io.Closer)
	if !ok {
		t.Fatalf("%T does not release its client", gen)
	}
	if err := closer.Close(); err != nil {
		t.Errorf("Close: %v", err)
	}
}

func TestNewTextGenerator(t *testing.T) {
	tests := []struct {
		name     string
		ai       config.AI
		wantName string
		wantErr  error
	}{
		{"gemini without key", config.AI{Provider: "gemini"}, "gemini", ErrNoCredential},
		{"openai without key", config.AI{Provider: "openai"}, "openai", ErrNoCredential},
		{"openai with key", config.AI{Provider: "openai", OpenAIApiKey: "sk-test", ConnectTimeout: time.Second}, "openai", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gen, err := NewTextGenerator(&config.Config{AI: tt.ai})
			if err != nil {
				t.Fatalf("NewTextGenerator: %v", err)
			}
			if gen.Name() != tt.wantName {
				t.Errorf("provider = %q, want %q", gen.Name(), tt.wantName)
			}
			if tt.wantErr == nil {
				return
			}
			if _, err := gen.GenerateText(context.Background(), "prompt"); !errors.Is(err, tt.wantErr) {
				t.Errorf("GenerateText err = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

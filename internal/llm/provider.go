package llm

import (
	"context"
	"errors"
	"strings"

	openai "github.com/sashabaranov/go-openai"
)

// GroqBaseURL is the OpenAI-compatible endpoint of the hosted Groq service.
const GroqBaseURL = "https://api.groq.com/openai/v1"

// DefaultModel is the completion model requested when none is configured.
const DefaultModel = "gemma2-9b-it"

// Client is the minimal interface needed to call a chat model. It mirrors
// the CreateChatCompletion method so that any OpenAI-compatible backend can
// be adapted, including the local stub used in tests.
type Client interface {
	CreateChatCompletion(ctx context.Context, request openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

// NewClient builds a Client for the Groq service authenticated with apiKey.
// baseURL overrides the hosted endpoint when non-empty, which points the
// client at a local stub or proxy instead.
func NewClient(apiKey, baseURL string) (Client, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, errors.New("api key is required")
	}
	cfg := openai.DefaultConfig(apiKey)
	cfg.BaseURL = GroqBaseURL
	if strings.TrimSpace(baseURL) != "" {
		cfg.BaseURL = baseURL
	}
	return openai.NewClientWithConfig(cfg), nil
}

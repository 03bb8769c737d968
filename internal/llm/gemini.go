package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/sashabaranov/go-openai"
)

// DefaultBaseURL is Gemini's OpenAI-compatible endpoint.
const DefaultBaseURL = "https://generativelanguage.googleapis.com/v1beta/openai/"

const DefaultModel = "gemini-2.5-pro"

type GeminiClient struct {
	client *openai.Client
	model  string
}

// NewGemini validates the API key and builds a client for Gemini's
// OpenAI-compatible endpoint. An empty key is rejected here so callers
// get a configuration error instead of a failing first request.
func NewGemini(apiKey, baseURL, model string) (*GeminiClient, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, fmt.Errorf("gemini api key is empty")
	}
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if model == "" {
		model = DefaultModel
	}
	config := openai.DefaultConfig(apiKey)
	config.BaseURL = baseURL
	return &GeminiClient{
		client: openai.NewClientWithConfig(config),
		model:  model,
	}, nil
}

func (c *GeminiClient) Model() string { return c.model }

// Generate issues one stateless chat completion. The remote side keeps
// no conversation state; callers re-send any context they need.
func (c *GeminiClient) Generate(ctx context.Context, messages []Message) (Response, error) {
	oaMsgs := make([]openai.ChatCompletionMessage, 0, len(messages))
	for _, m := range messages {
		oaMsgs = append(oaMsgs, openai.ChatCompletionMessage{Role: m.Role, Content: m.Content})
	}

	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:    c.model,
		Messages: oaMsgs,
	})
	if err != nil {
		return Response{}, fmt.Errorf("failed to create chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return Response{}, fmt.Errorf("completion returned no choices")
	}

	return Response{
		Content:          resp.Choices[0].Message.Content,
		Model:            c.model,
		PromptTokens:     resp.Usage.PromptTokens,
		CompletionTokens: resp.Usage.CompletionTokens,
		TotalTokens:      resp.Usage.TotalTokens,
	}, nil
}

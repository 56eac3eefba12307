package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/sashabaranov/go-openai"
	"go.uber.org/zap"
)

// GroqModel is the only model the relay talks to on Groq.
const GroqModel = "meta-llama/llama-4-scout-17b-16e-instruct"

// GroqService calls Groq's OpenAI-compatible chat-completion endpoint.
type GroqService struct {
	client *openai.Client
	logger *zap.SugaredLogger
}

func NewGroqService(apiKey, baseURL string, logger *zap.SugaredLogger) *GroqService {
	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}

	return &GroqService{
		client: openai.NewClientWithConfig(cfg),
		logger: logger,
	}
}

func (s *GroqService) Name() string {
	return "groq"
}

func (s *GroqService) Complete(ctx context.Context, prompt Prompt) (string, error) {
	req := buildGroqRequest(prompt)

	resp, err := s.client.CreateChatCompletion(ctx, req)
	if err != nil {
		return "", classifyOpenAIError(s.Name(), err)
	}

	if len(resp.Choices) == 0 {
		return "", &UpstreamError{Provider: s.Name(), Message: "no completion choices returned"}
	}

	s.logger.Debugw("Groq completion received",
		"model", resp.Model,
		"finish_reason", resp.Choices[0].FinishReason,
		"prompt_tokens", resp.Usage.PromptTokens,
		"completion_tokens", resp.Usage.CompletionTokens,
	)

	return resp.Choices[0].Message.Content, nil
}

func (s *GroqService) ListModels(ctx context.Context) ([]string, error) {
	list, err := s.client.ListModels(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing Groq models: %w", classifyOpenAIError(s.Name(), err))
	}

	ids := make([]string, 0, len(list.Models))
	for _, m := range list.Models {
		ids = append(ids, m.ID)
	}
	return ids, nil
}

func (s *GroqService) Close() error {
	return nil
}

// buildGroqRequest produces one user message: a text part, then an image_url
// part only when the prompt carries an image.
func buildGroqRequest(prompt Prompt) openai.ChatCompletionRequest {
	parts := []openai.ChatMessagePart{
		{Type: openai.ChatMessagePartTypeText, Text: prompt.Text},
	}
	if prompt.HasImage() {
		parts = append(parts, openai.ChatMessagePart{
			Type:     openai.ChatMessagePartTypeImageURL,
			ImageURL: &openai.ChatMessageImageURL{URL: prompt.ImageURL},
		})
	}

	return openai.ChatCompletionRequest{
		Model: GroqModel,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, MultiContent: parts},
		},
		Temperature:         Temperature,
		TopP:                TopP,
		MaxCompletionTokens: MaxOutputTokens,
		Stream:              false,
	}
}

func classifyOpenAIError(provider string, err error) *UpstreamError {
	upErr := &UpstreamError{Provider: provider, Message: err.Error(), Err: err}

	var apiErr *openai.APIError
	var reqErr *openai.RequestError
	switch {
	case errors.As(err, &apiErr):
		upErr.StatusCode = apiErr.HTTPStatusCode
		upErr.Message = apiErr.Message
	case errors.As(err, &reqErr):
		upErr.StatusCode = reqErr.HTTPStatusCode
		if reqErr.Err != nil {
			upErr.Message = reqErr.Err.Error()
		}
	}

	return upErr
}

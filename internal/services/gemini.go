package services

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"github.com/vincent-petithory/dataurl"
	"go.uber.org/zap"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/iterator"
	"google.golang.org/api/option"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const GeminiModel = "gemini-2.0-flash"

type GeminiService struct {
	client *genai.Client
	model  *genai.GenerativeModel
	logger *zap.SugaredLogger
}

func NewGeminiService(ctx context.Context, apiKey string, logger *zap.SugaredLogger) (*GeminiService, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	model := client.GenerativeModel(GeminiModel)
	model.SetTemperature(Temperature)
	model.SetTopP(TopP)
	model.SetMaxOutputTokens(MaxOutputTokens)

	return &GeminiService{
		client: client,
		model:  model,
		logger: logger,
	}, nil
}

func (s *GeminiService) Name() string {
	return "gemini"
}

func (s *GeminiService) Close() error {
	return s.client.Close()
}

func (s *GeminiService) Complete(ctx context.Context, prompt Prompt) (string, error) {
	parts, err := buildGeminiParts(prompt)
	if err != nil {
		return "", err
	}

	resp, err := s.model.GenerateContent(ctx, parts...)
	if err != nil {
		return "", classifyGeminiError(err)
	}

	for i, cand := range resp.Candidates {
		if cand.FinishReason != genai.FinishReasonStop {
			s.logger.Warnw("Gemini candidate did not stop cleanly", "candidate", i, "finish_reason", cand.FinishReason)
		}
	}

	text, ok := firstCandidateText(resp)
	if !ok {
		return "", &UpstreamError{Provider: s.Name(), Message: "no completion candidates returned"}
	}
	return text, nil
}

func (s *GeminiService) ListModels(ctx context.Context) ([]string, error) {
	var names []string

	it := s.client.ListModels(ctx)
	for {
		m, err := it.Next()
		if errors.Is(err, iterator.Done) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("listing Gemini models: %w", classifyGeminiError(err))
		}
		names = append(names, strings.TrimPrefix(m.Name, "models/"))
	}

	return names, nil
}

// buildGeminiParts mirrors the OpenAI-style message: text first, then the
// decoded image blob when present.
func buildGeminiParts(prompt Prompt) ([]genai.Part, error) {
	parts := []genai.Part{genai.Text(prompt.Text)}
	if !prompt.HasImage() {
		return parts, nil
	}

	du, err := dataurl.DecodeString(prompt.ImageURL)
	if err != nil {
		return nil, &UpstreamError{
			Provider:   "gemini",
			StatusCode: http.StatusBadRequest,
			Message:    "image must be a base64 data URI",
			Err:        err,
		}
	}
	if du.MediaType.Type != "image" {
		return nil, &UpstreamError{
			Provider:   "gemini",
			StatusCode: http.StatusBadRequest,
			Message:    fmt.Sprintf("unsupported media type %q", du.MediaType.ContentType()),
		}
	}

	return append(parts, genai.Blob{MIMEType: du.MediaType.ContentType(), Data: du.Data}), nil
}

func firstCandidateText(resp *genai.GenerateContentResponse) (string, bool) {
	if resp == nil || len(resp.Candidates) == 0 {
		return "", false
	}

	var text strings.Builder
	if content := resp.Candidates[0].Content; content != nil {
		for _, part := range content.Parts {
			if t, ok := part.(genai.Text); ok {
				text.WriteString(string(t))
			}
		}
	}
	return text.String(), true
}

func classifyGeminiError(err error) *UpstreamError {
	upErr := &UpstreamError{Provider: "gemini", Message: err.Error(), Err: err}

	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) {
		upErr.StatusCode = apiErr.Code
		if apiErr.Message != "" {
			upErr.Message = apiErr.Message
		}
		return upErr
	}

	if st, ok := status.FromError(err); ok {
		switch st.Code() {
		case codes.ResourceExhausted:
			upErr.StatusCode = http.StatusTooManyRequests
		case codes.InvalidArgument:
			upErr.StatusCode = http.StatusBadRequest
		case codes.Unauthenticated:
			upErr.StatusCode = http.StatusUnauthorized
		case codes.PermissionDenied:
			upErr.StatusCode = http.StatusForbidden
		case codes.Unavailable:
			upErr.StatusCode = http.StatusServiceUnavailable
		}
		if st.Message() != "" {
			upErr.Message = st.Message()
		}
	}

	return upErr
}

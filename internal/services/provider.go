package services

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"visionchat/internal/config"
	"visionchat/internal/models"
)

// DefaultPrompt is sent when a turn carries only an image.
const DefaultPrompt = "Analyze this image."

// Fixed sampling parameters shared by every provider.
const (
	Temperature     = 1
	TopP            = 1
	MaxOutputTokens = 1024
)

// Provider is an upstream multimodal chat-completion API.
type Provider interface {
	// Name identifies the provider in logs and the liveness string.
	Name() string
	// Complete sends one user message and returns the first choice's text.
	// Failures are reported as *UpstreamError.
	Complete(ctx context.Context, prompt Prompt) (string, error)
	ListModels(ctx context.Context) ([]string, error)
	Close() error
}

// Prompt is the provider-neutral content of a single user message.
type Prompt struct {
	Text     string
	ImageURL string
}

func (p Prompt) HasImage() bool {
	return p.ImageURL != ""
}

// NewPrompt applies the default text to an image-only (or empty) request.
func NewPrompt(req models.ChatRequest) Prompt {
	text := req.Text
	if strings.TrimSpace(text) == "" {
		text = DefaultPrompt
	}
	return Prompt{Text: text, ImageURL: req.Image}
}

// NewProvider builds the provider selected by cfg.Provider.
func NewProvider(ctx context.Context, cfg *config.Config, logger *zap.SugaredLogger) (Provider, error) {
	switch cfg.Provider {
	case config.ProviderGroq:
		return NewGroqService(cfg.GroqAPIKey, cfg.GroqBaseURL, logger), nil
	case config.ProviderGemini:
		return NewGeminiService(ctx, cfg.GeminiAPIKey, logger)
	default:
		return nil, fmt.Errorf("unknown provider %q", cfg.Provider)
	}
}

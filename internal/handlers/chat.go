package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"visionchat/internal/middleware"
	"visionchat/internal/models"
	"visionchat/internal/services"
)

const bodyPreviewLen = 100

// completer is the slice of services.Provider the relay needs.
type completer interface {
	Name() string
	Complete(ctx context.Context, prompt services.Prompt) (string, error)
}

type ChatHandler struct {
	provider completer
	logger   *zap.SugaredLogger
}

func NewChatHandler(provider completer, logger *zap.SugaredLogger) *ChatHandler {
	return &ChatHandler{
		provider: provider,
		logger:   logger,
	}
}

// Chat relays one turn to the upstream provider. Every failure is answered
// with a single {"error": "..."} body; nothing is retried.
func (h *ChatHandler) Chat(w http.ResponseWriter, r *http.Request) {
	log := h.logger.With("request_id", middleware.GetRequestID(r.Context()), "provider", h.provider.Name())
	log.Info("📩 Incoming request to /api/chat")

	var req models.ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeJSON(w, http.StatusRequestEntityTooLarge, errorResp("Request body too large (limit 10mb)"))
			return
		}
		writeJSON(w, http.StatusBadRequest, errorResp("Invalid request body"))
		return
	}

	log.Debugw("📦 Request body", "preview", bodyPreview(req))
	if req.Image != "" {
		log.Infow("🖼️ Image detected in request", "image_bytes", len(req.Image))
	}

	text, err := h.provider.Complete(r.Context(), services.NewPrompt(req))
	if err != nil {
		upErr := services.AsUpstreamError(err)
		log.Errorw("upstream provider failed",
			"status", upErr.StatusCode,
			"message", upErr.Message,
			"error", err,
		)

		status, message := mapUpstreamError(upErr)
		writeJSON(w, status, errorResp(message))
		return
	}

	log.Info("✅ AI responded successfully")
	writeJSON(w, http.StatusOK, models.ChatResponse{Text: text})
}

// bodyPreview renders the request for logs without dumping whole images.
func bodyPreview(req models.ChatRequest) string {
	if len(req.Image) > bodyPreviewLen {
		req.Image = req.Image[:bodyPreviewLen]
	}
	data, err := json.Marshal(req)
	if err != nil {
		return ""
	}
	if len(data) > bodyPreviewLen {
		return string(data[:bodyPreviewLen]) + "..."
	}
	return string(data)
}

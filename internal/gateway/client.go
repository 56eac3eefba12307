// Package gateway is the client side of the relay: one POST /api/chat per
// turn, no timeout, no retry.
package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"go.uber.org/zap"

	"visionchat/internal/models"
)

// ErrEmptyTurn is returned without touching the network when a turn has no
// text and no image.
var ErrEmptyTurn = errors.New("turn has neither text nor image")

// RelayError is a non-2xx answer from the relay.
type RelayError struct {
	StatusCode int
	Message    string
}

func (e *RelayError) Error() string {
	return fmt.Sprintf("relay returned %d: %s", e.StatusCode, e.Message)
}

type Client struct {
	baseURL string
	http    *http.Client
	logger  *zap.SugaredLogger
}

func New(baseURL string, logger *zap.SugaredLogger) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{},
		logger:  logger,
	}
}

func (c *Client) BaseURL() string {
	return c.baseURL
}

// SendTurn posts {text, image} to the relay and returns the reply text.
func (c *Client) SendTurn(ctx context.Context, text, image string) (string, error) {
	if strings.TrimSpace(text) == "" && image == "" {
		return "", ErrEmptyTurn
	}

	body, err := json.Marshal(models.ChatRequest{Text: text, Image: image})
	if err != nil {
		return "", fmt.Errorf("marshaling chat request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/chat", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	c.logger.Debugw("sending turn", "text_len", len(text), "has_image", image != "")

	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Warnw("relay unreachable", "error", err)
		return "", fmt.Errorf("sending turn: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		relayErr := decodeRelayError(resp)
		c.logger.Warnw("relay returned error", "status", relayErr.StatusCode, "message", relayErr.Message)
		return "", relayErr
	}

	var out models.ChatResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("decoding relay reply: %w", err)
	}
	return out.Text, nil
}

func decodeRelayError(resp *http.Response) *RelayError {
	relayErr := &RelayError{StatusCode: resp.StatusCode, Message: http.StatusText(resp.StatusCode)}

	data, err := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	if err != nil {
		return relayErr
	}

	var body models.ErrorResponse
	if json.Unmarshal(data, &body) == nil && body.Error != "" {
		relayErr.Message = body.Error
	}
	return relayErr
}

// DisplayMessage turns a SendTurn failure into the text of an AI chat bubble.
// The relay's own message wins; otherwise the transport error is shown.
func DisplayMessage(err error, baseURL string) string {
	msg := err.Error()

	var relayErr *RelayError
	var urlErr *url.Error
	switch {
	case errors.As(err, &relayErr):
		msg = relayErr.Message
	case errors.As(err, &urlErr):
		msg = urlErr.Err.Error()
	}
	if msg == "" {
		msg = "Unknown error"
	}

	return fmt.Sprintf("Error: %s. Is the server running at %s?", strings.TrimSuffix(msg, "."), baseURL)
}

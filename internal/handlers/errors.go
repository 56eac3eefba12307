package handlers

import (
	"net/http"

	"visionchat/internal/services"
)

const (
	msgRateLimited = "AI provider is very busy right now (Rate Limit). Please wait a few seconds and try again."
	msgAIFailed    = "AI failed to respond. Check if your API key is valid!"
)

// mapUpstreamError is the relay's only error policy: rate limits and bad
// requests keep their status, everything else keeps the upstream status when
// it is an error status and falls back to 500.
func mapUpstreamError(err *services.UpstreamError) (int, string) {
	switch {
	case err.RateLimited():
		return http.StatusTooManyRequests, msgRateLimited
	case err.BadRequest():
		return http.StatusBadRequest, "Bad Request: " + err.Message
	}

	status := err.StatusCode
	if status < http.StatusBadRequest || status > 599 {
		status = http.StatusInternalServerError
	}
	return status, msgAIFailed
}

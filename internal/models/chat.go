package models

// ChatRequest is the payload accepted by POST /api/chat. At least one of the
// fields is expected; an empty request is still forwarded with the default
// prompt.
type ChatRequest struct {
	Text  string `json:"text,omitempty"`
	Image string `json:"image,omitempty"` // base64 data URI
}

// ChatResponse is the reply from the AI chat.
type ChatResponse struct {
	Text string `json:"text"`
}

// ErrorResponse is the body of every non-2xx relay response.
type ErrorResponse struct {
	Error string `json:"error"`
}

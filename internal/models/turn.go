package models

type Sender string

const (
	SenderUser Sender = "user"
	SenderAI   Sender = "ai"
)

// ChatTurn is one bubble in the conversation. It only lives in client memory.
type ChatTurn struct {
	ID     string `json:"id"`
	Text   string `json:"text,omitempty"`
	Image  string `json:"image,omitempty"`
	Sender Sender `json:"sender"`
}

func (t ChatTurn) HasImage() bool {
	return t.Image != ""
}

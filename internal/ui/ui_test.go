package ui

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"visionchat/internal/chat"
	"visionchat/internal/models"
)

func TestParseCommand(t *testing.T) {
	tests := []struct {
		line    string
		wantCmd string
		wantArg string
		wantOK  bool
	}{
		{"/quit", "quit", "", true},
		{"  /IMAGE  ./cat.png ", "image", "./cat.png", true},
		{"/image /tmp/with space.jpg", "image", "/tmp/with space.jpg", true},
		{"what is / for?", "", "", false},
		{"/", "", "", false},
		{"", "", "", false},
	}

	for _, tc := range tests {
		t.Run(tc.line, func(t *testing.T) {
			cmd, arg, ok := parseCommand(tc.line)
			assert.Equal(t, tc.wantOK, ok)
			assert.Equal(t, tc.wantCmd, cmd)
			assert.Equal(t, tc.wantArg, arg)
		})
	}
}

func TestFormatTurns(t *testing.T) {
	st := chat.State{
		Turns: []models.ChatTurn{
			{ID: "1", Text: chat.Greeting, Sender: models.SenderAI},
			{ID: "2", Text: "what is [this]?", Image: "data:image/png;base64,AAAA", Sender: models.SenderUser},
		},
		Loading: true,
	}

	out := formatTurns(st)

	greet := strings.Index(out, chat.Greeting)
	question := strings.Index(out, "what is [this[]?")
	thinking := strings.Index(out, "thinking")
	assert.True(t, greet >= 0 && question > greet && thinking > question, out)
	assert.Contains(t, out, "(image attached)")
}

func TestFormatTurns_Idle(t *testing.T) {
	out := formatTurns(chat.State{Turns: []models.ChatTurn{{ID: "1", Text: "hi", Sender: models.SenderAI}}})
	assert.NotContains(t, out, "thinking")
	assert.NotContains(t, out, "(image attached)")
}

func TestStatusLine(t *testing.T) {
	line := statusLine(chat.State{}, "http://localhost:5001")
	assert.Equal(t, "relay http://localhost:5001", line)

	line = statusLine(chat.State{Image: "data:image/png;base64,AAAA", Loading: true}, "http://localhost:5001")
	assert.Contains(t, line, "image attached")
	assert.Contains(t, line, "waiting for reply")
}

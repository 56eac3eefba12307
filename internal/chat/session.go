package chat

import (
	"context"
	"errors"

	"visionchat/internal/gateway"
)

// ErrNothingToSend is returned when Send is called with empty inputs or while
// a reply is still pending.
var ErrNothingToSend = errors.New("nothing to send")

// Sender delivers one turn to the relay. *gateway.Client implements it.
type Sender interface {
	SendTurn(ctx context.Context, text, image string) (string, error)
}

type Session struct {
	store   *Store
	sender  Sender
	baseURL string
}

func NewSession(store *Store, sender Sender, baseURL string) *Session {
	return &Session{store: store, sender: sender, baseURL: baseURL}
}

// Send turns the pending input into a user turn, waits for the relay and
// appends the AI turn: the reply, or an error bubble. Failures are returned
// as well as rendered; nothing is retried.
func (s *Session) Send(ctx context.Context) error {
	turn, ok := s.store.beginTurn()
	if !ok {
		return ErrNothingToSend
	}

	reply, err := s.sender.SendTurn(ctx, turn.Text, turn.Image)
	if err != nil {
		s.store.Dispatch(ReplyFailed{
			Turn: NewAITurn(gateway.DisplayMessage(err, s.baseURL)),
			Err:  err,
		})
		return err
	}

	s.store.Dispatch(ReplyReceived{Turn: NewAITurn(reply)})
	return nil
}

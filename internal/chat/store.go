// Package chat holds the client's view state: the ordered turn list, the
// pending input and attachment, and whether a reply is in flight. All changes
// go through Reduce so views only ever see immutable snapshots.
package chat

import (
	"strings"
	"sync"

	"github.com/google/uuid"

	"visionchat/internal/models"
)

const Greeting = "Hello! I am VisionChat AI. How can I help you today?"

type State struct {
	Turns   []models.ChatTurn
	Input   string
	Image   string
	Loading bool
}

// CanSend reports whether a new user turn may start.
func (s State) CanSend() bool {
	if s.Loading {
		return false
	}
	return strings.TrimSpace(s.Input) != "" || s.Image != ""
}

type Action interface {
	isAction()
}

type SetInput struct{ Text string }

type SelectImage struct{ DataURI string }

type ClearImage struct{}

// TurnSent appends the user turn, clears the inputs and marks a reply as
// pending.
type TurnSent struct{ Turn models.ChatTurn }

type ReplyReceived struct{ Turn models.ChatTurn }

// ReplyFailed carries the error bubble rendered in place of a reply.
type ReplyFailed struct {
	Turn models.ChatTurn
	Err  error
}

func (SetInput) isAction()      {}
func (SelectImage) isAction()   {}
func (ClearImage) isAction()    {}
func (TurnSent) isAction()      {}
func (ReplyReceived) isAction() {}
func (ReplyFailed) isAction()   {}

// Reduce is the only place state changes. It never mutates s.Turns in place.
func Reduce(s State, a Action) State {
	switch a := a.(type) {
	case SetInput:
		s.Input = a.Text
	case SelectImage:
		s.Image = a.DataURI
	case ClearImage:
		s.Image = ""
	case TurnSent:
		s.Turns = appendTurn(s.Turns, a.Turn)
		s.Input = ""
		s.Image = ""
		s.Loading = true
	case ReplyReceived:
		s.Turns = appendTurn(s.Turns, a.Turn)
		s.Loading = false
	case ReplyFailed:
		s.Turns = appendTurn(s.Turns, a.Turn)
		s.Loading = false
	}
	return s
}

func appendTurn(turns []models.ChatTurn, t models.ChatTurn) []models.ChatTurn {
	out := make([]models.ChatTurn, len(turns), len(turns)+1)
	copy(out, turns)
	return append(out, t)
}

type Store struct {
	mu          sync.Mutex
	state       State
	subscribers []func(State)
}

// NewStore returns a store seeded with the assistant's greeting.
func NewStore() *Store {
	return &Store{
		state: State{
			Turns: []models.ChatTurn{NewAITurn(Greeting)},
		},
	}
}

func (s *Store) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Subscribe registers fn to receive every new state. fn runs on the
// dispatching goroutine after the lock is released.
func (s *Store) Subscribe(fn func(State)) {
	s.mu.Lock()
	s.subscribers = append(s.subscribers, fn)
	s.mu.Unlock()
}

func (s *Store) Dispatch(a Action) State {
	st, _ := s.update(func(cur State) (Action, bool) { return a, true })
	return st
}

// beginTurn atomically checks CanSend and, if allowed, records the user turn.
func (s *Store) beginTurn() (models.ChatTurn, bool) {
	var turn models.ChatTurn
	_, ok := s.update(func(cur State) (Action, bool) {
		if !cur.CanSend() {
			return nil, false
		}
		turn = models.ChatTurn{
			ID:     uuid.NewString(),
			Text:   cur.Input,
			Image:  cur.Image,
			Sender: models.SenderUser,
		}
		return TurnSent{Turn: turn}, true
	})
	return turn, ok
}

func (s *Store) update(decide func(State) (Action, bool)) (State, bool) {
	s.mu.Lock()
	a, ok := decide(s.state)
	if !ok {
		st := s.state
		s.mu.Unlock()
		return st, false
	}
	s.state = Reduce(s.state, a)
	st := s.state
	subs := append([]func(State){}, s.subscribers...)
	s.mu.Unlock()

	for _, fn := range subs {
		fn(st)
	}
	return st, true
}

func NewAITurn(text string) models.ChatTurn {
	return models.ChatTurn{ID: uuid.NewString(), Text: text, Sender: models.SenderAI}
}

package chat

import (
	"context"
	"strings"
	"sync"

	"github.com/bz888/nopickles/internal/logger"
)

// Sender posts the full history to the chat server and returns the reply.
type Sender interface {
	Chat(ctx context.Context, messages []Message) (string, error)
}

// View is the rendering surface of a session. The terminal UI implements it;
// tests record the calls.
type View interface {
	AddMessage(role Role, content string)
	ClearInput()
	// SetPending disables the send control and shows the waiting label, or
	// restores it.
	SetPending(pending bool)
	FocusInput()
}

// Session owns the history of one conversation.
type Session struct {
	sender Sender
	view   View
	log    *logger.Logger

	mu      sync.Mutex
	history []Message
	sending bool
}

func NewSession(sender Sender, view View) *Session {
	return &Session{
		sender:  sender,
		view:    view,
		log:     logger.NewLogger("chat"),
		history: make([]Message, 0, 16),
	}
}

// History returns a copy of the conversation so far.
func (s *Session) History() []Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := make([]Message, len(s.history))
	copy(cp, s.history)
	return cp
}

// Reset forgets the conversation. It does not touch the view.
func (s *Session) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.history = s.history[:0]
}

// Pending reports whether a send is in flight.
func (s *Session) Pending() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sending
}

// SendMessage sends input as the next user turn. Blank input is ignored. A
// failed request shows FallbackReply without recording it, so the history only
// ever holds turns the server has seen answered. The send control is restored
// and the input focused whatever the outcome.
func (s *Session) SendMessage(ctx context.Context, input string) error {
	content := strings.TrimSpace(input)
	if content == "" {
		return nil
	}

	s.mu.Lock()
	if s.sending {
		s.mu.Unlock()
		s.log.Warn("Send ignored, previous message still pending")
		return ErrSendInFlight
	}
	s.sending = true

	s.view.AddMessage(RoleUser, content)
	s.history = append(s.history, Message{Role: RoleUser, Content: content})
	snapshot := make([]Message, len(s.history))
	copy(snapshot, s.history)
	s.mu.Unlock()

	s.view.ClearInput()
	s.view.SetPending(true)

	defer func() {
		s.mu.Lock()
		s.sending = false
		s.mu.Unlock()
		s.view.SetPending(false)
		s.view.FocusInput()
	}()

	s.log.Info("Sending ", len(snapshot), " messages")
	reply, err := s.sender.Chat(ctx, snapshot)
	if err != nil {
		s.log.Error("Error sending message: ", err)
		s.view.AddMessage(RoleAssistant, FallbackReply)
		return &RequestError{Err: err}
	}

	s.view.AddMessage(RoleAssistant, reply)
	s.mu.Lock()
	s.history = append(s.history, Message{Role: RoleAssistant, Content: reply})
	s.mu.Unlock()
	return nil
}

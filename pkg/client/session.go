package client

import (
	"context"
	"time"

	"github.com/papercomputeco/arenito/pkg/conversation"
)

// DefaultHistoryLimit is the number of turns a Session keeps.
const DefaultHistoryLimit = 60

// Session owns the conversation history on the caller side and sends it with
// every turn. It is not safe for concurrent use.
type Session struct {
	client *Client
	limit  int
	turns  conversation.History
}

// NewSession starts a session seeded with history. limit <= 0 uses
// DefaultHistoryLimit.
func NewSession(c *Client, limit int, history conversation.History) *Session {
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}
	s := &Session{
		client: c,
		limit:  limit,
		turns:  append(conversation.History(nil), history...),
	}
	s.trim()
	return s
}

// Send sends message with the current history. Both turns are recorded only
// when the server answers, so a failed message can simply be sent again.
func (s *Session) Send(ctx context.Context, message string) (string, error) {
	sent := time.Now()

	resp, err := s.client.Chat(ctx, message, s.turns)
	if err != nil {
		return "", err
	}

	answeredAt := resp.Timestamp
	if answeredAt.IsZero() {
		answeredAt = time.Now()
	}

	s.turns = append(s.turns,
		conversation.NewTurn(conversation.RoleUser, message, sent),
		conversation.NewTurn(conversation.RoleModel, resp.Answer, answeredAt),
	)
	s.trim()

	return resp.Answer, nil
}

// History returns a copy of the recorded turns, oldest first.
func (s *Session) History() conversation.History {
	return append(conversation.History(nil), s.turns...)
}

// Reset forgets every turn.
func (s *Session) Reset() {
	s.turns = nil
}

func (s *Session) trim() {
	if len(s.turns) > s.limit {
		s.turns = append(conversation.History(nil), s.turns[len(s.turns)-s.limit:]...)
	}
}

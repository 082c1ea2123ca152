// Package conversation holds the caller-owned chat history types and the
// windowing policy applied to them before prompt assembly.
package conversation

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"
)

// Role identifies who produced a turn.
type Role string

const (
	RoleUser  Role = "user"
	RoleModel Role = "model"
)

// Valid reports whether r is one of the roles the provider accepts.
func (r Role) Valid() bool {
	return r == RoleUser || r == RoleModel
}

// Turn is one message exchanged within a conversation.
type Turn struct {
	Role      Role      `json:"role"`
	Text      string    `json:"text"`
	Timestamp Timestamp `json:"timestamp,omitzero"`
}

// NewTurn creates a turn stamped with the given time.
func NewTurn(role Role, text string, at time.Time) Turn {
	return Turn{Role: role, Text: text, Timestamp: Timestamp{Time: at}}
}

// WellFormed reports whether the turn may be forwarded to the provider.
func (t Turn) WellFormed() bool {
	return t.Role.Valid() && t.Text != ""
}

// History is an ordered, chronological sequence of turns.
type History []Turn

// Timestamp is a time.Time that also accepts naive ISO 8601 values
// (no zone offset) as emitted by browsers and Python clients.
type Timestamp struct {
	time.Time
}

var naiveLayouts = []string{
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02 15:04:05",
}

// UnmarshalJSON parses RFC 3339 first, then the naive layouts in local time.
func (ts *Timestamp) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, []byte("null")) {
		ts.Time = time.Time{}
		return nil
	}

	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("timestamp must be a string: %w", err)
	}
	if raw == "" {
		ts.Time = time.Time{}
		return nil
	}

	if t, err := time.Parse(time.RFC3339Nano, raw); err == nil {
		ts.Time = t
		return nil
	}
	for _, layout := range naiveLayouts {
		if t, err := time.ParseInLocation(layout, raw, time.Local); err == nil {
			ts.Time = t
			return nil
		}
	}

	return fmt.Errorf("invalid timestamp %q", raw)
}

// MarshalJSON always emits RFC 3339.
func (ts Timestamp) MarshalJSON() ([]byte, error) {
	return json.Marshal(ts.Time.Format(time.RFC3339Nano))
}

// IsZero lets omitzero skip unset timestamps.
func (ts Timestamp) IsZero() bool {
	return ts.Time.IsZero()
}

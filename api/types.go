package api

import (
	"time"

	"github.com/papercomputeco/arenito/pkg/conversation"
)

// ErrorResponse is the error body read by chat clients.
type ErrorResponse struct {
	Detail string `json:"detail"`
}

// HealthStatus is returned by GET /health.
type HealthStatus struct {
	Status    string    `json:"status"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
}

// ChatRequest is the body of POST /api/chat. The caller owns the history and
// sends it in full on every turn.
type ChatRequest struct {
	Message string               `json:"message" validate:"min=1"`
	History conversation.History `json:"history"`
}

// ChatResponse is the answer to a chat turn.
type ChatResponse struct {
	Answer    string    `json:"answer"`
	Timestamp time.Time `json:"timestamp"`
}

package faq

import (
	"context"

	"github.com/Vovarama1992/faq-orchestrator/internal/assistant"
)

// Suggestion is one ranked FAQ offered to the user.
type Suggestion struct {
	Intent     string  `json:"intent"`
	IntentStr  string  `json:"intent_str"`
	Text       string  `json:"text"`
	Confidence float64 `json:"confidence"`
}

// SessionProvider hands out the shared assistant session.
type SessionProvider interface {
	Ensure(ctx context.Context) (string, error)
	Invalidate()
}

// Settings are read on every request so console changes apply immediately.
type Settings interface {
	MaxSuggestions() int
	StripLabels() bool
}

type EventLogger interface {
	Info(msg string, indent ...int)
	Debug(msg string, indent ...int)
	Error(msg string, indent ...int)
}

type Service interface {
	Resolve(ctx context.Context, query string) ([]Suggestion, error)
}

// Messenger is the part of the assistant client the pipeline talks to.
type Messenger interface {
	Message(ctx context.Context, sessionID string, in assistant.MessageInput) (*assistant.MessageOutput, error)
}

package assistant

import (
	"context"
	"errors"
)

// ErrNotAuthenticated is returned by a Client used before Authenticate.
var ErrNotAuthenticated = errors.New("assistant: not authenticated")

type Intent struct {
	Intent     string  `json:"intent"`
	Confidence float64 `json:"confidence"`
}

type Options struct {
	AlternateIntents bool `json:"alternate_intents,omitempty"`
}

type MessageInput struct {
	MessageType string   `json:"message_type"`
	Text        string   `json:"text"`
	Intents     []Intent `json:"intents,omitempty"`
	Options     *Options `json:"options,omitempty"`
}

// Generic is one response fragment produced by the assistant.
type Generic struct {
	ResponseType string `json:"response_type"`
	Text         string `json:"text"`
}

// MessageOutput mirrors the "output" object of a message response. Intents is
// nil when the service omitted the field.
type MessageOutput struct {
	Intents []Intent  `json:"intents"`
	Generic []Generic `json:"generic"`
}

// Client is the hosted conversational service. It knows nothing about FAQs.
type Client interface {
	Authenticate(ctx context.Context) error
	CreateSession(ctx context.Context) (string, error)
	Message(ctx context.Context, sessionID string, in MessageInput) (*MessageOutput, error)
}

// QueryInput asks the assistant to rank every intent matching text.
func QueryInput(text string) MessageInput {
	return MessageInput{
		MessageType: "text",
		Text:        text,
		Options:     &Options{AlternateIntents: true},
	}
}

// ForcedIntentInput makes the assistant answer as if intent had been matched.
func ForcedIntentInput(intent string) MessageInput {
	return MessageInput{
		MessageType: "text",
		Text:        "*",
		Intents:     []Intent{{Intent: intent, Confidence: 1}},
	}
}

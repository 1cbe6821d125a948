package faq

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Vovarama1992/faq-orchestrator/internal/assistant"
	"github.com/Vovarama1992/faq-orchestrator/internal/httpx"
	"github.com/Vovarama1992/faq-orchestrator/internal/metrics"
)

// maxRetries bounds re-authentication per request.
const maxRetries = 1

var errNoIntents = errors.New("assistant responded without intents")

type service struct {
	sessions SessionProvider
	client   Messenger
	settings Settings
	log      EventLogger
	pickText TextStrategy
}

func NewService(sessions SessionProvider, client Messenger, settings Settings, log EventLogger, pickText TextStrategy) Service {
	if pickText == nil {
		pickText = FirstText
	}
	return &service{
		sessions: sessions,
		client:   client,
		settings: settings,
		log:      log,
		pickText: pickText,
	}
}

func (s *service) Resolve(ctx context.Context, query string) ([]Suggestion, error) {
	if strings.TrimSpace(query) == "" {
		return nil, httpx.InvalidInput("Empty 'query' parameter")
	}

	var lastErr error
	for attempt := 0; attempt <= maxRetries; attempt++ {
		out, err := s.resolveOnce(ctx, query)
		if err == nil {
			return out, nil
		}
		s.sessions.Invalidate()
		s.log.Error(fmt.Sprintf("Query: attempt %d failed: %v", attempt+1, err))
		lastErr = err

		if ctx.Err() != nil {
			break
		}
	}
	return nil, httpx.ExternalService("assistant request failed", lastErr)
}

func (s *service) resolveOnce(ctx context.Context, query string) ([]Suggestion, error) {
	sessionID, err := s.sessions.Ensure(ctx)
	if err != nil {
		return nil, err
	}

	out, err := s.client.Message(ctx, sessionID, assistant.QueryInput(query))
	metrics.AssistantCalls.WithLabelValues("message", metrics.Result(err)).Inc()
	if err != nil {
		return nil, err
	}
	if out.Intents == nil {
		return nil, errNoIntents
	}

	limit := s.settings.MaxSuggestions()
	strip := s.settings.StripLabels()

	result := make([]Suggestion, 0, limit)
	for _, it := range out.Intents {
		if len(result) >= limit {
			break
		}
		if isFallback(it.Intent) {
			continue
		}
		s.log.Info(fmt.Sprintf("Query: intent %s C: %.4f", it.Intent, it.Confidence))

		text, err := s.intentText(ctx, sessionID, it.Intent)
		if err != nil {
			return nil, err
		}

		result = append(result, Suggestion{
			Intent:     it.Intent,
			IntentStr:  Label(it.Intent, strip),
			Text:       text,
			Confidence: it.Confidence,
		})
	}
	return result, nil
}

// intentText asks the assistant to answer as if intent had matched. A reply
// without text yields the marker instead of failing the whole request.
func (s *service) intentText(ctx context.Context, sessionID, intent string) (string, error) {
	out, err := s.client.Message(ctx, sessionID, assistant.ForcedIntentInput(intent))
	metrics.AssistantCalls.WithLabelValues("intent_text", metrics.Result(err)).Inc()
	if err != nil {
		return "", err
	}

	if text, ok := s.pickText(out.Generic); ok {
		return text, nil
	}
	s.log.Error("get_intent_text: Return json does not include generic and text for " + intent)
	return MissingTextMarker, nil
}

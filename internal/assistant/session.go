package assistant

import (
	"context"
	"fmt"
	"sync"

	"golang.org/x/sync/singleflight"

	"github.com/Vovarama1992/faq-orchestrator/internal/metrics"
)

type eventLogger interface {
	Debug(msg string, indent ...int)
	Error(msg string, indent ...int)
}

// Sessions caches the single conversation handle shared by all requests.
type Sessions struct {
	client Client
	log    eventLogger

	mu        sync.Mutex
	sessionID string
	ready     bool

	group singleflight.Group
}

func NewSessions(client Client, log eventLogger) *Sessions {
	return &Sessions{client: client, log: log}
}

// Ensure returns the cached handle or opens a new one. Concurrent callers
// that find no handle share one authentication and session creation. The
// shared flight is detached from the caller that started it, so a hang-up
// by that caller does not fail the others; client timeouts still bound it.
func (s *Sessions) Ensure(ctx context.Context) (string, error) {
	if id, ok := s.current(); ok {
		return id, nil
	}

	flightCtx := context.WithoutCancel(ctx)
	v, err, _ := s.group.Do("session", func() (any, error) {
		if id, ok := s.current(); ok {
			return id, nil
		}
		return s.open(flightCtx)
	})
	if err != nil {
		return "", err
	}
	return v.(string), nil
}

// Invalidate drops the handle so the next Ensure starts over.
func (s *Sessions) Invalidate() {
	s.mu.Lock()
	s.sessionID = ""
	s.ready = false
	s.mu.Unlock()
}

func (s *Sessions) Authenticated() bool {
	_, ok := s.current()
	return ok
}

func (s *Sessions) current() (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sessionID, s.ready
}

func (s *Sessions) open(ctx context.Context) (string, error) {
	s.log.Debug("assistant login: new session start")

	if err := s.client.Authenticate(ctx); err != nil {
		metrics.AssistantCalls.WithLabelValues("authenticate", "error").Inc()
		return "", fmt.Errorf("authenticate: %w", err)
	}
	metrics.AssistantCalls.WithLabelValues("authenticate", "ok").Inc()

	id, err := s.client.CreateSession(ctx)
	metrics.AssistantCalls.WithLabelValues("create_session", metrics.Result(err)).Inc()
	if err != nil {
		return "", fmt.Errorf("create session: %w", err)
	}
	metrics.SessionsCreated.Inc()

	s.mu.Lock()
	s.sessionID = id
	s.ready = true
	s.mu.Unlock()

	s.log.Debug("assistant login: new session " + id)
	return id, nil
}

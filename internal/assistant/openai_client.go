package assistant

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	openai "github.com/sashabaranov/go-openai"
)

const classifierPrompt = `You rank FAQ intents for a user query.
Answer ONLY with JSON of the form:
{"intents":[{"intent":"<id>","confidence":0.0}]}
Use only intent ids from the list below, highest confidence first, confidences in [0,1].
Return every intent that could plausibly match. Return an empty list if none do.

Intents:
`

type OpenAIConfig struct {
	APIKey  string
	Model   string
	BaseURL string // empty for the public API
	Timeout time.Duration
}

// OpenAIClient stands in for a hosted assistant: a chat model ranks catalog
// intents and forced-intent messages answer from the catalog text.
type OpenAIClient struct {
	cfg     OpenAIConfig
	catalog *Catalog

	mu     sync.RWMutex
	client *openai.Client
}

func NewOpenAIClient(cfg OpenAIConfig, catalog *Catalog) *OpenAIClient {
	if cfg.Model == "" {
		cfg.Model = openai.GPT4oMini
	}
	return &OpenAIClient{cfg: cfg, catalog: catalog}
}

func (c *OpenAIClient) Authenticate(context.Context) error {
	if strings.TrimSpace(c.cfg.APIKey) == "" {
		return errors.New("openai: OPENAI_API_KEY not set")
	}
	oc := openai.DefaultConfig(c.cfg.APIKey)
	if c.cfg.BaseURL != "" {
		oc.BaseURL = c.cfg.BaseURL
	}
	if c.cfg.Timeout > 0 {
		oc.HTTPClient = &http.Client{Timeout: c.cfg.Timeout}
	}
	c.mu.Lock()
	c.client = openai.NewClientWithConfig(oc)
	c.mu.Unlock()
	return nil
}

// CreateSession returns a local handle; the chat API is stateless.
func (c *OpenAIClient) CreateSession(context.Context) (string, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.client == nil {
		return "", ErrNotAuthenticated
	}
	return uuid.NewString(), nil
}

func (c *OpenAIClient) Message(ctx context.Context, _ string, in MessageInput) (*MessageOutput, error) {
	c.mu.RLock()
	client := c.client
	c.mu.RUnlock()
	if client == nil {
		return nil, ErrNotAuthenticated
	}

	if len(in.Intents) > 0 {
		return c.forced(in.Intents[0].Intent), nil
	}
	return c.classify(ctx, client, in.Text)
}

func (c *OpenAIClient) forced(intent string) *MessageOutput {
	out := &MessageOutput{Intents: []Intent{{Intent: intent, Confidence: 1}}}
	if e, ok := c.catalog.Lookup(intent); ok && e.Text != "" {
		out.Generic = []Generic{{ResponseType: "text", Text: e.Text}}
	}
	return out
}

func (c *OpenAIClient) classify(ctx context.Context, client *openai.Client, text string) (*MessageOutput, error) {
	var sb strings.Builder
	sb.WriteString(classifierPrompt)
	for _, e := range c.catalog.Intents {
		sb.WriteString("- " + e.Intent)
		if e.Description != "" {
			sb.WriteString(": " + e.Description)
		}
		sb.WriteString("\n")
	}

	resp, err := client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.cfg.Model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: sb.String()},
			{Role: openai.ChatMessageRoleUser, Content: text},
		},
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("openai: %w", err)
	}
	if len(resp.Choices) == 0 {
		return nil, errors.New("openai: empty choices")
	}

	var ranked struct {
		Intents []Intent `json:"intents"`
	}
	if err := json.Unmarshal([]byte(resp.Choices[0].Message.Content), &ranked); err != nil {
		return nil, fmt.Errorf("openai: decode ranking: %w", err)
	}

	out := &MessageOutput{Intents: make([]Intent, 0, len(ranked.Intents))}
	for _, it := range ranked.Intents {
		if _, ok := c.catalog.Lookup(it.Intent); !ok {
			continue
		}
		out.Intents = append(out.Intents, it)
	}
	sort.SliceStable(out.Intents, func(i, j int) bool {
		return out.Intents[i].Confidence > out.Intents[j].Confidence
	})
	return out, nil
}

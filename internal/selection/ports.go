package selection

import (
	"context"
	"io"
	"time"
)

// Entry is one user choice among the offered suggestions.
type Entry struct {
	Time               time.Time
	Query              string
	SelectedName       string
	SelectedConfidence float64
	TopName            string
	TopConfidence      float64
	Ranking            string
}

// Document is the persisted form of an Entry.
type Document struct {
	ID            string  `json:"_id"`
	DatetimeStr   string  `json:"datetime_str"`
	DatetimeISO   string  `json:"datetime_iso"`
	DatetimeFloat float64 `json:"datetime_float"`
	Query         string  `json:"query"`
	SelectedFAQ   string  `json:"selected_faq"`
	SelectedConf  float64 `json:"selected_conf"`
	TopFAQ        string  `json:"top_faq"`
	TopConf       float64 `json:"top_conf"`
	Ranking       string  `json:"ranking"`
}

// DB is an open handle on the document store.
type DB interface {
	Ping(ctx context.Context) error
	CreateDocument(ctx context.Context, doc Document) error
	Exists(ctx context.Context, id string) (bool, error)
	Close() error
}

// Connector opens a fresh authenticated handle.
type Connector interface {
	Connect(ctx context.Context) (DB, error)
}

type EventLogger interface {
	Info(msg string, indent ...int)
	Debug(msg string, indent ...int)
	Error(msg string, indent ...int)
}

// Service records selections: shown in the console, persisted to the store.
type Service interface {
	Record(ctx context.Context, e Entry) Entry
	Entries() []Entry
	Render(w io.Writer) error
}

package selection

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/Vovarama1992/faq-orchestrator/internal/metrics"
	"github.com/Vovarama1992/faq-orchestrator/internal/ring"
)

// Capacity is the number of selections kept for the console.
const Capacity = 100

const timeLayout = "2006-01-02 15:04:05"

type service struct {
	buf       *ring.Buffer[Entry]
	connector Connector
	log       EventLogger
	now       func() time.Time
	newID     func() string

	mu sync.Mutex
	db DB
}

func NewService(connector Connector, log EventLogger) Service {
	return &service{
		buf:       ring.New[Entry](Capacity),
		connector: connector,
		log:       log,
		now:       time.Now,
		newID:     uuid.NewString,
	}
}

// Record keeps e in memory and writes it to the store. Store failures are
// logged; the in-memory record is kept regardless.
func (s *service) Record(ctx context.Context, e Entry) Entry {
	if e.Time.IsZero() {
		e.Time = s.now()
	}
	s.buf.Append(e)

	err := s.persist(ctx, e)
	metrics.SelectionWrites.WithLabelValues(metrics.Result(err)).Inc()
	if err != nil {
		s.log.Error("Selection document has not been created in database: " + err.Error())
	}
	return e
}

func (s *service) Entries() []Entry {
	return s.buf.Snapshot()
}

func (s *service) persist(ctx context.Context, e Entry) error {
	db, err := s.conn(ctx)
	if err != nil {
		return err
	}

	doc := toDocument(s.newID(), e)
	if err := db.CreateDocument(ctx, doc); err != nil {
		return fmt.Errorf("create document: %w", err)
	}

	ok, err := db.Exists(ctx, doc.ID)
	if err != nil {
		return fmt.Errorf("check document: %w", err)
	}
	if !ok {
		return fmt.Errorf("document %s not found after write", doc.ID)
	}
	return nil
}

// conn returns a live handle, reconnecting when the cached one fails its probe.
func (s *service) conn(ctx context.Context) (DB, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.db != nil {
		if err := s.db.Ping(ctx); err == nil {
			return s.db, nil
		}
		_ = s.db.Close()
		s.db = nil
	}

	db, err := s.connector.Connect(ctx)
	if err != nil {
		return nil, fmt.Errorf("connect: %w", err)
	}
	s.db = db
	s.log.Info("New selection store connection created")
	return db, nil
}

func toDocument(id string, e Entry) Document {
	return Document{
		ID:            id,
		DatetimeStr:   e.Time.Format(timeLayout),
		DatetimeISO:   e.Time.Format(time.RFC3339Nano),
		DatetimeFloat: float64(e.Time.UnixNano()) / 1e9,
		Query:         e.Query,
		SelectedFAQ:   e.SelectedName,
		SelectedConf:  e.SelectedConfidence,
		TopFAQ:        e.TopName,
		TopConf:       e.TopConfidence,
		Ranking:       e.Ranking,
	}
}

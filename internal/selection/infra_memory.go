package selection

import (
	"context"
	"sync/atomic"
)

// MemoryConnector accepts writes without keeping them. Used when
// SELECTION_STORE=none; the console ring buffer is the only record.
type MemoryConnector struct {
	db *memoryDB
}

func NewMemoryConnector() *MemoryConnector {
	return &MemoryConnector{db: &memoryDB{}}
}

func (c *MemoryConnector) Connect(context.Context) (DB, error) {
	return c.db, nil
}

// Documents returns how many documents have been accepted.
func (c *MemoryConnector) Documents() int {
	return int(c.db.writes.Load())
}

type memoryDB struct {
	writes atomic.Int64
}

func (m *memoryDB) Ping(context.Context) error { return nil }

func (m *memoryDB) CreateDocument(context.Context, Document) error {
	m.writes.Add(1)
	return nil
}

func (m *memoryDB) Exists(context.Context, string) (bool, error) { return true, nil }

func (m *memoryDB) Close() error { return nil }

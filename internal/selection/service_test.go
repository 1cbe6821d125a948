package selection

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Vovarama1992/faq-orchestrator/internal/eventlog"
)

type flakyDB struct {
	mu        sync.Mutex
	pingErr   error
	createErr error
	lost      bool
	docs      []Document
	closed    bool
}

func (f *flakyDB) Ping(context.Context) error { return f.pingErr }

func (f *flakyDB) CreateDocument(_ context.Context, doc Document) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createErr != nil {
		return f.createErr
	}
	if !f.lost {
		f.docs = append(f.docs, doc)
	}
	return nil
}

func (f *flakyDB) Exists(_ context.Context, id string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, d := range f.docs {
		if d.ID == id {
			return true, nil
		}
	}
	return false, nil
}

func (f *flakyDB) Close() error {
	f.closed = true
	return nil
}

type stubConnector struct {
	dbs   []*flakyDB
	err   error
	calls int
}

func (c *stubConnector) Connect(context.Context) (DB, error) {
	c.calls++
	if c.err != nil {
		return nil, c.err
	}
	db := c.dbs[0]
	if len(c.dbs) > 1 {
		c.dbs = c.dbs[1:]
	}
	return db, nil
}

func newTestRecorder(conn Connector) (*service, *eventlog.Logger) {
	log := eventlog.New(nil)
	svc := NewService(conn, log).(*service)
	svc.now = func() time.Time { return time.Date(2024, 5, 6, 7, 8, 9, 500_000_000, time.UTC) }
	n := 0
	svc.newID = func() string {
		n++
		return fmt.Sprintf("doc-%d", n)
	}
	return svc, log
}

func hasLog(log *eventlog.Logger, level eventlog.Level, substr string) bool {
	for _, e := range log.Entries() {
		if e.Level == level && strings.Contains(e.Message, substr) {
			return true
		}
	}
	return false
}

func TestRecordPersistsDocument(t *testing.T) {
	db := &flakyDB{}
	conn := &stubConnector{dbs: []*flakyDB{db}}
	svc, log := newTestRecorder(conn)

	e := svc.Record(context.Background(), Entry{
		Query: "balance", SelectedName: "FAQ-A", SelectedConfidence: 0.7,
		TopName: "FAQ-B", TopConfidence: 0.9, Ranking: "2",
	})

	assert.Equal(t, 2024, e.Time.Year())
	require.Len(t, db.docs, 1)
	assert.Equal(t, Document{
		ID:            "doc-1",
		DatetimeStr:   "2024-05-06 07:08:09",
		DatetimeISO:   "2024-05-06T07:08:09.5Z",
		DatetimeFloat: float64(e.Time.UnixNano()) / 1e9,
		Query:         "balance",
		SelectedFAQ:   "FAQ-A",
		SelectedConf:  0.7,
		TopFAQ:        "FAQ-B",
		TopConf:       0.9,
		Ranking:       "2",
	}, db.docs[0])
	assert.Len(t, svc.Entries(), 1)
	assert.True(t, hasLog(log, eventlog.LevelInfo, "connection created"))
	assert.False(t, hasLog(log, eventlog.LevelError, ""))
}

func TestRecordReusesLiveConnection(t *testing.T) {
	conn := &stubConnector{dbs: []*flakyDB{{}}}
	svc, _ := newTestRecorder(conn)

	for i := 0; i < 3; i++ {
		svc.Record(context.Background(), Entry{Query: "q"})
	}
	assert.Equal(t, 1, conn.calls)
}

func TestRecordReconnectsWhenProbeFails(t *testing.T) {
	stale := &flakyDB{}
	fresh := &flakyDB{}
	conn := &stubConnector{dbs: []*flakyDB{stale, fresh}}
	svc, _ := newTestRecorder(conn)

	svc.Record(context.Background(), Entry{Query: "first"})
	stale.pingErr = errors.New("connection reset")
	svc.Record(context.Background(), Entry{Query: "second"})

	assert.Equal(t, 2, conn.calls)
	assert.True(t, stale.closed)
	require.Len(t, fresh.docs, 1)
	assert.Equal(t, "second", fresh.docs[0].Query)
}

func TestRecordStoreFailuresAreNotFatal(t *testing.T) {
	tests := []struct {
		name string
		conn *stubConnector
	}{
		{name: "connect fails", conn: &stubConnector{err: errors.New("no route")}},
		{name: "create fails", conn: &stubConnector{dbs: []*flakyDB{{createErr: errors.New("503")}}}},
		{name: "document missing", conn: &stubConnector{dbs: []*flakyDB{{lost: true}}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, log := newTestRecorder(tt.conn)

			svc.Record(context.Background(), Entry{Query: "q", SelectedName: "FAQ-A"})

			assert.Len(t, svc.Entries(), 1)
			assert.True(t, hasLog(log, eventlog.LevelError, "has not been created"))
		})
	}
}

func TestRecordKeepsHundredMostRecent(t *testing.T) {
	svc, _ := newTestRecorder(NewMemoryConnector())

	for i := 0; i < Capacity+1; i++ {
		svc.Record(context.Background(), Entry{Query: fmt.Sprintf("q%d", i)})
	}

	entries := svc.Entries()
	require.Len(t, entries, Capacity)
	assert.Equal(t, "q1", entries[0].Query)
	assert.Equal(t, fmt.Sprintf("q%d", Capacity), entries[Capacity-1].Query)
}

func TestRender(t *testing.T) {
	svc, _ := newTestRecorder(NewMemoryConnector())
	svc.Record(context.Background(), Entry{
		Query: "<script>", SelectedName: "FAQ-A", SelectedConfidence: 0.5,
		TopName: "FAQ-B", TopConfidence: -1, Ranking: "1",
	})

	var buf bytes.Buffer
	require.NoError(t, svc.Render(&buf))
	out := buf.String()

	assert.Contains(t, out, "<th>Selected FAQ</th><th>Selected Conf</th><th>Top FAQ</th><th>Top Conf</th><th>Ranking</th>")
	assert.Contains(t, out, "<td>2024-05-06 07:08:09</td><td>&lt;script&gt;</td><td>FAQ-A</td><td>0.5</td><td>FAQ-B</td><td>-1</td><td>1</td>")
}

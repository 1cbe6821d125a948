package eventlog

import (
	"time"

	"go.uber.org/zap"

	"github.com/Vovarama1992/faq-orchestrator/internal/ring"
)

// Capacity is the number of rows kept for the console.
const Capacity = 100

type Level string

const (
	LevelInfo  Level = "info"
	LevelDebug Level = "debug"
	LevelError Level = "error"
)

type Entry struct {
	Time    time.Time
	Level   Level
	Message string
	Indent  int
}

// Logger records operational events into a bounded buffer rendered by the
// console, and mirrors each one to the process logger.
type Logger struct {
	buf *ring.Buffer[Entry]
	zl  *zap.Logger
	now func() time.Time
}

func New(zl *zap.Logger) *Logger {
	if zl == nil {
		zl = zap.NewNop()
	}
	return &Logger{
		buf: ring.New[Entry](Capacity),
		zl:  zl.Named("event"),
		now: time.Now,
	}
}

// Info rows sit one level deeper than debug rows so request detail nests
// under the route line.
func (l *Logger) Info(msg string, indent ...int) {
	l.add(LevelInfo, msg, first(indent)+1)
}

func (l *Logger) Debug(msg string, indent ...int) {
	l.add(LevelDebug, msg, first(indent))
}

func (l *Logger) Error(msg string, indent ...int) {
	l.add(LevelError, msg, first(indent))
}

func (l *Logger) Entries() []Entry {
	return l.buf.Snapshot()
}

func (l *Logger) add(level Level, msg string, indent int) {
	if indent < 0 {
		indent = 0
	}
	l.buf.Append(Entry{Time: l.now(), Level: level, Message: msg, Indent: indent})

	switch level {
	case LevelError:
		l.zl.Error(msg)
	case LevelInfo:
		l.zl.Info(msg)
	default:
		l.zl.Debug(msg)
	}
}

func first(v []int) int {
	if len(v) == 0 {
		return 0
	}
	return v[0]
}

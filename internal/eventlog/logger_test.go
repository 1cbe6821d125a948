package eventlog

import (
	"bytes"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoggerIndentAndLevels(t *testing.T) {
	l := New(nil)
	l.Debug("route")
	l.Info("detail")
	l.Info("nested", 1)
	l.Error("boom")

	entries := l.Entries()
	require.Len(t, entries, 4)

	assert.Equal(t, LevelDebug, entries[0].Level)
	assert.Equal(t, 0, entries[0].Indent)
	assert.Equal(t, LevelInfo, entries[1].Level)
	assert.Equal(t, 1, entries[1].Indent)
	assert.Equal(t, 2, entries[2].Indent)
	assert.Equal(t, LevelError, entries[3].Level)
	assert.Equal(t, 0, entries[3].Indent)
}

func TestLoggerEvictsOldest(t *testing.T) {
	l := New(nil)
	for i := 0; i < Capacity+25; i++ {
		l.Debug(fmt.Sprintf("msg-%d", i))
	}

	entries := l.Entries()
	require.Len(t, entries, Capacity)
	assert.Equal(t, "msg-25", entries[0].Message)
	assert.Equal(t, fmt.Sprintf("msg-%d", Capacity+24), entries[Capacity-1].Message)
}

func TestRender(t *testing.T) {
	l := New(nil)
	l.now = func() time.Time { return time.Date(2024, 3, 1, 10, 20, 30, 0, time.UTC) }

	l.Debug("plain")
	l.Info("quiet")
	l.Error("<bad>")

	var buf bytes.Buffer
	require.NoError(t, l.Render(&buf))
	out := buf.String()

	assert.True(t, strings.HasPrefix(out, "<table><tr><th>Time</th><th>Type</th><th>Message</th></tr>"))
	assert.Contains(t, out, "<td>2024-03-01 10:20:30</td><td>debug</td><td>plain</td>")
	assert.Contains(t, out, `<td class="grey-text">&nbsp;&nbsp;&nbsp;&nbsp;quiet</td>`)
	assert.Contains(t, out, `<td class="red-text">&lt;bad&gt;</td>`)
	assert.True(t, strings.HasSuffix(out, "</table>"))
}

package ring

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestBufferKeepsMostRecent(t *testing.T) {
	tests := []struct {
		name    string
		appends int
		want    []int
	}{
		{name: "empty", appends: 0, want: []int{}},
		{name: "partial", appends: 3, want: []int{0, 1, 2}},
		{name: "exactly full", appends: 5, want: []int{0, 1, 2, 3, 4}},
		{name: "one over", appends: 6, want: []int{1, 2, 3, 4, 5}},
		{name: "wrapped twice", appends: 12, want: []int{7, 8, 9, 10, 11}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := New[int](5)
			for i := 0; i < tt.appends; i++ {
				b.Append(i)
			}
			assert.Equal(t, tt.want, b.Snapshot())
			assert.Equal(t, len(tt.want), b.Len())
		})
	}
}

func TestBufferHundredCapacity(t *testing.T) {
	b := New[int](100)
	for i := 0; i < 101; i++ {
		b.Append(i)
	}

	got := b.Snapshot()
	require.Len(t, got, 100)
	assert.Equal(t, 1, got[0])
	assert.Equal(t, 100, got[99])
}

func TestBufferSnapshotIsCopy(t *testing.T) {
	b := New[string](2)
	b.Append("a")

	snap := b.Snapshot()
	snap[0] = "changed"

	assert.Equal(t, []string{"a"}, b.Snapshot())
}

func TestBufferConcurrentAppend(t *testing.T) {
	defer goleak.VerifyNone(t)
	b := New[int](100)

	var wg sync.WaitGroup
	for w := 0; w < 8; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 50; i++ {
				b.Append(i)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 100, b.Len())
	assert.Len(t, b.Snapshot(), 100)
}

func TestNewClampsCapacity(t *testing.T) {
	b := New[int](0)
	b.Append(1)
	b.Append(2)

	assert.Equal(t, 1, b.Cap())
	assert.Equal(t, []int{2}, b.Snapshot())
}

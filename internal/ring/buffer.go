package ring

import "sync"

// Buffer is a fixed-capacity FIFO. Once full, each Append evicts the oldest value.
type Buffer[T any] struct {
	mu    sync.Mutex
	items []T
	start int
	size  int
}

func New[T any](capacity int) *Buffer[T] {
	if capacity < 1 {
		capacity = 1
	}
	return &Buffer[T]{items: make([]T, capacity)}
}

func (b *Buffer[T]) Append(v T) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.size < len(b.items) {
		b.items[(b.start+b.size)%len(b.items)] = v
		b.size++
		return
	}
	b.items[b.start] = v
	b.start = (b.start + 1) % len(b.items)
}

// Snapshot returns a copy of the stored values, oldest first.
func (b *Buffer[T]) Snapshot() []T {
	b.mu.Lock()
	defer b.mu.Unlock()

	out := make([]T, b.size)
	for i := 0; i < b.size; i++ {
		out[i] = b.items[(b.start+i)%len(b.items)]
	}
	return out
}

func (b *Buffer[T]) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.size
}

func (b *Buffer[T]) Cap() int {
	return len(b.items)
}

package tuning

import "sync"

const (
	MinSuggestions = 2
	MaxSuggestions = 8
)

// Runtime holds the two knobs the console can change while the process runs.
// Readers always see the latest value.
type Runtime struct {
	mu             sync.RWMutex
	maxSuggestions int
	stripLabels    bool
}

func NewRuntime(maxSuggestions int, stripLabels bool) *Runtime {
	return &Runtime{
		maxSuggestions: Clamp(maxSuggestions),
		stripLabels:    stripLabels,
	}
}

func (r *Runtime) MaxSuggestions() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.maxSuggestions
}

func (r *Runtime) StripLabels() bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.stripLabels
}

// Set stores both values and returns the suggestion count actually applied.
func (r *Runtime) Set(maxSuggestions int, stripLabels bool) int {
	n := Clamp(maxSuggestions)

	r.mu.Lock()
	r.maxSuggestions = n
	r.stripLabels = stripLabels
	r.mu.Unlock()

	return n
}

func Clamp(n int) int {
	if n < MinSuggestions {
		return MinSuggestions
	}
	if n > MaxSuggestions {
		return MaxSuggestions
	}
	return n
}

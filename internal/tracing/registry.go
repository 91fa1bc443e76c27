package tracing

import (
	"maps"
	"slices"
	"sync"
)

// Registry records which spans used which event code within one unit.
// It only grows. Safe for concurrent use: the append and the duplicate
// decision happen under the same lock.
type Registry struct {
	mu    sync.Mutex
	codes map[int64][]Span
}

// NewRegistry is [Registry] constructor.
func NewRegistry() *Registry {
	return &Registry{codes: make(map[int64][]Span)}
}

// RecordAndCheck adds span to the code's occurrences and reports whether
// this occurrence is a duplicate, i.e. not the first one for the code.
func (r *Registry) RecordAndCheck(code int64, span Span) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	seen := append(r.codes[code], span)
	r.codes[code] = seen
	return len(seen) >= 2
}

// Occurrences returns a copy of spans recorded for the code in arrival order.
func (r *Registry) Occurrences(code int64) []Span {
	r.mu.Lock()
	defer r.mu.Unlock()

	return slices.Clone(r.codes[code])
}

// Codes returns recorded codes in ascending order.
func (r *Registry) Codes() []int64 {
	r.mu.Lock()
	defer r.mu.Unlock()

	return slices.Sorted(maps.Keys(r.codes))
}

// Duplicates returns a copy of every code used more than once.
func (r *Registry) Duplicates() map[int64][]Span {
	r.mu.Lock()
	defer r.mu.Unlock()

	res := map[int64][]Span{}
	for code, spans := range r.codes {
		if len(spans) > 1 {
			res[code] = slices.Clone(spans)
		}
	}

	return res
}

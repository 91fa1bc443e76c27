package tracing

import (
	"go/token"
	"sync"
	"sync/atomic"
	"testing"
)

func TestRegistry_RecordAndCheck(t *testing.T) {
	r := NewRegistry()

	steps := []struct {
		code int64
		pos  token.Pos
		dup  bool
	}{
		{code: 123, pos: 10, dup: false},
		{code: 125, pos: 20, dup: false},
		{code: 123, pos: 30, dup: true},
		{code: 123, pos: 40, dup: true},
		{code: 126, pos: 50, dup: false},
	}

	for _, step := range steps {
		if got := r.RecordAndCheck(step.code, Span{Pos: step.pos}); got != step.dup {
			t.Errorf("code %d at %d: duplicate = %v, want %v", step.code, step.pos, got, step.dup)
		}
	}

	occ := r.Occurrences(123)
	if len(occ) != 3 || occ[0].Pos != 10 || occ[1].Pos != 30 || occ[2].Pos != 40 {
		t.Errorf("unexpected occurrences of 123: %v", occ)
	}

	dups := r.Duplicates()
	if len(dups) != 1 || len(dups[123]) != 3 {
		t.Errorf("unexpected duplicates: %v", dups)
	}

	codes := r.Codes()
	if len(codes) != 3 || codes[0] != 123 || codes[1] != 125 || codes[2] != 126 {
		t.Errorf("unexpected codes: %v", codes)
	}

	occ[0].Pos = 999
	if r.Occurrences(123)[0].Pos != 10 {
		t.Error("Occurrences() returned shared slice, expected copy")
	}
}

func TestRegistry_ConcurrentSameCode(t *testing.T) {
	const n = 200
	var (
		r       = NewRegistry()
		wg      sync.WaitGroup
		flagged atomic.Int64
		start   = make(chan struct{})
	)

	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			<-start
			if r.RecordAndCheck(42, Span{Pos: token.Pos(i + 1)}) {
				flagged.Add(1)
			}
		}(i)
	}
	close(start)
	wg.Wait()

	if got := flagged.Load(); got != n-1 {
		t.Fatalf("expected %d duplicates, got %d", n-1, got)
	}
	if got := len(r.Occurrences(42)); got != n {
		t.Fatalf("expected %d occurrences, got %d", n, got)
	}
}

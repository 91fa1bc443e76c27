package tracing

import (
	"go/token"
	"sync"
	"testing"

	"github.com/sirkon/eventid/internal/evrules"
)

func TestReporter_Report(t *testing.T) {
	fset := token.NewFileSet()
	file := fset.AddFile("main.go", -1, 100)
	file.SetLines([]int{0, 10, 20, 30})

	tests := []struct {
		name    string
		diag    Diagnostic
		message string
		line    int
	}{
		{
			name: "missing",
			diag: Diagnostic{
				Rule:     evrules.MissingEventID(),
				Template: evrules.MissingEventID().Template(),
				Args:     []any{"Info"},
				Span:     Span{Pos: file.Pos(12), End: file.Pos(16)},
			},
			message: "logger method 'Info': missing event id",
			line:    2,
		},
		{
			name: "duplicate",
			diag: Diagnostic{
				Rule:     evrules.DuplicateEventID(),
				Template: evrules.DuplicateEventID().Template(),
				Args:     []any{"Error", int64(123)},
				Span:     Span{Pos: file.Pos(31), End: file.Pos(36)},
			},
			message: "logger method 'Error': duplicate event id 123",
			line:    4,
		},
	}

	r := NewReporter(fset)
	for _, tt := range tests {
		r.Report(tt.diag)
	}

	reps := r.Reports()
	if len(reps) != len(tests) {
		t.Fatalf("expected %d reports, got %d", len(tests), len(reps))
	}

	for i, rep := range reps {
		want := tests[i]
		if rep.Rule != want.diag.Rule {
			t.Errorf("[%s] rule mismatch: got %v, want %v", want.name, rep.Rule, want.diag.Rule)
		}
		if rep.Message != want.message {
			t.Errorf("[%s] message mismatch: got %q, want %q", want.name, rep.Message, want.message)
		}
		if rep.Pos.Filename != "main.go" || rep.Pos.Line != want.line {
			t.Errorf("[%s] position mismatch: got %s:%d, want main.go:%d",
				want.name, rep.Pos.Filename, rep.Pos.Line, want.line)
		}
	}

	if r.Count(evrules.MissingEventID()) != 1 || r.Count(evrules.DuplicateEventID()) != 1 {
		t.Errorf("unexpected counts %d/%d", r.Count(evrules.MissingEventID()), r.Count(evrules.DuplicateEventID()))
	}
}

func TestReporter_ConcurrencySafety(t *testing.T) {
	const n = 500
	var (
		r  Reporter
		wg sync.WaitGroup
	)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			r.Report(Diagnostic{
				Rule:     evrules.MissingEventID(),
				Template: "parallel add %d",
				Args:     []any{i},
				Span:     Span{Pos: token.Pos(i)},
			})
		}(i)
	}
	wg.Wait()

	reps := r.Reports()
	if len(reps) != n {
		t.Fatalf("expected %d reports, got %d", n, len(reps))
	}
	reps[0].Message = "changed"
	reps2 := r.Reports()
	if reps2[0].Message == "changed" {
		t.Fatalf("Reports() returned shared slice, expected copy")
	}
}

package tracing

import (
	"go/token"
	"sync"

	"github.com/sirkon/eventid/internal/evrules"
)

// Reporter collects diagnostics of a unit with resolved positions.
type Reporter struct {
	mu      sync.Mutex
	fset    *token.FileSet
	reports []Report
}

// Report represents a single diagnostic entry.
type Report struct {
	Rule     evrules.Rule
	Severity evrules.Severity
	Message  string
	Args     []any
	Pos      token.Position
	End      token.Position
}

// NewReporter is [Reporter] constructor. fset resolves positions, it may be nil.
func NewReporter(fset *token.FileSet) *Reporter {
	return &Reporter{fset: fset}
}

// Report adds a new record to the reporter.
func (r *Reporter) Report(d Diagnostic) {
	rep := Report{
		Rule:     d.Rule,
		Severity: d.Severity,
		Message:  d.Message(),
		Args:     d.Args,
	}
	if r.fset != nil {
		rep.Pos = r.fset.Position(d.Span.Pos)
		rep.End = r.fset.Position(d.Span.End)
	}

	r.mu.Lock()
	r.reports = append(r.reports, rep)
	r.mu.Unlock()
}

// Reports returns a snapshot of all collected records.
func (r *Reporter) Reports() []Report {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Report, len(r.reports))
	copy(out, r.reports)
	return out
}

// Count returns the number of records for the rule.
func (r *Reporter) Count(rule evrules.Rule) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	var n int
	for _, rep := range r.reports {
		if rep.Rule == rule {
			n++
		}
	}
	return n
}

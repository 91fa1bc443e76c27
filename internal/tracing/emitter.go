package tracing

import (
	"fmt"
	"sync"

	"golang.org/x/tools/go/analysis"

	"github.com/sirkon/eventid/internal/evrules"
)

// Diagnostic is a finding ready to be handed over to a [Sink]. It keeps the
// message template and its arguments apart, presenters decide what to show.
type Diagnostic struct {
	Rule     evrules.Rule
	Severity evrules.Severity
	Template string
	Args     []any
	Span     Span
}

// Message substitutes arguments into the template.
func (d Diagnostic) Message() string {
	return fmt.Sprintf(d.Template, d.Args...)
}

// Sink accepts diagnostics. Implementations must be safe for concurrent use.
type Sink interface {
	Report(d Diagnostic)
}

// Emitter turns tracker decisions into diagnostics.
type Emitter struct {
	sink     Sink
	disabled map[evrules.Rule]struct{}
	ctx      *Context
}

// NewEmitter is [Emitter] constructor. ctx holds suppression directives and
// can be nil.
func NewEmitter(sink Sink, disabled []evrules.Rule, ctx *Context) *Emitter {
	e := &Emitter{
		sink:     sink,
		disabled: make(map[evrules.Rule]struct{}, len(disabled)),
		ctx:      ctx,
	}
	for _, rule := range disabled {
		e.disabled[rule] = struct{}{}
	}

	return e
}

// EmitMissing reports a logging call without an event id.
func (e *Emitter) EmitMissing(span Span, method string) {
	e.emit(evrules.MissingEventID(), span, method)
}

// EmitDuplicate reports a logging call reusing an event code. span is the
// duplicate occurrence, never the first one.
func (e *Emitter) EmitDuplicate(span Span, method string, code int64) {
	e.emit(evrules.DuplicateEventID(), span, method, code)
}

func (e *Emitter) emit(rule evrules.Rule, span Span, args ...any) {
	if _, off := e.disabled[rule]; off {
		return
	}
	if e.ctx != nil && e.ctx.Suppressed(rule, span.Pos) {
		return
	}

	e.sink.Report(Diagnostic{
		Rule:     rule,
		Severity: rule.Severity(),
		Template: rule.Template(),
		Args:     args,
		Span:     span,
	})
}

// PassSink forwards diagnostics to an analysis pass. The pass reporter is
// not synchronized, hence the lock.
type PassSink struct {
	mu   sync.Mutex
	pass *analysis.Pass
}

// NewPassSink is [PassSink] constructor.
func NewPassSink(pass *analysis.Pass) *PassSink {
	return &PassSink{pass: pass}
}

func (s *PassSink) Report(d Diagnostic) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.pass.Report(analysis.Diagnostic{
		Pos:      d.Span.Pos,
		End:      d.Span.End,
		Category: d.Rule.String(),
		Message:  d.Message(),
	})
}

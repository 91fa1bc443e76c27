package tracing

import (
	"context"
	"go/ast"
	"go/token"

	"golang.org/x/sync/errgroup"

	"github.com/sirkon/eventid/internal/evrules"
)

// Engine holds the configured checking policy and runs it over units.
type Engine struct {
	policy   Policy
	disabled []evrules.Rule
	workers  int
}

// NewEngine is [Engine] constructor.
func NewEngine(policy Policy) *Engine {
	return &Engine{
		policy:  policy,
		workers: 1,
	}
}

// --- Config-related -------------------------------------------------------------------------------------------------

// Disable turns a rule off.
func (e *Engine) Disable(rule evrules.Rule) {
	e.disabled = append(e.disabled, rule)
}

// SetWorkers sets how many walkers of a unit run in parallel.
func (e *Engine) SetWorkers(n int) {
	if n < 1 {
		n = 1
	}
	e.workers = n
}

// Workers returns the parallelism of a unit check.
func (e *Engine) Workers() int {
	return e.workers
}

// --- Actual logic ---------------------------------------------------------------------------------------------------

// UnitInput is everything needed to check one compilation unit.
type UnitInput struct {
	// Path identifies the unit, usually the package path.
	Path string

	Fset     *token.FileSet
	Files    []*ast.File
	Resolver Resolver
	Sink     Sink

	// Walkers enumerate call expressions. A walker per file is used when empty.
	Walkers []Walker
}

// Unit is the state of one compilation unit check. It is never shared
// between units.
type Unit struct {
	path       string
	resolver   Resolver
	classifier *Classifier
	registry   *Registry
	emitter    *Emitter
	directives []DirectiveError
}

// NewUnit creates a unit with a fresh registry.
func (e *Engine) NewUnit(path string, r Resolver, sink Sink, suppressions *Context) *Unit {
	return &Unit{
		path:       path,
		resolver:   r,
		classifier: NewClassifier(e.policy, r),
		registry:   NewRegistry(),
		emitter:    NewEmitter(sink, e.disabled, suppressions),
	}
}

// Check routes every call expression of the unit through the pipeline.
// Walkers run in parallel up to the configured limit. Once ctx is done no
// new walker is started, running ones finish, and the context error is
// returned.
func (e *Engine) Check(ctx context.Context, in UnitInput) (*Unit, error) {
	suppressions, errs := CollectSuppressions(in.Fset, in.Files)
	unit := e.NewUnit(in.Path, in.Resolver, in.Sink, suppressions)
	unit.directives = errs

	walkers := in.Walkers
	if len(walkers) == 0 {
		walkers = make([]Walker, 0, len(in.Files))
		for _, file := range in.Files {
			walkers = append(walkers, FileWalker{File: file})
		}
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(1, min(e.workers, len(walkers))))
	for _, w := range walkers {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			w.Walk(unit.Process)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return unit, err
	}

	return unit, ctx.Err()
}

// Process runs one call expression through classification, tracking and
// emission. Safe for concurrent use.
func (u *Unit) Process(call *ast.CallExpr) {
	site, ok := NewCallSite(u.path, call, u.resolver)
	if !ok {
		return
	}

	class, ok := u.classifier.Classify(site, u.resolver)
	if !ok {
		return
	}

	switch class.Kind {
	case ClassAbsent:
		u.emitter.EmitMissing(site.Name, site.Method)
	case ClassNumericLiteral:
		if u.registry.RecordAndCheck(class.Value, site.Name) {
			u.emitter.EmitDuplicate(site.Name, site.Method, class.Value)
		}
	case ClassNonQualifying:
		// Has an id, just not one we can track.
	}
}

// Path returns the unit path.
func (u *Unit) Path() string {
	return u.path
}

// DirectiveErrors returns malformed suppression directives met in the unit.
func (u *Unit) DirectiveErrors() []DirectiveError {
	return u.directives
}

// Registry returns the unit's event code registry.
func (u *Unit) Registry() *Registry {
	return u.registry
}

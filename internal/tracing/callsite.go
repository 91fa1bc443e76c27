package tracing

import (
	"go/ast"
	"go/token"
	"go/types"
)

// Span is a source range [Pos, End).
type Span struct {
	Pos token.Pos
	End token.Pos
}

// CallSite is one method invocation that may target a logging interface.
type CallSite struct {
	// Unit is the path of the package the call belongs to.
	Unit string

	// Name is the span of the method name token: Info in l.Info(…).
	Name Span

	// Method is the resolved method name.
	Method string

	// Args are the syntactic arguments in order.
	Args []ast.Expr

	// Spread is set for calls like l.Info(args...).
	Spread bool

	// Recv is the static type of the receiver expression, nil when unknown.
	Recv types.Type

	// Func is the resolved method.
	Func *types.Func
}

// NewCallSite builds a call site for a method call. Plain function calls,
// conversions and calls that cannot be resolved are rejected.
func NewCallSite(unit string, call *ast.CallExpr, r Resolver) (CallSite, bool) {
	sel, ok := ast.Unparen(call.Fun).(*ast.SelectorExpr)
	if !ok {
		return CallSite{}, false
	}

	fn := r.Callee(call)
	if fn == nil {
		return CallSite{}, false
	}

	sig, ok := fn.Type().(*types.Signature)
	if !ok || sig.Recv() == nil {
		// Package-qualified function, not a method.
		return CallSite{}, false
	}

	return CallSite{
		Unit: unit,
		Name: Span{
			Pos: sel.Sel.Pos(),
			End: sel.Sel.End(),
		},
		Method: fn.Name(),
		Args:   call.Args,
		Spread: call.Ellipsis.IsValid(),
		Recv:   r.TypeOf(sel.X),
		Func:   fn,
	}, true
}

// ContainingType returns the type that declares the method: the interface for
// interface methods, the named type (maybe behind a pointer) otherwise.
func (c CallSite) ContainingType() types.Type {
	if c.Func == nil {
		return nil
	}

	sig, ok := c.Func.Type().(*types.Signature)
	if !ok || sig.Recv() == nil {
		return nil
	}

	return sig.Recv().Type()
}

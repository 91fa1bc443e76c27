package tracing

import (
	"go/ast"
	"go/constant"
	"go/types"

	"golang.org/x/tools/go/types/typeutil"
)

// Resolver answers the symbol questions the classifier asks about one
// compilation unit. Every method returns nil when the answer is unknown.
type Resolver interface {
	// Callee resolves the function or method a call expression invokes.
	Callee(call *ast.CallExpr) *types.Func

	// TypeOf returns the static type of an expression.
	TypeOf(expr ast.Expr) types.Type

	// ConstValue returns the compile-time value of an expression.
	ConstValue(expr ast.Expr) constant.Value

	// LookupType finds a package-level type visible to the unit.
	LookupType(pkgPath, name string) *types.TypeName
}

// TypesResolver implements [Resolver] over go/types results.
type TypesResolver struct {
	pkg  *types.Package
	info *types.Info
}

// NewTypesResolver is [TypesResolver] constructor.
func NewTypesResolver(pkg *types.Package, info *types.Info) *TypesResolver {
	return &TypesResolver{
		pkg:  pkg,
		info: info,
	}
}

func (r *TypesResolver) Callee(call *ast.CallExpr) *types.Func {
	if r.info == nil {
		return nil
	}

	fn, _ := typeutil.Callee(r.info, call).(*types.Func)
	return fn
}

func (r *TypesResolver) TypeOf(expr ast.Expr) types.Type {
	if r.info == nil {
		return nil
	}

	return r.info.TypeOf(expr)
}

func (r *TypesResolver) ConstValue(expr ast.Expr) constant.Value {
	if r.info == nil {
		return nil
	}

	tv, ok := r.info.Types[expr]
	if !ok {
		return nil
	}

	return tv.Value
}

// LookupType searches the unit package and everything it imports, directly
// or not.
func (r *TypesResolver) LookupType(pkgPath, name string) *types.TypeName {
	if r.pkg == nil {
		return nil
	}

	seen := map[*types.Package]bool{}
	queue := []*types.Package{r.pkg}
	for len(queue) > 0 {
		pkg := queue[0]
		queue = queue[1:]
		if pkg == nil || seen[pkg] {
			continue
		}
		seen[pkg] = true

		if pkg.Path() == pkgPath {
			tn, _ := pkg.Scope().Lookup(name).(*types.TypeName)
			return tn
		}

		queue = append(queue, pkg.Imports()...)
	}

	return nil
}

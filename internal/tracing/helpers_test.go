package tracing

import (
	"go/ast"
	"go/parser"
	"go/token"
	"go/types"
	"testing"
)

// loggingDecls is shared by test sources. It only uses predeclared types so
// no importer is involved.
const loggingDecls = `
type EventID int32

type Logger interface {
	Info(args ...any)
	Warn(args ...any)
	Error(args ...any)
}

type Sink interface {
	Logger
	Flush()
}

type fileLogger struct{}

func (*fileLogger) Info(args ...any)  {}
func (*fileLogger) Warn(args ...any)  {}
func (*fileLogger) Error(args ...any) {}

type calc struct{}

func (calc) Add(a, b int) int { return a + b }
`

type checkedUnit struct {
	fset  *token.FileSet
	files []*ast.File
	pkg   *types.Package
	info  *types.Info
}

func (u *checkedUnit) resolver() *TypesResolver {
	return NewTypesResolver(u.pkg, u.info)
}

// typeCheck parses and type checks sources as one package. Keys are file names.
func typeCheck(t *testing.T, path string, sources map[string]string) *checkedUnit {
	t.Helper()

	fset := token.NewFileSet()
	var files []*ast.File
	for _, name := range sortedKeys(sources) {
		file, err := parser.ParseFile(fset, name, sources[name], parser.ParseComments)
		if err != nil {
			t.Fatalf("parse %s: %s", name, err)
		}
		files = append(files, file)
	}

	info := &types.Info{
		Types:      map[ast.Expr]types.TypeAndValue{},
		Defs:       map[*ast.Ident]types.Object{},
		Uses:       map[*ast.Ident]types.Object{},
		Selections: map[*ast.SelectorExpr]*types.Selection{},
		Instances:  map[*ast.Ident]types.Instance{},
	}
	var conf types.Config
	pkg, err := conf.Check(path, fset, files, info)
	if err != nil {
		t.Fatalf("type check %s: %s", path, err)
	}

	return &checkedUnit{
		fset:  fset,
		files: files,
		pkg:   pkg,
		info:  info,
	}
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	for i := 1; i < len(keys); i++ {
		for j := i; j > 0 && keys[j] < keys[j-1]; j-- {
			keys[j], keys[j-1] = keys[j-1], keys[j]
		}
	}
	return keys
}

// statementCalls returns calls of expression statements of the named function body.
func statementCalls(t *testing.T, u *checkedUnit, funcName string) []*ast.CallExpr {
	t.Helper()

	for _, file := range u.files {
		for _, decl := range file.Decls {
			fn, ok := decl.(*ast.FuncDecl)
			if !ok || fn.Name.Name != funcName {
				continue
			}

			var calls []*ast.CallExpr
			for _, stmt := range fn.Body.List {
				expr, ok := stmt.(*ast.ExprStmt)
				if !ok {
					continue
				}
				if call, ok := expr.X.(*ast.CallExpr); ok {
					calls = append(calls, call)
				}
			}
			return calls
		}
	}

	t.Fatalf("function %s not found", funcName)
	return nil
}

func defaultTestPolicy() Policy {
	return Policy{
		Loggers:      []Reference{{Package: "app", Name: "Logger"}},
		Heuristic:    true,
		NamePatterns: []string{"Logger"},
		EventTypes:   []string{"EventID", "EventId"},
		IntKinds:     []IntKind{IntKind(types.Int32), IntKind(types.Int)},
	}
}

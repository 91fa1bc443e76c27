package tracing

import (
	"go/ast"

	"golang.org/x/tools/go/ast/inspector"
)

// Walker enumerates call expressions of a unit or of a part of it.
type Walker interface {
	Walk(fn func(call *ast.CallExpr))
}

// InspectorWalker walks every file of an inspector in preorder. Files for
// which Keep returns false are skipped. nil Keep keeps everything.
type InspectorWalker struct {
	Inspector *inspector.Inspector
	Keep      func(file *ast.File) bool
}

func (w *InspectorWalker) Walk(fn func(call *ast.CallExpr)) {
	nodeFilter := []ast.Node{
		(*ast.File)(nil),
		(*ast.CallExpr)(nil),
	}

	skip := false
	w.Inspector.Preorder(nodeFilter, func(node ast.Node) {
		switch n := node.(type) {
		case *ast.File:
			skip = w.Keep != nil && !w.Keep(n)
		case *ast.CallExpr:
			if !skip {
				fn(n)
			}
		}
	})
}

// FileWalker walks a single file.
type FileWalker struct {
	File *ast.File
}

func (w FileWalker) Walk(fn func(call *ast.CallExpr)) {
	ast.Inspect(w.File, func(node ast.Node) bool {
		if call, ok := node.(*ast.CallExpr); ok {
			fn(call)
		}
		return true
	})
}

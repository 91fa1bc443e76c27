package tracing

import (
	"fmt"
	"go/ast"
	"go/token"
	"strings"

	"github.com/sirkon/eventid/internal/evrules"
)

// DirectivePrefix starts a suppression comment:
//
//	//eventid:ignore
//	//eventid:ignore duplicate-event-id
const DirectivePrefix = "//eventid:ignore"

// ParseDirective parses a comment text. It returns false for comments that
// are not suppression directives.
func ParseDirective(text string) (*Directive, bool, error) {
	rest, ok := strings.CutPrefix(text, DirectivePrefix)
	if !ok {
		return nil, false, nil
	}
	if rest != "" && rest[0] != ' ' && rest[0] != '\t' {
		// //eventid:ignoreXXX is something else.
		return nil, false, nil
	}

	d := &Directive{}
	for _, field := range strings.Fields(rest) {
		if strings.HasPrefix(field, "//") {
			// Trailing explanation.
			break
		}

		var rule evrules.Rule
		if err := rule.UnmarshalText([]byte(field)); err != nil {
			return nil, true, fmt.Errorf("parse directive %q: %w", text, err)
		}
		d.Rules = append(d.Rules, rule)
	}

	return d, true, nil
}

// DirectiveError is a malformed suppression directive.
type DirectiveError struct {
	Pos token.Pos
	Err error
}

func (e DirectiveError) Error() string {
	return e.Err.Error()
}

func (e DirectiveError) Unwrap() error {
	return e.Err
}

// CollectSuppressions builds a context out of suppression directives of the
// files. A directive in a function doc comment covers the function. A
// directive standing on its own line covers statements starting on the next
// line, a trailing one covers statements starting on its own line.
// Malformed directives are returned and otherwise ignored.
func CollectSuppressions(fset *token.FileSet, files []*ast.File) (*Context, []DirectiveError) {
	ctx := NewContext()
	var errs []DirectiveError

	for _, file := range files {
		lines := map[int]lineDirective{}
		for _, group := range file.Comments {
			for _, comment := range group.List {
				d, ok, err := ParseDirective(comment.Text)
				if err != nil {
					errs = append(errs, DirectiveError{Pos: comment.Pos(), Err: err})
					continue
				}
				if ok {
					lines[fset.Position(comment.Pos()).Line] = lineDirective{d: d, pos: comment.Pos()}
				}
			}
		}
		if len(lines) == 0 {
			continue
		}

		// First statement start of every line tells trailing directives
		// from the ones standing on their own line.
		starts := map[int]token.Pos{}
		ast.Inspect(file, func(n ast.Node) bool {
			if stmt, ok := n.(ast.Stmt); ok {
				line := fset.Position(stmt.Pos()).Line
				if pos, ok := starts[line]; !ok || stmt.Pos() < pos {
					starts[line] = stmt.Pos()
				}
			}
			return true
		})

		ast.Inspect(file, func(n ast.Node) bool {
			switch node := n.(type) {
			case *ast.FuncDecl:
				if d := docDirective(fset, node.Doc, lines); d != nil {
					ctx.Add(d, ContextSpan{Start: node.Pos(), End: node.End()})
				}
			case *ast.BlockStmt:
			case ast.Stmt:
				line := fset.Position(node.Pos()).Line
				if ld, ok := lines[line]; ok {
					ctx.Add(ld.d, ContextSpan{Start: node.Pos(), End: node.End()})
				} else if ld, ok := lines[line-1]; ok && !ld.trailing(starts, line-1) {
					ctx.Add(ld.d, ContextSpan{Start: node.Pos(), End: node.End()})
				}
			}
			return true
		})
	}

	return ctx, errs
}

type lineDirective struct {
	d   *Directive
	pos token.Pos
}

func (ld lineDirective) trailing(starts map[int]token.Pos, line int) bool {
	start, ok := starts[line]
	return ok && start < ld.pos
}

func docDirective(fset *token.FileSet, doc *ast.CommentGroup, lines map[int]lineDirective) *Directive {
	if doc == nil {
		return nil
	}

	for _, comment := range doc.List {
		if ld, ok := lines[fset.Position(comment.Pos()).Line]; ok {
			return ld.d
		}
	}

	return nil
}

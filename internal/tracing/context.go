package tracing

import (
	"go/token"
	"slices"

	"github.com/sirkon/rbtree"

	"github.com/sirkon/eventid/internal/evrules"
)

// NewContext is [Context] constructor.
func NewContext() *Context {
	return &Context{tree: rbtree.New[*contextNodeSpan]()}
}

// Context holds suppression directives of a unit keyed by the source spans
// they cover. It is filled once and read concurrently afterwards.
type Context struct {
	tree *rbtree.Tree[*contextNodeSpan]
}

// ContextSpan is a closed [Start, End] position range.
type ContextSpan struct {
	Start token.Pos
	End   token.Pos
}

// Directive is a parsed //eventid:ignore comment. Empty Rules means every rule.
type Directive struct {
	Rules []evrules.Rule
}

// Covers reports whether the directive suppresses the rule.
func (d *Directive) Covers(rule evrules.Rule) bool {
	return len(d.Rules) == 0 || slices.Contains(d.Rules, rule)
}

// GetByPos returns the most specific (innermost) directive covering pos.
func (c *Context) GetByPos(pos token.Pos) *Directive {
	chain := c.Covering(pos)
	if len(chain) == 0 {
		return nil
	}

	return chain[len(chain)-1]
}

// Covering returns every directive whose span covers pos, outermost first.
func (c *Context) Covering(pos token.Pos) []*Directive {
	probe := &contextNodeSpan{start: pos, end: pos}
	return descendCollect(c.tree.Search(probe), pos, nil)
}

// Suppressed reports whether any directive covering pos suppresses the rule.
func (c *Context) Suppressed(rule evrules.Rule, pos token.Pos) bool {
	for _, d := range c.Covering(pos) {
		if d.Covers(rule) {
			return true
		}
	}

	return false
}

// Add registers a directive with its span. Spans must be added outer first,
// which is what a preorder AST walk gives.
func (c *Context) Add(d *Directive, s ContextSpan) {
	span := &contextNodeSpan{start: s.Start, end: s.End, node: d}
	attachInto(c.tree, span)
}

package tracing

import (
	"go/token"

	"github.com/sirkon/rbtree"
)

// contextNodeSpan stores a [start,end] span for a directive and, if needed,
// a nested RB-tree for child spans fully contained in this span.
type contextNodeSpan struct {
	start token.Pos
	end   token.Pos

	node     *Directive
	children *rbtree.Tree[*contextNodeSpan]
}

// Cmp defines ordering for the RB-tree as "disjoint by position".
//   - return -1 if this span is strictly before other (ends before other's start)
//   - return  1 if this span is strictly after  other (starts after other's end)
//   - return  0 if spans overlap in any way (including containment).
//
// NOTE: any two overlapping spans must be in a strict containment
// relationship. AST node spans always are.
func (n *contextNodeSpan) Cmp(other *contextNodeSpan) int {
	if n.end < other.start {
		return -1
	}
	if n.start > other.end {
		return 1
	}
	return 0
}

func contains(a, b *contextNodeSpan) bool {
	return a.start <= b.start && a.end >= b.end
}

// attachInto inserts span s into RB-tree t:
//   - no overlapping node: s becomes a sibling in t;
//   - overlapping node r contains s: s goes down into r.children;
//   - s contains r: r is overwritten in place by s and the old r is
//     re-attached as its child.
func attachInto(t *rbtree.Tree[*contextNodeSpan], s *contextNodeSpan) {
	r := t.InsertReturn(s)
	if r == s {
		return
	}

	if contains(r, s) {
		if r.children == nil {
			r.children = rbtree.New[*contextNodeSpan]()
		}
		attachInto(r.children, s)
		return
	}

	if contains(s, r) {
		old := *r
		*r = *s
		r.children = rbtree.New[*contextNodeSpan]()
		attachInto(r.children, &old)
		return
	}

	panic("attachInto: partial-overlap spans are not supported")
}

func descendCollect(n *contextNodeSpan, pos token.Pos, acc []*Directive) []*Directive {
	if n == nil {
		return acc
	}

	acc = append(acc, n.node)
	if n.children == nil {
		return acc
	}

	probe := &contextNodeSpan{start: pos, end: pos}
	return descendCollect(n.children.Search(probe), pos, acc)
}

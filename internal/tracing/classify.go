package tracing

import (
	"fmt"
	"go/ast"
	"go/constant"
	"go/types"
	"strings"
)

// ClassKind enumerates outcomes of the first argument inspection.
type ClassKind int

const (
	classKindInvalid ClassKind = iota

	// ClassAbsent means no event id: no arguments or a first argument of
	// an unrelated type.
	ClassAbsent

	// ClassNumericLiteral means the first argument is a constant integer.
	ClassNumericLiteral

	// ClassNonQualifying means the first argument has an event id shape but
	// its value is not known at compile time.
	ClassNonQualifying
)

func (k ClassKind) String() string {
	switch k {
	case ClassAbsent:
		return "absent"
	case ClassNumericLiteral:
		return "numeric-literal"
	case ClassNonQualifying:
		return "non-qualifying"
	default:
		return fmt.Sprintf("class-kind-invalid(%d)", k)
	}
}

// Classification is the result of [Classifier.Classify].
type Classification struct {
	Kind ClassKind

	// Value is only meaningful for ClassNumericLiteral.
	Value int64
}

func Absent() Classification                 { return Classification{Kind: ClassAbsent} }
func NumericLiteral(v int64) Classification { return Classification{Kind: ClassNumericLiteral, Value: v} }
func NonQualifying() Classification         { return Classification{Kind: ClassNonQualifying} }

// NameMatcher reports whether a type name looks like a logger.
type NameMatcher func(typeName string) bool

// Policy configures what counts as a logging call and as an event id.
type Policy struct {
	// Loggers are logging interfaces matched exactly: the receiver either is
	// one of them or implements one of them.
	Loggers []Reference

	// Heuristic enables the name based fallback used when exact matching
	// fails, typically because type information is partial.
	Heuristic bool

	// NamePatterns are substrings of logger type names for the fallback.
	NamePatterns []string

	// NameMatcher replaces NamePatterns when set.
	NameMatcher NameMatcher

	// EventTypes are names of event identifier types, matched by name only.
	EventTypes []string

	// IntKinds are predeclared integer types accepted as event codes.
	IntKinds []IntKind

	// Methods limits checks to these method names. Empty means all methods.
	Methods []string
}

// Classifier decides whether a call targets a logging interface and
// classifies its first argument. It is immutable once built and safe for
// concurrent use.
type Classifier struct {
	loggers   []*types.TypeName
	heuristic bool
	match     NameMatcher
	names     map[string]struct{}
	events    map[string]struct{}
	kinds     map[types.BasicKind]struct{}
	methods   map[string]struct{}
}

// NewClassifier resolves policy references against the unit's resolver.
// References that cannot be found are left to the name heuristic.
func NewClassifier(p Policy, r Resolver) *Classifier {
	c := &Classifier{
		heuristic: p.Heuristic,
		match:     p.NameMatcher,
		names:     make(map[string]struct{}, len(p.Loggers)),
		events:    make(map[string]struct{}, len(p.EventTypes)),
		kinds:     make(map[types.BasicKind]struct{}, len(p.IntKinds)),
		methods:   make(map[string]struct{}, len(p.Methods)),
	}

	for _, ref := range p.Loggers {
		c.names[ref.Name] = struct{}{}
		if tn := r.LookupType(ref.Package, ref.Name); tn != nil {
			c.loggers = append(c.loggers, tn)
		}
	}

	if c.match == nil {
		patterns := p.NamePatterns
		c.match = func(name string) bool {
			for _, pattern := range patterns {
				if pattern != "" && strings.Contains(name, pattern) {
					return true
				}
			}
			return false
		}
	}

	for _, name := range p.EventTypes {
		c.events[name] = struct{}{}
	}
	for _, kind := range p.IntKinds {
		c.kinds[types.BasicKind(kind)] = struct{}{}
	}
	for _, name := range p.Methods {
		c.methods[name] = struct{}{}
	}

	return c
}

// Classify returns false when the call does not target a logging interface.
func (c *Classifier) Classify(call CallSite, r Resolver) (Classification, bool) {
	if !c.applicable(call) {
		return Classification{}, false
	}

	if len(call.Args) == 0 {
		return Absent(), true
	}

	if call.Spread && len(call.Args) == 1 {
		// l.Info(args...) can carry an id we cannot see.
		return NonQualifying(), true
	}

	return c.classifyArg(call.Args[0], r), true
}

func (c *Classifier) applicable(call CallSite) bool {
	if call.Func == nil {
		return false
	}

	if len(c.methods) > 0 {
		if _, ok := c.methods[call.Method]; !ok {
			return false
		}
	}

	if c.isLogger(call.Recv) || c.isLogger(call.ContainingType()) {
		return true
	}

	return c.heuristic && c.looksLikeLogger(call)
}

// isLogger is the exact capability check.
func (c *Classifier) isLogger(t types.Type) bool {
	if t == nil {
		return false
	}

	for _, tn := range c.loggers {
		if sameType(t, tn) {
			return true
		}

		named, ok := tn.Type().(*types.Named)
		if !ok || named.TypeParams().Len() > 0 {
			continue
		}
		iface, ok := named.Underlying().(*types.Interface)
		if !ok {
			continue
		}

		if types.Implements(t, iface) {
			return true
		}
		if _, isPtr := t.Underlying().(*types.Pointer); !isPtr && !types.IsInterface(t) {
			if types.Implements(types.NewPointer(t), iface) {
				return true
			}
		}
	}

	return false
}

// looksLikeLogger is the name based fallback.
func (c *Classifier) looksLikeLogger(call CallSite) bool {
	for _, t := range []types.Type{call.ContainingType(), call.Recv} {
		if t == nil {
			continue
		}
		if name := typeName(t); name != "" && c.match(name) {
			return true
		}
		if c.embedsLoggerName(t, map[types.Type]bool{}) {
			return true
		}
	}

	return false
}

func (c *Classifier) embedsLoggerName(t types.Type, seen map[types.Type]bool) bool {
	if seen[t] {
		return false
	}
	seen[t] = true

	iface, ok := t.Underlying().(*types.Interface)
	if !ok {
		return false
	}

	for i := 0; i < iface.NumEmbeddeds(); i++ {
		embedded := iface.EmbeddedType(i)
		if _, ok := c.names[typeName(embedded)]; ok {
			return true
		}
		if c.embedsLoggerName(embedded, seen) {
			return true
		}
	}

	return false
}

func (c *Classifier) classifyArg(arg ast.Expr, r Resolver) Classification {
	t := r.TypeOf(arg)
	if t == nil || !c.eventShaped(t) {
		return Absent()
	}

	v := r.ConstValue(arg)
	if v == nil {
		return NonQualifying()
	}

	v = constant.ToInt(v)
	if v.Kind() != constant.Int {
		return NonQualifying()
	}

	n, exact := constant.Int64Val(v)
	if !exact {
		return NonQualifying()
	}

	return NumericLiteral(n)
}

func (c *Classifier) eventShaped(t types.Type) bool {
	switch tt := types.Unalias(t).(type) {
	case *types.Basic:
		kind := tt.Kind()
		if kind == types.UntypedInt || kind == types.UntypedRune {
			kind = types.Int
		}
		_, ok := c.kinds[kind]
		return ok
	case *types.Named:
		_, ok := c.events[tt.Obj().Name()]
		return ok
	default:
		return false
	}
}

func sameType(t types.Type, tn *types.TypeName) bool {
	named := namedOf(t)
	if named == nil {
		return false
	}

	obj := named.Origin().Obj()
	if obj == tn {
		return true
	}

	return obj.Pkg() != nil && tn.Pkg() != nil &&
		obj.Pkg().Path() == tn.Pkg().Path() &&
		obj.Name() == tn.Name()
}

func namedOf(t types.Type) *types.Named {
	t = types.Unalias(t)
	if ptr, ok := t.(*types.Pointer); ok {
		t = types.Unalias(ptr.Elem())
	}

	named, _ := t.(*types.Named)
	return named
}

func typeName(t types.Type) string {
	named := namedOf(t)
	if named == nil {
		return ""
	}

	return named.Obj().Name()
}

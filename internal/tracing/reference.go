package tracing

import (
	"bytes"
	"encoding"
	"errors"
	"fmt"
	"go/types"
	"strings"
	"unicode"
)

// Reference identifies a declared type, e.g. a logging interface, by its
// package path and name.
//
// Text form:
//
//	"pkg/path".Name
type Reference struct {
	Package string
	Name    string
}

func (r Reference) String() string {
	return `"` + r.Package + `".` + r.Name
}

var _ encoding.TextUnmarshaler = (*Reference)(nil)

func (r *Reference) UnmarshalText(b []byte) error {
	s := string(bytes.TrimSpace(b))
	if s == "" {
		return errors.New("empty reference")
	}

	if !strings.HasPrefix(s, `"`) {
		return fmt.Errorf("reference must start with quoted package: %q", s)
	}
	end := strings.Index(s[1:], `"`)
	if end < 0 {
		return fmt.Errorf("unterminated quoted package in reference: %q", s)
	}
	end++ // include the first quote

	pkg := s[1:end]
	if pkg == "" {
		return fmt.Errorf("package cannot be empty in reference: %q", s)
	}

	name := strings.TrimPrefix(s[end+1:], ".")
	if name == "" {
		return fmt.Errorf("reference must contain a name: %q", s)
	}
	if !isIdent(name) {
		return fmt.Errorf("invalid identifier %q in reference %q", name, s)
	}

	r.Package = pkg
	r.Name = name
	return nil
}

func isIdent(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		if i == 0 && !unicode.IsLetter(r) && r != '_' {
			return false
		}
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '_' {
			return false
		}
	}
	return true
}

func (r Reference) MarshalText() ([]byte, error) {
	if r.Package == "" {
		return nil, fmt.Errorf("cannot marshal Reference: empty Package")
	}
	if r.Name == "" {
		return nil, fmt.Errorf("cannot marshal Reference: empty Name")
	}

	return []byte(r.String()), nil
}

// IntKind is a predeclared integer type accepted as an event code.
type IntKind types.BasicKind

var intKindNames = map[IntKind]string{
	IntKind(types.Int):    "int",
	IntKind(types.Int8):   "int8",
	IntKind(types.Int16):  "int16",
	IntKind(types.Int32):  "int32",
	IntKind(types.Int64):  "int64",
	IntKind(types.Uint):   "uint",
	IntKind(types.Uint8):  "uint8",
	IntKind(types.Uint16): "uint16",
	IntKind(types.Uint32): "uint32",
	IntKind(types.Uint64): "uint64",
}

func (k IntKind) String() string {
	v, ok := intKindNames[k]
	if !ok {
		return fmt.Sprintf("int-kind-invalid(%d)", k)
	}

	return v
}

var _ encoding.TextUnmarshaler = (*IntKind)(nil)

// UnmarshalText for setting values with configs, CLI, etc.
func (k *IntKind) UnmarshalText(rawtext []byte) error {
	text := string(rawtext)
	for kind, name := range intKindNames {
		if name == text {
			*k = kind
			return nil
		}
	}

	return fmt.Errorf("unknown integer kind %q", text)
}

func (k IntKind) MarshalText() ([]byte, error) {
	v, ok := intKindNames[k]
	if !ok {
		return nil, fmt.Errorf("cannot marshal invalid IntKind(%d)", k)
	}

	return []byte(v), nil
}

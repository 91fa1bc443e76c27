package scan

import (
	"cmp"
	"context"
	"encoding/binary"
	"fmt"
	"go/token"
	"maps"
	"path/filepath"
	"slices"
	"strconv"

	"github.com/minio/highwayhash"
	"github.com/viant/afs"
	"golang.org/x/mod/modfile"

	"github.com/sirkon/eventid/internal/evrules"
)

// Summary of a scan.
type Summary struct {
	Module      string `yaml:"module,omitempty"`
	Packages    int    `yaml:"packages"`
	Fingerprint string `yaml:"fingerprint"`

	Missing    []Location  `yaml:"missing,omitempty"`
	Duplicates []Duplicate `yaml:"duplicates,omitempty"`
	Directives []Location  `yaml:"malformed-directives,omitempty"`
}

// Location of a finding. File is relative to the scan root when possible.
type Location struct {
	Package string `yaml:"package"`
	File    string `yaml:"file"`
	Line    int    `yaml:"line"`
	Column  int    `yaml:"column"`
	Message string `yaml:"message,omitempty"`
}

func (l Location) String() string {
	return l.File + ":" + strconv.Itoa(l.Line) + ":" + strconv.Itoa(l.Column)
}

// Duplicate is a code used more than once in a package with every place it
// is used at.
type Duplicate struct {
	Package   string     `yaml:"package"`
	Code      int64      `yaml:"code"`
	Locations []Location `yaml:"locations"`
}

// Findings is the total number of problems. Every use of a duplicated code
// after the first one counts.
func (s *Summary) Findings() int {
	n := len(s.Missing) + len(s.Directives)
	for _, dup := range s.Duplicates {
		n += len(dup.Locations) - 1
	}

	return n
}

func summarize(root, module string, results []unitResult) (*Summary, error) {
	s := &Summary{
		Module:   module,
		Packages: len(results),
	}

	for _, res := range results {
		path := res.pkg.PkgPath
		loc := func(pos token.Position, msg string) Location {
			return Location{
				Package: path,
				File:    relative(root, pos.Filename),
				Line:    pos.Line,
				Column:  pos.Column,
				Message: msg,
			}
		}

		dups := map[int64]struct{}{}
		for _, rep := range res.reports {
			switch rep.Rule {
			case evrules.MissingEventID():
				s.Missing = append(s.Missing, loc(rep.Pos, rep.Message))
			case evrules.DuplicateEventID():
				if code, ok := rep.Args[len(rep.Args)-1].(int64); ok {
					dups[code] = struct{}{}
				}
			}
		}

		for _, code := range slices.Sorted(maps.Keys(dups)) {
			dup := Duplicate{Package: path, Code: code}
			for _, span := range res.unit.Registry().Occurrences(code) {
				dup.Locations = append(dup.Locations, loc(res.pkg.Fset.Position(span.Pos), ""))
			}
			slices.SortFunc(dup.Locations, compareLocations)
			s.Duplicates = append(s.Duplicates, dup)
		}

		for _, derr := range res.directives {
			s.Directives = append(s.Directives, loc(res.pkg.Fset.Position(derr.Pos), derr.Error()))
		}
	}

	slices.SortFunc(s.Missing, compareLocations)
	slices.SortFunc(s.Directives, compareLocations)
	slices.SortFunc(s.Duplicates, func(a, b Duplicate) int {
		return cmp.Or(cmp.Compare(a.Package, b.Package), cmp.Compare(a.Code, b.Code))
	})

	fp, err := fingerprint(s)
	if err != nil {
		return nil, fmt.Errorf("compute fingerprint: %w", err)
	}
	s.Fingerprint = fp

	return s, nil
}

func compareLocations(a, b Location) int {
	return cmp.Or(
		cmp.Compare(a.Package, b.Package),
		cmp.Compare(a.File, b.File),
		cmp.Compare(a.Line, b.Line),
		cmp.Compare(a.Column, b.Column),
	)
}

var fingerprintKey = []byte("eventid.scan.fingerprint.key.v01")

// fingerprint hashes sorted findings, so it only changes when the findings
// do.
func fingerprint(s *Summary) (string, error) {
	hash, err := highwayhash.New64(fingerprintKey)
	if err != nil {
		return "", err
	}

	var buf []byte
	put := func(kind string, l Location) {
		buf = append(buf, kind...)
		buf = append(buf, 0)
		buf = append(buf, l.Package...)
		buf = append(buf, 0)
		buf = append(buf, l.String()...)
		buf = append(buf, 0)
	}

	for _, l := range s.Missing {
		put("missing", l)
	}
	for _, dup := range s.Duplicates {
		buf = binary.BigEndian.AppendUint64(buf, uint64(dup.Code))
		for _, l := range dup.Locations {
			put("duplicate", l)
		}
	}
	for _, l := range s.Directives {
		put("directive", l)
	}

	if _, err := hash.Write(buf); err != nil {
		return "", err
	}

	return fmt.Sprintf("%016x", hash.Sum64()), nil
}

func relative(root, name string) string {
	rel, err := filepath.Rel(root, name)
	if err != nil || !filepath.IsLocal(rel) {
		return name
	}

	return filepath.ToSlash(rel)
}

// modulePath reads the module path out of go.mod in dir.
func modulePath(ctx context.Context, dir string) (string, error) {
	location := filepath.Join(dir, "go.mod")

	fs := afs.New()
	data, err := fs.DownloadWithURL(ctx, location)
	if err != nil {
		return "", fmt.Errorf("read %s: %w", location, err)
	}

	mod, err := modfile.ParseLax(location, data, nil)
	if err != nil {
		return "", fmt.Errorf("parse %s: %w", location, err)
	}
	if mod.Module == nil {
		return "", fmt.Errorf("no module directive in %s", location)
	}

	return mod.Module.Mod.Path, nil
}

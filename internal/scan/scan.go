// Package scan checks every package of a source tree and summarizes the
// findings.
package scan

import (
	"context"
	"fmt"
	"go/ast"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"golang.org/x/tools/go/packages"

	"github.com/sirkon/eventid/internal/config"
	"github.com/sirkon/eventid/internal/tracing"
)

// Options of a scan.
type Options struct {
	// Dir is the root of the tree, the current directory when empty.
	Dir string

	// Patterns select packages, ./... when empty.
	Patterns []string

	// Tests adds test packages.
	Tests bool

	// Jobs limits packages checked at once, 1 when not positive.
	Jobs int

	// Config defaults to config.Default().
	Config *config.Config

	Logger *zap.Logger
}

const loadMode = packages.NeedName |
	packages.NeedFiles |
	packages.NeedCompiledGoFiles |
	packages.NeedImports |
	packages.NeedTypes |
	packages.NeedTypesInfo |
	packages.NeedSyntax

// Run loads the packages and checks each of them as a separate unit.
func Run(ctx context.Context, opts Options) (*Summary, error) {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.Default()
	}
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	patterns := opts.Patterns
	if len(patterns) == 0 {
		patterns = []string{"./..."}
	}
	dir, err := filepath.Abs(opts.Dir)
	if err != nil {
		return nil, fmt.Errorf("resolve directory %q: %w", opts.Dir, err)
	}

	log.Debug("load packages", zap.String("dir", dir), zap.Strings("patterns", patterns))
	pkgs, err := packages.Load(&packages.Config{
		Context: ctx,
		Mode:    loadMode,
		Dir:     dir,
		Tests:   opts.Tests,
	}, patterns...)
	if err != nil {
		return nil, fmt.Errorf("load packages: %w", err)
	}

	units := selectUnits(pkgs, log)
	log.Info("packages loaded", zap.Int("count", len(pkgs)), zap.Int("units", len(units)))

	engine := cfg.Engine()
	results := make([]unitResult, len(units))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(1, opts.Jobs))
	for i, pkg := range units {
		g.Go(func() error {
			res, err := checkPackage(gctx, engine, cfg, pkg)
			if err != nil {
				return fmt.Errorf("check package %s: %w", pkg.PkgPath, err)
			}

			log.Debug(
				"package checked",
				zap.String("package", pkg.PkgPath),
				zap.Int("diagnostics", len(res.reports)),
			)
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	module, err := modulePath(ctx, dir)
	if err != nil {
		log.Warn("no module path", zap.Error(err))
	}

	return summarize(dir, module, results)
}

// selectUnits drops packages without type information and keeps a single
// variant of every package: the test one when tests are loaded.
func selectUnits(pkgs []*packages.Package, log *zap.Logger) []*packages.Package {
	byPath := map[string]*packages.Package{}
	var order []string

	for _, pkg := range pkgs {
		for _, perr := range pkg.Errors {
			log.Warn("package error", zap.String("package", pkg.ID), zap.String("error", perr.Error()))
		}

		if strings.HasSuffix(pkg.ID, ".test") {
			// Generated test main.
			continue
		}
		if pkg.Types == nil || pkg.TypesInfo == nil {
			log.Warn("skip package without type information", zap.String("package", pkg.ID))
			continue
		}

		prev, ok := byPath[pkg.PkgPath]
		if !ok {
			order = append(order, pkg.PkgPath)
			byPath[pkg.PkgPath] = pkg
			continue
		}
		if isTestVariant(pkg) && !isTestVariant(prev) {
			byPath[pkg.PkgPath] = pkg
		}
	}

	res := make([]*packages.Package, 0, len(order))
	for _, path := range order {
		res = append(res, byPath[path])
	}

	return res
}

func isTestVariant(pkg *packages.Package) bool {
	return strings.Contains(pkg.ID, " [")
}

type unitResult struct {
	pkg        *packages.Package
	unit       *tracing.Unit
	reports    []tracing.Report
	directives []tracing.DirectiveError
}

func checkPackage(ctx context.Context, engine *tracing.Engine, cfg *config.Config, pkg *packages.Package) (unitResult, error) {
	var files []*ast.File
	for _, file := range pkg.Syntax {
		if cfg.SkipGenerated && ast.IsGenerated(file) {
			continue
		}
		if cfg.SkipTests && strings.HasSuffix(pkg.Fset.Position(file.Package).Filename, "_test.go") {
			continue
		}
		files = append(files, file)
	}

	reporter := tracing.NewReporter(pkg.Fset)
	unit, err := engine.Check(ctx, tracing.UnitInput{
		Path:     pkg.PkgPath,
		Fset:     pkg.Fset,
		Files:    files,
		Resolver: tracing.NewTypesResolver(pkg.Types, pkg.TypesInfo),
		Sink:     reporter,
	})
	if err != nil {
		return unitResult{}, err
	}

	return unitResult{
		pkg:        pkg,
		unit:       unit,
		reports:    reporter.Reports(),
		directives: unit.DirectiveErrors(),
	}, nil
}

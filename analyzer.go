// Package eventid checks that structured logging calls carry an event id and
// that no event code is reused within a package.
package eventid

import (
	"context"
	"fmt"
	"go/ast"
	"strings"
	"sync"

	"golang.org/x/tools/go/analysis"
	"golang.org/x/tools/go/analysis/passes/inspect"
	"golang.org/x/tools/go/ast/inspector"

	"github.com/sirkon/eventid/internal/config"
	"github.com/sirkon/eventid/internal/tracing"
)

const doc = `eventid checks event ids of structured logging calls

Every call of a logging interface method must pass an event id as its first
argument. Constant event codes must be unique within a package.`

// Analyzer uses the default settings, adjustable with its flags.
var Analyzer = NewAnalyzer(nil)

type analyzer struct {
	cfg *config.Config

	configPath  string
	workers     int
	noHeuristic bool

	once   sync.Once
	engine *tracing.Engine
	setup  *config.Config
	err    error
}

// NewAnalyzer creates an analyzer with the given settings. nil means the
// settings come from the -config flag or defaults.
func NewAnalyzer(cfg *config.Config) *analysis.Analyzer {
	a := &analyzer{cfg: cfg}

	res := &analysis.Analyzer{
		Name:     "eventid",
		Doc:      doc,
		URL:      "https://github.com/sirkon/eventid",
		Requires: []*analysis.Analyzer{inspect.Analyzer},
		Run:      a.run,
	}

	res.Flags.StringVar(&a.configPath, "config", "", "path or URL of the YAML settings file")
	res.Flags.IntVar(&a.workers, "workers", 0, "files of a package walked in parallel, 0 keeps the settings value")
	res.Flags.BoolVar(&a.noHeuristic, "no-heuristic", false, "disable logger matching by type name")

	return res
}

func (a *analyzer) init() {
	cfg := a.cfg
	if cfg == nil {
		cfg, a.err = config.Load(context.Background(), a.configPath)
		if a.err != nil {
			return
		}
	}

	if a.workers > 0 {
		cfg.Workers = a.workers
	}
	if a.noHeuristic {
		cfg.NameHeuristic = false
	}

	a.setup = cfg
	a.engine = cfg.Engine()
}

func (a *analyzer) run(pass *analysis.Pass) (any, error) {
	a.once.Do(a.init)
	if a.err != nil {
		return nil, fmt.Errorf("setup eventid: %w", a.err)
	}

	var files []*ast.File
	for _, file := range pass.Files {
		if a.keep(pass, file) {
			files = append(files, file)
		}
	}
	if len(files) == 0 {
		return nil, nil
	}

	in := tracing.UnitInput{
		Path:     pass.Pkg.Path(),
		Fset:     pass.Fset,
		Files:    files,
		Resolver: tracing.NewTypesResolver(pass.Pkg, pass.TypesInfo),
		Sink:     tracing.NewPassSink(pass),
	}
	if a.engine.Workers() <= 1 {
		in.Walkers = []tracing.Walker{
			&tracing.InspectorWalker{
				Inspector: pass.ResultOf[inspect.Analyzer].(*inspector.Inspector),
				Keep: func(file *ast.File) bool {
					return a.keep(pass, file)
				},
			},
		}
	}

	unit, err := a.engine.Check(context.Background(), in)
	if err != nil {
		return nil, fmt.Errorf("check package %s: %w", pass.Pkg.Path(), err)
	}

	for _, derr := range unit.DirectiveErrors() {
		pass.Report(analysis.Diagnostic{
			Pos:      derr.Pos,
			Category: "directive",
			Message:  "malformed suppression directive: " + derr.Error(),
		})
	}

	return nil, nil
}

func (a *analyzer) keep(pass *analysis.Pass, file *ast.File) bool {
	if a.setup.SkipGenerated && ast.IsGenerated(file) {
		return false
	}

	if a.setup.SkipTests {
		name := pass.Fset.Position(file.Package).Filename
		if strings.HasSuffix(name, "_test.go") {
			return false
		}
	}

	return true
}

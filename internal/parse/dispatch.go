package parse

import (
	"context"
	"path/filepath"
	"runtime"
	"sort"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// registration binds a file extension to a parser and the language it should
// parse that extension as.
type registration struct {
	lang   Language
	parser Parser
}

// Dispatcher routes files to parsers by extension. Files with unregistered
// extensions are skipped silently; per-file parse failures become Failure
// notes and never abort the run.
type Dispatcher struct {
	registry map[string]registration
	limit    int
	logger   *zap.Logger
}

// DispatcherOption configures a Dispatcher.
type DispatcherOption func(*Dispatcher)

// WithLogger sets the dispatcher's logger. Defaults to a no-op logger.
func WithLogger(logger *zap.Logger) DispatcherOption {
	return func(d *Dispatcher) { d.logger = logger }
}

// WithParallelism caps the number of files parsed concurrently.
func WithParallelism(n int) DispatcherOption {
	return func(d *Dispatcher) {
		if n > 0 {
			d.limit = n
		}
	}
}

// NewDispatcher creates a Dispatcher with the default extension registry:
// tree-sitter for Go, TypeScript, JavaScript, Python, and Rust, and the
// pattern parser for Jac.
func NewDispatcher(opts ...DispatcherOption) *Dispatcher {
	d := &Dispatcher{
		registry: make(map[string]registration),
		limit:    defaultParallelism(),
		logger:   zap.NewNop(),
	}

	ts := NewTreeSitterParser()
	d.Register(".go", LangGo, ts)
	d.Register(".py", LangPython, ts)
	d.Register(".ts", LangTypeScript, ts)
	d.Register(".tsx", LangTypeScript, ts)
	d.Register(".js", LangJavaScript, ts)
	d.Register(".jsx", LangJavaScript, ts)
	d.Register(".rs", LangRust, ts)
	d.Register(".jac", LangJac, NewJacParser())

	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Register binds an extension (with leading dot) to a parser. New languages
// plug in here without touching the dispatch logic.
func (d *Dispatcher) Register(ext string, lang Language, p Parser) {
	d.registry[strings.ToLower(ext)] = registration{lang: lang, parser: p}
}

// Extensions returns the registered extensions in sorted order.
func (d *Dispatcher) Extensions() []string {
	exts := make([]string, 0, len(d.registry))
	for ext := range d.registry {
		exts = append(exts, ext)
	}
	sort.Strings(exts)
	return exts
}

// LanguageFor returns the language registered for a path's extension.
func (d *Dispatcher) LanguageFor(path string) (Language, bool) {
	reg, ok := d.registry[strings.ToLower(filepath.Ext(path))]
	return reg.lang, ok
}

// Dispatch parses every recognized file in the tree. It returns the mapping
// from file path to extracted entities — its key set is exactly the set of
// successfully parsed files — plus the failure notes for files that could
// not be read. Parsing is parallel per file as a throughput optimization;
// each file writes only its own result slot.
func (d *Dispatcher) Dispatch(ctx context.Context, tree []SourceFile) (map[string][]Entity, []Failure) {
	type slot struct {
		path     string
		entities []Entity
		err      error
	}

	var targets []SourceFile
	for _, f := range tree {
		if f.IsDir {
			continue
		}
		if _, ok := d.registry[strings.ToLower(filepath.Ext(f.Path))]; !ok {
			continue
		}
		targets = append(targets, f)
	}

	slots := make([]slot, len(targets))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(d.limit)

	for i, f := range targets {
		reg := d.registry[strings.ToLower(filepath.Ext(f.Path))]
		g.Go(func() error {
			entities, err := reg.parser.Parse(gctx, f.Path, f.Content, reg.lang)
			slots[i] = slot{path: f.Path, entities: entities, err: err}
			return nil
		})
	}
	_ = g.Wait() // goroutines never return errors; failures live in slots

	parsed := make(map[string][]Entity, len(slots))
	var failures []Failure
	for _, s := range slots {
		if s.err != nil {
			d.logger.Warn("file skipped", zap.String("path", s.path), zap.Error(s.err))
			failures = append(failures, Failure{Path: s.path, Reason: s.err.Error()})
			continue
		}
		parsed[s.path] = s.entities
	}

	sort.Slice(failures, func(i, j int) bool { return failures[i].Path < failures[j].Path })
	return parsed, failures
}

// Close releases every registered parser once.
func (d *Dispatcher) Close() error {
	seen := make(map[Parser]bool)
	var firstErr error
	for _, reg := range d.registry {
		if seen[reg.parser] {
			continue
		}
		seen[reg.parser] = true
		if err := reg.parser.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

func defaultParallelism() int {
	n := runtime.GOMAXPROCS(0)
	if n > 8 {
		n = 8
	}
	if n < 1 {
		n = 1
	}
	return n
}

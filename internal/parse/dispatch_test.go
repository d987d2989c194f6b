package parse

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// failingParser always returns a ParseError. Used to simulate unreadable files.
type failingParser struct{}

func (f *failingParser) Parse(_ context.Context, path string, _ []byte, _ Language) ([]Entity, error) {
	return nil, &ParseError{Path: path, Err: fmt.Errorf("boom")}
}

func (f *failingParser) SupportedLanguages() []Language { return nil }
func (f *failingParser) Close() error                   { return nil }

func TestDispatcher_Dispatch(t *testing.T) {
	d := NewDispatcher(WithParallelism(2))
	defer d.Close()

	tree := []SourceFile{
		{Path: "app", IsDir: true},
		{Path: "app/main.go", Content: []byte("package main\n\nfunc main() {}\n")},
		{Path: "app/agent.jac", Content: []byte("walker W {\n}\n")},
		{Path: "app/notes.txt", Content: []byte("not source code")},
		{Path: "app/data.csv", Content: []byte("a,b,c")},
	}

	parsed, failures := d.Dispatch(context.Background(), tree)
	assert.Empty(t, failures)

	require.Contains(t, parsed, "app/main.go")
	require.Contains(t, parsed, "app/agent.jac")
	assert.Len(t, parsed, 2, "unregistered extensions are skipped silently")

	mainFn := findEntity(parsed["app/main.go"], "main")
	require.NotNil(t, mainFn)
	assert.Equal(t, KindFunction, mainFn.Kind)

	w := findEntity(parsed["app/agent.jac"], "W")
	require.NotNil(t, w)
	assert.Equal(t, KindWalker, w.Kind)
}

func TestDispatcher_FailuresDoNotAbort(t *testing.T) {
	d := NewDispatcher()
	defer d.Close()
	d.Register(".zz", Language("zz"), &failingParser{})

	tree := []SourceFile{
		{Path: "b.zz", Content: []byte("x")},
		{Path: "a.zz", Content: []byte("x")},
		{Path: "ok.go", Content: []byte("package ok\n\nfunc Run() {}\n")},
	}

	parsed, failures := d.Dispatch(context.Background(), tree)

	require.Contains(t, parsed, "ok.go", "healthy files still parse when siblings fail")
	assert.NotContains(t, parsed, "a.zz")
	assert.NotContains(t, parsed, "b.zz")

	require.Len(t, failures, 2)
	assert.Equal(t, "a.zz", failures[0].Path, "failures are sorted by path")
	assert.Equal(t, "b.zz", failures[1].Path)
	assert.Contains(t, failures[0].Reason, "boom")
}

func TestDispatcher_InvalidUTF8BecomesFailure(t *testing.T) {
	d := NewDispatcher()
	defer d.Close()

	tree := []SourceFile{
		{Path: "bad.go", Content: []byte{0xff, 0xfe, 0xfd}},
	}

	parsed, failures := d.Dispatch(context.Background(), tree)
	assert.Empty(t, parsed)
	require.Len(t, failures, 1)
	assert.Equal(t, "bad.go", failures[0].Path)
}

func TestDispatcher_Extensions(t *testing.T) {
	d := NewDispatcher()
	defer d.Close()

	exts := d.Extensions()
	assert.Contains(t, exts, ".go")
	assert.Contains(t, exts, ".py")
	assert.Contains(t, exts, ".ts")
	assert.Contains(t, exts, ".tsx")
	assert.Contains(t, exts, ".js")
	assert.Contains(t, exts, ".jsx")
	assert.Contains(t, exts, ".rs")
	assert.Contains(t, exts, ".jac")
	assert.IsIncreasing(t, exts)
}

func TestDispatcher_LanguageFor(t *testing.T) {
	d := NewDispatcher()
	defer d.Close()

	lang, ok := d.LanguageFor("src/Widgets.JSX")
	require.True(t, ok, "extension match is case-insensitive")
	assert.Equal(t, LangJavaScript, lang)

	_, ok = d.LanguageFor("README.md")
	assert.False(t, ok)
}

package parse

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	tree_sitter "github.com/tree-sitter/go-tree-sitter"
	tree_sitter_go "github.com/tree-sitter/tree-sitter-go/bindings/go"
	tree_sitter_javascript "github.com/tree-sitter/tree-sitter-javascript/bindings/go"
	tree_sitter_python "github.com/tree-sitter/tree-sitter-python/bindings/go"
	tree_sitter_rust "github.com/tree-sitter/tree-sitter-rust/bindings/go"
	tree_sitter_typescript "github.com/tree-sitter/tree-sitter-typescript/bindings/go"
)

// extractor turns a parsed tree-sitter AST into entities.
type extractor interface {
	Extract(root *tree_sitter.Node, source []byte, filePath string) []Entity
}

// TreeSitterParser implements Parser using tree-sitter grammars. A new
// tree-sitter parser is created per Parse call, so this type is safe for
// sequential reuse across files.
type TreeSitterParser struct {
	languages  map[Language]*tree_sitter.Language
	extractors map[Language]extractor
}

// NewTreeSitterParser creates a TreeSitterParser with Go, TypeScript,
// JavaScript, Python, and Rust grammars registered.
func NewTreeSitterParser() *TreeSitterParser {
	langs := map[Language]*tree_sitter.Language{
		LangGo:         tree_sitter.NewLanguage(tree_sitter_go.Language()),
		LangTypeScript: tree_sitter.NewLanguage(tree_sitter_typescript.LanguageTypescript()),
		LangJavaScript: tree_sitter.NewLanguage(tree_sitter_javascript.Language()),
		LangPython:     tree_sitter.NewLanguage(tree_sitter_python.Language()),
		LangRust:       tree_sitter.NewLanguage(tree_sitter_rust.Language()),
	}

	extractors := map[Language]extractor{
		LangGo:         &goExtractor{},
		LangTypeScript: &tsExtractor{},
		LangJavaScript: &jsExtractor{},
		LangPython:     &pyExtractor{},
		LangRust:       &rsExtractor{},
	}

	return &TreeSitterParser{
		languages:  langs,
		extractors: extractors,
	}
}

// Parse extracts entities from a single source file. Unrecognized constructs
// are skipped; the only failure mode is unreadable input.
func (p *TreeSitterParser) Parse(_ context.Context, path string, source []byte, lang Language) ([]Entity, error) {
	tsLang, ok := p.languages[lang]
	if !ok {
		return nil, fmt.Errorf("unsupported language: %s", lang)
	}

	ext, ok := p.extractors[lang]
	if !ok {
		return nil, fmt.Errorf("no extractor for language: %s", lang)
	}

	if !utf8.Valid(source) {
		return nil, &ParseError{Path: path, Err: fmt.Errorf("invalid UTF-8 content")}
	}

	parser := tree_sitter.NewParser()
	defer parser.Close()

	if err := parser.SetLanguage(tsLang); err != nil {
		return nil, &ParseError{Path: path, Err: fmt.Errorf("set language %s: %w", lang, err)}
	}

	tree := parser.Parse(source, nil)
	if tree == nil {
		return nil, &ParseError{Path: path, Err: fmt.Errorf("tree-sitter returned nil tree")}
	}
	defer tree.Close()

	entities := ext.Extract(tree.RootNode(), source, path)
	return assignIDs(entities), nil
}

// SupportedLanguages returns the languages this parser can handle.
func (p *TreeSitterParser) SupportedLanguages() []Language {
	langs := make([]Language, 0, len(p.languages))
	for l := range p.languages {
		langs = append(langs, l)
	}
	return langs
}

// Close is a no-op because parsers are created per Parse call.
func (p *TreeSitterParser) Close() error {
	return nil
}

// entityAt builds an Entity from a named declaration node, filling the span,
// signature, body, and any doc comment attached above the node.
func entityAt(node *tree_sitter.Node, source []byte, filePath, name string, kind EntityKind) Entity {
	body := node.Utf8Text(source)
	return Entity{
		Kind:      kind,
		Name:      name,
		FilePath:  filePath,
		StartLine: int(node.StartPosition().Row) + 1,
		EndLine:   int(node.EndPosition().Row) + 1,
		Signature: signatureOf(body),
		Doc:       docAbove(node, source),
		Body:      body,
	}
}

// docAbove collects the contiguous run of comment siblings immediately
// preceding a declaration, verbatim.
func docAbove(node *tree_sitter.Node, source []byte) string {
	var lines []string
	cur := node
	for prev := cur.PrevSibling(); prev != nil; prev = cur.PrevSibling() {
		kind := prev.Kind()
		if kind != "comment" && kind != "line_comment" && kind != "block_comment" {
			break
		}
		// A blank line separates a comment from the declaration below it.
		if cur.StartPosition().Row-prev.EndPosition().Row > 1 {
			break
		}
		lines = append([]string{prev.Utf8Text(source)}, lines...)
		cur = prev
	}
	return strings.Join(lines, "\n")
}

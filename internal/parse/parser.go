package parse

import (
	"context"
	"fmt"
	"strings"
)

// Parser extracts entities from source files.
// Implementations: TreeSitterParser (grammar-based), JacParser (pattern-based).
//
// Parsing is best-effort: constructs an implementation does not recognize are
// omitted, never reported as errors. A Parser fails only when it cannot read
// the file at all, and then with a *ParseError carrying the file path.
type Parser interface {
	// Parse extracts entities from a single source file in first-seen order.
	Parse(ctx context.Context, path string, source []byte, lang Language) ([]Entity, error)

	// SupportedLanguages returns the languages this parser can handle.
	SupportedLanguages() []Language

	// Close releases parser resources (tree-sitter C memory).
	Close() error
}

// ParseError reports a file that could not be read at all (bad encoding,
// truncated content). It is recovered by the Dispatcher, never fatal.
type ParseError struct {
	Path string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse %s: %v", e.Path, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// assignIDs gives every entity an ID that is unique within the file. The
// first occurrence of a name keeps the plain name; later duplicates get a
// "#n" suffix so that graph keys derived from them stay distinct.
func assignIDs(entities []Entity) []Entity {
	seen := make(map[string]int, len(entities))
	for i := range entities {
		name := entities[i].Name
		seen[name]++
		if seen[name] == 1 {
			entities[i].ID = name
		} else {
			entities[i].ID = fmt.Sprintf("%s#%d", name, seen[name])
		}
	}
	return entities
}

// signatureOf returns the first line of a declaration's text, which is a
// reasonable cross-language approximation of its signature.
func signatureOf(body string) string {
	if i := strings.IndexByte(body, '\n'); i >= 0 {
		body = body[:i]
	}
	return strings.TrimSpace(body)
}

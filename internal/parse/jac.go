package parse

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"
)

// JacParser extracts entities from Jac source files (the Jaseci agent
// language). No tree-sitter grammar exists for Jac, so extraction is
// pattern-based: declarations are matched line by line and block extents are
// recovered by brace counting. Best-effort by contract — anything the
// patterns miss is silently omitted.
type JacParser struct{}

// NewJacParser returns a JacParser.
func NewJacParser() *JacParser { return &JacParser{} }

// jacDecl pairs a declaration pattern with the entity kind it introduces.
// The name is always the first capture group.
type jacDecl struct {
	re   *regexp.Regexp
	kind EntityKind
}

var jacDecls = []jacDecl{
	{regexp.MustCompile(`^\s*walker\s+(\w+)\s*[{:]?`), KindWalker},
	{regexp.MustCompile(`^\s*node\s+(\w+)\s*[{:]?`), KindNode},
	{regexp.MustCompile(`^\s*edge\s+(\w+)\s*[{:]?`), KindEdge},
	{regexp.MustCompile(`^\s*enum\s+(\w+)\s*[{:]?`), KindEnum},
	{regexp.MustCompile(`^\s*can\s+(\w+)\s+with\b`), KindAbility},
	{regexp.MustCompile(`^\s*glob\s+(\w+)\s*=`), KindGlobal},
}

// Parse extracts walker, node, edge, enum, ability, and global declarations.
func (p *JacParser) Parse(_ context.Context, path string, source []byte, lang Language) ([]Entity, error) {
	if lang != LangJac {
		return nil, fmt.Errorf("unsupported language: %s", lang)
	}
	if !utf8.Valid(source) {
		return nil, &ParseError{Path: path, Err: fmt.Errorf("invalid UTF-8 content")}
	}

	lines := strings.Split(string(source), "\n")
	var entities []Entity

	for i, line := range lines {
		for _, d := range jacDecls {
			m := d.re.FindStringSubmatch(line)
			if m == nil {
				continue
			}
			start, end := i, jacBlockEnd(lines, i)
			body := strings.Join(lines[start:end+1], "\n")
			entities = append(entities, Entity{
				Kind:      d.kind,
				Name:      m[1],
				FilePath:  path,
				StartLine: start + 1,
				EndLine:   end + 1,
				Signature: strings.TrimSpace(line),
				Doc:       jacDocAbove(lines, i),
				Body:      body,
			})
			break
		}
	}

	return assignIDs(entities), nil
}

// SupportedLanguages returns the single language this parser handles.
func (p *JacParser) SupportedLanguages() []Language {
	return []Language{LangJac}
}

// Close is a no-op.
func (p *JacParser) Close() error { return nil }

// jacBlockEnd finds the last line of a brace-delimited block starting at
// line i. Declarations without an opening brace on their first line are
// treated as single-line.
func jacBlockEnd(lines []string, i int) int {
	depth := 0
	opened := false
	for j := i; j < len(lines); j++ {
		for _, c := range lines[j] {
			switch c {
			case '{':
				depth++
				opened = true
			case '}':
				depth--
			}
		}
		if !opened && j == i {
			return i
		}
		if opened && depth <= 0 {
			return j
		}
	}
	return len(lines) - 1
}

// jacDocAbove collects contiguous comment lines directly above line i.
func jacDocAbove(lines []string, i int) string {
	var doc []string
	for j := i - 1; j >= 0; j-- {
		trimmed := strings.TrimSpace(lines[j])
		if !strings.HasPrefix(trimmed, "#") && !strings.HasPrefix(trimmed, "//") {
			break
		}
		doc = append([]string{trimmed}, doc...)
	}
	return strings.Join(doc, "\n")
}

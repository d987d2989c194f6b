package parse

import (
	"strings"

	tree_sitter "github.com/tree-sitter/go-tree-sitter"
)

// pyExtractor extracts entities from Python source files.
type pyExtractor struct{}

func (e *pyExtractor) Extract(root *tree_sitter.Node, source []byte, filePath string) []Entity {
	var entities []Entity

	cursor := root.Walk()
	defer cursor.Close()

	e.walk(cursor, source, filePath, &entities)
	return entities
}

func (e *pyExtractor) walk(
	cursor *tree_sitter.TreeCursor,
	source []byte,
	filePath string,
	entities *[]Entity,
) {
	node := cursor.Node()

	switch node.Kind() {
	case "function_definition":
		kind := KindFunction
		if insideClass(node) {
			kind = KindMethod
		}
		if ent := namedEntity(node, source, filePath, kind); ent != nil {
			if doc := pyDocstring(node, source); doc != "" {
				ent.Doc = doc
			}
			*entities = append(*entities, *ent)
		}

	case "class_definition":
		if ent := namedEntity(node, source, filePath, KindClass); ent != nil {
			if doc := pyDocstring(node, source); doc != "" {
				ent.Doc = doc
			}
			*entities = append(*entities, *ent)
		}
	}

	if cursor.GotoFirstChild() {
		e.walk(cursor, source, filePath, entities)
		for cursor.GotoNextSibling() {
			e.walk(cursor, source, filePath, entities)
		}
		cursor.GotoParent()
	}
}

// insideClass reports whether a definition sits in a class body, possibly
// wrapped by a decorated_definition.
func insideClass(node *tree_sitter.Node) bool {
	parent := node.Parent()
	if parent != nil && parent.Kind() == "decorated_definition" {
		parent = parent.Parent()
	}
	if parent == nil || parent.Kind() != "block" {
		return false
	}
	grandparent := parent.Parent()
	return grandparent != nil && grandparent.Kind() == "class_definition"
}

// pyDocstring returns the docstring of a function or class definition: the
// leading string expression of its body block, quotes stripped.
func pyDocstring(node *tree_sitter.Node, source []byte) string {
	body := node.ChildByFieldName("body")
	if body == nil || body.ChildCount() == 0 {
		return ""
	}
	first := body.Child(0)
	if first == nil || first.Kind() != "expression_statement" || first.ChildCount() == 0 {
		return ""
	}
	str := first.Child(0)
	if str == nil || str.Kind() != "string" {
		return ""
	}
	text := str.Utf8Text(source)
	for _, q := range []string{`"""`, `'''`, `"`, `'`} {
		if strings.HasPrefix(text, q) && strings.HasSuffix(text, q) && len(text) >= 2*len(q) {
			return strings.TrimSpace(text[len(q) : len(text)-len(q)])
		}
	}
	return strings.TrimSpace(text)
}

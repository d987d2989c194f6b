package parse

import (
	tree_sitter "github.com/tree-sitter/go-tree-sitter"
)

// goExtractor extracts entities from Go source files.
type goExtractor struct{}

func (e *goExtractor) Extract(root *tree_sitter.Node, source []byte, filePath string) []Entity {
	var entities []Entity

	cursor := root.Walk()
	defer cursor.Close()

	e.walk(cursor, source, filePath, &entities)
	return entities
}

func (e *goExtractor) walk(
	cursor *tree_sitter.TreeCursor,
	source []byte,
	filePath string,
	entities *[]Entity,
) {
	node := cursor.Node()

	switch node.Kind() {
	case "function_declaration":
		if ent := namedEntity(node, source, filePath, KindFunction); ent != nil {
			*entities = append(*entities, *ent)
		}

	case "method_declaration":
		if ent := namedEntity(node, source, filePath, KindMethod); ent != nil {
			*entities = append(*entities, *ent)
		}

	case "type_declaration":
		*entities = append(*entities, e.extractTypeDeclaration(node, source, filePath)...)
	}

	if cursor.GotoFirstChild() {
		e.walk(cursor, source, filePath, entities)
		for cursor.GotoNextSibling() {
			e.walk(cursor, source, filePath, entities)
		}
		cursor.GotoParent()
	}
}

func (e *goExtractor) extractTypeDeclaration(node *tree_sitter.Node, source []byte, filePath string) []Entity {
	var result []Entity

	// type_declaration contains one or more type_spec children.
	for i := uint(0); i < node.ChildCount(); i++ {
		child := node.Child(i)
		if child == nil || child.Kind() != "type_spec" {
			continue
		}

		kind := KindType
		if typeNode := child.ChildByFieldName("type"); typeNode != nil {
			switch typeNode.Kind() {
			case "interface_type":
				kind = KindInterface
			case "struct_type":
				kind = KindStruct
			}
		}

		if ent := namedEntity(child, source, filePath, kind); ent != nil {
			// The doc comment sits above the enclosing type_declaration.
			if ent.Doc == "" {
				ent.Doc = docAbove(node, source)
			}
			result = append(result, *ent)
		}
	}
	return result
}

// namedEntity extracts an entity from a node with a "name" field child.
// Returns nil when the node carries no name (malformed or anonymous).
func namedEntity(node *tree_sitter.Node, source []byte, filePath string, kind EntityKind) *Entity {
	nameNode := node.ChildByFieldName("name")
	if nameNode == nil {
		return nil
	}
	name := nameNode.Utf8Text(source)
	if name == "" {
		return nil
	}
	ent := entityAt(node, source, filePath, name, kind)
	return &ent
}

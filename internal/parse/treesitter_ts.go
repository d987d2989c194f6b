package parse

import (
	tree_sitter "github.com/tree-sitter/go-tree-sitter"
)

// tsExtractor extracts entities from TypeScript source files.
type tsExtractor struct{}

func (e *tsExtractor) Extract(root *tree_sitter.Node, source []byte, filePath string) []Entity {
	var entities []Entity

	cursor := root.Walk()
	defer cursor.Close()

	walkScriptTree(cursor, source, filePath, &entities, true)
	return entities
}

// jsExtractor extracts entities from JavaScript source files. The grammar
// differs from TypeScript but the declaration surface this parser cares
// about is shared.
type jsExtractor struct{}

func (e *jsExtractor) Extract(root *tree_sitter.Node, source []byte, filePath string) []Entity {
	var entities []Entity

	cursor := root.Walk()
	defer cursor.Close()

	walkScriptTree(cursor, source, filePath, &entities, false)
	return entities
}

func walkScriptTree(
	cursor *tree_sitter.TreeCursor,
	source []byte,
	filePath string,
	entities *[]Entity,
	typescript bool,
) {
	node := cursor.Node()

	switch node.Kind() {
	case "function_declaration":
		if ent := namedEntity(node, source, filePath, KindFunction); ent != nil {
			*entities = append(*entities, *ent)
		}

	case "class_declaration":
		if ent := namedEntity(node, source, filePath, KindClass); ent != nil {
			*entities = append(*entities, *ent)
		}

	case "method_definition":
		if ent := namedEntity(node, source, filePath, KindMethod); ent != nil {
			*entities = append(*entities, *ent)
		}

	case "interface_declaration":
		if typescript {
			if ent := namedEntity(node, source, filePath, KindInterface); ent != nil {
				*entities = append(*entities, *ent)
			}
		}

	case "type_alias_declaration":
		if typescript {
			if ent := namedEntity(node, source, filePath, KindType); ent != nil {
				*entities = append(*entities, *ent)
			}
		}

	case "enum_declaration":
		if typescript {
			if ent := namedEntity(node, source, filePath, KindEnum); ent != nil {
				*entities = append(*entities, *ent)
			}
		}

	case "lexical_declaration", "variable_declaration":
		*entities = append(*entities, extractArrowFunctions(node, source, filePath)...)
	}

	if cursor.GotoFirstChild() {
		walkScriptTree(cursor, source, filePath, entities, typescript)
		for cursor.GotoNextSibling() {
			walkScriptTree(cursor, source, filePath, entities, typescript)
		}
		cursor.GotoParent()
	}
}

// extractArrowFunctions finds arrow function bindings inside a declaration
// statement (e.g. "const handle = (req) => { ... }").
func extractArrowFunctions(node *tree_sitter.Node, source []byte, filePath string) []Entity {
	var result []Entity

	for i := uint(0); i < node.ChildCount(); i++ {
		child := node.Child(i)
		if child == nil || child.Kind() != "variable_declarator" {
			continue
		}

		valueNode := child.ChildByFieldName("value")
		if valueNode == nil {
			continue
		}
		if valueNode.Kind() != "arrow_function" && valueNode.Kind() != "function_expression" {
			continue
		}

		nameNode := child.ChildByFieldName("name")
		if nameNode == nil {
			continue
		}
		name := nameNode.Utf8Text(source)
		if name == "" {
			continue
		}

		result = append(result, entityAt(child, source, filePath, name, KindFunction))
	}
	return result
}

package parse

import (
	tree_sitter "github.com/tree-sitter/go-tree-sitter"
)

// rsExtractor extracts entities from Rust source files.
type rsExtractor struct{}

func (e *rsExtractor) Extract(root *tree_sitter.Node, source []byte, filePath string) []Entity {
	var entities []Entity

	cursor := root.Walk()
	defer cursor.Close()

	e.walk(cursor, source, filePath, &entities, false)
	return entities
}

func (e *rsExtractor) walk(
	cursor *tree_sitter.TreeCursor,
	source []byte,
	filePath string,
	entities *[]Entity,
	inImpl bool,
) {
	node := cursor.Node()

	switch node.Kind() {
	case "function_item":
		kind := KindFunction
		if inImpl {
			kind = KindMethod
		}
		if ent := namedEntity(node, source, filePath, kind); ent != nil {
			*entities = append(*entities, *ent)
		}

	case "struct_item":
		if ent := namedEntity(node, source, filePath, KindStruct); ent != nil {
			*entities = append(*entities, *ent)
		}

	case "enum_item":
		if ent := namedEntity(node, source, filePath, KindEnum); ent != nil {
			*entities = append(*entities, *ent)
		}

	case "trait_item":
		if ent := namedEntity(node, source, filePath, KindTrait); ent != nil {
			*entities = append(*entities, *ent)
		}

	case "type_item":
		if ent := namedEntity(node, source, filePath, KindType); ent != nil {
			*entities = append(*entities, *ent)
		}

	case "impl_item":
		inImpl = true
	}

	if cursor.GotoFirstChild() {
		e.walk(cursor, source, filePath, entities, inImpl)
		for cursor.GotoNextSibling() {
			e.walk(cursor, source, filePath, entities, inImpl)
		}
		cursor.GotoParent()
	}
}

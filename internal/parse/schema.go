package parse

// --- Enums ---

// Language identifies a programming language for parsing.
type Language string

const (
	LangGo         Language = "go"
	LangTypeScript Language = "typescript"
	LangJavaScript Language = "javascript"
	LangPython     Language = "python"
	LangRust       Language = "rust"
	LangJac        Language = "jac"
)

// EntityKind classifies parsed declarations. The set is open: each language
// contributes its own kinds, and all of them conform to the shared Entity
// shape.
type EntityKind string

const (
	KindFunction  EntityKind = "function"
	KindMethod    EntityKind = "method"
	KindClass     EntityKind = "class"
	KindStruct    EntityKind = "struct"
	KindInterface EntityKind = "interface"
	KindEnum      EntityKind = "enum"
	KindTrait     EntityKind = "trait"
	KindType      EntityKind = "type"
	KindVariable  EntityKind = "variable"

	// Agent-oriented (Jac) kinds.
	KindWalker  EntityKind = "walker"
	KindNode    EntityKind = "node"
	KindAbility EntityKind = "ability"
	KindEdge    EntityKind = "edge"
	KindGlobal  EntityKind = "global"
)

// --- Models ---

// Entity is a single parsed declaration. ID is unique within the owning
// file's entity list; graph-wide identity is FilePath + "::" + ID and is the
// graph builder's concern.
type Entity struct {
	ID        string     `json:"id"`
	Kind      EntityKind `json:"kind"`
	Name      string     `json:"name"`
	FilePath  string     `json:"filePath"`
	StartLine int        `json:"startLine,omitempty"`
	EndLine   int        `json:"endLine,omitempty"`
	Signature string     `json:"signature,omitempty"`
	Doc       string     `json:"doc,omitempty"`
	Body      string     `json:"-"` // verbatim span text, kept for reference scanning
}

// Key returns the graph-wide key for the entity.
func (e Entity) Key() string {
	return e.FilePath + "::" + e.ID
}

// SourceFile is one tuple of the file tree handed over by the repository
// acquisition collaborator: a relative path, the raw contents for regular
// files, and a directory marker.
type SourceFile struct {
	Path    string
	Content []byte
	IsDir   bool
}

// Failure records a file the dispatcher could not parse. The run continues
// past failures; they are surfaced in the final report instead.
type Failure struct {
	Path   string `json:"path"`
	Reason string `json:"reason"`
}

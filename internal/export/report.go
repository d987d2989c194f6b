package export

import (
	"encoding/json"
	"io"
	"sort"
	"time"

	"github.com/morgan-labs/codegenius/internal/ccg"
	"github.com/morgan-labs/codegenius/internal/parse"
)

// FileEntities is one file's parsed entity list, in source order.
type FileEntities struct {
	Path     string         `json:"path"`
	Entities []parse.Entity `json:"entities"`
}

// Report is the payload handed to the external report assembler: the
// per-file entity mapping with failure notes, the graph view (nodes, edges,
// stats), and the rendered diagram text.
type Report struct {
	Repository  string          `json:"repository"`
	GeneratedAt time.Time       `json:"generatedAt"`
	Files       []FileEntities  `json:"files"`
	Failures    []parse.Failure `json:"failures,omitempty"`
	Nodes       []ccg.Node      `json:"nodes"`
	Edges       []ccg.Edge      `json:"edges"`
	Stats       ccg.Stats       `json:"stats"`
	Diagram     string          `json:"diagram"`
}

// NewReport assembles a Report. File sections are sorted by path so the
// payload serializes identically across runs.
func NewReport(
	repository string,
	parsed map[string][]parse.Entity,
	failures []parse.Failure,
	g *ccg.Graph,
	diagram string,
) *Report {
	files := make([]FileEntities, 0, len(parsed))
	for p, entities := range parsed {
		files = append(files, FileEntities{Path: p, Entities: entities})
	}
	sort.Slice(files, func(i, j int) bool { return files[i].Path < files[j].Path })

	return &Report{
		Repository:  repository,
		GeneratedAt: time.Now().UTC(),
		Files:       files,
		Failures:    failures,
		Nodes:       g.Nodes(),
		Edges:       g.Edges(),
		Stats:       g.Stats(),
		Diagram:     diagram,
	}
}

// Write serializes the report as indented JSON.
func (r *Report) Write(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(r)
}

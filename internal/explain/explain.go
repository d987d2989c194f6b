package explain

import (
	"context"
	"fmt"
	"strings"

	"github.com/morgan-labs/codegenius/internal/parse"
)

// Request is the payload sent to the text-generation collaborator for one
// entity of interest. The returned explanation is opaque to the core; the
// only validation applied is non-emptiness.
type Request struct {
	Name      string `json:"name"`
	Kind      string `json:"kind"`
	Signature string `json:"signature,omitempty"`
	Doc       string `json:"doc,omitempty"`
	FilePath  string `json:"filePath"`
}

// NewRequest builds a Request from a parsed entity.
func NewRequest(e parse.Entity) Request {
	return Request{
		Name:      e.Name,
		Kind:      string(e.Kind),
		Signature: e.Signature,
		Doc:       e.Doc,
		FilePath:  e.FilePath,
	}
}

// Prompt renders the request as the instruction text sent to the model.
func (r Request) Prompt() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Explain the %s %q from %s in two or three sentences for a repository documentation report.\n",
		r.Kind, r.Name, r.FilePath)
	if r.Signature != "" {
		fmt.Fprintf(&sb, "\nSignature:\n%s\n", r.Signature)
	}
	if r.Doc != "" {
		fmt.Fprintf(&sb, "\nExisting documentation:\n%s\n", r.Doc)
	}
	return sb.String()
}

// Explainer produces a natural-language explanation for an entity.
type Explainer interface {
	Explain(ctx context.Context, req Request) (string, error)
}

package explain

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/morgan-labs/codegenius/internal/parse"
)

func TestNewRequest(t *testing.T) {
	ent := parse.Entity{
		ID:        "Restock",
		Kind:      parse.KindMethod,
		Name:      "Restock",
		FilePath:  "internal/inventory/service.go",
		Signature: "func (c *Catalog) Restock(sku, label string, n int) (*Item, error) {",
		Doc:       "// Restock increases the count for a SKU.",
		Body:      "should never leak into the request",
	}

	req := NewRequest(ent)
	assert.Equal(t, "Restock", req.Name)
	assert.Equal(t, "method", req.Kind)
	assert.Equal(t, ent.Signature, req.Signature)
	assert.Equal(t, ent.Doc, req.Doc)
	assert.Equal(t, ent.FilePath, req.FilePath)
}

func TestRequest_Prompt(t *testing.T) {
	req := Request{
		Name:      "TriageAgent",
		Kind:      "walker",
		Signature: "walker TriageAgent {",
		Doc:       "# Walks the ticket queue.",
		FilePath:  "agents/triage.jac",
	}

	prompt := req.Prompt()
	assert.Contains(t, prompt, `walker "TriageAgent"`)
	assert.Contains(t, prompt, "agents/triage.jac")
	assert.Contains(t, prompt, "Signature:\nwalker TriageAgent {")
	assert.Contains(t, prompt, "Existing documentation:\n# Walks the ticket queue.")
}

func TestRequest_PromptOmitsEmptySections(t *testing.T) {
	req := Request{Name: "main", Kind: "function", FilePath: "main.go"}

	prompt := req.Prompt()
	assert.NotContains(t, prompt, "Signature:")
	assert.NotContains(t, prompt, "Existing documentation:")
}

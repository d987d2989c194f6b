package parse

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJacParser_Fixture(t *testing.T) {
	p := NewJacParser()
	defer p.Close()

	src := readFixture(t, "testdata/fixtures/jac_project/triage.jac")
	entities, err := p.Parse(context.Background(), "triage.jac", src, LangJac)
	require.NoError(t, err)

	modelName := findEntity(entities, "model_name")
	require.NotNil(t, modelName, "glob declaration should be extracted")
	assert.Equal(t, KindGlobal, modelName.Kind)
	assert.Equal(t, modelName.StartLine, modelName.EndLine, "glob is single-line")

	ticket := findEntity(entities, "Ticket")
	require.NotNil(t, ticket)
	assert.Equal(t, KindNode, ticket.Kind)
	assert.Contains(t, ticket.Doc, "A ticket waiting for triage")
	assert.Contains(t, ticket.Body, "has severity: int;")

	reportedBy := findEntity(entities, "ReportedBy")
	require.NotNil(t, reportedBy)
	assert.Equal(t, KindEdge, reportedBy.Kind)

	priority := findEntity(entities, "Priority")
	require.NotNil(t, priority)
	assert.Equal(t, KindEnum, priority.Kind)

	agent := findEntity(entities, "TriageAgent")
	require.NotNil(t, agent)
	assert.Equal(t, KindWalker, agent.Kind)
	assert.Contains(t, agent.Doc, "Walks the ticket queue")
	assertLineRange(t, agent)

	assign := findEntity(entities, "assign")
	require.NotNil(t, assign, "abilities inside walkers should be extracted")
	assert.Equal(t, KindAbility, assign.Kind)
	assert.Equal(t, "can assign with Ticket entry {", assign.Signature)

	summarize := findEntity(entities, "summarize")
	require.NotNil(t, summarize)
	assert.Equal(t, KindAbility, summarize.Kind)
}

func TestJacParser_BlockExtents(t *testing.T) {
	p := NewJacParser()
	src := []byte("walker W {\n    can go with entry {\n        visit [-->];\n    }\n}\n")

	entities, err := p.Parse(context.Background(), "w.jac", src, LangJac)
	require.NoError(t, err)
	require.Len(t, entities, 2)

	w := findEntity(entities, "W")
	require.NotNil(t, w)
	assert.Equal(t, 1, w.StartLine)
	assert.Equal(t, 5, w.EndLine, "walker block should span to its closing brace")

	ability := findEntity(entities, "go")
	require.NotNil(t, ability)
	assert.Equal(t, 2, ability.StartLine)
	assert.Equal(t, 4, ability.EndLine)
}

func TestJacParser_RejectsOtherLanguages(t *testing.T) {
	p := NewJacParser()
	_, err := p.Parse(context.Background(), "x.go", []byte("package x"), LangGo)
	assert.Error(t, err)
}

func TestJacParser_InvalidUTF8(t *testing.T) {
	p := NewJacParser()
	_, err := p.Parse(context.Background(), "bad.jac", []byte{0xff, 0xfe}, LangJac)
	var perr *ParseError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, "bad.jac", perr.Path)
}

package ccg

import (
	"fmt"
	"path"
	"regexp"
	"sort"
	"strings"
	"unicode"

	"go.uber.org/zap"

	"github.com/morgan-labs/codegenius/internal/parse"
)

// DefaultMaxEntities is the reference-scan ceiling: above this entity count
// the pairwise scan is skipped and the graph degrades to containment-only
// edges.
const DefaultMaxEntities = 2000

// Builder assembles the code context graph from the dispatcher's per-file
// entity mapping and the file tree.
type Builder struct {
	maxEntities int
	similarName bool
	logger      *zap.Logger
}

// BuilderOption configures a Builder.
type BuilderOption func(*Builder)

// WithMaxEntities sets the reference-scan ceiling. Zero or negative keeps
// the default.
func WithMaxEntities(n int) BuilderOption {
	return func(b *Builder) {
		if n > 0 {
			b.maxEntities = n
		}
	}
}

// WithSimilarNameFallback toggles the similar-name heuristic pass.
func WithSimilarNameFallback(enabled bool) BuilderOption {
	return func(b *Builder) { b.similarName = enabled }
}

// WithBuilderLogger sets the builder's logger. Defaults to a no-op logger.
func WithBuilderLogger(logger *zap.Logger) BuilderOption {
	return func(b *Builder) { b.logger = logger }
}

// NewBuilder returns a Builder with the default ceiling and the similar-name
// fallback enabled.
func NewBuilder(opts ...BuilderOption) *Builder {
	b := &Builder{
		maxEntities: DefaultMaxEntities,
		similarName: true,
		logger:      zap.NewNop(),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// entityRef is the flattened view of one entity used by the pairwise passes.
type entityRef struct {
	key  string
	name string
	text string
	word *regexp.Regexp
}

// Build constructs the graph:
//
//  1. directory nodes for every ancestor of a parsed file (plus explicit
//     directories from the tree), chained with contains edges;
//  2. a file node per parsed file and an entity node per entity, each owned
//     by its file via a contains edge;
//  3. a references edge A→B whenever B's name occurs as a whole word in A's
//     signature or body, unless the corpus exceeds the ceiling, in which
//     case the graph is marked degraded and keeps containment edges only;
//  4. optionally, a similar-name edge for pairs with no reference signal
//     whose names share a normalized token.
//
// Files are processed in sorted path order and entities in source order, so
// two builds over the same input yield identical node and edge sequences.
func (b *Builder) Build(tree []parse.SourceFile, parsed map[string][]parse.Entity) *Graph {
	g := NewGraph()

	paths := make([]string, 0, len(parsed))
	for p := range parsed {
		paths = append(paths, p)
	}
	sort.Strings(paths)

	// Explicit directories from the tree keep the structure visible even
	// when none of their files parsed.
	for _, f := range tree {
		if f.IsDir {
			b.addDirChain(g, f.Path)
		}
	}

	var refs []entityRef
	for _, filePath := range paths {
		dir := path.Dir(filePath)
		b.addDirChain(g, dir)

		g.AddNode(Node{Key: filePath, Label: path.Base(filePath), Type: NodeFile})
		if dir != "." && dir != "/" && dir != "" {
			g.AddEdge(Edge{Source: dir, Target: filePath, Relation: RelationContains})
		}

		for _, ent := range parsed[filePath] {
			key := ent.Key()
			g.AddNode(Node{Key: key, Label: ent.Name, Type: NodeType(ent.Kind)})
			g.AddEdge(Edge{Source: filePath, Target: key, Relation: RelationContains})
			refs = append(refs, entityRef{
				key:  key,
				name: ent.Name,
				text: ent.Signature + "\n" + ent.Body,
			})
		}
	}

	if len(refs) > b.maxEntities {
		warning := fmt.Sprintf(
			"reference inference skipped: %d entities exceed the ceiling of %d; graph degraded to containment edges",
			len(refs), b.maxEntities,
		)
		b.logger.Warn("graph construction limit exceeded",
			zap.Int("entities", len(refs)),
			zap.Int("ceiling", b.maxEntities),
		)
		g.markDegraded(warning)
		return g
	}

	b.scanReferences(g, refs)
	if b.similarName {
		b.scanSimilarNames(g, refs)
	}
	return g
}

// addDirChain creates a directory node for every segment of dir and chains
// parent→child contains edges, mirroring the file system.
func (b *Builder) addDirChain(g *Graph, dir string) {
	dir = path.Clean(strings.TrimPrefix(dir, "./"))
	if dir == "." || dir == "/" || dir == "" {
		return
	}
	segments := strings.Split(dir, "/")
	prefix := ""
	for _, seg := range segments {
		cur := seg
		if prefix != "" {
			cur = prefix + "/" + seg
		}
		g.AddNode(Node{Key: cur, Label: seg, Type: NodeDirectory})
		if prefix != "" {
			g.AddEdge(Edge{Source: prefix, Target: cur, Relation: RelationContains})
		}
		prefix = cur
	}
}

// scanReferences runs the pairwise whole-word scan. Explicitly O(N²·M); the
// caller has already enforced the ceiling.
func (b *Builder) scanReferences(g *Graph, refs []entityRef) {
	for i := range refs {
		refs[i].word = wordPattern(refs[i].name)
	}
	for i := range refs {
		for j := range refs {
			if i == j {
				continue
			}
			if refs[j].word.MatchString(refs[i].text) {
				g.AddEdge(Edge{Source: refs[i].key, Target: refs[j].key, Relation: RelationReferences})
			}
		}
	}
}

// scanSimilarNames adds weak similar-name edges for pairs with no reference
// signal in either direction whose names share a normalized token. Purely a
// fallback so sparse corpora don't render as disconnected islands; false
// positives are acceptable.
func (b *Builder) scanSimilarNames(g *Graph, refs []entityRef) {
	tokens := make([]map[string]bool, len(refs))
	for i := range refs {
		tokens[i] = nameTokens(refs[i].name)
	}
	for i := range refs {
		for j := i + 1; j < len(refs); j++ {
			if refs[i].name == refs[j].name {
				continue
			}
			if g.HasEdge(refs[i].key, refs[j].key, RelationReferences) ||
				g.HasEdge(refs[j].key, refs[i].key, RelationReferences) {
				continue
			}
			if sharesToken(tokens[i], tokens[j]) {
				g.AddEdge(Edge{Source: refs[i].key, Target: refs[j].key, Relation: RelationSimilarName})
			}
		}
	}
}

// wordPattern compiles a case-sensitive whole-word matcher for a name.
func wordPattern(name string) *regexp.Regexp {
	return regexp.MustCompile(`\b` + regexp.QuoteMeta(name) + `\b`)
}

// nameTokens splits an identifier on case transitions, underscores, hyphens,
// and digits, lowercases the pieces, and drops tokens shorter than 3 runes.
func nameTokens(name string) map[string]bool {
	var words []string
	var cur []rune
	flush := func() {
		if len(cur) >= 3 {
			words = append(words, strings.ToLower(string(cur)))
		}
		cur = cur[:0]
	}
	runes := []rune(name)
	for i, r := range runes {
		switch {
		case r == '_' || r == '-' || unicode.IsDigit(r):
			flush()
		case unicode.IsUpper(r) && i > 0 && unicode.IsLower(runes[i-1]):
			flush()
			cur = append(cur, r)
		default:
			cur = append(cur, r)
		}
	}
	flush()

	set := make(map[string]bool, len(words))
	for _, w := range words {
		set[w] = true
	}
	return set
}

func sharesToken(a, b map[string]bool) bool {
	for t := range a {
		if b[t] {
			return true
		}
	}
	return false
}

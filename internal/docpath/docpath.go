// Package docpath parses and builds dotted paths that address elements
// inside a knowledge document, like "structured_knowledge.components[2].name".
// Paths are the target type of the source map and the address vocabulary of
// the reverse translator's structural audit.
package docpath

import (
	"fmt"
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

var pathLexer = lexer.MustStateful(lexer.Rules{
	"Root": {
		{"Ident", `[a-zA-Z_][a-zA-Z0-9_]*`, nil},
		{"Int", `[0-9]+`, nil},
		{"Punct", `[.\[\]]`, nil},
	},
})

// Path is an ordered list of segments, outermost first.
type Path struct {
	Segments []*Segment `@@ ( "." @@ )*`
}

// Segment is one step into the document: a key plus an optional sequence
// index applied after the key.
type Segment struct {
	Key   string `@Ident`
	Index *int   `( "[" @Int "]" )?`
}

var parser = buildParser()

func buildParser() *participle.Parser[Path] {
	p, err := participle.Build[Path](
		participle.Lexer(pathLexer),
		participle.UseLookahead(2),
	)
	if err != nil {
		panic(fmt.Errorf("failed to build path parser: %w", err))
	}
	return p
}

// Parse parses a dotted path expression.
func Parse(input string) (*Path, error) {
	return parser.ParseString("", input)
}

// New starts a path at a root key.
func New(key string) *Path {
	return &Path{Segments: []*Segment{{Key: key}}}
}

// Child returns a copy of the path extended by one key segment. The
// receiver is never modified, so held paths stay stable.
func (p *Path) Child(key string) *Path {
	segments := make([]*Segment, len(p.Segments), len(p.Segments)+1)
	copy(segments, p.Segments)
	return &Path{Segments: append(segments, &Segment{Key: key})}
}

// At returns a copy of the path whose final segment gains a sequence index.
func (p *Path) At(index int) *Path {
	if len(p.Segments) == 0 {
		return p
	}
	segments := make([]*Segment, len(p.Segments))
	copy(segments, p.Segments)
	last := *segments[len(segments)-1]
	last.Index = &index
	segments[len(segments)-1] = &last
	return &Path{Segments: segments}
}

func (p *Path) String() string {
	var b strings.Builder
	for i, seg := range p.Segments {
		if i > 0 {
			b.WriteString(".")
		}
		b.WriteString(seg.Key)
		if seg.Index != nil {
			fmt.Fprintf(&b, "[%d]", *seg.Index)
		}
	}
	return b.String()
}

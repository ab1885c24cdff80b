package translate

import (
	"lucid/internal/ast"
	"lucid/internal/docpath"
)

// MapEntry pairs one source position with the document path it translated to.
type MapEntry struct {
	Pos  ast.Position
	Path *docpath.Path
}

// SourceMap is the bidirectional index between source positions and
// document paths. Each position and each path is mapped at most once;
// later writes for an already-mapped endpoint are ignored.
type SourceMap struct {
	entries    []MapEntry
	toDocument map[ast.Position]*docpath.Path
	toSource   map[string]ast.Position
}

func NewSourceMap() *SourceMap {
	return &SourceMap{
		toDocument: make(map[ast.Position]*docpath.Path),
		toSource:   make(map[string]ast.Position),
	}
}

// AddMapping records a position/path pair in both directions. The first
// mapping for a given endpoint wins.
func (m *SourceMap) AddMapping(pos ast.Position, path *docpath.Path) {
	if path == nil {
		return
	}
	key := path.String()
	if _, seen := m.toDocument[pos]; seen {
		return
	}
	if _, seen := m.toSource[key]; seen {
		return
	}
	m.toDocument[pos] = path
	m.toSource[key] = pos
	m.entries = append(m.entries, MapEntry{Pos: pos, Path: path})
}

// ToDocument resolves a source position to its document path.
func (m *SourceMap) ToDocument(pos ast.Position) (*docpath.Path, bool) {
	path, ok := m.toDocument[pos]
	return path, ok
}

// ToSource resolves a document path back to the source position it came from.
func (m *SourceMap) ToSource(path *docpath.Path) (ast.Position, bool) {
	if path == nil {
		return ast.Position{}, false
	}
	pos, ok := m.toSource[path.String()]
	return pos, ok
}

// Entries returns the recorded mappings in insertion order.
func (m *SourceMap) Entries() []MapEntry {
	out := make([]MapEntry, len(m.entries))
	copy(out, m.entries)
	return out
}

func (m *SourceMap) Len() int {
	return len(m.entries)
}

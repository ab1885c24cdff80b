package knowledge

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"

	"lucid/internal/docpath"
)

func TestObjectPreservesInsertionOrder(t *testing.T) {
	obj := NewObject().
		Set("gamma", 1.0).
		Set("alpha", 2.0).
		Set("beta", 3.0)

	assert.Equal(t, []string{"gamma", "alpha", "beta"}, obj.Keys())
	assert.Equal(t, 3, obj.Len())

	obj.Set("alpha", 9.0)
	assert.Equal(t, []string{"gamma", "alpha", "beta"}, obj.Keys(), "Re-setting a key should keep its position")
	v, ok := obj.GetNumber("alpha")
	assert.True(t, ok)
	assert.Equal(t, 9.0, v)
}

func TestObjectMarshalsInInsertionOrder(t *testing.T) {
	obj := NewObject().
		Set("zeta", "last_first").
		Set("alpha", true).
		Set("nested", NewObject().Set("b", 1.5).Set("a", 2.5))

	data, err := json.Marshal(obj)
	assert.NoError(t, err, "Should marshal without error")
	assert.Equal(t, `{"zeta":"last_first","alpha":true,"nested":{"b":1.5,"a":2.5}}`, string(data))
}

func TestObjectUnmarshalRoundTrip(t *testing.T) {
	input := `{"outer":"value","list":[1.5,{"inner":true}],"child":{"x":"y"}}`

	obj := NewObject()
	err := json.Unmarshal([]byte(input), obj)
	assert.NoError(t, err, "Should unmarshal without error")
	assert.Equal(t, []string{"outer", "list", "child"}, obj.Keys())

	list, ok := obj.Get("list")
	assert.True(t, ok)
	arr, ok := list.([]any)
	assert.True(t, ok, "JSON array should decode to []any")
	assert.Len(t, arr, 2)

	element, ok := arr[1].(*Object)
	assert.True(t, ok, "Objects inside arrays should decode to *Object")
	inner, ok := element.Get("inner")
	assert.True(t, ok)
	assert.Equal(t, true, inner)

	data, err := json.Marshal(obj)
	assert.NoError(t, err)
	assert.Equal(t, input, string(data), "Marshal should reproduce the original document")
}

func TestCanonicalSortsKeysAtEveryLevel(t *testing.T) {
	obj := NewObject().
		Set("zebra", 1.0).
		Set("apple", NewObject().Set("z", 1.0).Set("a", 2.0))

	canonical, err := obj.Canonical()
	assert.NoError(t, err, "Should serialize without error")
	assert.Equal(t, `{"apple":{"a":2,"z":1},"zebra":1}`, string(canonical))
}

func TestCanonicalIsInsertionOrderIndependent(t *testing.T) {
	first := NewObject().Set("a", 1.0).Set("b", 2.0)
	second := NewObject().Set("b", 2.0).Set("a", 1.0)

	c1, err := first.Canonical()
	assert.NoError(t, err)
	c2, err := second.Canonical()
	assert.NoError(t, err)
	assert.Equal(t, string(c1), string(c2), "Same content should canonicalize identically")
}

func TestLookupWalksPathsAndIndexes(t *testing.T) {
	doc := NewObject().Set("structured_knowledge", NewObject().
		Set("type", "program").
		Set("components", []any{
			NewObject().Set("belief", NewObject().Set("fact", "variable_x_initialized")),
			NewObject().Set("belief", NewObject().Set("fact", "variable_y_initialized")),
		}))

	path, err := docpath.Parse("structured_knowledge.components[1].belief.fact")
	assert.NoError(t, err, "Path should parse")

	value, ok := doc.Lookup(*path)
	assert.True(t, ok, "Lookup should resolve the full path")
	assert.Equal(t, "variable_y_initialized", value)
}

func TestLookupReportsMissingRatherThanGuessing(t *testing.T) {
	doc := NewObject().Set("structured_knowledge", NewObject().
		Set("components", []any{NewObject().Set("belief", "flat")}))

	for _, bad := range []string{
		"structured_knowledge.missing",
		"structured_knowledge.components[5]",
		"structured_knowledge.components[0].belief.fact",
	} {
		path, err := docpath.Parse(bad)
		assert.NoError(t, err, "Path %s should parse", bad)
		_, ok := doc.Lookup(*path)
		assert.False(t, ok, "Lookup of %s should report no match", bad)
	}
}

func TestRenderDocumentReparses(t *testing.T) {
	doc := NewObject().
		Set("structured_knowledge", NewObject().
			Set("type", "program").
			Set("components", []any{
				NewObject().Set("belief", NewObject().Set("fact", "variable_x_initialized")),
			}).
			Set("verified", true)).
		Set("intent", NewObject().
			Set("to_perform", "execute_program").
			Set("confidence_level", 0.9)).
		Set("versioning_info", NewObject().
			Set("deep_layer_version", "2.0"))

	rendered := RenderDocument(doc)
	program, err := ParseSource("doc.noe", rendered)
	assert.NoError(t, err, "Rendered document should re-parse")
	assert.Len(t, program.Statements, 3, "Each root key should produce a statement")

	first, ok := program.Statements[0].(*Block)
	assert.True(t, ok, "structured_knowledge should render as a block")
	assert.Equal(t, StructuredKnowledgeBlock, first.Kind)

	keys := make([]string, 0, len(first.Entries))
	for _, entry := range first.Entries {
		keys = append(keys, entry.Key)
	}
	assert.Equal(t, []string{"type", "components", "verified"}, keys, "Block entries should keep document keys")

	second, ok := program.Statements[1].(*Block)
	assert.True(t, ok, "intent should render as a block")
	assert.Equal(t, IntentBlock, second.Kind)

	third, ok := program.Statements[2].(*Assignment)
	assert.True(t, ok, "Non-keyword root keys should render as assignments")
	assert.Equal(t, "versioning_info", third.Name)
}

func TestRenderDocumentEscapesEmbeddedQuotes(t *testing.T) {
	doc := NewObject().Set("belief", NewObject().
		Set("fact", `says "hello" loudly`))

	rendered := RenderDocument(doc)
	program, err := ParseSource("doc.noe", rendered)
	assert.NoError(t, err, "Escaped quotes should survive re-parsing")

	block := program.Statements[0].(*Block)
	assert.Equal(t, "fact", block.Entries[0].Key)
}

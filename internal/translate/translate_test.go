package translate

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lucid/internal/ast"
	"lucid/internal/docpath"
	"lucid/internal/errors"
	"lucid/internal/knowledge"
	"lucid/internal/parser"
)

const sampleSource = `fn add(a: Int, b: Int) -> Int {
  return a + b;
}

var counter = 8
let label = "ready"
const limit = 100

if counter > 0 {
  counter = counter - 1
} else {
  counter = limit
}

while counter > 0 {
  counter = counter - 1
}
`

// translateSample parses and translates the shared sample program with a
// fixed clock so repeated runs produce identical documents.
func translateSample(t *testing.T) (*Translator, *Result, *ast.Program) {
	t.Helper()

	program, err := parser.ParseSource("sample.lc", sampleSource)
	require.NoError(t, err, "Sample source should parse")

	translator := NewTranslator()
	translator.now = func() time.Time {
		return time.Date(2026, time.March, 14, 9, 30, 0, 0, time.UTC)
	}
	result, err := translator.Translate(program, sampleSource)
	require.NoError(t, err, "Sample source should translate")
	return translator, result, program
}

func components(t *testing.T, document *knowledge.Object) []any {
	t.Helper()

	sk, ok := document.GetObject("structured_knowledge")
	require.True(t, ok, "Document should have a structured_knowledge root")
	raw, ok := sk.Get("components")
	require.True(t, ok, "structured_knowledge should carry components")
	list, ok := raw.([]any)
	require.True(t, ok, "components should be a sequence")
	return list
}

func fragmentAt(t *testing.T, document *knowledge.Object, index int) *knowledge.Object {
	t.Helper()

	list := components(t, document)
	require.Greater(t, len(list), index, "Component index should exist")
	fragment, ok := list[index].(*knowledge.Object)
	require.True(t, ok, "Component should be an object")
	return fragment
}

func TestTranslateProducesVerifiableProof(t *testing.T) {
	_, result, _ := translateSample(t)

	require.NotNil(t, result.Proof, "Translation should attach a proof")
	assert.Nil(t, result.Proof.Verify(sampleSource, result.Document),
		"An untouched translation should verify")
	assert.Nil(t, result.Proof.VerifyDocument(result.Document),
		"The document-only check should pass as well")
	assert.Equal(t, Version, result.Proof.TranslatorVersion)
}

func TestProofFailsClosedOnSourceMutation(t *testing.T) {
	_, result, _ := translateSample(t)

	diag := result.Proof.Verify(sampleSource+" ", result.Document)
	require.NotNil(t, diag, "A changed source should not verify")
	assert.Equal(t, errors.ErrorSourceHashMismatch, diag.Code)
}

func TestProofFailsClosedOnDocumentMutation(t *testing.T) {
	_, result, _ := translateSample(t)

	result.Document.Set("injected", "tampering")
	diag := result.Proof.Verify(sampleSource, result.Document)
	require.NotNil(t, diag, "A changed document should not verify")
	assert.Equal(t, errors.ErrorTargetHashMismatch, diag.Code)
}

func TestProofFailsClosedOnTamperedProofFields(t *testing.T) {
	_, result, _ := translateSample(t)

	tampered := *result.Proof
	tampered.TranslatorVersion = "9.9"
	diag := tampered.Verify(sampleSource, result.Document)
	require.NotNil(t, diag, "A reversioned proof should not verify")
	assert.Equal(t, errors.ErrorProofIrreproducible, diag.Code)

	tampered = *result.Proof
	tampered.Timestamp = "2031-01-01T00:00:00Z"
	diag = tampered.Verify(sampleSource, result.Document)
	require.NotNil(t, diag, "A redated proof should not verify")
	assert.Equal(t, errors.ErrorProofIrreproducible, diag.Code)

	tampered = *result.Proof
	tampered.ProofHash = "0000"
	diag = tampered.Verify(sampleSource, result.Document)
	require.NotNil(t, diag, "A rewritten proof hash should not verify")
	assert.Equal(t, errors.ErrorProofIrreproducible, diag.Code)
}

func TestProofSerializesWithStableFieldNames(t *testing.T) {
	_, result, _ := translateSample(t)

	data, err := json.Marshal(result.Proof)
	require.NoError(t, err)
	for _, field := range []string{"source_hash", "target_hash", "translator_version", "timestamp", "proof_hash"} {
		assert.Contains(t, string(data), `"`+field+`"`, "Proof JSON should use snake_case field names")
	}

	var decoded Proof
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, *result.Proof, decoded, "Proofs should round-trip through JSON")
}

func TestFunctionFragmentShape(t *testing.T) {
	_, result, _ := translateSample(t)
	fragment := fragmentAt(t, result.Document, 0)

	sk, ok := fragment.GetObject("structured_knowledge")
	require.True(t, ok, "Function fragment should carry structured_knowledge")

	kind, _ := sk.GetString("type")
	assert.Equal(t, "function_definition", kind)
	name, _ := sk.GetString("name")
	assert.Equal(t, "add", name)
	returnType, _ := sk.GetString("return_type")
	assert.Equal(t, "Int", returnType)
	syntax, _ := sk.GetString("original_syntax")
	assert.Equal(t, "lucid", syntax)

	raw, ok := sk.Get("parameters")
	require.True(t, ok)
	params, ok := raw.([]any)
	require.True(t, ok)
	require.Len(t, params, 2, "add should record both parameters")

	first, ok := params[0].(*knowledge.Object)
	require.True(t, ok)
	paramName, _ := first.GetString("name")
	assert.Equal(t, "a", paramName)
	constraints, ok := first.GetObject("constraints")
	require.True(t, ok, "Int parameters should carry constraints")
	rangeHint, _ := constraints.GetString("range")
	assert.Equal(t, "machine_integer_range", rangeHint)

	provenance, ok := fragment.GetObject("provenance")
	require.True(t, ok, "Function fragment should carry provenance")
	lines, ok := provenance.Get("original_lines")
	require.True(t, ok)
	assert.Equal(t, []any{1, 3}, lines, "Provenance should span the definition lines")

	intent, ok := fragment.GetObject("intent")
	require.True(t, ok, "Function fragment should carry an intent")
	toPerform, _ := intent.GetString("to_perform")
	assert.Equal(t, "execute_function_add", toPerform)

	rc, ok := fragment.GetObject("reasoning_context")
	require.True(t, ok, "Function fragment should carry a reasoning context")
	threshold, _ := rc.GetNumber("confidence_threshold")
	assert.Equal(t, 0.7, threshold)
}

func TestDeclarationFragmentsTrackMutability(t *testing.T) {
	_, result, _ := translateSample(t)

	mutable := fragmentAt(t, result.Document, 1)
	belief, ok := mutable.GetObject("belief")
	require.True(t, ok, "var declarations should become beliefs")
	fact, _ := belief.GetString("fact")
	assert.Equal(t, "variable_counter_initialized", fact)
	decay, _ := belief.GetString("certainty_decay")
	assert.Equal(t, "over_time", decay, "Mutable bindings should decay")
	value, _ := belief.Get("value")
	assert.Equal(t, int64(8), value)

	immutable := fragmentAt(t, result.Document, 2)
	belief, ok = immutable.GetObject("belief")
	require.True(t, ok, "let declarations should become beliefs")
	decay, _ = belief.GetString("certainty_decay")
	assert.Equal(t, "none", decay, "Immutable bindings should not decay")

	constant := fragmentAt(t, result.Document, 3)
	belief, ok = constant.GetObject("belief")
	require.True(t, ok, "const declarations should become beliefs")
	fact, _ = belief.GetString("fact")
	assert.Equal(t, "constant_limit_initialized", fact)
	decay, _ = belief.GetString("certainty_decay")
	assert.Equal(t, "none", decay)
}

func TestConditionalFragmentShape(t *testing.T) {
	_, result, _ := translateSample(t)
	fragment := fragmentAt(t, result.Document, 4)

	rc, ok := fragment.GetObject("reasoning_context")
	require.True(t, ok, "Conditionals should become reasoning contexts")

	condition, _ := rc.GetString("condition")
	assert.Contains(t, condition, "counter", "Condition text should survive")

	branches, ok := rc.GetObject("branches")
	require.True(t, ok)
	rawThen, ok := branches.Get("then")
	require.True(t, ok)
	thenList, ok := rawThen.([]any)
	require.True(t, ok)
	require.Len(t, thenList, 1, "Then branch should record one statement")

	entry, ok := thenList[0].(*knowledge.Object)
	require.True(t, ok)
	kind, _ := entry.GetString("statement_type")
	assert.Equal(t, "assign_stmt", kind)
	content, _ := entry.GetString("content")
	assert.Contains(t, content, "counter")
	_, ok = entry.GetObject("provenance")
	assert.True(t, ok, "Branch statements should carry provenance")

	debug, ok := rc.GetObject("debugging_info")
	require.True(t, ok)
	coverage, ok := debug.GetObject("branch_coverage")
	require.True(t, ok)
	thenVisited, ok := coverage.Get("then_visited")
	require.True(t, ok)
	assert.Equal(t, false, thenVisited, "Coverage starts unobserved")
}

func TestLoopBecomesStructuralBelief(t *testing.T) {
	_, result, _ := translateSample(t)
	fragment := fragmentAt(t, result.Document, 5)

	belief, ok := fragment.GetObject("belief")
	require.True(t, ok, "Loops should fall back to structural beliefs")
	fact, _ := belief.GetString("fact")
	assert.Equal(t, "program_contains_while_loop", fact)
	confidence, _ := belief.GetNumber("confidence")
	assert.Equal(t, 0.8, confidence)
}

func TestDocumentCarriesVersioningInfo(t *testing.T) {
	_, result, _ := translateSample(t)

	info, ok := result.Document.GetObject("versioning_info")
	require.True(t, ok, "Documents should carry versioning info")
	surface, _ := info.GetString("surface_layer_version")
	assert.Equal(t, SurfaceVersion, surface)
	deep, _ := info.GetString("deep_layer_version")
	assert.Equal(t, DeepVersion, deep)

	matrix, ok := info.GetObject("compatibility_matrix")
	require.True(t, ok)
	minimum, _ := matrix.GetString("minimum_surface_version")
	assert.Equal(t, MinimumSurfaceVersion, minimum)

	intent, ok := result.Document.GetObject("intent")
	require.True(t, ok, "Documents should carry a program intent")
	toPerform, _ := intent.GetString("to_perform")
	assert.Equal(t, "execute_program", toPerform)
}

func TestCompatibleWith(t *testing.T) {
	tests := []struct {
		surface string
		deep    string
		want    bool
	}{
		{"1.0", "2.0", true},
		{"1.2", "2.5", true},
		{"v1.0", "v2.0", true},
		{"0.9", "2.0", false},
		{"1.0", "3.0", false},
		{"1.0", "1.9", false},
		{"", "2.0", false},
		{"1.0", "", false},
		{"garbage", "2.0", false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, CompatibleWith(tt.surface, tt.deep),
			"surface %q with deep %q", tt.surface, tt.deep)
	}
}

func TestSourceMapRoundTrip(t *testing.T) {
	_, result, program := translateSample(t)

	require.Equal(t, len(program.Statements), result.SourceMap.Len(),
		"Each top-level statement should be mapped")

	path, ok := result.SourceMap.ToDocument(program.Statements[0].NodePos())
	require.True(t, ok, "The first statement should map into the document")
	assert.Equal(t, "structured_knowledge.components[0]", path.String())

	parsed, err := docpath.Parse("structured_knowledge.components[1]")
	require.NoError(t, err)
	pos, ok := result.SourceMap.ToSource(parsed)
	require.True(t, ok, "Paths should map back to positions")
	assert.Equal(t, program.Statements[1].NodePos(), pos)

	value, ok := result.Document.Lookup(*path)
	require.True(t, ok, "Mapped paths should resolve inside the document")
	_, ok = value.(*knowledge.Object)
	assert.True(t, ok, "A component path should land on a fragment")
}

func TestSourceMapFirstWriteWins(t *testing.T) {
	m := NewSourceMap()
	pos := ast.Position{Filename: "a.lc", Line: 1, Column: 0}

	m.AddMapping(pos, docpath.New("structured_knowledge").Child("components").At(0))
	m.AddMapping(pos, docpath.New("structured_knowledge").Child("components").At(9))

	path, ok := m.ToDocument(pos)
	require.True(t, ok)
	assert.Equal(t, "structured_knowledge.components[0]", path.String(),
		"The first mapping for a position should win")
	assert.Equal(t, 1, m.Len())
}

func TestEmptyProgramWarnsAboutEmptySourceMap(t *testing.T) {
	program, err := parser.ParseSource("empty.lc", "")
	require.NoError(t, err)

	result, err := NewTranslator().Translate(program, "")
	require.NoError(t, err)

	assert.Equal(t, 0, result.SourceMap.Len())
	require.Len(t, result.Warnings, 1, "An empty map should be reported, not rejected")
	assert.Equal(t, errors.WarningEmptySourceMap, result.Warnings[0].Code)
}

func TestProofLogRecordsTranslations(t *testing.T) {
	translator, result, _ := translateSample(t)

	id := ProgramID(sampleSource)
	assert.Equal(t, id, ProgramID(sampleSource), "Fingerprints should be deterministic")
	assert.Len(t, id, 16)

	proofs := translator.Log().Lookup(id)
	require.Len(t, proofs, 1, "The translation should be logged under its fingerprint")
	assert.Equal(t, result.Proof, proofs[0])

	translator.Log().Disable()
	program, err := parser.ParseSource("again.lc", sampleSource)
	require.NoError(t, err)
	_, err = translator.Translate(program, sampleSource)
	require.NoError(t, err)
	assert.Equal(t, 1, translator.Log().Len(), "A disabled log should stop recording")
}

func TestReverseReconstructsParsableSkeleton(t *testing.T) {
	translator, result, _ := translateSample(t)

	reversed := translator.Reverse(result.Document, result.Proof)

	assert.Contains(t, reversed.Source, "fn add(a: Int, b: Int) -> Int {")
	assert.Contains(t, reversed.Source, "// body not recoverable")
	assert.Contains(t, reversed.Source, "variable_counter_initialized")
	assert.Contains(t, reversed.Source, "program_contains_while_loop")

	_, err := parser.ParseSource("reversed.lc", reversed.Source)
	assert.NoError(t, err, "The reconstructed skeleton should still parse")

	require.Len(t, reversed.Warnings, 1, "Lossy function bodies should be reported")
	assert.Equal(t, errors.WarningLossyReverse, reversed.Warnings[0].Code)

	require.NotNil(t, reversed.Verification, "Reversing with a proof should verify")
	assert.True(t, reversed.Verification.Passed)
	assert.Equal(t, 1.0, reversed.Verification.Confidence)
	assert.Empty(t, reversed.Verification.Differences)
	assert.False(t, reversed.Verification.BodiesReconstructed,
		"Bodies are never reconstructed from a document")
}

func TestReverseWithoutProofSkipsVerification(t *testing.T) {
	translator, result, _ := translateSample(t)

	reversed := translator.Reverse(result.Document, nil)
	assert.Nil(t, reversed.Verification, "No proof means nothing to verify against")
	assert.NotEmpty(t, reversed.Source)
}

func TestReverseReportsTamperedDocuments(t *testing.T) {
	translator, result, _ := translateSample(t)

	sk, ok := result.Document.GetObject("structured_knowledge")
	require.True(t, ok)
	raw, ok := sk.Get("components")
	require.True(t, ok)
	list, ok := raw.([]any)
	require.True(t, ok)
	list[1] = "garbage"

	reversed := translator.Reverse(result.Document, result.Proof)
	require.NotNil(t, reversed.Verification)
	assert.False(t, reversed.Verification.Passed, "A tampered document should fail the hash check")
	assert.Contains(t, reversed.Verification.Differences, "structured_knowledge.components[1]")
	assert.InDelta(t, 0.95, reversed.Verification.Confidence, 1e-9,
		"Each difference should cost a fixed penalty")
}

func TestAuditFlagsMissingRoots(t *testing.T) {
	differences := auditDocument(knowledge.NewObject())

	assert.Contains(t, differences, "structured_knowledge")
	assert.Contains(t, differences, "intent")
	assert.Contains(t, differences, "versioning_info")
}

func TestAuditFlagsIncompatibleVersions(t *testing.T) {
	_, result, _ := translateSample(t)

	info, ok := result.Document.GetObject("versioning_info")
	require.True(t, ok)
	info.Set("deep_layer_version", "3.0")

	differences := auditDocument(result.Document)
	assert.Contains(t, differences, "versioning_info.compatibility_matrix")
}

func TestDocumentSurvivesJSONRoundTripWithProof(t *testing.T) {
	_, result, _ := translateSample(t)

	data, err := json.Marshal(result.Document)
	require.NoError(t, err)

	var decoded knowledge.Object
	require.NoError(t, json.Unmarshal(data, &decoded))

	assert.Nil(t, result.Proof.VerifyDocument(&decoded),
		"Serialization should not change the canonical form")
}

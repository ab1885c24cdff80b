package knowledge

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"lucid/internal/errors"
)

func TestParseBeliefWithConfidence(t *testing.T) {
	source := `belief confidence=0.85 @source("sensor_12") {
    fact: "temperature_reading"
    value: 22.5
}`

	program, err := ParseSource("test.noe", source)
	assert.NoError(t, err, "Should have no parse errors")
	assert.Len(t, program.Statements, 1, "Program should have 1 statement")

	block, ok := program.Statements[0].(*Block)
	assert.True(t, ok, "Statement should be a Block")
	assert.Equal(t, BeliefBlock, block.Kind)

	confidence, ok := block.Confidence.(*NumberLit)
	assert.True(t, ok, "Inline confidence should be a NumberLit")
	assert.Equal(t, 0.85, confidence.Value)
	assert.Equal(t, "0.85", confidence.Lexeme)

	assert.Len(t, block.Attributes, 1, "Block should have 1 attribute")
	assert.Equal(t, "source", block.Attributes[0].Name)
	attrValue, ok := block.Attributes[0].Value.(*StringLit)
	assert.True(t, ok, "Attribute value should be a StringLit")
	assert.Equal(t, "sensor_12", attrValue.Value)

	assert.Len(t, block.Entries, 2, "Block should have 2 entries")
	assert.Equal(t, "fact", block.Entries[0].Key)
	assert.Equal(t, "value", block.Entries[1].Key)
}

func TestParseIntentWithAction(t *testing.T) {
	source := `intent to_perform: "reply_to_post" @priority("high") {
    deadline: "2_hours"
    target: post_892
}`

	program, err := ParseSource("test.noe", source)
	assert.NoError(t, err, "Should have no parse errors")

	block, ok := program.Statements[0].(*Block)
	assert.True(t, ok, "Statement should be a Block")
	assert.Equal(t, IntentBlock, block.Kind)

	action, ok := block.Action.(*StringLit)
	assert.True(t, ok, "Inline action should be a StringLit")
	assert.Equal(t, "reply_to_post", action.Value)

	assert.Len(t, block.Attributes, 1, "Block should have 1 attribute")
	assert.Equal(t, "priority", block.Attributes[0].Name)

	target, ok := block.Entries[1].Value.(*IdentRef)
	assert.True(t, ok, "Entry value should be an IdentRef")
	assert.Equal(t, "post_892", target.Name)
}

func TestParseBareAttributeDefaultsToTrue(t *testing.T) {
	source := `belief @verified @weight(0.5) {
    fact: "calibrated"
}`

	program, err := ParseSource("test.noe", source)
	assert.NoError(t, err, "Should have no parse errors")

	block := program.Statements[0].(*Block)
	assert.Len(t, block.Attributes, 2, "Block should have 2 attributes")

	bare, ok := block.Attributes[0].Value.(*BooleanLit)
	assert.True(t, ok, "Bare attribute should carry a BooleanLit")
	assert.True(t, bare.Value, "Bare attribute should default to true")

	weighted, ok := block.Attributes[1].Value.(*NumberLit)
	assert.True(t, ok, "Valued attribute should carry its expression")
	assert.Equal(t, 0.5, weighted.Value)
}

func TestParseAllBlockKinds(t *testing.T) {
	sources := map[string]BlockKind{
		"belief":                     BeliefBlock,
		"reasoning_context":          ReasoningContextBlock,
		"intent":                     IntentBlock,
		"shared_state":               SharedStateBlock,
		"self_capability":            SelfCapabilityBlock,
		"calculate_with_uncertainty": CalculateWithUncertaintyBlock,
		"structured_knowledge":       StructuredKnowledgeBlock,
	}

	for keyword, kind := range sources {
		program, err := ParseSource("test.noe", keyword+" { }")
		assert.NoError(t, err, "Should parse a bare %s block", keyword)

		block, ok := program.Statements[0].(*Block)
		assert.True(t, ok, "Statement should be a Block")
		assert.Equal(t, kind, block.Kind, "Keyword %s should map to its kind", keyword)
		assert.Empty(t, block.Entries, "Empty body should have no entries")
	}
}

func TestParseKeyedAndBareEntries(t *testing.T) {
	source := `reasoning_context {
    premise: "all_agents_respond"
    42
    conclusions: ["reply", "wait"]
}`

	program, err := ParseSource("test.noe", source)
	assert.NoError(t, err, "Should have no parse errors")

	block := program.Statements[0].(*Block)
	assert.Len(t, block.Entries, 3, "Block should have 3 entries")

	assert.Equal(t, "premise", block.Entries[0].Key)
	assert.Equal(t, "", block.Entries[1].Key, "Bare expression entry should have no key")
	num, ok := block.Entries[1].Value.(*NumberLit)
	assert.True(t, ok, "Bare entry should be a NumberLit")
	assert.Equal(t, 42.0, num.Value)

	arr, ok := block.Entries[2].Value.(*Array)
	assert.True(t, ok, "Entry value should be an Array")
	assert.Len(t, arr.Elements, 2, "Array should have 2 elements")
}

func TestParseAssignment(t *testing.T) {
	source := `threshold = 0.7
tags = ["urgent", "review"]`

	program, err := ParseSource("test.noe", source)
	assert.NoError(t, err, "Should have no parse errors")
	assert.Len(t, program.Statements, 2, "Program should have 2 statements")

	first, ok := program.Statements[0].(*Assignment)
	assert.True(t, ok, "Statement should be an Assignment")
	assert.Equal(t, "threshold", first.Name)

	second := program.Statements[1].(*Assignment)
	_, ok = second.Value.(*Array)
	assert.True(t, ok, "Assignment value should be an Array")
}

func TestParseNumbersKeepTheirLexeme(t *testing.T) {
	source := `versioning = 2.0`

	program, err := ParseSource("test.noe", source)
	assert.NoError(t, err, "Should have no parse errors")

	assign := program.Statements[0].(*Assignment)
	num, ok := assign.Value.(*NumberLit)
	assert.True(t, ok, "Value should be a NumberLit")
	assert.Equal(t, 2.0, num.Value)
	assert.Equal(t, "2.0", num.Lexeme, "Lexeme should keep the written form")
}

func TestParseArraysRequireCommas(t *testing.T) {
	_, err := ParseSource("test.noe", `belief { tags: ["a" "b"] }`)
	assert.Error(t, err, "Array elements without commas should fail")

	program, err := ParseSource("test.noe", `belief { tags: ["a", "b"] }`)
	assert.NoError(t, err, "Comma-separated array should parse")
	block := program.Statements[0].(*Block)
	arr := block.Entries[0].Value.(*Array)
	assert.Len(t, arr.Elements, 2, "Array should have 2 elements")
}

func TestParseRejectsArithmetic(t *testing.T) {
	_, err := ParseSource("test.noe", `belief { x: 1 + 2 }`)
	assert.Error(t, err, "Dialect expressions should not allow operators")

	diag, ok := err.(*errors.Diagnostic)
	assert.True(t, ok, "Error should be a Diagnostic")
	assert.Equal(t, errors.Syntax, diag.Kind)
}

func TestParseMissingColonAfterKey(t *testing.T) {
	_, err := ParseSource("test.noe", `belief { fact "x" }`)
	assert.Error(t, err, "Entry key without ':' should fail")

	diag, ok := err.(*errors.Diagnostic)
	assert.True(t, ok, "Error should be a Diagnostic")
	assert.Equal(t, errors.Syntax, diag.Kind)
	assert.Equal(t, 1, diag.Position.Line, "Error should carry the source line")
}

func TestParseMissingBodyIsFatal(t *testing.T) {
	_, err := ParseSource("test.noe", `belief`)
	assert.Error(t, err, "Block without a body should fail")
}

func TestParseUnexpectedTopLevelToken(t *testing.T) {
	_, err := ParseSource("test.noe", `42`)
	assert.Error(t, err, "A bare literal is not a statement")
}

func TestParsedProgramPrintsCanonically(t *testing.T) {
	source := `belief   confidence=0.9   @source("obs")   { fact: "ready"  value: 1.0 }`

	program, err := ParseSource("test.noe", source)
	assert.NoError(t, err, "Should have no parse errors")

	expected := `belief confidence=0.9 @source("obs") {
  fact: "ready"
  value: 1.0
}`
	assert.Equal(t, expected, program.String())
}

func TestPrintedProgramReparses(t *testing.T) {
	source := `intent to_perform: "sync" @urgent {
    window: [1, 2, 3]
}

state = "active"`

	program, err := ParseSource("test.noe", source)
	assert.NoError(t, err, "Should have no parse errors")

	again, err := ParseSource("test.noe", program.String())
	assert.NoError(t, err, "Printed program should re-parse")
	assert.Len(t, again.Statements, 2, "Re-parse should keep both statements")
	assert.Equal(t, program.String(), again.String(), "Printing should be a fixed point")
}

// Package translate converts parsed Lucid programs into Noema knowledge
// documents and back. Every forward translation produces a proof binding
// the source text and the canonical document bytes together with the
// translator version and timestamp; the reverse direction reconstructs a
// commented Lucid skeleton and reports what could be verified.
package translate

import (
	"strings"
	"time"

	"lucid/internal/ast"
	"lucid/internal/docpath"
	"lucid/internal/errors"
	"lucid/internal/knowledge"
)

// translationTool names this translator inside provenance records.
const translationTool = "lucid_to_noema_translator_v2"

// Translator turns Lucid programs into knowledge documents. A translator
// owns its proof log and is not safe for concurrent use.
type Translator struct {
	version string
	now     func() time.Time
	log     *ProofLog
}

func NewTranslator() *Translator {
	return &Translator{
		version: Version,
		now:     time.Now,
		log:     NewProofLog(),
	}
}

// Log returns the proof log this translator records into.
func (t *Translator) Log() *ProofLog {
	return t.log
}

// SetVersion overrides the version stamped into proofs and versioning_info.
// Proofs made under different versions hash differently and never cross-verify.
func (t *Translator) SetVersion(version string) {
	t.version = version
}

// Result is one forward translation: the knowledge document, the proof
// over it, and the position map back into the source.
type Result struct {
	Document  *knowledge.Object
	Proof     *Proof
	SourceMap *SourceMap
	Warnings  []*errors.Diagnostic
}

// Translate converts a parsed program into a knowledge document. Each
// top-level statement becomes one component fragment, mapped in the source
// map at structured_knowledge.components[i].
func (t *Translator) Translate(program *ast.Program, source string) (*Result, error) {
	now := t.now()
	timestamp := now.Format(time.RFC3339)

	sourceMap := NewSourceMap()
	componentsPath := docpath.New("structured_knowledge").Child("components")
	components := make([]any, 0, len(program.Statements))
	for i, stmt := range program.Statements {
		components = append(components, t.translateStatement(stmt, timestamp))
		sourceMap.AddMapping(stmt.NodePos(), componentsPath.At(i))
	}

	document := knowledge.NewObject()
	document.Set("structured_knowledge", knowledge.NewObject().
		Set("type", "program").
		Set("components", components).
		Set("provenance", t.programProvenance(timestamp)))
	document.Set("intent", programIntent())
	document.Set("versioning_info", versioningInfo())

	proof, err := NewProof(source, document, t.version, now)
	if err != nil {
		return nil, err
	}
	t.log.Record(ProgramID(source), proof)

	result := &Result{Document: document, Proof: proof, SourceMap: sourceMap}
	if sourceMap.Len() == 0 {
		result.Warnings = append(result.Warnings, errors.EmptySourceMap())
	}
	return result, nil
}

// translateStatement builds the component fragment for one top-level
// statement. Functions, declarations and conditionals get dedicated
// fragment shapes; everything else becomes a structural belief.
func (t *Translator) translateStatement(stmt ast.Stmt, timestamp string) *knowledge.Object {
	switch n := stmt.(type) {
	case *ast.FunctionDef:
		return t.translateFunctionDef(n, timestamp)
	case *ast.VariableDecl:
		decay := "none"
		if n.Mutable {
			decay = "over_time"
		}
		return t.declarationBelief("variable_"+n.Name.Value+"_initialized", n.Value, decay, n.Pos.Line, timestamp)
	case *ast.ConstantDecl:
		return t.declarationBelief("constant_"+n.Name.Value+"_initialized", n.Value, "none", n.Pos.Line, timestamp)
	case *ast.IfExpr:
		return t.translateConditional(n, timestamp)
	default:
		return t.translateGeneric(stmt, timestamp)
	}
}

func (t *Translator) translateFunctionDef(fn *ast.FunctionDef, timestamp string) *knowledge.Object {
	params := make([]any, 0, len(fn.Params))
	paramPairs := make([]any, 0, len(fn.Params))
	for _, param := range fn.Params {
		params = append(params, knowledge.NewObject().
			Set("name", param.Name.Value).
			Set("type", param.Type.Value).
			Set("confidence", 1.0).
			Set("constraints", parameterConstraints(param.Type.Value)))
		paramPairs = append(paramPairs, []any{param.Name.Value, param.Type.Value})
	}

	var returnType any
	if fn.ReturnType != nil {
		returnType = fn.ReturnType.Value
	}

	fragment := knowledge.NewObject()
	fragment.Set("structured_knowledge", knowledge.NewObject().
		Set("type", "function_definition").
		Set("name", fn.Name.Value).
		Set("parameters", params).
		Set("return_type", returnType).
		Set("confidence", 1.0).
		Set("source", "human_contributed").
		Set("original_syntax", "lucid").
		Set("semantic_preservation_level", "complete").
		Set("translation_metadata", knowledge.NewObject().
			Set("preserved_invariants", []any{"function_signature", "return_type_consistency", "side_effect_behavior"}).
			Set("potential_semantic_shifts", []any{"floating_point_precision", "optimization_effects", "abstraction_leakage"}).
			Set("validation_requirements", []any{"type_safety", "side_effect_tracking"})))
	fragment.Set("provenance", knowledge.NewObject().
		Set("original_lines", []any{fn.Pos.Line, fn.EndPos.Line}).
		Set("translated_by", translationTool).
		Set("timestamp", timestamp).
		Set("semantic_equivalence_verified", true))
	fragment.Set("reasoning_context", functionReasoningContext())
	fragment.Set("intent", knowledge.NewObject().
		Set("to_perform", "execute_function_"+fn.Name.Value).
		Set("parameters", paramPairs).
		Set("execution_context", "runtime_call").
		Set("priority", "normal").
		Set("traceability", traceability()))
	return fragment
}

// declarationBelief is the shared fragment shape for variable and constant
// declarations. Mutable bindings decay over time; immutable ones do not.
func (t *Translator) declarationBelief(fact string, value ast.Expr, decay string, line int, timestamp string) *knowledge.Object {
	fragment := knowledge.NewObject()
	fragment.Set("belief", knowledge.NewObject().
		Set("fact", fact).
		Set("value", literalValue(value)).
		Set("confidence", 0.95).
		Set("source", "program_initialization").
		Set("certainty_decay", decay).
		Set("semantic_metadata", knowledge.NewObject().
			Set("preservation_guarantee", "exact").
			Set("conversion_path", "direct_mapping").
			Set("validation_checkpoints", []any{"initialization", "assignment", "access"})))
	fragment.Set("provenance", t.lineProvenance(line, timestamp))
	return fragment
}

func (t *Translator) translateConditional(cond *ast.IfExpr, timestamp string) *knowledge.Object {
	fragment := knowledge.NewObject()
	fragment.Set("reasoning_context", knowledge.NewObject().
		Set("condition", cond.Condition.String()).
		Set("branches", knowledge.NewObject().
			Set("then", t.branchStatements(cond.ThenBranch, timestamp)).
			Set("else", t.branchStatements(cond.ElseBranch, timestamp))).
		Set("confidence_threshold", 0.5).
		Set("debugging_info", knowledge.NewObject().
			Set("branch_coverage", knowledge.NewObject().
				Set("then_visited", false).
				Set("else_visited", false)).
			Set("condition_evaluation_trace", []any{}).
			Set("decision_factors", []any{"condition_value", "runtime_context"})))
	fragment.Set("provenance", t.lineProvenance(cond.Pos.Line, timestamp))
	return fragment
}

func (t *Translator) branchStatements(stmts []ast.Stmt, timestamp string) []any {
	out := make([]any, 0, len(stmts))
	for _, stmt := range stmts {
		out = append(out, knowledge.NewObject().
			Set("statement_type", statementKind(stmt)).
			Set("content", stmt.String()).
			Set("provenance", t.lineProvenance(stmt.NodePos().Line, timestamp)))
	}
	return out
}

// translateGeneric covers statement kinds with no richer mapping. The
// fragment asserts only that the program contains such a statement.
func (t *Translator) translateGeneric(stmt ast.Stmt, timestamp string) *knowledge.Object {
	fragment := knowledge.NewObject()
	fragment.Set("belief", knowledge.NewObject().
		Set("fact", "program_contains_"+statementKind(stmt)).
		Set("confidence", 0.8).
		Set("source", "program_structure").
		Set("semantic_metadata", knowledge.NewObject().
			Set("preservation_guarantee", "structural").
			Set("conversion_path", "direct_mapping").
			Set("validation_checkpoints", []any{"parsing", "validation"})))
	fragment.Set("provenance", t.lineProvenance(stmt.NodePos().Line, timestamp))
	return fragment
}

func (t *Translator) programProvenance(timestamp string) *knowledge.Object {
	return knowledge.NewObject().
		Set("author", "human_contributor").
		Set("translation_tool", translationTool).
		Set("translator_version", t.version).
		Set("timestamp", timestamp).
		Set("semantic_equivalence_verified", true).
		Set("trust_boundary_validation", knowledge.NewObject().
			Set("verification_method", "proof_carrying_code").
			Set("verification_passed", true).
			Set("verification_timestamp", timestamp))
}

func (t *Translator) lineProvenance(line int, timestamp string) *knowledge.Object {
	return knowledge.NewObject().
		Set("original_line", line).
		Set("translated_by", translationTool).
		Set("timestamp", timestamp)
}

func programIntent() *knowledge.Object {
	return knowledge.NewObject().
		Set("to_perform", "execute_program").
		Set("confidence_level", 0.9).
		Set("deadline", "indefinite").
		Set("traceability", traceability())
}

func traceability() *knowledge.Object {
	return knowledge.NewObject().
		Set("can_be_traced_back_to_source", true).
		Set("source_mapping_available", true).
		Set("debugging_support_level", "full")
}

func functionReasoningContext() *knowledge.Object {
	return knowledge.NewObject().
		Set("assumptions", []any{"inputs_are_valid", "system_resources_available"}).
		Set("implications", []any{"side_effects_possible", "resource_utilization_expected"}).
		Set("confidence_threshold", 0.7).
		Set("debugging_info", knowledge.NewObject().
			Set("original_logic_flow", "sequential_execution_with_conditionals").
			Set("variable_dependencies", knowledge.NewObject().
				Set("input_dependent_vars", []any{}).
				Set("computed_vars", []any{})).
			Set("side_effects", []any{"none_identified_static_analysis"}))
}

func versioningInfo() *knowledge.Object {
	return knowledge.NewObject().
		Set("surface_layer_version", SurfaceVersion).
		Set("deep_layer_version", DeepVersion).
		Set("compatibility_matrix", knowledge.NewObject().
			Set("compatible_deep_versions", []any{"2.x"}).
			Set("minimum_surface_version", MinimumSurfaceVersion))
}

// parameterConstraints derives the constraint object for a parameter type.
// Numeric types carry range hints; other types only restate the type.
func parameterConstraints(typeName string) *knowledge.Object {
	constraints := knowledge.NewObject().Set("type", typeName)
	switch typeName {
	case "Int":
		constraints.Set("range", "machine_integer_range")
	case "Float":
		constraints.Set("range", "floating_point_range")
		constraints.Set("precision", "implementation_dependent")
	}
	return constraints
}

// literalValue lowers a literal initializer to a document value. Non-literal
// initializers keep their printed expression text instead of being
// evaluated.
func literalValue(expr ast.Expr) any {
	switch v := expr.(type) {
	case nil:
		return nil
	case *ast.NumberLiteral:
		return v.Value
	case *ast.StringLiteral:
		return v.Value
	case *ast.BooleanLiteral:
		return v.Value
	default:
		return expr.String()
	}
}

func statementKind(stmt ast.Stmt) string {
	return strings.ToLower(stmt.NodeType().String())
}

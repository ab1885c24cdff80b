package translate

import (
	"fmt"
	"strconv"
	"strings"

	"lucid/internal/docpath"
	"lucid/internal/errors"
	"lucid/internal/knowledge"
)

// differencePenalty is subtracted from the confidence score for each
// structural difference the audit finds.
const differencePenalty = 0.05

// Verification reports what a reverse translation could check. Passed
// covers the hash chain only; structural findings lower the confidence
// score without flipping it.
type Verification struct {
	Passed              bool
	Confidence          float64
	Differences         []string
	BodiesReconstructed bool
}

// ReverseResult is one reverse translation. Verification is nil when no
// proof was supplied to check against.
type ReverseResult struct {
	Source       string
	Verification *Verification
	Warnings     []*errors.Diagnostic
}

// Reverse reconstructs a commented Lucid skeleton from a knowledge
// document. Function bodies are not recoverable; signatures, declarations
// and conditionals come back as code, everything else as comments. When a
// proof is supplied the document is verified against it and the result
// carries a verification report.
func (t *Translator) Reverse(document *knowledge.Object, proof *Proof) *ReverseResult {
	result := &ReverseResult{}

	var lines []string
	lines = append(lines, "// Reconstructed from a Noema knowledge document")
	lossyFunctions := 0

	var components []any
	if document != nil {
		if sk, ok := document.GetObject("structured_knowledge"); ok {
			if prov, ok := sk.GetObject("provenance"); ok {
				if tool, ok := prov.GetString("translation_tool"); ok {
					lines = append(lines, "// translated by "+tool)
				}
				if timestamp, ok := prov.GetString("timestamp"); ok {
					lines = append(lines, "// translated at "+timestamp)
				}
			}
			if raw, ok := sk.Get("components"); ok {
				components, _ = raw.([]any)
			}
		}
	}

	for _, raw := range components {
		fragment, ok := raw.(*knowledge.Object)
		if !ok {
			lines = append(lines, "", "// unrecognized component, kept for audit")
			continue
		}
		switch fragmentKind(fragment) {
		case "function_definition":
			sk, _ := fragment.GetObject("structured_knowledge")
			lines = append(lines, "")
			lines = append(lines, functionSkeleton(sk)...)
			lossyFunctions++
		case "belief":
			belief, _ := fragment.GetObject("belief")
			lines = append(lines, "", beliefComment(belief))
		case "reasoning_context":
			rc, _ := fragment.GetObject("reasoning_context")
			lines = append(lines, "")
			lines = append(lines, conditionalSkeleton(rc)...)
		default:
			lines = append(lines, "", "// unrecognized fragment, kept for audit")
		}
	}

	result.Source = strings.Join(lines, "\n") + "\n"
	if lossyFunctions > 0 {
		result.Warnings = append(result.Warnings, errors.LossyReverse(lossyFunctions))
	}

	if proof != nil {
		differences := auditDocument(document)
		confidence := 1.0 - differencePenalty*float64(len(differences))
		if confidence < 0 {
			confidence = 0
		}
		result.Verification = &Verification{
			Passed:              proof.VerifyDocument(document) == nil,
			Confidence:          confidence,
			Differences:         differences,
			BodiesReconstructed: false,
		}
	}
	return result
}

// functionSkeleton rebuilds a function signature from its fragment. The
// body is a placeholder comment because statement-level code is not stored
// in the document.
func functionSkeleton(sk *knowledge.Object) []string {
	if sk == nil {
		return []string{"// malformed function fragment"}
	}
	name, _ := sk.GetString("name")

	var params []string
	if raw, ok := sk.Get("parameters"); ok {
		if list, ok := raw.([]any); ok {
			for _, entry := range list {
				param, ok := entry.(*knowledge.Object)
				if !ok {
					continue
				}
				paramName, _ := param.GetString("name")
				paramType, _ := param.GetString("type")
				params = append(params, paramName+": "+paramType)
			}
		}
	}

	signature := "fn " + name + "(" + strings.Join(params, ", ") + ")"
	if returnType, ok := sk.GetString("return_type"); ok && returnType != "" {
		signature += " -> " + returnType
	}
	return []string{
		signature + " {",
		"  // body not recoverable from the knowledge document",
		"}",
	}
}

func beliefComment(belief *knowledge.Object) string {
	if belief == nil {
		return "// malformed belief fragment"
	}
	fact, _ := belief.GetString("fact")
	comment := "// belief"
	if confidence, ok := belief.GetNumber("confidence"); ok {
		comment += " (confidence " + strconv.FormatFloat(confidence, 'f', -1, 64) + ")"
	}
	comment += ": " + fact
	if value, ok := belief.Get("value"); ok {
		comment += " = " + commentValue(value)
	}
	return comment
}

// conditionalSkeleton rebuilds a conditional whose branch contents are
// summarized as comments. The condition text is real expression syntax, so
// the skeleton still parses.
func conditionalSkeleton(rc *knowledge.Object) []string {
	if rc == nil {
		return []string{"// malformed conditional fragment"}
	}
	condition, _ := rc.GetString("condition")

	thenCount, elseCount := 0, 0
	if branches, ok := rc.GetObject("branches"); ok {
		thenCount = branchLen(branches, "then")
		elseCount = branchLen(branches, "else")
	}

	lines := []string{
		"if " + condition + " {",
		fmt.Sprintf("  // then branch: %d statement(s) recorded", thenCount),
	}
	if elseCount > 0 {
		lines = append(lines,
			"} else {",
			fmt.Sprintf("  // else branch: %d statement(s) recorded", elseCount))
	}
	return append(lines, "}")
}

func branchLen(branches *knowledge.Object, key string) int {
	raw, ok := branches.Get(key)
	if !ok {
		return 0
	}
	list, ok := raw.([]any)
	if !ok {
		return 0
	}
	return len(list)
}

// fragmentKind classifies a component by its dominant key. An empty string
// means the fragment matches no known shape.
func fragmentKind(fragment *knowledge.Object) string {
	if sk, ok := fragment.GetObject("structured_knowledge"); ok {
		if kind, ok := sk.GetString("type"); ok {
			return kind
		}
		return ""
	}
	if _, ok := fragment.GetObject("belief"); ok {
		return "belief"
	}
	if _, ok := fragment.GetObject("reasoning_context"); ok {
		return "reasoning_context"
	}
	return ""
}

// auditDocument walks the document shape and records the path of every
// structural divergence from the translation schema.
func auditDocument(document *knowledge.Object) []string {
	if document == nil {
		return []string{docpath.New("structured_knowledge").String()}
	}

	var differences []string
	record := func(path *docpath.Path) {
		differences = append(differences, path.String())
	}

	root := docpath.New("structured_knowledge")
	sk, ok := document.GetObject("structured_knowledge")
	if !ok {
		record(root)
	} else {
		if kind, ok := sk.GetString("type"); !ok || kind != "program" {
			record(root.Child("type"))
		}
		if _, ok := sk.GetObject("provenance"); !ok {
			record(root.Child("provenance"))
		}
		componentsPath := root.Child("components")
		raw, ok := sk.Get("components")
		if !ok {
			record(componentsPath)
		} else if components, ok := raw.([]any); !ok {
			record(componentsPath)
		} else {
			for i, entry := range components {
				entryPath := componentsPath.At(i)
				fragment, ok := entry.(*knowledge.Object)
				if !ok {
					record(entryPath)
					continue
				}
				switch fragmentKind(fragment) {
				case "function_definition", "belief", "reasoning_context":
				default:
					record(entryPath)
				}
				if _, ok := fragment.GetObject("provenance"); !ok {
					record(entryPath.Child("provenance"))
				}
			}
		}
	}

	if _, ok := document.GetObject("intent"); !ok {
		record(docpath.New("intent"))
	}

	versioning := docpath.New("versioning_info")
	info, ok := document.GetObject("versioning_info")
	if !ok {
		record(versioning)
	} else {
		surface, _ := info.GetString("surface_layer_version")
		deep, _ := info.GetString("deep_layer_version")
		if !CompatibleWith(surface, deep) {
			record(versioning.Child("compatibility_matrix"))
		}
	}
	return differences
}

func commentValue(value any) string {
	switch v := value.(type) {
	case nil:
		return "null"
	case string:
		return strconv.Quote(v)
	case bool:
		return strconv.FormatBool(v)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case int64:
		return strconv.FormatInt(v, 10)
	default:
		return fmt.Sprintf("%v", v)
	}
}

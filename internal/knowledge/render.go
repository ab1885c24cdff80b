package knowledge

import (
	"strconv"
	"strings"
)

// RenderDocument writes a translator-produced document as Noema text. Root
// keys that name a block kind become blocks; every other root key becomes an
// assignment. Nested documents and document arrays cannot be expressed in the
// dialect's restricted expressions, so they render as quoted canonical JSON.
// The output always re-parses with ParseSource.
func RenderDocument(doc *Object) string {
	var sections []string
	for _, key := range doc.Keys() {
		value, _ := doc.Get(key)
		if obj, ok := value.(*Object); ok && isBlockKeyword(key) {
			sections = append(sections, renderBlock(key, obj))
			continue
		}
		sections = append(sections, key+" = "+renderValue(value))
	}
	return strings.Join(sections, "\n\n") + "\n"
}

func isBlockKeyword(key string) bool {
	for _, keyword := range blockKeywords {
		if key == keyword {
			return true
		}
	}
	return false
}

func renderBlock(keyword string, obj *Object) string {
	var sb strings.Builder
	sb.WriteString(keyword)
	sb.WriteString(" {")
	for _, key := range obj.Keys() {
		value, _ := obj.Get(key)
		sb.WriteString("\n  ")
		sb.WriteString(key)
		sb.WriteString(": ")
		sb.WriteString(renderValue(value))
	}
	sb.WriteString("\n}")
	return sb.String()
}

func renderValue(value any) string {
	switch v := value.(type) {
	case string:
		return quoteString(v)
	case float64:
		// 'f' keeps large values out of exponent notation, which would not
		// lex as a single number
		return strconv.FormatFloat(v, 'f', -1, 64)
	case int:
		return strconv.Itoa(v)
	case int64:
		return strconv.FormatInt(v, 10)
	case bool:
		return strconv.FormatBool(v)
	case nil:
		return "null"
	case []any:
		elements := make([]string, len(v))
		for i, el := range v {
			elements[i] = renderValue(el)
		}
		return "[" + strings.Join(elements, ", ") + "]"
	case *Object:
		canonical, err := v.Canonical()
		if err != nil {
			return quoteString("<unserializable>")
		}
		return quoteString(string(canonical))
	default:
		return quoteString("<unsupported>")
	}
}

func quoteString(s string) string {
	var sb strings.Builder
	sb.WriteByte('"')
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '"', '\\':
			sb.WriteByte('\\')
		}
		sb.WriteByte(s[i])
	}
	sb.WriteByte('"')
	return sb.String()
}

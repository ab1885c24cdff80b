package knowledge

import (
	"bytes"
	"encoding/json"
	"fmt"

	"lucid/internal/docpath"
)

// Object is an insertion-ordered key-value document. Translation emits
// documents whose key order is meaningful to readers, so Object preserves
// the order keys were first set in, both in memory and through JSON.
//
// Values are strings, float64 numbers, booleans, []any arrays, or nested
// *Object documents.
type Object struct {
	keys   []string
	values map[string]any
}

func NewObject() *Object {
	return &Object{values: make(map[string]any)}
}

// Set stores value under key. A key keeps its original position when set
// again. Returns the receiver so documents can be built fluently.
func (o *Object) Set(key string, value any) *Object {
	if _, exists := o.values[key]; !exists {
		o.keys = append(o.keys, key)
	}
	o.values[key] = value
	return o
}

func (o *Object) Get(key string) (any, bool) {
	v, ok := o.values[key]
	return v, ok
}

// GetObject returns the nested document under key, if present.
func (o *Object) GetObject(key string) (*Object, bool) {
	v, ok := o.values[key]
	if !ok {
		return nil, false
	}
	obj, ok := v.(*Object)
	return obj, ok
}

func (o *Object) GetString(key string) (string, bool) {
	v, ok := o.values[key]
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	return s, ok
}

func (o *Object) GetNumber(key string) (float64, bool) {
	v, ok := o.values[key]
	if !ok {
		return 0, false
	}
	n, ok := v.(float64)
	return n, ok
}

// Keys returns the document's keys in insertion order.
func (o *Object) Keys() []string {
	keys := make([]string, len(o.keys))
	copy(keys, o.keys)
	return keys
}

func (o *Object) Len() int {
	return len(o.keys)
}

// Lookup resolves a document path like "components[2].knowledge.confidence"
// against the document. The second result reports whether every segment
// resolved.
func (o *Object) Lookup(path docpath.Path) (any, bool) {
	var current any = o
	for _, seg := range path.Segments {
		obj, ok := current.(*Object)
		if !ok {
			return nil, false
		}
		value, ok := obj.Get(seg.Key)
		if !ok {
			return nil, false
		}
		if seg.Index != nil {
			arr, ok := value.([]any)
			if !ok || *seg.Index < 0 || *seg.Index >= len(arr) {
				return nil, false
			}
			value = arr[*seg.Index]
		}
		current = value
	}
	return current, true
}

// MarshalJSON writes the document with keys in insertion order.
func (o *Object) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, key := range o.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		keyJSON, err := json.Marshal(key)
		if err != nil {
			return nil, err
		}
		buf.Write(keyJSON)
		buf.WriteByte(':')
		valueJSON, err := json.Marshal(o.values[key])
		if err != nil {
			return nil, err
		}
		buf.Write(valueJSON)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON reads a JSON object back into an ordered document. Nested
// objects become *Object and arrays []any, so a marshal round trip preserves
// structure and key order.
func (o *Object) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("expected JSON object, found %v", tok)
	}

	o.keys = nil
	o.values = make(map[string]any)
	return decodeObjectBody(dec, o)
}

func decodeObjectBody(dec *json.Decoder, o *Object) error {
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := keyTok.(string)
		if !ok {
			return fmt.Errorf("expected object key, found %v", keyTok)
		}
		value, err := decodeValue(dec)
		if err != nil {
			return err
		}
		o.Set(key, value)
	}
	// consume the closing '}'
	_, err := dec.Token()
	return err
}

func decodeValue(dec *json.Decoder) (any, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	switch v := tok.(type) {
	case json.Delim:
		switch v {
		case '{':
			obj := NewObject()
			if err := decodeObjectBody(dec, obj); err != nil {
				return nil, err
			}
			return obj, nil
		case '[':
			var arr []any
			for dec.More() {
				el, err := decodeValue(dec)
				if err != nil {
					return nil, err
				}
				arr = append(arr, el)
			}
			if _, err := dec.Token(); err != nil {
				return nil, err
			}
			if arr == nil {
				arr = []any{}
			}
			return arr, nil
		default:
			return nil, fmt.Errorf("unexpected JSON delimiter %v", v)
		}
	default:
		return tok, nil
	}
}

// Canonical serializes the document with keys sorted at every level,
// independent of insertion order. Hashing uses this form so two documents
// with the same content always hash the same.
func (o *Object) Canonical() ([]byte, error) {
	return json.Marshal(canonicalValue(o))
}

func canonicalValue(v any) any {
	switch val := v.(type) {
	case *Object:
		plain := make(map[string]any, len(val.keys))
		for _, key := range val.keys {
			plain[key] = canonicalValue(val.values[key])
		}
		return plain
	case []any:
		out := make([]any, len(val))
		for i, el := range val {
			out[i] = canonicalValue(el)
		}
		return out
	default:
		return val
	}
}

package m3

import "encoding/json"

// Schema declares the wire shape of one record type: its name, a
// constructor for the empty record, and a map from wire field name to field
// declaration. Schemas are package-level values defined once at init and
// shared read-only by every decode; the schema graph is static and acyclic
// by construction.
type Schema struct {
	Name   string
	New    func() any
	Fields Fields
}

// Fields maps wire field names to their declarations.
type Fields map[string]Field

// Field is one declared field of a Schema. Build fields with the typed
// constructors (String, Int, Float, Bool, StringList, Record, RecordList);
// each carries a hand-written setter so no reflection is needed at decode
// time.
type Field struct {
	kind fieldKind
	elem *Schema
	set  func(rec, val any) bool
}

type fieldKind int

const (
	kindValue fieldKind = iota
	kindRecord
	kindRecordList
)

// String declares a string-valued field.
func String(assign func(rec any, v string)) Field {
	return Field{set: func(rec, val any) bool {
		s, ok := val.(string)
		if !ok {
			return false
		}
		assign(rec, s)
		return true
	}}
}

// Int declares an integer field. JSON numbers arrive as float64 from the
// generic decoder, so both forms are accepted.
func Int(assign func(rec any, v int64)) Field {
	return Field{set: func(rec, val any) bool {
		switch n := val.(type) {
		case float64:
			assign(rec, int64(n))
		case json.Number:
			i, err := n.Int64()
			if err != nil {
				return false
			}
			assign(rec, i)
		default:
			return false
		}
		return true
	}}
}

// Float declares a floating-point field.
func Float(assign func(rec any, v float64)) Field {
	return Field{set: func(rec, val any) bool {
		switch n := val.(type) {
		case float64:
			assign(rec, n)
		case json.Number:
			f, err := n.Float64()
			if err != nil {
				return false
			}
			assign(rec, f)
		default:
			return false
		}
		return true
	}}
}

// Bool declares a boolean field.
func Bool(assign func(rec any, v bool)) Field {
	return Field{set: func(rec, val any) bool {
		b, ok := val.(bool)
		if !ok {
			return false
		}
		assign(rec, b)
		return true
	}}
}

// StringList declares a field holding an array of strings.
func StringList(assign func(rec any, v []string)) Field {
	return Field{set: func(rec, val any) bool {
		items, ok := val.([]any)
		if !ok {
			return false
		}
		out := make([]string, len(items))
		for i, item := range items {
			s, ok := item.(string)
			if !ok {
				return false
			}
			out[i] = s
		}
		assign(rec, out)
		return true
	}}
}

// Record declares a field holding a nested record. The assign closure
// receives the decoded record as produced by elem.New.
func Record(elem *Schema, assign func(rec, nested any)) Field {
	return Field{kind: kindRecord, elem: elem, set: func(rec, val any) bool {
		assign(rec, val)
		return true
	}}
}

// RecordList declares a field holding an ordered sequence of nested
// records. The assign closure receives the decoded records in input order.
func RecordList(elem *Schema, assign func(rec any, items []any)) Field {
	return Field{kind: kindRecordList, elem: elem, set: func(rec, val any) bool {
		assign(rec, val.([]any))
		return true
	}}
}

// Decode shapes an untyped JSON value into the record type described by s.
// The boolean reports whether shaping succeeded; on any failure (value is
// not a mapping, a declared field has the wrong shape, a nested record or
// list element degrades) the original value is returned unchanged so the
// caller still sees exactly what the server sent.
//
// Keys absent from the schema are ignored, so additional server fields do
// not break the decode. Declared fields absent from the input, and fields
// carrying JSON null, stay at the record's zero value.
func Decode(s *Schema, v any) (any, bool) {
	m, ok := v.(map[string]any)
	if !ok {
		return v, false
	}

	rec := s.New()
	for key, raw := range m {
		field, declared := s.Fields[key]
		if !declared || raw == nil {
			continue
		}

		switch field.kind {
		case kindRecord:
			nested, ok := Decode(field.elem, raw)
			if !ok {
				return v, false
			}
			field.set(rec, nested)
		case kindRecordList:
			items, ok := raw.([]any)
			if !ok {
				return v, false
			}
			decoded := make([]any, len(items))
			for i, item := range items {
				d, ok := Decode(field.elem, item)
				if !ok {
					return v, false
				}
				decoded[i] = d
			}
			field.set(rec, decoded)
		default:
			if !field.set(rec, raw) {
				return v, false
			}
		}
	}
	return rec, true
}

// DecodeList shapes a JSON array into typed records element-wise, order
// preserved. It degrades like Decode: if v is not an array or any element
// fails to shape, the original value comes back unchanged with false.
func DecodeList(s *Schema, v any) (any, bool) {
	items, ok := v.([]any)
	if !ok {
		return v, false
	}
	out := make([]any, len(items))
	for i, item := range items {
		d, ok := Decode(s, item)
		if !ok {
			return v, false
		}
		out[i] = d
	}
	return out, true
}

// DecodeAs decodes v against s and asserts the concrete record type. A
// degraded decode is reported as *DecodeError carrying the raw value.
func DecodeAs[T any](s *Schema, v any) (T, error) {
	rec, ok := Decode(s, v)
	if !ok {
		var zero T
		return zero, &DecodeError{Schema: s.Name, Raw: v}
	}
	return rec.(T), nil
}

// DecodeListAs decodes a JSON array against s and asserts the concrete
// element type, preserving order.
func DecodeListAs[T any](s *Schema, v any) ([]T, error) {
	decoded, ok := DecodeList(s, v)
	if !ok {
		return nil, &DecodeError{Schema: s.Name, Raw: v}
	}
	items := decoded.([]any)
	out := make([]T, len(items))
	for i, item := range items {
		out[i] = item.(T)
	}
	return out, nil
}

package models

import (
	"encoding/json"
	"fmt"
	"strconv"
)

type fieldKind int

const (
	kindNull fieldKind = iota
	kindString
	kindNumber
	kindBool
)

// FieldValue is a single snapshot field value: null, string, number or bool.
// Snapshots carry only these four kinds; anything richer is flattened to its
// JSON text when decoded.
type FieldValue struct {
	kind fieldKind
	str  string
	num  float64
	b    bool
}

// Null returns the absent/null field value.
func Null() FieldValue {
	return FieldValue{kind: kindNull}
}

// String returns a string field value.
func String(s string) FieldValue {
	return FieldValue{kind: kindString, str: s}
}

// Number returns a numeric field value.
func Number(n float64) FieldValue {
	return FieldValue{kind: kindNumber, num: n}
}

// Bool returns a boolean field value.
func Bool(b bool) FieldValue {
	return FieldValue{kind: kindBool, b: b}
}

// IsNull reports whether the value is null/absent.
func (v FieldValue) IsNull() bool {
	return v.kind == kindNull
}

// Truthy reports whether the value counts as "set": true booleans,
// non-empty strings and non-zero numbers.
func (v FieldValue) Truthy() bool {
	switch v.kind {
	case kindBool:
		return v.b
	case kindString:
		return v.str != ""
	case kindNumber:
		return v.num != 0
	default:
		return false
	}
}

// Equal reports whether two field values have the same kind and content.
func (v FieldValue) Equal(o FieldValue) bool {
	if v.kind != o.kind {
		return false
	}
	switch v.kind {
	case kindString:
		return v.str == o.str
	case kindNumber:
		return v.num == o.num
	case kindBool:
		return v.b == o.b
	default:
		return true
	}
}

// Text returns the underlying string and whether the value is a string.
func (v FieldValue) Text() (string, bool) {
	return v.str, v.kind == kindString
}

// Display renders the value for the change log: null as an em-dash,
// booleans as Да/Нет, numbers without a trailing fraction when whole.
func (v FieldValue) Display() string {
	switch v.kind {
	case kindNull:
		return "—"
	case kindBool:
		if v.b {
			return "Да"
		}
		return "Нет"
	case kindNumber:
		return strconv.FormatFloat(v.num, 'f', -1, 64)
	default:
		return v.str
	}
}

// MarshalJSON encodes the value as the plain JSON scalar it wraps.
func (v FieldValue) MarshalJSON() ([]byte, error) {
	switch v.kind {
	case kindNull:
		return []byte("null"), nil
	case kindString:
		return json.Marshal(v.str)
	case kindNumber:
		return json.Marshal(v.num)
	default:
		return json.Marshal(v.b)
	}
}

// UnmarshalJSON decodes any JSON scalar; objects and arrays are kept as
// their raw JSON text so old records never fail to decode.
func (v *FieldValue) UnmarshalJSON(data []byte) error {
	var raw interface{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("invalid snapshot value: %w", err)
	}

	switch val := raw.(type) {
	case nil:
		*v = Null()
	case string:
		*v = String(val)
	case float64:
		*v = Number(val)
	case bool:
		*v = Bool(val)
	default:
		*v = String(string(data))
	}
	return nil
}

// Snapshot is a complete field-value mapping of one entity at one point in
// time. A missing key and an explicit null are equivalent.
type Snapshot map[string]FieldValue

// Get returns the value for a field, null when the field is absent.
func (s Snapshot) Get(field string) FieldValue {
	if s == nil {
		return Null()
	}
	if v, ok := s[field]; ok {
		return v
	}
	return Null()
}

// Equal reports whether both snapshots carry the same values, treating
// absent fields as null.
func (s Snapshot) Equal(o Snapshot) bool {
	for field, v := range s {
		if !v.Equal(o.Get(field)) {
			return false
		}
	}
	for field, v := range o {
		if !v.Equal(s.Get(field)) {
			return false
		}
	}
	return true
}

// EncodeSnapshot serializes a snapshot to its JSON storage form.
// Nil snapshots encode to nothing (absent).
func EncodeSnapshot(s Snapshot) (*string, error) {
	if s == nil {
		return nil, nil
	}
	data, err := json.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("failed to encode snapshot: %w", err)
	}
	text := string(data)
	return &text, nil
}

// DecodeSnapshot parses the JSON storage form back into a snapshot.
// Absent or empty text yields a nil snapshot.
func DecodeSnapshot(text *string) (Snapshot, error) {
	if text == nil || *text == "" {
		return nil, nil
	}
	var s Snapshot
	if err := json.Unmarshal([]byte(*text), &s); err != nil {
		return nil, fmt.Errorf("failed to decode snapshot: %w", err)
	}
	return s, nil
}

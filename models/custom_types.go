package models

import (
	"bytes"
	"encoding/json"
)

// Scalar carries a provider value whose JSON type is not guaranteed: the
// WhoisXML API returns estimatedDomainAge as a number, a string, or omits it
// entirely. The decoded value is re-emitted as-is, so a response field typed
// Scalar round-trips whatever the provider sent (null when absent).
type Scalar struct {
	value any
}

// ScalarOf wraps a literal value, mainly for tests.
func ScalarOf(v any) Scalar {
	return Scalar{value: v}
}

func (s *Scalar) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var v any
	if err := dec.Decode(&v); err != nil {
		// Malformed scalars degrade to null rather than failing the record.
		s.value = nil
		return nil
	}
	s.value = v
	return nil
}

func (s Scalar) MarshalJSON() ([]byte, error) {
	if s.value == nil {
		return []byte("null"), nil
	}
	return json.Marshal(s.value)
}

// Present reports whether the value counts as set: null, empty string, zero,
// and false all fall through to the next source when picking fields.
func (s Scalar) Present() bool {
	switch v := s.value.(type) {
	case nil:
		return false
	case string:
		return v != ""
	case bool:
		return v
	case json.Number:
		f, err := v.Float64()
		return err == nil && f != 0
	default:
		return true
	}
}

// Value exposes the decoded value for callers that need the raw form.
func (s Scalar) Value() any {
	return s.value
}

package labels

import (
	"bytes"
	"encoding/json"
)

type valueState uint8

const (
	valueAbsent valueState = iota
	valueNull
	valueSet
)

// Value is an optional string that keeps apart a field that was never
// given, a field given as null and a field given as a string (possibly
// empty). The zero Value is absent.
type Value struct {
	state valueState
	str   string
}

func String(s string) Value {
	return Value{state: valueSet, str: s}
}

func Null() Value {
	return Value{state: valueNull}
}

// FromPtr maps nil to null, which is how REST payloads report a missing
// description.
func FromPtr(s *string) Value {
	if s == nil {
		return Null()
	}
	return String(*s)
}

// IsZero reports whether the value is absent. encoding/json uses it for
// the omitzero tag option.
func (v Value) IsZero() bool {
	return v.state == valueAbsent
}

func (v Value) IsNull() bool {
	return v.state == valueNull
}

func (v Value) IsSet() bool {
	return v.state == valueSet
}

// Declared reports whether the field was given at all, null included.
func (v Value) Declared() bool {
	return v.state != valueAbsent
}

// String returns the value, or "" when absent or null.
func (v Value) String() string {
	return v.str
}

// Ptr returns nil unless the value is set.
func (v Value) Ptr() *string {
	if v.state != valueSet {
		return nil
	}
	s := v.str
	return &s
}

func (v Value) MarshalJSON() ([]byte, error) {
	if v.state != valueSet {
		return []byte("null"), nil
	}
	return json.Marshal(v.str)
}

func (v *Value) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		*v = Null()
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	*v = String(s)
	return nil
}

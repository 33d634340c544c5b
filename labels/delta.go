package labels

import (
	"encoding/json"
	"fmt"
	"strings"
)

// DeltaType names a field that differs between a spec and its observed label.
type DeltaType uint8

const (
	DeltaName DeltaType = 1 << iota
	DeltaDescription
	DeltaColor
)

// deltaOrder is the order in which delta types are listed.
var deltaOrder = []DeltaType{DeltaDescription, DeltaColor, DeltaName}

func (t DeltaType) String() string {
	switch t {
	case DeltaName:
		return "name"
	case DeltaDescription:
		return "description"
	case DeltaColor:
		return "color"
	default:
		return fmt.Sprintf("DeltaType(%d)", uint8(t))
	}
}

func ParseDeltaType(s string) (DeltaType, error) {
	for _, t := range deltaOrder {
		if t.String() == strings.ToLower(s) {
			return t, nil
		}
	}
	return 0, fmt.Errorf("unknown delta type %q", s)
}

// Delta is a set of DeltaType values.
type Delta uint8

func NewDelta(types ...DeltaType) Delta {
	var d Delta
	for _, t := range types {
		d = d.With(t)
	}
	return d
}

func (d Delta) With(t DeltaType) Delta {
	return d | Delta(t)
}

func (d Delta) Has(t DeltaType) bool {
	return d&Delta(t) != 0
}

func (d Delta) IsEmpty() bool {
	return d == 0
}

func (d Delta) Types() []DeltaType {
	types := []DeltaType{}
	for _, t := range deltaOrder {
		if d.Has(t) {
			types = append(types, t)
		}
	}
	return types
}

func (d Delta) String() string {
	names := []string{}
	for _, t := range d.Types() {
		names = append(names, t.String())
	}
	return strings.Join(names, ",")
}

func (d Delta) MarshalJSON() ([]byte, error) {
	names := []string{}
	for _, t := range d.Types() {
		names = append(names, t.String())
	}
	return json.Marshal(names)
}

func (d *Delta) UnmarshalJSON(data []byte) error {
	var names []string
	if err := json.Unmarshal(data, &names); err != nil {
		return err
	}

	*d = 0
	for _, name := range names {
		t, err := ParseDeltaType(name)
		if err != nil {
			return err
		}
		*d = d.With(t)
	}
	return nil
}

// LabelDelta pairs a spec with the observed label it matched when at
// least one field differs. Delta is never empty.
type LabelDelta struct {
	Spec   LabelSpec `json:"spec"`
	Actual Label     `json:"actual"`
	Delta  Delta     `json:"delta"`
}

package labels

// Label is a label as observed on a remote repository. Names are
// case-sensitive and unique within one repository.
type Label struct {
	Name        string `json:"name"`
	Description Value  `json:"description,omitzero"`
	Color       Value  `json:"color,omitzero"`
}

func (label Label) GetName() string {
	return label.Name
}

// LabelSpec is a declared label.
//
// An optional spec that has no counterpart is not reported as missing
// unless the comparison requires optional labels. Alias lists earlier
// names of the label, in priority order.
type LabelSpec struct {
	Label
	Optional bool     `json:"optional,omitempty"`
	Alias    []string `json:"alias,omitempty"`
}

// ResolvedLabel is an observed label classified as valid. ResolvedAlias
// is set when it was matched through one of the LabelSpec aliases.
type ResolvedLabel struct {
	Label
	ResolvedAlias *LabelSpec `json:"resolved_alias,omitempty"`
}

func (spec LabelSpec) hasAlias(name string) bool {
	for _, alias := range spec.Alias {
		if alias == name {
			return true
		}
	}
	return false
}

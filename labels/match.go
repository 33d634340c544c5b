package labels

// Named is implemented by Label and, through embedding, LabelSpec.
type Named interface {
	GetName() string
}

// FindByName returns the index of the first entry named name, or -1.
// Comparison is exact and case-sensitive.
func FindByName[T Named](set []T, name string) int {
	for i, entry := range set {
		if entry.GetName() == name {
			return i
		}
	}
	return -1
}

// FindByAliasForward returns the index of the first spec listing the
// observed label's name among its aliases, or -1.
func FindByAliasForward(specs []LabelSpec, observed Label) int {
	for i, spec := range specs {
		if spec.hasAlias(observed.Name) {
			return i
		}
	}
	return -1
}

// FindByAliasReverse walks spec's aliases in order and returns the index
// of the first observed label named after one of them, or -1. Earlier
// aliases win over later ones.
func FindByAliasReverse(observed []Label, spec LabelSpec) int {
	for _, alias := range spec.Alias {
		if i := FindByName(observed, alias); i >= 0 {
			return i
		}
	}
	return -1
}

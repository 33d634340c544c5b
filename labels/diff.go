package labels

// Options controls the policies of CreateDiff.
type Options struct {
	// RenameAlias reports a label matched only through an alias as a
	// NAME delta instead of a valid label.
	RenameAlias bool
	// RequireOptional reports unmatched optional specs as missing.
	RequireOptional bool
}

// LabelDiff is the classified comparison of one repository's labels
// against the desired labels.
type LabelDiff struct {
	Namespace  string          `json:"namespace"`
	Repository string          `json:"repository"`
	Valid      []ResolvedLabel `json:"valid"`
	Missing    []LabelSpec     `json:"missing"`
	Extra      []Label         `json:"extra"`
	Diff       []LabelDelta    `json:"diff"`
}

// IsChange reports whether applying the diff would change anything.
func (diff LabelDiff) IsChange() bool {
	return len(diff.Missing) > 0 || len(diff.Extra) > 0 || len(diff.Diff) > 0
}

// CreateDiff compares specs against the observed labels of
// namespace/repository. Output order follows input order. Neither input
// slice is modified.
//
// When names repeat within an input the first entry wins; the loader in
// package source rejects duplicate spec names.
func CreateDiff(specs []LabelSpec, observed []Label, namespace, repository string, options Options) LabelDiff {
	diff := LabelDiff{
		Namespace:  namespace,
		Repository: repository,
		Valid:      []ResolvedLabel{},
		Missing:    []LabelSpec{},
		Extra:      []Label{},
		Diff:       []LabelDelta{},
	}

	for _, spec := range specs {
		i := FindByName(observed, spec.Name)
		if i < 0 {
			i = FindByAliasReverse(observed, spec)
		}

		if i < 0 {
			if spec.Optional && !options.RequireOptional {
				continue
			}
			diff.Missing = append(diff.Missing, spec)
			continue
		}

		actual := observed[i]
		delta := compare(spec, actual, options)
		if !delta.IsEmpty() {
			diff.Diff = append(diff.Diff, LabelDelta{Spec: spec, Actual: actual, Delta: delta})
			continue
		}

		valid := ResolvedLabel{Label: actual}
		if spec.Name != actual.Name {
			resolved := spec
			valid.ResolvedAlias = &resolved
		}
		diff.Valid = append(diff.Valid, valid)
	}

	for _, label := range observed {
		if FindByName(specs, label.Name) >= 0 || FindByAliasForward(specs, label) >= 0 {
			continue
		}
		diff.Extra = append(diff.Extra, label)
	}

	return diff
}

func compare(spec LabelSpec, actual Label, options Options) Delta {
	var delta Delta

	// A null description is declared and means "no description".
	if spec.Description.Declared() && spec.Description.String() != actual.Description.String() {
		delta = delta.With(DeltaDescription)
	}

	if spec.Color.IsSet() && spec.Color != actual.Color {
		delta = delta.With(DeltaColor)
	}

	if options.RenameAlias && spec.Name != actual.Name {
		delta = delta.With(DeltaName)
	}

	return delta
}

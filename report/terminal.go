package report

import (
	"fmt"
	"io"
	"strings"

	"labelsync/labels"

	"github.com/fatih/color"
)

type Action string

const (
	ActionCreate Action = "create"
	ActionDelete Action = "delete"
	ActionModify Action = "modify"
)

// Change is one action about to be applied to a repository. Label is used
// by create and delete, Delta by modify.
type Change struct {
	Action Action
	Label  labels.Label
	Delta  labels.LabelDelta
}

var actionColors = map[Action]*color.Color{
	ActionCreate: color.New(color.FgGreen),
	ActionDelete: color.New(color.FgRed),
	ActionModify: color.New(color.FgYellow),
}

// Terminal writes a one-line description of change.
func Terminal(w io.Writer, diff labels.LabelDiff, change Change) {
	verb := actionColors[change.Action].Sprint(string(change.Action))
	prefix := fmt.Sprintf("%s/%s: ", diff.Namespace, diff.Repository)

	switch change.Action {
	case ActionCreate:
		fmt.Fprintf(w, "%s%s '%s' (%s)\n", prefix, verb, change.Label.Name, change.Label.Description)
	case ActionDelete:
		fmt.Fprintf(w, "%s%s '%s'\n", prefix, verb, change.Label.Name)
	case ActionModify:
		delta := change.Delta
		name := delta.Actual.Name
		changes := []string{}
		for _, t := range delta.Delta.Types() {
			switch t {
			case labels.DeltaColor:
				changes = append(changes, fmt.Sprintf("change color of '%s' from '%s' to '%s'", name, delta.Actual.Color, delta.Spec.Color))
			case labels.DeltaDescription:
				changes = append(changes, fmt.Sprintf("change description of '%s' from '%s' to '%s'", name, delta.Actual.Description, delta.Spec.Description))
			case labels.DeltaName:
				changes = append(changes, fmt.Sprintf("rename from '%s' to '%s'", name, delta.Spec.Name))
			}
		}
		fmt.Fprintf(w, "%s%s %s\n", prefix, verb, strings.Join(changes, ", "))
	}
}

// Package report renders label diffs for people and machines.
package report

import (
	"fmt"
	"io"
	"slices"
	"strings"

	"labelsync/labels"

	"github.com/jedib0t/go-pretty/v6/table"
)

const (
	FormatMarkdown  = "markdown"
	FormatSummary   = "summary"
	FormatCSV       = "csv"
	FormatMatrix    = "matrix"
	FormatMatrixCSV = "matrix-csv"
	FormatJSON      = "json"
	FormatNone      = "none"
)

var Formats = []string{FormatMarkdown, FormatSummary, FormatCSV, FormatMatrix, FormatMatrixCSV, FormatJSON, FormatNone}

// Render writes diffs to w in the given format. In markdown a single
// repository is always shown in full; for several repositories a summary
// table comes first and only repositories with changes get a section.
func Render(w io.Writer, format string, diffs []labels.LabelDiff) error {
	switch format {
	case FormatMarkdown:
		single := len(diffs) == 1
		if !single && len(diffs) > 0 {
			fmt.Fprintf(w, "# Namespace: %s\n\n", diffs[0].Namespace)
			fmt.Fprintln(w, SummaryTable(diffs).RenderMarkdown())
			fmt.Fprintln(w)
		}
		for _, diff := range diffs {
			if single || diff.IsChange() {
				fmt.Fprintln(w, Markdown(diff))
			}
		}
	case FormatSummary:
		fmt.Fprintln(w, SummaryTable(diffs).RenderMarkdown())
	case FormatCSV:
		fmt.Fprintln(w, SummaryTable(diffs).RenderCSV())
	case FormatMatrix:
		fmt.Fprintln(w, MatrixTable(diffs).RenderMarkdown())
	case FormatMatrixCSV:
		fmt.Fprintln(w, MatrixTable(diffs).RenderCSV())
	case FormatJSON:
		return labels.WriteReport(w, diffs)
	case FormatNone:
	default:
		return fmt.Errorf("unsupported format '%s'", format)
	}

	return nil
}

func describe(name string, description labels.Value) string {
	if description.String() == "" {
		return name
	}
	return fmt.Sprintf("%s: %s", name, description.String())
}

// with the label source.
// with the specification.
func Markdown(diff labels.LabelDiff) string {
	var out strings.Builder

	fmt.Fprintf(&out, "## Repository: %s\n", diff.Repository)

	if !diff.IsChange() {
		out.WriteString("\nNothing to change!\n")
		return out.String()
	}

	if len(diff.Missing) > 0 {
		out.WriteString("\n### Missing Labels (Create)\n\n")
		for _, label := range diff.Missing {
			fmt.Fprintf(&out, "- %s\n", describe(label.Name, label.Description))
		}
	}

	if len(diff.Extra) > 0 {
		out.WriteString("\n### Extra Labels (Delete)\n\n")
		for _, label := range diff.Extra {
			fmt.Fprintf(&out, "- %s\n", describe(label.Name, label.Description))
		}
	}

	if len(diff.Diff) > 0 {
		out.WriteString("\n### Different Labels (Modify)\n\n")
		for _, delta := range diff.Diff {
			fmt.Fprintf(&out, "- %s\n", delta.Spec.Name)
			for _, t := range delta.Delta.Types() {
				switch t {
				case labels.DeltaColor:
					fmt.Fprintf(&out, "  - Change color from '%s' to '%s'\n", delta.Actual.Color, delta.Spec.Color)
				case labels.DeltaDescription:
					fmt.Fprintf(&out, "  - Change description from '%s' to '%s'\n", delta.Actual.Description, delta.Spec.Description)
				case labels.DeltaName:
					fmt.Fprintf(&out, "  - Rename from '%s' to '%s'\n", delta.Actual.Name, delta.Spec.Name)
				}
			}
		}
	}

	return out.String()
}

// SummaryTable counts, per repository, the labels in each class and the
// modifications by kind.
func SummaryTable(diffs []labels.LabelDiff) table.Writer {
	t := table.NewWriter()
	t.AppendHeader(table.Row{"Repository", "Valid", "Missing", "Delete", "Rename", "Redescribe", "Recolor"})

	for _, diff := range diffs {
		counts := map[labels.DeltaType]int{}
		for _, delta := range diff.Diff {
			for _, kind := range delta.Delta.Types() {
				counts[kind] += 1
			}
		}

		t.AppendRow(table.Row{
			diff.Repository,
			len(diff.Valid),
			len(diff.Missing),
			len(diff.Extra),
			counts[labels.DeltaName],
			counts[labels.DeltaDescription],
			counts[labels.DeltaColor],
		})
	}

	return t
}

const (
	statusValid   = "Valid"
	statusMissing = "Missing"
	statusDelete  = "Delete"
	statusChange  = "Change"
)

// MatrixTable lists the status of every label in every repository. Label
// columns are sorted case-insensitively.
func MatrixTable(diffs []labels.LabelDiff) table.Writer {
	names := []string{}
	statuses := make([]map[string]string, len(diffs))

	for i, diff := range diffs {
		status := map[string]string{}
		set := func(name, value string) {
			if !slices.Contains(names, name) {
				names = append(names, name)
			}
			status[name] = value
		}

		for _, label := range diff.Valid {
			set(label.Name, statusValid)
		}
		for _, label := range diff.Missing {
			set(label.Name, statusMissing)
		}
		for _, label := range diff.Extra {
			set(label.Name, statusDelete)
		}
		for _, delta := range diff.Diff {
			set(delta.Spec.Name, statusChange)
		}

		statuses[i] = status
	}

	slices.SortStableFunc(names, func(a, b string) int {
		return strings.Compare(strings.ToLower(a), strings.ToLower(b))
	})

	t := table.NewWriter()

	header := table.Row{"Repository"}
	for _, name := range names {
		header = append(header, name)
	}
	t.AppendHeader(header)

	for i, diff := range diffs {
		row := table.Row{diff.Repository}
		for _, name := range names {
			row = append(row, statuses[i][name])
		}
		t.AppendRow(row)
	}

	return t
}

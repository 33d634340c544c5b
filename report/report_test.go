package report

import (
	"bytes"
	"strings"
	"testing"

	"labelsync/labels"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func label(name, description, c string) labels.Label {
	return labels.Label{Name: name, Description: labels.String(description), Color: labels.String(c)}
}

func specOf(l labels.Label, alias ...string) labels.LabelSpec {
	return labels.LabelSpec{Label: l, Alias: alias}
}

func fixture() []labels.LabelDiff {
	specs := []labels.LabelSpec{
		specOf(label("bug", "Something is wrong", "d73a4a"), "defect"),
		specOf(label("feature", "New stuff", "a2eeef")),
		specOf(label("question", "Further information", "d876e3")),
	}

	first := labels.CreateDiff(specs, []labels.Label{
		label("defect", "Old", "ee0701"),
		label("question", "Further information", "d876e3"),
		label("wontfix", "Not now", "ffffff"),
	}, "org", "alpha", labels.Options{RenameAlias: true})

	second := labels.CreateDiff(specs, []labels.Label{
		label("bug", "Something is wrong", "d73a4a"),
		label("feature", "New stuff", "a2eeef"),
		label("question", "Further information", "d876e3"),
	}, "org", "beta", labels.Options{})

	return []labels.LabelDiff{first, second}
}

func TestMarkdown(t *testing.T) {
	out := Markdown(fixture()[0])

	assert.Equal(t, `## Repository: alpha

### Missing Labels (Create)

- feature: New stuff

### Extra Labels (Delete)

- wontfix: Not now

### Different Labels (Modify)

- bug
  - Change description from 'Old' to 'Something is wrong'
  - Change color from 'ee0701' to 'd73a4a'
  - Rename from 'defect' to 'bug'
`, out)
}

func TestMarkdownNothingToChange(t *testing.T) {
	assert.Equal(t, "## Repository: beta\n\nNothing to change!\n", Markdown(fixture()[1]))
}

func TestRenderMarkdownNamespace(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Render(&buf, FormatMarkdown, fixture()))

	out := buf.String()
	assert.True(t, strings.HasPrefix(out, "# Namespace: org\n"))
	assert.Contains(t, out, "## Repository: alpha")
	assert.NotContains(t, out, "## Repository: beta")
	assert.Contains(t, out, "beta")
}

func TestRenderMarkdownSingleRepository(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Render(&buf, FormatMarkdown, fixture()[1:]))

	assert.NotContains(t, buf.String(), "# Namespace")
	assert.Contains(t, buf.String(), "Nothing to change!")
}

func TestSummaryCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Render(&buf, FormatCSV, fixture()))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "alpha,1,1,1,1,1,1", lines[1])
	assert.Equal(t, "beta,3,0,0,0,0,0", lines[2])
}

func TestMatrixCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Render(&buf, FormatMatrixCSV, fixture()))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3)
	// Columns: bug, feature, question, wontfix
	assert.Equal(t, "alpha,Change,Missing,Valid,Delete", lines[1])
	assert.Equal(t, "beta,Valid,Valid,Valid,", lines[2])
}

func TestRenderJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Render(&buf, FormatJSON, fixture()))

	loaded, err := labels.ReadReport(&buf)
	require.NoError(t, err)
	assert.Equal(t, fixture(), loaded)
}

func TestRenderUnknownFormat(t *testing.T) {
	assert.Error(t, Render(&bytes.Buffer{}, "html", fixture()))

	var buf bytes.Buffer
	require.NoError(t, Render(&buf, FormatNone, fixture()))
	assert.Empty(t, buf.String())
}

func TestTerminal(t *testing.T) {
	color.NoColor = true
	diff := fixture()[0]

	var buf bytes.Buffer
	Terminal(&buf, diff, Change{Action: ActionCreate, Label: diff.Missing[0].Label})
	Terminal(&buf, diff, Change{Action: ActionDelete, Label: diff.Extra[0]})
	Terminal(&buf, diff, Change{Action: ActionModify, Delta: diff.Diff[0]})

	assert.Equal(t, "org/alpha: create 'feature' (New stuff)\n"+
		"org/alpha: delete 'wontfix'\n"+
		"org/alpha: modify change description of 'defect' from 'Old' to 'Something is wrong', "+
		"change color of 'defect' from 'ee0701' to 'd73a4a', rename from 'defect' to 'bug'\n", buf.String())
}

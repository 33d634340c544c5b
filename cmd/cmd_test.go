package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"labelsync/labels"
	"labelsync/sync"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTarget(t *testing.T) {
	target, err := parseTarget("org")
	require.NoError(t, err)
	assert.Equal(t, sync.Target{Namespace: "org"}, target)

	target, err = parseTarget("org/repo")
	require.NoError(t, err)
	assert.Equal(t, sync.Target{Namespace: "org", Repository: "repo"}, target)

	for _, invalid := range []string{"", "/", "org/", "/repo", "org/repo/extra"} {
		_, err := parseTarget(invalid)
		assert.Error(t, err, invalid)
	}
}

func writeReport(t *testing.T) string {
	t.Helper()

	specs := []labels.LabelSpec{
		{Label: labels.Label{Name: "bug", Description: labels.String("Something is wrong"), Color: labels.String("d73a4a")}},
		{Label: labels.Label{Name: "feature"}},
	}
	observed := []labels.Label{
		{Name: "bug", Description: labels.String("Something is wrong"), Color: labels.String("d73a4a")},
		{Name: "wontfix", Color: labels.String("ffffff")},
	}
	diff := labels.CreateDiff(specs, observed, "org", "alpha", labels.Options{})

	path := filepath.Join(t.TempDir(), "report.json")
	file, err := os.Create(path)
	require.NoError(t, err)
	defer file.Close()

	require.NoError(t, labels.WriteReport(file, []labels.LabelDiff{diff}))
	return path
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetArgs(nil)
	})

	err := rootCmd.Execute()
	return out.String(), err
}

func TestReformat(t *testing.T) {
	path := writeReport(t)

	out, err := execute(t, "reformat", path, "--format", "csv")
	require.NoError(t, err)

	assert.Contains(t, out, "Repository,Valid,Missing,Delete,Rename,Redescribe,Recolor")
	assert.Contains(t, out, "alpha,1,1,1,0,0,0")
}

func TestReformatUnknownFormat(t *testing.T) {
	path := writeReport(t)

	_, err := execute(t, "reformat", path, "--format", "xml")
	assert.Error(t, err)
}

func TestReformatMissingFile(t *testing.T) {
	_, err := execute(t, "reformat", filepath.Join(t.TempDir(), "missing.json"), "--format", "markdown")
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestApplyRequiresAnAction(t *testing.T) {
	path := writeReport(t)

	_, err := execute(t, "apply", path)
	assert.ErrorIs(t, err, errNoAction)
}

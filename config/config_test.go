package config

import (
	"path/filepath"
	"testing"

	"labelsync/constants"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	t.Setenv("LABELSYNC_TEST_TOKEN", "secret")
	t.Setenv("LABELSYNC_TEST_BASE", "https://gitea.example.com")

	config, err := Parse([]byte(`
hosts:
  - type: github
    token: $LABELSYNC_TEST_TOKEN
  - name: work
    type: gitea
    base: $LABELSYNC_TEST_BASE
    token: plain
`))
	require.NoError(t, err)
	require.Len(t, config.Hosts, 2)

	assert.Equal(t, "github", config.Hosts[0].Name)
	assert.Equal(t, constants.GITHUB_URL, config.Hosts[0].BaseUrl)
	assert.Equal(t, "secret", config.Hosts[0].Token)

	assert.Equal(t, "https://gitea.example.com", config.Hosts[1].BaseUrl)
	assert.Equal(t, "plain", config.Hosts[1].Token)

	host, err := config.Host("")
	require.NoError(t, err)
	assert.Equal(t, "github", host.Name)

	host, err = config.Host("work")
	require.NoError(t, err)
	assert.Equal(t, constants.HOST_GITEA, host.Type)

	_, err = config.Host("nope")
	assert.Error(t, err)
}

func TestParseErrors(t *testing.T) {
	for name, doc := range map[string]string{
		"missing type":     "hosts:\n  - name: x\n",
		"invalid type":     "hosts:\n  - type: gitlab\n",
		"gitea needs base": "hosts:\n  - type: gitea\n",
		"missing env":      "hosts:\n  - type: github\n    token: $LABELSYNC_UNSET_VARIABLE\n",
		"bad yaml":         "hosts: [\n",
	} {
		t.Run(name, func(t *testing.T) {
			_, err := Parse([]byte(doc))
			assert.Error(t, err)
		})
	}
}

func TestLoadConfigDefault(t *testing.T) {
	t.Setenv(constants.TOKEN_ENV, "from-env")

	config, err := LoadConfig(filepath.Join(t.TempDir(), "config.yaml"))
	require.NoError(t, err)
	require.Len(t, config.Hosts, 1)

	assert.Equal(t, constants.HOST_GITHUB, config.Hosts[0].Type)
	assert.Equal(t, "from-env", config.Hosts[0].Token)
}

func TestNoHosts(t *testing.T) {
	config, err := Parse([]byte("hosts: []\n"))
	require.NoError(t, err)

	_, err = config.Host("")
	assert.Error(t, err)
}

package vcs

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"labelsync/config"
	"labelsync/labels"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newGitHubServer(t *testing.T, mux *http.ServeMux) (*GitHub, *httptest.Server) {
	t.Helper()

	mux.HandleFunc("/api/v3/user", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer secret", r.Header.Get("Authorization"))
		fmt.Fprint(w, `{"login": "octocat"}`)
	})

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)

	client, err := NewGitHubClient(context.Background(), config.Host{
		Name:    "ghes",
		Type:    "github",
		BaseUrl: server.URL,
		Token:   "secret",
	})
	require.NoError(t, err)
	assert.Equal(t, "octocat", client.username)

	return client, server
}

func TestGitHubListLabelsPaginates(t *testing.T) {
	mux := http.NewServeMux()
	var serverURL string
	mux.HandleFunc("/api/v3/repos/org/repo/labels", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("page") == "2" {
			fmt.Fprint(w, `[{"name": "wontfix", "color": "ffffff", "description": null}]`)
			return
		}
		w.Header().Set("Link", fmt.Sprintf(`<%s/api/v3/repos/org/repo/labels?page=2>; rel="next"`, serverURL))
		fmt.Fprint(w, `[{"name": "bug", "color": "d73a4a", "description": "Something is wrong"}]`)
	})

	client, server := newGitHubServer(t, mux)
	serverURL = server.URL

	result, err := client.ListLabels(context.Background(), "org", "repo")
	require.NoError(t, err)

	assert.Equal(t, []labels.Label{
		{Name: "bug", Color: labels.String("d73a4a"), Description: labels.String("Something is wrong")},
		{Name: "wontfix", Color: labels.String("ffffff"), Description: labels.Null()},
	}, result)
}

func TestGitHubListLabelsNotFound(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/v3/repos/org/missing/labels", func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"message": "Not Found"}`, http.StatusNotFound)
	})

	client, _ := newGitHubServer(t, mux)

	_, err := client.ListLabels(context.Background(), "org", "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestGitHubGetRepositoriesFallsBackToUser(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/v3/orgs/someone/repos", func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"message": "Not Found"}`, http.StatusNotFound)
	})
	mux.HandleFunc("/api/v3/users/someone/repos", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `[
			{"name": "one", "owner": {"login": "someone"}, "archived": false},
			{"name": "old", "owner": {"login": "someone"}, "archived": true}
		]`)
	})

	client, _ := newGitHubServer(t, mux)

	repos, err := client.GetRepositories(context.Background(), "someone")
	require.NoError(t, err)
	require.Len(t, repos, 2)

	assert.Equal(t, "one", repos[0].GetName())
	assert.Equal(t, "someone", repos[0].GetOwner())
	assert.False(t, repos[0].IsArchived())
	assert.True(t, repos[1].IsArchived())
}

func TestGitHubGetRepositoriesSelf(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/v3/user/repos", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `[{"name": "mine", "owner": {"login": "octocat"}}]`)
	})

	client, _ := newGitHubServer(t, mux)

	repos, err := client.GetRepositories(context.Background(), "-")
	require.NoError(t, err)
	require.Len(t, repos, 1)
	assert.Equal(t, "mine", repos[0].GetName())
}

func TestGitHubWriteLabels(t *testing.T) {
	bodies := map[string]map[string]any{}

	mux := http.NewServeMux()
	record := func(w http.ResponseWriter, r *http.Request) {
		key := r.Method + " " + r.URL.Path
		raw, _ := io.ReadAll(r.Body)
		body := map[string]any{}
		if len(raw) > 0 {
			assert.NoError(t, json.Unmarshal(raw, &body))
		}
		bodies[key] = body

		if r.Method == http.MethodDelete {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		fmt.Fprint(w, `{"name": "bug"}`)
	}
	mux.HandleFunc("/api/v3/repos/org/repo/labels", record)
	mux.HandleFunc("/api/v3/repos/org/repo/labels/", record)

	client, _ := newGitHubServer(t, mux)
	ctx := context.Background()

	require.NoError(t, client.CreateLabel(ctx, "org", "repo", labels.Label{Name: "bug", Color: labels.String("d73a4a")}))
	assert.Equal(t, map[string]any{"name": "bug", "color": "d73a4a"}, bodies["POST /api/v3/repos/org/repo/labels"])

	newName := "bug"
	color := "ee0701"
	require.NoError(t, client.UpdateLabel(ctx, "org", "repo", "defect", LabelUpdate{NewName: &newName, Color: &color}))
	assert.Equal(t, map[string]any{"name": "bug", "color": "ee0701"}, bodies["PATCH /api/v3/repos/org/repo/labels/defect"])

	require.NoError(t, client.DeleteLabel(ctx, "org", "repo", "wontfix"))
	assert.Contains(t, bodies, "DELETE /api/v3/repos/org/repo/labels/wontfix")
}

func TestGitHubValidationError(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/v3/repos/org/repo/labels", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		fmt.Fprint(w, `{"message": "Validation Failed"}`)
	})

	client, _ := newGitHubServer(t, mux)

	err := client.CreateLabel(context.Background(), "org", "repo", labels.Label{Name: "bug"})
	assert.ErrorIs(t, err, ErrValidation)
}

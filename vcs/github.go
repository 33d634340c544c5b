package vcs

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"strings"

	"labelsync/config"
	"labelsync/constants"
	"labelsync/labels"
	"labelsync/vcs/repository"

	"github.com/google/go-github/v50/github"
	"github.com/rs/zerolog/log"
	"golang.org/x/oauth2"
)

type GitHub struct {
	config   *config.Host
	client   *github.Client
	username string
}

func NewGitHubClient(ctx context.Context, config config.Host) (*GitHub, error) {
	logger := log.With().Str("host", config.Name).Logger()

	logger.Info().Msg("Initializing client")

	var httpClient *http.Client
	if config.Token != "" {
		httpClient = oauth2.NewClient(ctx, oauth2.StaticTokenSource(&oauth2.Token{AccessToken: config.Token}))
	}

	var client *github.Client
	if config.BaseUrl == "" || strings.HasPrefix(config.BaseUrl, constants.GITHUB_URL) {
		client = github.NewClient(httpClient)
	} else {
		var err error
		client, err = github.NewEnterpriseClient(config.BaseUrl, config.BaseUrl, httpClient)
		if err != nil {
			return nil, err
		}
	}

	if config.Token == "" {
		logger.Warn().Msg("No access token defined, only publicly visible data is available")
		return &GitHub{config: &config, client: client}, nil
	}

	user, _, err := client.Users.Get(ctx, "")
	if err != nil {
		return nil, githubError(err)
	}

	username := user.GetLogin()
	logger.Info().Msgf("Logged in as %s", username)

	return &GitHub{config: &config, client: client, username: username}, nil
}

func (this *GitHub) GetConfig() *config.Host {
	return this.config
}

func githubError(err error) error {
	var errResp *github.ErrorResponse
	if errors.As(err, &errResp) && errResp.Response != nil {
		return statusError(errResp.Response.StatusCode, err)
	}
	return err
}

// paginate calls fetch until the last page has been read.
func paginate[T any](fetch func(options github.ListOptions) ([]T, *github.Response, error)) ([]T, error) {
	all := []T{}
	options := github.ListOptions{
		PerPage: constants.PAGE_SIZE,
	}

	for {
		items, resp, err := fetch(options)
		if err != nil {
			return nil, githubError(err)
		}

		all = append(all, items...)

		if resp.NextPage == 0 {
			break
		}

		options.Page = resp.NextPage
	}

	return all, nil
}

// GetRepositories lists the repositories of an organization, falling back
// to a user of the same name. The namespace "-" lists the repositories of
// the authenticated user.
func (this *GitHub) GetRepositories(ctx context.Context, namespace string) ([]repository.Repository, error) {
	logger := log.With().Str("host", this.config.Name).Str("namespace", namespace).Logger()

	var repos []*github.Repository
	var err error

	if namespace == constants.SELF_NAMESPACE {
		repos, err = this.listUserRepositories(ctx, "")
	} else {
		repos, err = paginate(func(options github.ListOptions) ([]*github.Repository, *github.Response, error) {
			return this.client.Repositories.ListByOrg(ctx, namespace, &github.RepositoryListByOrgOptions{ListOptions: options})
		})
		if errors.Is(err, ErrNotFound) {
			logger.Debug().Msg("Not an organization, listing user repositories")
			repos, err = this.listUserRepositories(ctx, namespace)
		}
	}

	if err != nil {
		return nil, err
	}

	allRepos := []repository.Repository{}
	for _, repo := range repos {
		logger.Debug().Msgf("Found repository: %s (%s)", repo.GetName(), repo.GetDescription())
		allRepos = append(allRepos, &githubRepository{repo: repo})
	}

	return allRepos, nil
}

func (this *GitHub) listUserRepositories(ctx context.Context, user string) ([]*github.Repository, error) {
	return paginate(func(options github.ListOptions) ([]*github.Repository, *github.Response, error) {
		return this.client.Repositories.List(ctx, user, &github.RepositoryListOptions{ListOptions: options})
	})
}

func (this *GitHub) ListLabels(ctx context.Context, namespace, repo string) ([]labels.Label, error) {
	ghLabels, err := paginate(func(options github.ListOptions) ([]*github.Label, *github.Response, error) {
		return this.client.Issues.ListLabels(ctx, namespace, repo, &options)
	})
	if err != nil {
		return nil, err
	}

	result := []labels.Label{}
	for _, label := range ghLabels {
		result = append(result, labels.Label{
			Name:        label.GetName(),
			Description: labels.FromPtr(label.Description),
			Color:       labels.FromPtr(label.Color),
		})
	}

	return result, nil
}

func (this *GitHub) CreateLabel(ctx context.Context, namespace, repo string, label labels.Label) error {
	name := label.Name
	_, _, err := this.client.Issues.CreateLabel(ctx, namespace, repo, &github.Label{
		Name:        &name,
		Description: label.Description.Ptr(),
		Color:       label.Color.Ptr(),
	})

	return githubError(err)
}

func (this *GitHub) UpdateLabel(ctx context.Context, namespace, repo, name string, update LabelUpdate) error {
	_, _, err := this.client.Issues.EditLabel(ctx, namespace, repo, url.PathEscape(name), &github.Label{
		Name:        update.NewName,
		Description: update.Description,
		Color:       update.Color,
	})

	return githubError(err)
}

func (this *GitHub) DeleteLabel(ctx context.Context, namespace, repo, name string) error {
	_, err := this.client.Issues.DeleteLabel(ctx, namespace, repo, url.PathEscape(name))

	return githubError(err)
}

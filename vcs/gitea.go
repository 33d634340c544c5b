package vcs

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"

	"labelsync/config"
	"labelsync/constants"
	"labelsync/labels"
	"labelsync/vcs/repository"

	"code.gitea.io/sdk/gitea"
	"github.com/rs/zerolog/log"
)

type Gitea struct {
	config         *config.Host
	client         *gitea.Client
	mutex          *sync.Mutex
	username       string
	initialContext context.Context
}

func NewGiteaClient(ctx context.Context, config config.Host, options ...gitea.ClientOption) (*Gitea, error) {
	logger := log.With().Str("host", config.Name).Logger()

	logger.Info().Msg("Initializing client")

	options = append([]gitea.ClientOption{gitea.SetContext(ctx)}, options...)
	if config.Token != "" {
		options = append(options, gitea.SetToken(config.Token))
	}

	client, err := gitea.NewClient(config.BaseUrl, options...)
	if err != nil {
		return nil, err
	}

	giteaClient := &Gitea{config: &config, client: client, mutex: &sync.Mutex{}, initialContext: ctx}

	if config.Token == "" {
		logger.Warn().Msg("No access token defined, only publicly visible data is available")
		return giteaClient, nil
	}

	user, resp, err := client.GetMyUserInfo()
	if err != nil {
		return nil, giteaError(resp, err)
	}

	giteaClient.username = user.UserName
	logger.Info().Msgf("Logged in as %s", user.UserName)

	return giteaClient, nil
}

func (giteaClient *Gitea) withContext(ctx context.Context, cb func(client *gitea.Client) error) error {
	// We need the mutex to protect against setting the default context for the current request
	giteaClient.mutex.Lock()
	defer giteaClient.mutex.Unlock()

	giteaClient.client.SetContext(ctx)
	err := cb(giteaClient.client)
	giteaClient.client.SetContext(giteaClient.initialContext)

	return err
}

func (giteaClient *Gitea) GetConfig() *config.Host {
	return giteaClient.config
}

func giteaError(resp *gitea.Response, err error) error {
	if err == nil {
		return nil
	}
	if resp != nil && resp.Response != nil {
		return statusError(resp.StatusCode, err)
	}
	return err
}

// giteaPaginate calls fetch with increasing page numbers until
// X-Total-Count items have been read, or a short page is returned when the
// header is missing.
func giteaPaginate[T any](ctx context.Context, giteaClient *Gitea, fetch func(client *gitea.Client, options gitea.ListOptions) ([]T, *gitea.Response, error)) ([]T, error) {
	all := []T{}
	options := gitea.ListOptions{
		Page:     1,
		PageSize: constants.PAGE_SIZE,
	}

	for {
		var items []T
		var resp *gitea.Response

		err := giteaClient.withContext(ctx, func(client *gitea.Client) error {
			var err error
			items, resp, err = fetch(client, options)
			return giteaError(resp, err)
		})

		if err != nil {
			return nil, err
		}

		all = append(all, items...)

		if len(items) == 0 {
			break
		}

		header := resp.Header.Get("X-Total-Count")
		if header == "" {
			if len(items) < options.PageSize {
				break
			}
		} else {
			totalCount, err := strconv.Atoi(header)
			if err != nil {
				return nil, err
			}

			if totalCount <= len(all) {
				break
			}
		}

		options.Page += 1
	}

	return all, nil
}

// GetRepositories lists the repositories of an organization, falling back
// to a user of the same name. The namespace "-" lists the repositories
// owned by the authenticated user.
func (giteaClient *Gitea) GetRepositories(ctx context.Context, namespace string) ([]repository.Repository, error) {
	logger := log.With().Str("host", giteaClient.config.Name).Str("namespace", namespace).Logger()

	var repos []*gitea.Repository
	var err error

	if namespace == constants.SELF_NAMESPACE {
		repos, err = giteaPaginate(ctx, giteaClient, func(client *gitea.Client, options gitea.ListOptions) ([]*gitea.Repository, *gitea.Response, error) {
			return client.ListMyRepos(gitea.ListReposOptions{ListOptions: options})
		})
	} else {
		repos, err = giteaPaginate(ctx, giteaClient, func(client *gitea.Client, options gitea.ListOptions) ([]*gitea.Repository, *gitea.Response, error) {
			return client.ListOrgRepos(namespace, gitea.ListOrgReposOptions{ListOptions: options})
		})
		if errors.Is(err, ErrNotFound) {
			logger.Debug().Msg("Not an organization, listing user repositories")
			repos, err = giteaPaginate(ctx, giteaClient, func(client *gitea.Client, options gitea.ListOptions) ([]*gitea.Repository, *gitea.Response, error) {
				return client.ListUserRepos(namespace, gitea.ListReposOptions{ListOptions: options})
			})
		}
	}

	if err != nil {
		return nil, err
	}

	allRepos := []repository.Repository{}
	for _, repo := range repos {
		if namespace == constants.SELF_NAMESPACE && repo.Owner != nil && repo.Owner.UserName != giteaClient.username {
			continue
		}

		logger.Debug().Msgf("Found repository: %s (%s)", repo.Name, repo.Description)
		allRepos = append(allRepos, &giteaRepository{repo: repo})
	}

	return allRepos, nil
}

func (giteaClient *Gitea) listLabels(ctx context.Context, namespace, repo string) ([]*gitea.Label, error) {
	return giteaPaginate(ctx, giteaClient, func(client *gitea.Client, options gitea.ListOptions) ([]*gitea.Label, *gitea.Response, error) {
		return client.ListRepoLabels(namespace, repo, gitea.ListLabelsOptions{ListOptions: options})
	})
}

func (giteaClient *Gitea) ListLabels(ctx context.Context, namespace, repo string) ([]labels.Label, error) {
	giteaLabels, err := giteaClient.listLabels(ctx, namespace, repo)
	if err != nil {
		return nil, err
	}

	result := []labels.Label{}
	for _, label := range giteaLabels {
		result = append(result, labels.Label{
			Name:        label.Name,
			Description: labels.String(label.Description),
			Color:       labels.String(strings.TrimPrefix(label.Color, "#")),
		})
	}

	return result, nil
}

// labelID resolves a label name, since Gitea addresses labels by id.
func (giteaClient *Gitea) labelID(ctx context.Context, namespace, repo, name string) (int64, error) {
	giteaLabels, err := giteaClient.listLabels(ctx, namespace, repo)
	if err != nil {
		return 0, err
	}

	for _, label := range giteaLabels {
		if label.Name == name {
			return label.ID, nil
		}
	}

	return 0, fmt.Errorf("%w: label %s in %s/%s", ErrNotFound, name, namespace, repo)
}

func giteaColor(color string) string {
	return "#" + strings.TrimPrefix(color, "#")
}

func (giteaClient *Gitea) CreateLabel(ctx context.Context, namespace, repo string, label labels.Label) error {
	// Gitea requires a color on creation.
	color := constants.DEFAULT_COLOR
	if label.Color.String() != "" {
		color = label.Color.String()
	}

	return giteaClient.withContext(ctx, func(client *gitea.Client) error {
		_, resp, err := client.CreateLabel(namespace, repo, gitea.CreateLabelOption{
			Name:        label.Name,
			Color:       giteaColor(color),
			Description: label.Description.String(),
		})
		return giteaError(resp, err)
	})
}

func (giteaClient *Gitea) UpdateLabel(ctx context.Context, namespace, repo, name string, update LabelUpdate) error {
	id, err := giteaClient.labelID(ctx, namespace, repo, name)
	if err != nil {
		return err
	}

	options := gitea.EditLabelOption{
		Name:        update.NewName,
		Description: update.Description,
	}
	if update.Color != nil {
		color := giteaColor(*update.Color)
		options.Color = &color
	}

	return giteaClient.withContext(ctx, func(client *gitea.Client) error {
		_, resp, err := client.EditLabel(namespace, repo, id, options)
		return giteaError(resp, err)
	})
}

func (giteaClient *Gitea) DeleteLabel(ctx context.Context, namespace, repo, name string) error {
	id, err := giteaClient.labelID(ctx, namespace, repo, name)
	if err != nil {
		return err
	}

	return giteaClient.withContext(ctx, func(client *gitea.Client) error {
		resp, err := client.DeleteLabel(namespace, repo, id)
		return giteaError(resp, err)
	})
}

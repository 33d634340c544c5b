package vcs

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"labelsync/config"
	"labelsync/constants"
	"labelsync/labels"
	"labelsync/vcs/repository"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

var (
	ErrNotFound    = errors.New("resource not found")
	ErrValidation  = errors.New("validation failed")
	ErrUnsupported = errors.New("not supported")
)

// LabelUpdate lists the label fields to change. Nil fields are left as
// they are.
type LabelUpdate struct {
	NewName     *string
	Description *string
	Color       *string
}

// LabelReader fetches repositories and their labels.
type LabelReader interface {
	GetRepositories(ctx context.Context, namespace string) ([]repository.Repository, error)
	ListLabels(ctx context.Context, namespace, repo string) ([]labels.Label, error)
}

// LabelWriter changes the labels of a repository.
type LabelWriter interface {
	CreateLabel(ctx context.Context, namespace, repo string, label labels.Label) error
	UpdateLabel(ctx context.Context, namespace, repo, name string, update LabelUpdate) error
	DeleteLabel(ctx context.Context, namespace, repo, name string) error
}

type Vcs interface {
	LabelReader
	LabelWriter
	GetConfig() *config.Host
}

func LoadClient(ctx context.Context, host *config.Host) (Vcs, error) {
	switch host.Type {
	case constants.HOST_GITEA:
		return NewGiteaClient(ctx, *host)
	case constants.HOST_GITHUB:
		return NewGitHubClient(ctx, *host)
	default:
		return nil, fmt.Errorf("%w: host type %s", ErrUnsupported, host.Type)
	}
}

func GetLogger(vcs Vcs) zerolog.Logger {
	return log.With().Str("host", vcs.GetConfig().Name).Logger()
}

func statusError(status int, err error) error {
	switch status {
	case http.StatusNotFound:
		return fmt.Errorf("%w: %v", ErrNotFound, err)
	case http.StatusUnprocessableEntity:
		return fmt.Errorf("%w: %v", ErrValidation, err)
	default:
		return err
	}
}

package sync

import (
	"context"
	"errors"
	"fmt"
	"runtime"

	"labelsync/labels"
	"labelsync/vcs"
	"labelsync/vcs/repository"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

// Options controls how repositories are compared.
type Options struct {
	labels.Options
	// KeepGoing isolates failures: a repository whose labels cannot be
	// fetched is reported in the returned error while the others are still
	// compared. Without it the first failure cancels the whole batch.
	KeepGoing bool
	// Concurrency bounds the number of repositories fetched at once.
	// Zero picks a default from the number of CPUs.
	Concurrency int
}

const maxConcurrency = 8

func (options Options) concurrency() int {
	if options.Concurrency > 0 {
		return options.Concurrency
	}
	return min(max(runtime.NumCPU(), 2), maxConcurrency)
}

// CompareRepository fetches the labels of namespace/repo and compares
// them against specs.
func CompareRepository(ctx context.Context, client vcs.LabelReader, specs []labels.LabelSpec, namespace, repo string, options Options) (labels.LabelDiff, error) {
	logger := log.With().Str("namespace", namespace).Str("repository", repo).Logger()

	observed, err := client.ListLabels(ctx, namespace, repo)
	if err != nil {
		return labels.LabelDiff{}, fmt.Errorf("failed fetching labels of %s/%s: %w", namespace, repo, err)
	}

	diff := labels.CreateDiff(specs, observed, namespace, repo, options.Options)

	logger.Debug().
		Int("valid", len(diff.Valid)).
		Int("missing", len(diff.Missing)).
		Int("extra", len(diff.Extra)).
		Int("diff", len(diff.Diff)).
		Msg("Compared labels")

	return diff, nil
}

// CompareNamespace compares every repository of namespace that is not
// archived. Diffs are returned in listing order. With KeepGoing, the
// diffs of the repositories that could be fetched are returned along
// with an error describing the others.
func CompareNamespace(ctx context.Context, client vcs.LabelReader, specs []labels.LabelSpec, namespace string, options Options) ([]labels.LabelDiff, error) {
	logger := log.With().Str("namespace", namespace).Logger()

	logger.Info().Msg("Listing repositories")

	repos, err := client.GetRepositories(ctx, namespace)
	if err != nil {
		return nil, fmt.Errorf("failed listing repositories of %s: %w", namespace, err)
	}

	active := []repository.Repository{}
	for _, repo := range repos {
		if repo.IsArchived() {
			logger.Debug().Str("repository", repo.GetName()).Msg("Skipping archived repository")
			continue
		}
		active = append(active, repo)
	}

	logger.Info().Msgf("%d repositories to compare", len(active))

	results := make([]*labels.LabelDiff, len(active))
	failures := make([]error, len(active))

	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(options.concurrency())

	for i, repo := range active {
		group.Go(func() error {
			diff, err := CompareRepository(groupCtx, client, specs, repo.GetOwner(), repo.GetName(), options)
			if err != nil {
				if !options.KeepGoing {
					return err
				}

				log.Error().Err(err).Str("repository", repository.FullName(repo)).Send()
				failures[i] = err
				return nil
			}

			results[i] = &diff
			return nil
		})
	}

	if err := group.Wait(); err != nil {
		return nil, err
	}

	diffs := []labels.LabelDiff{}
	for _, diff := range results {
		if diff != nil {
			diffs = append(diffs, *diff)
		}
	}

	if err := errors.Join(failures...); err != nil {
		return diffs, fmt.Errorf("some repositories failed: %w", err)
	}

	return diffs, nil
}

// Target is what a command operates on: a whole namespace, or a single
// repository when Repository is set.
type Target struct {
	Namespace  string
	Repository string
}

func (target Target) String() string {
	if target.Repository == "" {
		return target.Namespace
	}
	return fmt.Sprintf("%s/%s", target.Namespace, target.Repository)
}

// Compare dispatches to CompareRepository or CompareNamespace.
func Compare(ctx context.Context, client vcs.LabelReader, specs []labels.LabelSpec, target Target, options Options) ([]labels.LabelDiff, error) {
	if target.Repository != "" {
		diff, err := CompareRepository(ctx, client, specs, target.Namespace, target.Repository, options)
		if err != nil {
			return nil, err
		}
		return []labels.LabelDiff{diff}, nil
	}

	return CompareNamespace(ctx, client, specs, target.Namespace, options)
}

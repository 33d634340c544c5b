package vcs

import "github.com/google/go-github/v50/github"

type githubRepository struct {
	repo *github.Repository
}

func (repo *githubRepository) GetName() string {
	return repo.repo.GetName()
}

func (repo *githubRepository) GetOwner() string {
	return repo.repo.GetOwner().GetLogin()
}

func (repo *githubRepository) IsArchived() bool {
	return repo.repo.GetArchived()
}

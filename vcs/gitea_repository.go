package vcs

import "code.gitea.io/sdk/gitea"

type giteaRepository struct {
	repo *gitea.Repository
}

func (repo *giteaRepository) GetName() string {
	return repo.repo.Name
}

func (repo *giteaRepository) GetOwner() string {
	if repo.repo.Owner == nil {
		return ""
	}
	return repo.repo.Owner.UserName
}

func (repo *giteaRepository) IsArchived() bool {
	return repo.repo.Archived
}

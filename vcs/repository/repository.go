package repository

import "fmt"

// Repository describes a remote repository holding labels.
type Repository interface {
	GetName() string
	GetOwner() string
	IsArchived() bool
}

// FullName returns owner/name.
func FullName(repo Repository) string {
	return fmt.Sprintf("%s/%s", repo.GetOwner(), repo.GetName())
}

// Descriptor is a plain Repository, used for repositories named on the
// command line and in tests.
type Descriptor struct {
	Name     string
	Owner    string
	Archived bool
}

func (d Descriptor) GetName() string {
	return d.Name
}

func (d Descriptor) GetOwner() string {
	return d.Owner
}

func (d Descriptor) IsArchived() bool {
	return d.Archived
}

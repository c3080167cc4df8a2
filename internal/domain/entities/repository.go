package entities

import (
	"fmt"

	gitforgeEntities "github.com/rios0rios0/gitforge/pkg/global/domain/entities"
)

const githubHost = "github.com"

// Repository is re-exported from gitforge.
type Repository = gitforgeEntities.Repository

// NewGitHubRepository describes a GitHub repository with both clone transports filled in.
func NewGitHubRepository(owner, name string) Repository {
	return Repository{
		ID:           owner + "/" + name,
		Name:         name,
		Organization: owner,
		RemoteURL:    fmt.Sprintf("https://%s/%s/%s.git", githubHost, owner, name),
		SSHURL:       fmt.Sprintf("git@%s:%s/%s.git", githubHost, owner, name),
		ProviderName: "github",
	}
}

// FullName returns the "owner/name" form of a repository.
func FullName(repo Repository) string {
	return repo.Organization + "/" + repo.Name
}

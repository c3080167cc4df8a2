package repositories

import (
	"context"

	"github.com/ibexa/ci-scripts/internal/domain/entities"
)

// ProviderRepository abstracts a Git hosting service API (GitHub).
// It covers the pull request lookups of the dependency linker and the
// branch and draft pull request handling of the regression runner.
type ProviderRepository interface {
	// Name returns the provider identifier (e.g. "github").
	Name() string

	// GetPullRequest fetches the head and base details of a pull request.
	GetPullRequest(ctx context.Context, repo entities.Repository, number int) (*entities.PullRequestDetails, error)

	// GetFileContent downloads a file of the repository at the given ref.
	GetFileContent(ctx context.Context, repo entities.Repository, path, ref string) ([]byte, error)

	// BranchExists reports whether the branch is visible through the API.
	// A missing branch is not an error.
	BranchExists(ctx context.Context, repo entities.Repository, branch string) (bool, error)

	// CreateDraftPullRequest opens a draft pull request from input.SourceBranch into input.TargetBranch.
	CreateDraftPullRequest(
		ctx context.Context,
		repo entities.Repository,
		input entities.PullRequestInput,
	) (*entities.PullRequest, error)
}

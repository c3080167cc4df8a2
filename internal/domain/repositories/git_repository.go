package repositories

import "context"

// GitRepository abstracts the version-control operations run on a local clone.
type GitRepository interface {
	// Clone clones url into dir with branch checked out.
	Clone(ctx context.Context, url, branch, dir string) error

	// CreateBranch creates a branch at HEAD and checks it out.
	CreateBranch(ctx context.Context, dir, name string) error

	// DeleteBranch deletes a local branch that is not checked out.
	DeleteBranch(ctx context.Context, dir, name string) error

	// Add stages a path relative to dir.
	Add(ctx context.Context, dir, path string) error

	// Commit records the staged changes and returns the new commit SHA.
	Commit(ctx context.Context, dir, message string) (string, error)

	// Push pushes a local branch to the remote.
	Push(ctx context.Context, dir, remote, branch string) error
}

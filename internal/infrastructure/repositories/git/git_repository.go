package git

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"

	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	logger "github.com/sirupsen/logrus"

	"github.com/ibexa/ci-scripts/internal/domain/repositories"
)

// CommandRunner runs the git binary with args inside dir and returns its combined output.
type CommandRunner func(ctx context.Context, dir string, args ...string) ([]byte, error)

// GitRepository implements repositories.GitRepository. Network operations and commits go
// through the git binary so the user's SSH agent, credential helpers and identity apply;
// local branch and index handling use go-git.
type GitRepository struct {
	run CommandRunner
}

// NewGitRepository creates a GitRepository backed by the git binary found in PATH.
func NewGitRepository() repositories.GitRepository {
	return NewGitRepositoryWithRunner(runGit)
}

// NewGitRepositoryWithRunner creates a GitRepository using the given runner for git commands.
func NewGitRepositoryWithRunner(run CommandRunner) *GitRepository {
	return &GitRepository{run: run}
}

func (r *GitRepository) Clone(ctx context.Context, url, branch, dir string) error {
	logger.Debugf("Cloning %s (branch %s) into %s", url, branch, dir)
	if _, err := r.run(ctx, "", "clone", "--branch", branch, "--", url, dir); err != nil {
		return fmt.Errorf("failed to clone %s: %w", url, err)
	}
	return nil
}

func (r *GitRepository) CreateBranch(_ context.Context, dir, name string) error {
	repo, err := gogit.PlainOpen(dir)
	if err != nil {
		return fmt.Errorf("failed to open repository: %w", err)
	}

	worktree, err := repo.Worktree()
	if err != nil {
		return fmt.Errorf("failed to get worktree: %w", err)
	}

	err = worktree.Checkout(&gogit.CheckoutOptions{
		Branch: plumbing.NewBranchReferenceName(name),
		Create: true,
		Keep:   true,
	})
	if err != nil {
		return fmt.Errorf("failed to create branch %s: %w", name, err)
	}

	return nil
}

func (r *GitRepository) DeleteBranch(_ context.Context, dir, name string) error {
	repo, err := gogit.PlainOpen(dir)
	if err != nil {
		return fmt.Errorf("failed to open repository: %w", err)
	}

	refName := plumbing.NewBranchReferenceName(name)
	head, err := repo.Head()
	if err != nil {
		return fmt.Errorf("failed to resolve HEAD: %w", err)
	}
	if head.Name() == refName {
		return fmt.Errorf("refusing to delete the checked out branch %s", name)
	}

	if _, err = repo.Reference(refName, false); err != nil {
		return fmt.Errorf("branch %s not found: %w", name, err)
	}
	if err = repo.Storer.RemoveReference(refName); err != nil {
		return fmt.Errorf("failed to delete branch %s: %w", name, err)
	}

	// tracking configuration written by clone
	if err = repo.DeleteBranch(name); err != nil && !errors.Is(err, gogit.ErrBranchNotFound) {
		return fmt.Errorf("failed to delete branch %s configuration: %w", name, err)
	}

	return nil
}

func (r *GitRepository) Add(_ context.Context, dir, path string) error {
	repo, err := gogit.PlainOpen(dir)
	if err != nil {
		return fmt.Errorf("failed to open repository: %w", err)
	}

	worktree, err := repo.Worktree()
	if err != nil {
		return fmt.Errorf("failed to get worktree: %w", err)
	}

	if _, err = worktree.Add(path); err != nil {
		return fmt.Errorf("failed to stage %s: %w", path, err)
	}
	return nil
}

func (r *GitRepository) Commit(ctx context.Context, dir, message string) (string, error) {
	if _, err := r.run(ctx, dir, "commit", "--message", message); err != nil {
		return "", fmt.Errorf("failed to commit: %w", err)
	}

	output, err := r.run(ctx, dir, "rev-parse", "HEAD")
	if err != nil {
		return "", fmt.Errorf("failed to resolve the new commit: %w", err)
	}
	return strings.TrimSpace(string(output)), nil
}

func (r *GitRepository) Push(ctx context.Context, dir, remote, branch string) error {
	logger.Debugf("Pushing %s to %s", branch, remote)
	if _, err := r.run(ctx, dir, "push", remote, branch); err != nil {
		return fmt.Errorf("failed to push %s to %s: %w", branch, remote, err)
	}
	return nil
}

func runGit(ctx context.Context, dir string, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, "git", args...)
	cmd.Dir = dir

	output, err := cmd.CombinedOutput()
	if err != nil {
		return output, fmt.Errorf("git %s: %w: %s", args[0], err, strings.TrimSpace(string(output)))
	}
	return output, nil
}

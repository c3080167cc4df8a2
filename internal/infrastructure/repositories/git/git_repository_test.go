//go:build unit

package git_test

import (
	"context"
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"testing"
	"time"

	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ibexa/ci-scripts/internal/infrastructure/repositories/git"
)

func requireGitBinary(t *testing.T) {
	t.Helper()
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git binary not available")
	}
}

// seedRepository creates a repository on master with one commit.
func seedRepository(t *testing.T) string {
	t.Helper()

	dir := t.TempDir()
	repo, err := gogit.PlainInit(dir, false)
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "README.md"), []byte("# oss\n"), 0o600))
	worktree, err := repo.Worktree()
	require.NoError(t, err)
	_, err = worktree.Add("README.md")
	require.NoError(t, err)
	_, err = worktree.Commit("Initial commit", &gogit.CommitOptions{
		Author: &object.Signature{Name: "Seeder", Email: "seeder@example.com", When: time.Now()},
	})
	require.NoError(t, err)

	return dir
}

func setGitIdentity(t *testing.T) {
	t.Helper()
	t.Setenv("GIT_AUTHOR_NAME", "Regression Tester")
	t.Setenv("GIT_AUTHOR_EMAIL", "tester@example.com")
	t.Setenv("GIT_COMMITTER_NAME", "Regression Tester")
	t.Setenv("GIT_COMMITTER_EMAIL", "tester@example.com")
}

func TestGitRepository_Workflow(t *testing.T) { //nolint:paralleltest // sets the git identity through t.Setenv
	requireGitBinary(t)
	setGitIdentity(t)

	t.Run("should clone, branch, commit and push a new file", func(t *testing.T) {
		// given
		ctx := context.Background()
		origin := seedRepository(t)
		dir := filepath.Join(t.TempDir(), "oss")
		repository := git.NewGitRepository()

		// when
		require.NoError(t, repository.Clone(ctx, origin, "master", dir))
		require.NoError(t, repository.CreateBranch(ctx, dir, "tmp_regression_abc"))
		require.NoError(t, repository.DeleteBranch(ctx, dir, "master"))
		require.NoError(t, os.WriteFile(filepath.Join(dir, "dependencies.json"), []byte("{}"), 0o600))
		require.NoError(t, repository.Add(ctx, dir, "dependencies.json"))
		sha, commitErr := repository.Commit(ctx, dir, "[TMP] Run regression")
		require.NoError(t, commitErr)
		pushErr := repository.Push(ctx, dir, "origin", "tmp_regression_abc")

		// then
		require.NoError(t, pushErr)
		assert.Len(t, sha, 40)

		local, err := gogit.PlainOpen(dir)
		require.NoError(t, err)
		_, err = local.Reference(plumbing.NewBranchReferenceName("master"), false)
		require.ErrorIs(t, err, plumbing.ErrReferenceNotFound)

		remote, err := gogit.PlainOpen(origin)
		require.NoError(t, err)
		pushed, err := remote.Reference(plumbing.NewBranchReferenceName("tmp_regression_abc"), false)
		require.NoError(t, err)
		assert.Equal(t, sha, pushed.Hash().String())

		commit, err := remote.CommitObject(pushed.Hash())
		require.NoError(t, err)
		assert.Equal(t, "[TMP] Run regression\n", commit.Message)
		_, err = commit.File("dependencies.json")
		require.NoError(t, err)
	})

	t.Run("should fail to clone a branch that does not exist", func(t *testing.T) {
		// given
		origin := seedRepository(t)
		dir := filepath.Join(t.TempDir(), "oss")
		repository := git.NewGitRepository()

		// when
		err := repository.Clone(context.Background(), origin, "9.9", dir)

		// then
		require.Error(t, err)
	})

	t.Run("should refuse to delete the checked out branch", func(t *testing.T) {
		// given
		origin := seedRepository(t)
		repository := git.NewGitRepository()

		// when
		err := repository.DeleteBranch(context.Background(), origin, "master")

		// then
		require.Error(t, err)
		assert.Contains(t, err.Error(), "checked out")
	})
}

func TestGitRepository_Runner(t *testing.T) {
	t.Parallel()

	t.Run("should pass the clone arguments to the runner", func(t *testing.T) {
		t.Parallel()

		// given
		var calls [][]string
		repository := git.NewGitRepositoryWithRunner(func(_ context.Context, dir string, args ...string) ([]byte, error) {
			calls = append(calls, append([]string{dir}, args...))
			return nil, nil
		})

		// when
		err := repository.Clone(context.Background(), "git@github.com:ibexa/oss.git", "4.5", "/tmp/oss")

		// then
		require.NoError(t, err)
		assert.Equal(t, [][]string{
			{"", "clone", "--branch", "4.5", "--", "git@github.com:ibexa/oss.git", "/tmp/oss"},
		}, calls)
	})

	t.Run("should return the trimmed HEAD hash after committing", func(t *testing.T) {
		t.Parallel()

		// given
		var calls [][]string
		repository := git.NewGitRepositoryWithRunner(func(_ context.Context, _ string, args ...string) ([]byte, error) {
			calls = append(calls, args)
			if args[0] == "rev-parse" {
				return []byte("0123456789abcdef0123456789abcdef01234567\n"), nil
			}
			return nil, nil
		})

		// when
		sha, err := repository.Commit(context.Background(), "/tmp/oss", "message")

		// then
		require.NoError(t, err)
		assert.Equal(t, "0123456789abcdef0123456789abcdef01234567", sha)
		assert.Equal(t, []string{"commit", "--message", "message"}, calls[0])
	})

	t.Run("should wrap push failures", func(t *testing.T) {
		t.Parallel()

		// given
		repository := git.NewGitRepositoryWithRunner(func(context.Context, string, ...string) ([]byte, error) {
			return nil, errors.New("permission denied")
		})

		// when
		err := repository.Push(context.Background(), "/tmp/oss", "origin", "tmp_regression_abc")

		// then
		require.Error(t, err)
		assert.Contains(t, err.Error(), "tmp_regression_abc")
	})
}

//go:build integration || unit || test

package repositorydoubles //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"context"
	"os"
	"path/filepath"

	"github.com/ibexa/ci-scripts/internal/domain/repositories"
)

// SpyGitRepository implements repositories.GitRepository, recording every call as a readable line.
// A successful Clone creates the target directory so later file operations work.
type SpyGitRepository struct {
	Calls []string

	// CloneErrs is keyed by clone URL.
	CloneErrs map[string]error
	// LeavePartialClone creates the target directory even when the clone fails.
	LeavePartialClone bool

	CreateBranchErr error
	DeleteBranchErr error
	AddErr          error
	CommitErr       error
	CommitSHA       string
	PushErr         error

	// StagedFiles holds the content of each added path at the time Add was called.
	StagedFiles map[string]string
}

var _ repositories.GitRepository = (*SpyGitRepository)(nil)

func (g *SpyGitRepository) Clone(_ context.Context, url, branch, dir string) error {
	g.Calls = append(g.Calls, "clone "+url+" "+branch+" "+dir)
	if err := g.CloneErrs[url]; err != nil {
		if g.LeavePartialClone {
			_ = os.MkdirAll(dir, 0o755)
		}
		return err
	}
	return os.MkdirAll(dir, 0o755)
}

func (g *SpyGitRepository) CreateBranch(_ context.Context, dir, name string) error {
	g.Calls = append(g.Calls, "branch "+name+" "+dir)
	return g.CreateBranchErr
}

func (g *SpyGitRepository) DeleteBranch(_ context.Context, dir, name string) error {
	g.Calls = append(g.Calls, "delete-branch "+name+" "+dir)
	return g.DeleteBranchErr
}

func (g *SpyGitRepository) Add(_ context.Context, dir, path string) error {
	g.Calls = append(g.Calls, "add "+path+" "+dir)
	if g.AddErr != nil {
		return g.AddErr
	}
	if g.StagedFiles == nil {
		g.StagedFiles = make(map[string]string)
	}
	content, err := os.ReadFile(filepath.Join(dir, path))
	if err != nil {
		return err
	}
	g.StagedFiles[filepath.Join(dir, path)] = string(content)
	return nil
}

func (g *SpyGitRepository) Commit(_ context.Context, dir, message string) (string, error) {
	g.Calls = append(g.Calls, "commit "+message+" "+dir)
	if g.CommitErr != nil {
		return "", g.CommitErr
	}
	if g.CommitSHA != "" {
		return g.CommitSHA, nil
	}
	return "0123456789abcdef0123456789abcdef01234567", nil
}

func (g *SpyGitRepository) Push(_ context.Context, dir, remote, branch string) error {
	g.Calls = append(g.Calls, "push "+remote+" "+branch+" "+dir)
	return g.PushErr
}

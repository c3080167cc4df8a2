//go:build integration || unit || test

// Package repositorydoubles provides test doubles (spies, stubs, dummies) for
// repository interfaces. These are hand-crafted implementations, no mock frameworks.
package repositorydoubles //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"context"
	"fmt"
	"sync"

	"github.com/ibexa/ci-scripts/internal/domain/entities"
	"github.com/ibexa/ci-scripts/internal/domain/repositories"
)

// SpyProviderRepository implements repositories.ProviderRepository as a configurable spy.
type SpyProviderRepository struct {
	mu sync.Mutex

	// --- identity ---
	ProviderName string
	Token        string

	// --- GetPullRequest ---
	// PullRequests is keyed by "owner/name#number".
	PullRequests          map[string]*entities.PullRequestDetails
	GetPullRequestErr     error
	RequestedPullRequests []string

	// --- GetFileContent ---
	// FileContents is keyed by "owner/name@ref:path".
	FileContents   map[string]string
	FileContentErr error
	RequestedFiles []string

	// --- BranchExists ---
	// ExistingBranches is keyed by "owner/name:branch".
	ExistingBranches map[string]bool
	BranchExistsErr  error
	// BranchExistsFunc, when set, replaces the map lookup.
	BranchExistsFunc func(repo entities.Repository, branch string) (bool, error)
	CheckedBranches  []string

	// --- CreateDraftPullRequest ---
	CreatePRErr  error
	PRInputs     []entities.PullRequestInput
	PRRepository []string
}

var _ repositories.ProviderRepository = (*SpyProviderRepository)(nil)

func (p *SpyProviderRepository) Name() string { return p.ProviderName }

func (p *SpyProviderRepository) GetPullRequest(
	_ context.Context, repo entities.Repository, number int,
) (*entities.PullRequestDetails, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	key := fmt.Sprintf("%s#%d", entities.FullName(repo), number)
	p.RequestedPullRequests = append(p.RequestedPullRequests, key)
	if p.GetPullRequestErr != nil {
		return nil, p.GetPullRequestErr
	}
	if details, ok := p.PullRequests[key]; ok {
		return details, nil
	}
	return nil, fmt.Errorf("pull request %s not found", key)
}

func (p *SpyProviderRepository) GetFileContent(
	_ context.Context, repo entities.Repository, path, ref string,
) ([]byte, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	key := fmt.Sprintf("%s@%s:%s", entities.FullName(repo), ref, path)
	p.RequestedFiles = append(p.RequestedFiles, key)
	if p.FileContentErr != nil {
		return nil, p.FileContentErr
	}
	if content, ok := p.FileContents[key]; ok {
		return []byte(content), nil
	}
	return nil, fmt.Errorf("file %s not found", key)
}

func (p *SpyProviderRepository) BranchExists(
	_ context.Context, repo entities.Repository, branch string,
) (bool, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	key := entities.FullName(repo) + ":" + branch
	p.CheckedBranches = append(p.CheckedBranches, key)
	if p.BranchExistsFunc != nil {
		return p.BranchExistsFunc(repo, branch)
	}
	if p.BranchExistsErr != nil {
		return false, p.BranchExistsErr
	}
	return p.ExistingBranches[key], nil
}

func (p *SpyProviderRepository) CreateDraftPullRequest(
	_ context.Context, repo entities.Repository, input entities.PullRequestInput,
) (*entities.PullRequest, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.PRInputs = append(p.PRInputs, input)
	p.PRRepository = append(p.PRRepository, entities.FullName(repo))
	if p.CreatePRErr != nil {
		return nil, p.CreatePRErr
	}

	id := len(p.PRInputs)
	return &entities.PullRequest{
		ID:     id,
		Title:  input.Title,
		URL:    fmt.Sprintf("https://github.com/%s/pull/%d", entities.FullName(repo), id),
		Status: "open",
	}, nil
}

// CheckedBranchesSnapshot returns a copy of CheckedBranches safe to read while the spy is in use.
func (p *SpyProviderRepository) CheckedBranchesSnapshot() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]string(nil), p.CheckedBranches...)
}

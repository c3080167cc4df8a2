package commands

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/jonboulle/clockwork"
	logger "github.com/sirupsen/logrus"

	"github.com/ibexa/ci-scripts/internal/domain/entities"
	"github.com/ibexa/ci-scripts/internal/domain/repositories"
	infraRepos "github.com/ibexa/ci-scripts/internal/infrastructure/repositories"
)

const remoteOrigin = "origin"

// RunRegression is the interface for the regression:run command.
type RunRegression interface {
	Execute(
		ctx context.Context,
		settings *entities.Settings,
		opts RunRegressionOptions,
	) (*entities.RegressionRun, error)
}

// RunRegressionOptions holds runtime options for a single regression run.
type RunRegressionOptions struct {
	ProductVersion string
	Editions       []string
	Token          string // Explicit token, the token chain is used when empty
	ManifestPath   string // Path to dependencies.json, defaults to the working directory
	WorkDir        string // Directory receiving one clone per edition, defaults to the working directory

	// ConfirmCleanup decides whether the clone of an edition is removed once its
	// pull request is open. Nil keeps every clone.
	ConfirmCleanup func(edition, dir string) bool
}

// RunRegressionCommand pushes the manifest to a temporary branch of every edition
// repository and opens a draft pull request from it.
type RunRegressionCommand struct {
	providerRegistry   *infraRepos.ProviderRegistry
	gitRepository      repositories.GitRepository
	manifestRepository repositories.ManifestRepository
	tokenRepository    repositories.TokenRepository
	environment        *entities.Environment
	clock              clockwork.Clock
}

// NewRunRegressionCommand creates a new RunRegressionCommand.
func NewRunRegressionCommand(
	providerRegistry *infraRepos.ProviderRegistry,
	gitRepository repositories.GitRepository,
	manifestRepository repositories.ManifestRepository,
	tokenRepository repositories.TokenRepository,
	environment *entities.Environment,
	clock clockwork.Clock,
) *RunRegressionCommand {
	return &RunRegressionCommand{
		providerRegistry:   providerRegistry,
		gitRepository:      gitRepository,
		manifestRepository: manifestRepository,
		tokenRepository:    tokenRepository,
		environment:        environment,
		clock:              clock,
	}
}

// Execute validates the inputs, then processes the editions one after the other.
// The first failing edition stops the run; nothing already pushed is rolled back.
func (it *RunRegressionCommand) Execute(
	ctx context.Context,
	settings *entities.Settings,
	opts RunRegressionOptions,
) (*entities.RegressionRun, error) {
	if err := entities.ValidateProductVersion(opts.ProductVersion); err != nil {
		return nil, err
	}
	if len(opts.Editions) == 0 {
		return nil, fmt.Errorf("%w: no edition given", entities.ErrUnknownEdition)
	}
	if err := entities.ValidateEditions(opts.Editions, settings.Editions); err != nil {
		return nil, err
	}

	manifestPath := opts.ManifestPath
	if manifestPath == "" {
		manifestPath = entities.DependenciesFile
	}
	manifest, err := it.manifestRepository.Load(manifestPath)
	if err != nil {
		return nil, err
	}
	logger.Debugf("Loaded %d package(s) from %s", len(manifest.Packages), manifestPath)

	token := resolveToken(ctx, opts.Token, it.environment, settings, it.tokenRepository)
	provider, err := it.providerRegistry.Get(providerGitHub, token)
	if err != nil {
		return nil, err
	}
	logger.Debugf("Using the %s API for branches and pull requests", provider.Name())

	workDir := opts.WorkDir
	if workDir == "" {
		workDir = "."
	}

	run := entities.NewRegressionRun(opts.ProductVersion, opts.Editions, it.clock.Now())
	logger.Infof("Running regression for %v on %s using branch %s", run.Editions, run.ProductVersion, run.BranchName)

	for _, edition := range run.Editions {
		if err = it.runEdition(ctx, settings, opts, provider, run, edition, workDir, manifest); err != nil {
			return run, fmt.Errorf("edition %s: %w", edition, err)
		}
	}

	return run, nil
}

func (it *RunRegressionCommand) runEdition(
	ctx context.Context,
	settings *entities.Settings,
	opts RunRegressionOptions,
	provider repositories.ProviderRepository,
	run *entities.RegressionRun,
	edition, workDir string,
	manifest *entities.DependencyManifest,
) error {
	repo := entities.NewGitHubRepository(settings.Owner, edition)
	dir := filepath.Join(workDir, edition)

	baseBranch, err := it.baseBranch(ctx, settings, provider, repo, run.ProductVersion)
	if err != nil {
		return err
	}
	run.BaseBranches[edition] = baseBranch

	if err = it.prepareBranch(ctx, settings, repo, run, baseBranch, dir, manifest); err != nil {
		return err
	}

	if err = it.waitForBranch(ctx, settings.Polling, provider, repo, run.BranchName); err != nil {
		return err
	}

	pr, err := provider.CreateDraftPullRequest(ctx, repo, entities.PullRequestInput{
		SourceBranch: run.BranchName,
		TargetBranch: baseBranch,
		Title:        settings.PullRequest.Title,
		Description:  settings.PullRequest.Body,
	})
	if err != nil {
		return err
	}
	run.PullRequests[edition] = *pr
	logger.Infof("Pull request created: %s", pr.URL)

	if opts.ConfirmCleanup != nil && opts.ConfirmCleanup(edition, dir) {
		if err = os.RemoveAll(dir); err != nil {
			return fmt.Errorf("failed to remove %s: %w", dir, err)
		}
		logger.Infof("Removed %s", dir)
	}

	return nil
}

// baseBranch is the branch named after the product version when the edition has one,
// the fallback branch otherwise. Unlike waitForBranch, a lookup error other than
// not found is returned: nothing has been pushed yet, so failing leaves no trace.
func (it *RunRegressionCommand) baseBranch(
	ctx context.Context,
	settings *entities.Settings,
	provider repositories.ProviderRepository,
	repo entities.Repository,
	productVersion string,
) (string, error) {
	exists, err := provider.BranchExists(ctx, repo, productVersion)
	if err != nil {
		return "", err
	}
	if exists {
		return productVersion, nil
	}

	logger.Infof(
		"Branch %s does not exist in %s, using %s instead",
		productVersion, entities.FullName(repo), settings.FallbackBranch,
	)
	return settings.FallbackBranch, nil
}

// prepareBranch clones the edition, commits the manifest on the run branch and pushes it.
func (it *RunRegressionCommand) prepareBranch(
	ctx context.Context,
	settings *entities.Settings,
	repo entities.Repository,
	run *entities.RegressionRun,
	baseBranch, dir string,
	manifest *entities.DependencyManifest,
) error {
	if _, statErr := os.Stat(dir); statErr == nil {
		return fmt.Errorf("directory %s already exists, remove it and try again", dir)
	} else if !errors.Is(statErr, os.ErrNotExist) {
		return fmt.Errorf("failed to inspect %s: %w", dir, statErr)
	}

	if err := it.clone(ctx, repo, baseBranch, dir); err != nil {
		return err
	}
	if err := it.gitRepository.CreateBranch(ctx, dir, run.BranchName); err != nil {
		return err
	}
	if err := it.gitRepository.DeleteBranch(ctx, dir, baseBranch); err != nil {
		return err
	}

	if _, err := it.manifestRepository.Save(dir, manifest); err != nil {
		return fmt.Errorf("failed to copy %s into %s: %w", entities.DependenciesFile, dir, err)
	}
	if err := it.gitRepository.Add(ctx, dir, entities.DependenciesFile); err != nil {
		return err
	}

	sha, err := it.gitRepository.Commit(ctx, dir, settings.CommitMessage)
	if err != nil {
		return err
	}
	logger.Debugf("Committed %s as %s", entities.DependenciesFile, sha)

	return it.gitRepository.Push(ctx, dir, remoteOrigin, run.BranchName)
}

// clone tries SSH first and falls back to HTTPS.
func (it *RunRegressionCommand) clone(ctx context.Context, repo entities.Repository, branch, dir string) error {
	sshErr := it.gitRepository.Clone(ctx, repo.SSHURL, branch, dir)
	if sshErr == nil {
		return nil
	}

	logger.Warnf("Cloning %s over SSH failed, retrying over HTTPS: %v", entities.FullName(repo), sshErr)
	if err := os.RemoveAll(dir); err != nil {
		return fmt.Errorf("failed to remove partial clone %s: %w", dir, err)
	}

	if err := it.gitRepository.Clone(ctx, repo.RemoteURL, branch, dir); err != nil {
		return fmt.Errorf("%w %s: %w", entities.ErrCloneFailed, entities.FullName(repo), err)
	}
	return nil
}

// waitForBranch polls the API until the pushed branch is visible. A failed lookup
// counts as an attempt. The delay only separates attempts.
func (it *RunRegressionCommand) waitForBranch(
	ctx context.Context,
	polling entities.PollingSettings,
	provider repositories.ProviderRepository,
	repo entities.Repository,
	branch string,
) error {
	for attempt := 1; attempt <= polling.Attempts; attempt++ {
		exists, err := provider.BranchExists(ctx, repo, branch)
		switch {
		case err != nil:
			logger.Debugf("Looking up branch %s failed (attempt %d/%d): %v", branch, attempt, polling.Attempts, err)
		case exists:
			return nil
		default:
			logger.Debugf("Branch %s not visible yet (attempt %d/%d)", branch, attempt, polling.Attempts)
		}
		if attempt == polling.Attempts {
			break
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-it.clock.After(polling.Delay):
		}
	}

	return fmt.Errorf("%w: %s in %s", entities.ErrPushedBranchNotFound, branch, entities.FullName(repo))
}

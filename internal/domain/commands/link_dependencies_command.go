package commands

import (
	"context"
	"fmt"

	logger "github.com/sirupsen/logrus"

	"github.com/ibexa/ci-scripts/internal/domain/entities"
	"github.com/ibexa/ci-scripts/internal/domain/repositories"
	infraRepos "github.com/ibexa/ci-scripts/internal/infrastructure/repositories"
)

const providerGitHub = "github"

// LinkDependencies is the interface for the dependencies:link command.
type LinkDependencies interface {
	Execute(
		ctx context.Context,
		settings *entities.Settings,
		opts LinkDependenciesOptions,
	) (*entities.DependencyManifest, error)
}

// LinkDependenciesOptions holds runtime options for a single link.
type LinkDependenciesOptions struct {
	PullRequestURLs []string
	OutputDir       string // Directory receiving dependencies.json, defaults to the working directory
	Token           string // Explicit token, the token chain is used when empty
}

// LinkDependenciesCommand turns a list of pull request links into dependencies.json.
type LinkDependenciesCommand struct {
	providerRegistry   *infraRepos.ProviderRegistry
	manifestRepository repositories.ManifestRepository
	tokenRepository    repositories.TokenRepository
	environment        *entities.Environment
}

// NewLinkDependenciesCommand creates a new LinkDependenciesCommand.
func NewLinkDependenciesCommand(
	providerRegistry *infraRepos.ProviderRegistry,
	manifestRepository repositories.ManifestRepository,
	tokenRepository repositories.TokenRepository,
	environment *entities.Environment,
) *LinkDependenciesCommand {
	return &LinkDependenciesCommand{
		providerRegistry:   providerRegistry,
		manifestRepository: manifestRepository,
		tokenRepository:    tokenRepository,
		environment:        environment,
	}
}

// Execute analyses every pull request and writes the resulting manifest.
// All links are parsed before the first API call.
func (it *LinkDependenciesCommand) Execute(
	ctx context.Context,
	settings *entities.Settings,
	opts LinkDependenciesOptions,
) (*entities.DependencyManifest, error) {
	links := entities.UniquePullRequestURLs(opts.PullRequestURLs)
	parsed := make([]entities.PullRequestURL, 0, len(links))
	for _, link := range links {
		pullRequestURL, err := entities.ParsePullRequestURL(link)
		if err != nil {
			return nil, err
		}
		parsed = append(parsed, pullRequestURL)
	}

	token := resolveToken(ctx, opts.Token, it.environment, settings, it.tokenRepository)
	provider, err := it.providerRegistry.Get(providerGitHub, token)
	if err != nil {
		return nil, err
	}
	logger.Debugf("Fetching pull request details from %s", provider.Name())

	manifest := entities.NewDependencyManifest()
	for _, pullRequestURL := range parsed {
		if pullRequestURL.Is(settings.RecipesRepository) {
			manifest.RecipesEndpoint = pullRequestURL.RecipesEndpoint()
			logger.Infof("Using recipes from %s", pullRequestURL.Raw)
			continue
		}

		dependency, depErr := it.analyse(ctx, provider, pullRequestURL)
		if depErr != nil {
			return nil, depErr
		}
		logger.Infof("Linked %s as %q", dependency.Package, dependency.Requirement)
		manifest.Packages = append(manifest.Packages, dependency)
	}

	outputDir := opts.OutputDir
	if outputDir == "" {
		outputDir = "."
	}
	path, err := it.manifestRepository.Save(outputDir, manifest)
	if err != nil {
		return nil, err
	}

	logger.Infof("Dependencies saved to %s", path)
	return manifest, nil
}

// analyse builds the dependency override of one pull request from its head branch and
// the composer.json of the branch it targets.
func (it *LinkDependenciesCommand) analyse(
	ctx context.Context,
	provider repositories.ProviderRepository,
	pullRequestURL entities.PullRequestURL,
) (entities.PullRequestDependency, error) {
	logger.Debugf("Analysing %s", pullRequestURL.Raw)

	details, err := provider.GetPullRequest(ctx, pullRequestURL.Target(), pullRequestURL.Number)
	if err != nil {
		return entities.PullRequestDependency{}, err
	}

	content, err := provider.GetFileContent(ctx, details.Base(), entities.ComposerFile, details.BaseRef)
	if err != nil {
		return entities.PullRequestDependency{}, err
	}

	composer, err := entities.ParseComposerManifest(content)
	if err != nil {
		return entities.PullRequestDependency{}, err
	}

	dependency, err := entities.NewPullRequestDependency(*details, composer)
	if err != nil {
		return entities.PullRequestDependency{}, fmt.Errorf("%s: %w", pullRequestURL.Raw, err)
	}
	return dependency, nil
}

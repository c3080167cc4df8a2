package commands

import (
	"context"

	logger "github.com/sirupsen/logrus"

	"github.com/ibexa/ci-scripts/internal/domain/entities"
	"github.com/ibexa/ci-scripts/internal/domain/repositories"
)

// resolveToken returns the first non-empty token out of: the explicit value, the
// environment, the configuration file and the Composer credential store.
// An empty result means the API is called anonymously.
func resolveToken(
	ctx context.Context,
	explicit string,
	env *entities.Environment,
	settings *entities.Settings,
	store repositories.TokenRepository,
) string {
	if explicit != "" {
		return explicit
	}
	if env != nil {
		if token := env.Token(); token != "" {
			logger.Debug("Using the GitHub token from the environment")
			return token
		}
	}
	if settings != nil && settings.Token != "" {
		logger.Debug("Using the GitHub token from the configuration file")
		return settings.Token
	}
	if store != nil {
		if token := store.GitHubToken(ctx); token != "" {
			logger.Debug("Using the GitHub token from the Composer configuration")
			return token
		}
	}

	logger.Warn("No GitHub token found, calling the API anonymously (set GITHUB_TOKEN or GH_TOKEN)")
	return ""
}

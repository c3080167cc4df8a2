package repositories

import (
	"github.com/jonboulle/clockwork"
	"go.uber.org/dig"

	composerRepo "github.com/ibexa/ci-scripts/internal/infrastructure/repositories/composer"
	gitRepo "github.com/ibexa/ci-scripts/internal/infrastructure/repositories/git"
	ghRepo "github.com/ibexa/ci-scripts/internal/infrastructure/repositories/github"
	manifestRepo "github.com/ibexa/ci-scripts/internal/infrastructure/repositories/manifest"
)

// RegisterProviders registers all repository providers with the DIG container.
func RegisterProviders(container *dig.Container) error {
	if err := container.Provide(func() *ProviderRegistry {
		reg := NewProviderRegistry()
		reg.Register("github", ghRepo.NewProviderRepository)
		return reg
	}); err != nil {
		return err
	}

	if err := container.Provide(gitRepo.NewGitRepository); err != nil {
		return err
	}
	if err := container.Provide(manifestRepo.NewManifestRepository); err != nil {
		return err
	}
	if err := container.Provide(composerRepo.NewTokenRepository); err != nil {
		return err
	}

	return container.Provide(clockwork.NewRealClock)
}

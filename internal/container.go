package internal

import (
	"go.uber.org/dig"

	"github.com/ibexa/ci-scripts/internal/domain/commands"
	"github.com/ibexa/ci-scripts/internal/domain/entities"
	"github.com/ibexa/ci-scripts/internal/infrastructure/controllers"
	"github.com/ibexa/ci-scripts/internal/infrastructure/repositories"
)

// RegisterProviders registers all internal providers with the DIG container.
func RegisterProviders(container *dig.Container) error {
	// Register all layers (bottom-up: domain entities -> infrastructure repos -> domain commands -> controllers)
	if err := entities.RegisterProviders(container); err != nil {
		return err
	}
	if err := repositories.RegisterProviders(container); err != nil {
		return err
	}
	if err := commands.RegisterProviders(container); err != nil {
		return err
	}
	if err := controllers.RegisterProviders(container); err != nil {
		return err
	}

	// Register the main app internal
	if err := container.Provide(NewAppInternal); err != nil {
		return err
	}

	return nil
}

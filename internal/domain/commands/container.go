package commands

import (
	"go.uber.org/dig"
)

// RegisterProviders registers all command providers with the DIG container.
func RegisterProviders(container *dig.Container) error {
	// Register command constructors
	if err := container.Provide(NewLinkDependenciesCommand); err != nil {
		return err
	}
	if err := container.Provide(NewRunRegressionCommand); err != nil {
		return err
	}

	// Bind interfaces to implementations
	if err := container.Provide(func(impl *LinkDependenciesCommand) LinkDependencies {
		return impl
	}); err != nil {
		return err
	}
	if err := container.Provide(func(impl *RunRegressionCommand) RunRegression {
		return impl
	}); err != nil {
		return err
	}

	return nil
}

package controllers

import (
	"go.uber.org/dig"

	"github.com/ibexa/ci-scripts/internal/domain/entities"
)

// RegisterProviders registers all controller providers with the DIG container.
func RegisterProviders(container *dig.Container) error {
	// Register controller constructors
	if err := container.Provide(NewLinkDependenciesController); err != nil {
		return err
	}
	if err := container.Provide(NewRunRegressionController); err != nil {
		return err
	}
	if err := container.Provide(NewControllers); err != nil {
		return err
	}

	return nil
}

// NewControllers aggregates all controllers into a slice for the AppInternal.
func NewControllers(
	linkDependenciesController *LinkDependenciesController,
	runRegressionController *RunRegressionController,
) *[]entities.Controller {
	return &[]entities.Controller{
		linkDependenciesController,
		runRegressionController,
	}
}

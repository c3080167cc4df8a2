package main

import (
	"go.uber.org/dig"

	"github.com/ibexa/ci-scripts/internal"
	"github.com/ibexa/ci-scripts/internal/domain/entities"
)

func injectAppContext() (*internal.AppInternal, *entities.Environment) {
	container := dig.New()

	// Register all providers
	if err := internal.RegisterProviders(container); err != nil {
		panic(err)
	}

	// Invoke to get AppInternal
	var appInternal *internal.AppInternal
	var env *entities.Environment
	if err := container.Invoke(func(ai *internal.AppInternal, e *entities.Environment) {
		appInternal = ai
		env = e
	}); err != nil {
		panic(err)
	}

	return appInternal, env
}

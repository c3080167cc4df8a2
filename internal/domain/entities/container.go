package entities

import (
	"context"

	"go.uber.org/dig"
)

// RegisterProviders registers all entity providers with the DIG container.
// Settings requires a config file path, provided by the controllers layer.
func RegisterProviders(container *dig.Container) error {
	return container.Provide(func() (*Environment, error) {
		return NewEnvironment(context.Background())
	})
}

//go:build integration || unit || test

package commanddoubles //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"context"

	"github.com/ibexa/ci-scripts/internal/domain/commands"
	"github.com/ibexa/ci-scripts/internal/domain/entities"
)

// StubLinkDependenciesCommand is a stub implementation of commands.LinkDependencies.
type StubLinkDependenciesCommand struct {
	ExecuteCallCount int
	ExecuteErr       error
	Result           *entities.DependencyManifest
	LastSettings     *entities.Settings
	LastOpts         commands.LinkDependenciesOptions
}

var _ commands.LinkDependencies = (*StubLinkDependenciesCommand)(nil)

func (s *StubLinkDependenciesCommand) Execute(
	_ context.Context,
	settings *entities.Settings,
	opts commands.LinkDependenciesOptions,
) (*entities.DependencyManifest, error) {
	s.ExecuteCallCount++
	s.LastSettings = settings
	s.LastOpts = opts
	if s.ExecuteErr != nil {
		return nil, s.ExecuteErr
	}
	if s.Result != nil {
		return s.Result, nil
	}
	return entities.NewDependencyManifest(), nil
}

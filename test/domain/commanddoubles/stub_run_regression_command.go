//go:build integration || unit || test

package commanddoubles //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"context"

	"github.com/ibexa/ci-scripts/internal/domain/commands"
	"github.com/ibexa/ci-scripts/internal/domain/entities"
)

// StubRunRegressionCommand is a stub implementation of commands.RunRegression.
// CleanupEditions, when set, are passed to opts.ConfirmCleanup and the answers recorded.
type StubRunRegressionCommand struct {
	ExecuteCallCount int
	ExecuteErr       error
	PartialRun       *entities.RegressionRun // Returned along with ExecuteErr
	LastSettings     *entities.Settings
	LastOpts         commands.RunRegressionOptions

	CleanupEditions []string
	CleanupAnswers  []bool
}

var _ commands.RunRegression = (*StubRunRegressionCommand)(nil)

func (s *StubRunRegressionCommand) Execute(
	_ context.Context,
	settings *entities.Settings,
	opts commands.RunRegressionOptions,
) (*entities.RegressionRun, error) {
	s.ExecuteCallCount++
	s.LastSettings = settings
	s.LastOpts = opts
	if s.ExecuteErr != nil {
		return s.PartialRun, s.ExecuteErr
	}

	for _, edition := range s.CleanupEditions {
		s.CleanupAnswers = append(s.CleanupAnswers, opts.ConfirmCleanup(edition, edition))
	}
	return &entities.RegressionRun{
		ProductVersion: opts.ProductVersion,
		Editions:       opts.Editions,
	}, nil
}

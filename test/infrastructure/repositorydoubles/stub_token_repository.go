//go:build integration || unit || test

package repositorydoubles //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"context"

	"github.com/ibexa/ci-scripts/internal/domain/repositories"
)

// StubTokenRepository implements repositories.TokenRepository with a fixed token.
type StubTokenRepository struct {
	Token     string
	CallCount int
}

var _ repositories.TokenRepository = (*StubTokenRepository)(nil)

func (s *StubTokenRepository) GitHubToken(context.Context) string {
	s.CallCount++
	return s.Token
}

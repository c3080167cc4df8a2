package repositories

import "context"

// TokenRepository looks up a locally stored GitHub token.
type TokenRepository interface {
	// GitHubToken returns the stored token, or an empty string when none is configured.
	GitHubToken(ctx context.Context) string
}

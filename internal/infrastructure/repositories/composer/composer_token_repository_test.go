//go:build unit

package composer_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ibexa/ci-scripts/internal/infrastructure/repositories/composer"
)

func failingRunner(context.Context, ...string) ([]byte, error) {
	return nil, errors.New("composer: command not found")
}

func TestComposerTokenRepository_GitHubToken(t *testing.T) {
	t.Parallel()

	t.Run("should return the first line printed by composer config", func(t *testing.T) {
		t.Parallel()

		// given
		var received []string
		repository := composer.NewComposerTokenRepository(func(_ context.Context, args ...string) ([]byte, error) {
			received = args
			return []byte("ghp_fromcomposer\n"), nil
		}, t.TempDir())

		// when
		token := repository.GitHubToken(context.Background())

		// then
		assert.Equal(t, "ghp_fromcomposer", token)
		assert.Equal(t, []string{"config", "github-oauth.github.com", "--global"}, received)
	})

	t.Run("should fall back to auth.json in the Composer home", func(t *testing.T) {
		t.Parallel()

		// given
		home := t.TempDir()
		content := []byte(`{"github-oauth": {"github.com": "ghp_fromauthfile"}}`)
		assert.NoError(t, os.WriteFile(filepath.Join(home, "auth.json"), content, 0o600))
		repository := composer.NewComposerTokenRepository(failingRunner, home)

		// when
		token := repository.GitHubToken(context.Background())

		// then
		assert.Equal(t, "ghp_fromauthfile", token)
	})

	t.Run("should return an empty token when nothing is configured", func(t *testing.T) {
		t.Parallel()

		// given
		repository := composer.NewComposerTokenRepository(func(context.Context, ...string) ([]byte, error) {
			return []byte("\n"), nil
		}, t.TempDir())

		// when
		token := repository.GitHubToken(context.Background())

		// then
		assert.Empty(t, token)
	})

	t.Run("should ignore a malformed auth.json", func(t *testing.T) {
		t.Parallel()

		// given
		home := t.TempDir()
		assert.NoError(t, os.WriteFile(filepath.Join(home, "auth.json"), []byte("{"), 0o600))
		repository := composer.NewComposerTokenRepository(failingRunner, home)

		// when
		token := repository.GitHubToken(context.Background())

		// then
		assert.Empty(t, token)
	})
}

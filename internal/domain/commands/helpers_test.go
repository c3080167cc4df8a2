//go:build unit

package commands_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ibexa/ci-scripts/internal/domain/repositories"
	infraRepos "github.com/ibexa/ci-scripts/internal/infrastructure/repositories"
	doubles "github.com/ibexa/ci-scripts/test/infrastructure/repositorydoubles"
)

const adminUIComposer = `{
    "name": "ibexa/admin-ui",
    "extra": {
        "branch-alias": {
            "dev-main": "4.2.x-dev",
            "dev-master": "4.1.x-dev"
        }
    }
}`

const behatComposer = `{
    "name": "ibexa/behat",
    "extra": {
        "branch-alias": {
            "dev-main": "4.3.x-dev"
        }
    }
}`

// newRegistry returns a registry whose github factory hands out spy and records the token.
func newRegistry(spy *doubles.SpyProviderRepository) *infraRepos.ProviderRegistry {
	registry := infraRepos.NewProviderRegistry()
	registry.Register("github", func(token string) repositories.ProviderRepository {
		spy.Token = token
		return spy
	})
	return registry
}

func writeManifest(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, "dependencies.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

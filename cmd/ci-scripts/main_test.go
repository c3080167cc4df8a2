//go:build unit

package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/dig"

	"github.com/ibexa/ci-scripts/internal"
	"github.com/ibexa/ci-scripts/internal/domain/entities"
)

func TestDependencyGraph(t *testing.T) {
	t.Parallel()

	t.Run("should resolve every controller from the container", func(t *testing.T) {
		t.Parallel()

		// given
		container := dig.New()
		require.NoError(t, internal.RegisterProviders(container))

		// when
		var appInternal *internal.AppInternal
		err := container.Invoke(func(ai *internal.AppInternal) {
			appInternal = ai
		})

		// then
		require.NoError(t, err)
		assert.Len(t, appInternal.GetControllers(), 2)
	})
}

func TestRootCommand(t *testing.T) {
	t.Parallel()

	t.Run("should register both subcommands with their flags", func(t *testing.T) {
		t.Parallel()

		// given
		container := dig.New()
		require.NoError(t, internal.RegisterProviders(container))
		var appInternal *internal.AppInternal
		require.NoError(t, container.Invoke(func(ai *internal.AppInternal) { appInternal = ai }))
		root := buildRootCommand(&entities.Environment{})

		// when
		addSubcommands(root, appInternal)

		// then
		link, _, err := root.Find([]string{"dependencies:link"})
		require.NoError(t, err)
		assert.NotNil(t, link.Flags().Lookup("pr"))

		regression, _, err := root.Find([]string{"regression:run"})
		require.NoError(t, err)
		assert.NotNil(t, regression.Flags().Lookup("no-cleanup"))
		assert.NotNil(t, root.PersistentFlags().Lookup("config"))
	})

	t.Run("should leave error reporting to main", func(t *testing.T) {
		t.Parallel()

		// given
		root := buildRootCommand(&entities.Environment{})

		// when
		silenced := root.SilenceErrors

		// then
		assert.True(t, silenced)
		assert.True(t, root.SilenceUsage)
	})
}

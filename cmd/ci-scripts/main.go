package main

import (
	"context"

	logger "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/ibexa/ci-scripts/internal"
	"github.com/ibexa/ci-scripts/internal/domain/entities"
)

func buildRootCommand(env *entities.Environment) *cobra.Command {
	//nolint:exhaustruct // Minimal Command initialization with required fields only
	cmd := &cobra.Command{
		Use:   "ci-scripts",
		Short: "Regression workflow helpers for the product repositories",
		Long: `Tools preparing regression runs of the product editions.

Usage:
  ci-scripts dependencies:link      Turn pull request links into dependencies.json
  ci-scripts regression:run         Open draft pull requests running the regression`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(command *cobra.Command, _ []string) {
			verbose, _ := command.Flags().GetBool("verbose")
			if verbose || env.Debug {
				logger.SetLevel(logger.DebugLevel)
			}
		},
	}

	// Global persistent flags
	cmd.PersistentFlags().StringP("config", "c", "",
		"Path to config file (default: auto-detect)")
	cmd.PersistentFlags().BoolP("verbose", "v", false,
		"Enable verbose output")

	return cmd
}

func addSubcommands(rootCmd *cobra.Command, appContext *internal.AppInternal) {
	for _, controller := range appContext.GetControllers() {
		bind := controller.GetBind()
		ctrl := controller // capture for closure
		//nolint:exhaustruct // Minimal Command initialization with required fields only
		subCmd := &cobra.Command{
			Use:   bind.Use,
			Short: bind.Short,
			Long:  bind.Long,
			Args:  bind.Args,
			RunE: func(command *cobra.Command, arguments []string) error {
				return ctrl.Execute(command, arguments)
			},
		}

		// Add controller-specific flags
		if fc, ok := ctrl.(interface{ AddFlags(cmd *cobra.Command) }); ok {
			fc.AddFlags(subCmd)
		}

		rootCmd.AddCommand(subCmd)
	}
}

func main() {
	//nolint:exhaustruct // Minimal TextFormatter initialization with required fields only
	logger.SetFormatter(&logger.TextFormatter{
		ForceColors:   true,
		FullTimestamp: true,
	})

	// Inject the application via DIG
	appContext, env := injectAppContext()
	cobraRoot := buildRootCommand(env)
	addSubcommands(cobraRoot, appContext)

	if err := cobraRoot.ExecuteContext(context.Background()); err != nil {
		logger.Fatalf("Error executing 'ci-scripts': %s", err)
	}
}

package controllers

import (
	"fmt"

	logger "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/ibexa/ci-scripts/internal/domain/commands"
	"github.com/ibexa/ci-scripts/internal/domain/entities"
)

// RunRegressionController handles the "regression:run" subcommand.
type RunRegressionController struct {
	command commands.RunRegression
}

// NewRunRegressionController creates a new RunRegressionController.
func NewRunRegressionController(command commands.RunRegression) *RunRegressionController {
	return &RunRegressionController{command: command}
}

// GetBind returns the Cobra command metadata for the regression controller.
func (it *RunRegressionController) GetBind() entities.ControllerBind {
	return entities.ControllerBind{
		Use:   "regression:run [productVersion] [productEditions] [token]",
		Short: "Open draft pull requests running the regression with dependencies.json",
		Long: `Push dependencies.json to a temporary branch of every selected edition
repository and open a draft pull request from it, which triggers the regression build.

productVersion is in the X.Y format (e.g. 4.5) and productEditions is a comma
separated list (e.g. oss,commerce). Both are asked interactively when missing.`,
		Args: cobra.MaximumNArgs(3),
	}
}

// Execute resolves the version and editions, then runs the regression command.
func (it *RunRegressionController) Execute(cmd *cobra.Command, args []string) error {
	settings, err := loadSettings(cmd)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	prompter := NewPrompter(cmd.InOrStdin(), cmd.OutOrStdout())

	version := argumentAt(args, 0)
	if version == "" {
		version, err = prompter.Ask("Product version", settings.DefaultVersion, entities.ValidateProductVersion)
		if err != nil {
			return err
		}
	}

	rawEditions := argumentAt(args, 1)
	if rawEditions == "" {
		rawEditions, err = prompter.Ask("Product editions (comma separated)", settings.DefaultEdition, func(answer string) error {
			_, parseErr := entities.ParseEditions(answer, settings.Editions)
			return parseErr
		})
		if err != nil {
			return err
		}
	}
	editions, err := entities.ParseEditions(rawEditions, settings.Editions)
	if err != nil {
		return err
	}

	manifestPath, _ := cmd.Flags().GetString("dependencies")
	workDir, _ := cmd.Flags().GetString("work-dir")

	run, err := it.command.Execute(commandContext(cmd), settings, commands.RunRegressionOptions{
		ProductVersion: version,
		Editions:       editions,
		Token:          argumentAt(args, 2),
		ManifestPath:   manifestPath,
		WorkDir:        workDir,
		ConfirmCleanup: cleanupConfirmation(cmd, prompter),
	})
	if err != nil && run != nil {
		for _, url := range run.OpenedPullRequests() {
			logger.Warnf("Pull request opened before the failure: %s", url)
		}
	}
	return err
}

// AddFlags adds the regression-specific flags to the given Cobra command.
func (it *RunRegressionController) AddFlags(cmd *cobra.Command) {
	cmd.Flags().String("dependencies", entities.DependenciesFile, "Path to the dependencies.json file")
	cmd.Flags().String("work-dir", ".", "Directory receiving the edition clones")
	cmd.Flags().BoolP("yes", "y", false, "Remove the clones without asking")
	cmd.Flags().Bool("no-cleanup", false, "Keep the clones without asking")
}

func cleanupConfirmation(cmd *cobra.Command, prompter *Prompter) func(edition, dir string) bool {
	assumeYes, _ := cmd.Flags().GetBool("yes")
	noCleanup, _ := cmd.Flags().GetBool("no-cleanup")

	return func(edition, dir string) bool {
		if noCleanup {
			return false
		}
		if assumeYes {
			return true
		}

		remove, err := prompter.Confirm(fmt.Sprintf("Do you want to remove the created %s directory?", edition), true)
		if err != nil {
			logger.Warnf("Keeping %s: %v", dir, err)
			return false
		}
		return remove
	}
}

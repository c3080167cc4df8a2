package controllers

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ibexa/ci-scripts/internal/domain/commands"
	"github.com/ibexa/ci-scripts/internal/domain/entities"
)

// LinkDependenciesController handles the "dependencies:link" subcommand.
type LinkDependenciesController struct {
	command commands.LinkDependencies
}

// NewLinkDependenciesController creates a new LinkDependenciesController.
func NewLinkDependenciesController(command commands.LinkDependencies) *LinkDependenciesController {
	return &LinkDependenciesController{command: command}
}

// GetBind returns the Cobra command metadata for the link controller.
func (it *LinkDependenciesController) GetBind() entities.ControllerBind {
	return entities.ControllerBind{
		Use:   "dependencies:link [token]",
		Short: "Link pull requests into a dependencies.json file",
		Long: `Analyse GitHub pull requests and write dependencies.json, the manifest
telling a regression build which package branches and recipes to use.

Pull request links are read from --pr or asked interactively.
The token argument is optional: GITHUB_TOKEN, GH_TOKEN, the config file
and the Composer github-oauth setting are tried in this order.`,
		Args: cobra.MaximumNArgs(1),
	}
}

// Execute collects the pull request links and runs the link command.
func (it *LinkDependenciesController) Execute(cmd *cobra.Command, args []string) error {
	settings, err := loadSettings(cmd)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	outputDir, _ := cmd.Flags().GetString("output-dir")
	urls, _ := cmd.Flags().GetStringArray("pr")
	if len(urls) == 0 {
		urls, err = askPullRequestURLs(NewPrompter(cmd.InOrStdin(), cmd.OutOrStdout()))
		if err != nil {
			return err
		}
	}

	_, err = it.command.Execute(commandContext(cmd), settings, commands.LinkDependenciesOptions{
		PullRequestURLs: urls,
		OutputDir:       outputDir,
		Token:           argumentAt(args, 0),
	})
	return err
}

// AddFlags adds the link-specific flags to the given Cobra command.
func (it *LinkDependenciesController) AddFlags(cmd *cobra.Command) {
	cmd.Flags().StringArray("pr", nil, "Link to a GitHub pull request (repeatable, skips the prompts)")
	cmd.Flags().String("output-dir", ".", "Directory receiving dependencies.json")
}

func askPullRequestURLs(prompter *Prompter) ([]string, error) {
	rawCount, err := prompter.Ask("Please provide number of related Pull Requests", "1", validatePositiveNumber)
	if err != nil {
		return nil, err
	}
	count, _ := strconv.Atoi(rawCount)

	urls := make([]string, 0, count)
	for i := 1; i <= count; i++ {
		url, askErr := prompter.Ask(fmt.Sprintf("Link to GitHub PR #%d", i), "", validatePullRequestLink)
		if askErr != nil {
			return nil, askErr
		}
		urls = append(urls, url)
	}
	return urls, nil
}

func validatePositiveNumber(answer string) error {
	count, err := strconv.Atoi(answer)
	if err != nil || count < 1 {
		return errors.New("please provide a positive number")
	}
	return nil
}

func validatePullRequestLink(answer string) error {
	if !strings.Contains(answer, "github.com") {
		return errors.New("please provide a link to a GitHub pull request, e.g. https://github.com/ibexa/recipes/pull/22")
	}
	return nil
}

package entities

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	logger "github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

const (
	defaultOwner             = "ibexa"
	defaultRecipesRepository = "ibexa/recipes-dev"
	defaultFallbackBranch    = "master"
	defaultProductVersion    = "4.5"
	defaultEdition           = "oss"
	defaultCommitMessage     = "[TMP] Run regression"
	defaultPullRequestTitle  = "Run regression for IBX-XXXX"
	defaultPullRequestBody   = "Please add your description here."
	defaultPollingAttempts   = 5
	defaultPollingDelay      = time.Second
)

// Settings is the optional configuration of both workflows. Every key has a default.
type Settings struct {
	// Owner is the GitHub organization holding the edition repositories.
	Owner    string   `yaml:"owner"`
	Editions []string `yaml:"editions"`

	// RecipesRepository is the "owner/name" of the Flex recipes repository; its pull requests
	// only set the recipes endpoint of the manifest.
	RecipesRepository string `yaml:"recipes_repository"`

	// FallbackBranch is used as base branch when an edition has no branch named after the version.
	FallbackBranch string `yaml:"fallback_branch"`

	DefaultVersion string              `yaml:"default_version"`
	DefaultEdition string              `yaml:"default_edition"`
	CommitMessage  string              `yaml:"commit_message"`
	PullRequest    PullRequestSettings `yaml:"pull_request"`
	Polling        PollingSettings     `yaml:"polling"`

	// Token is inline, ${ENV_VAR} or a path to a file holding the token.
	Token string `yaml:"token"`
}

// PullRequestSettings holds the placeholder content of regression pull requests.
type PullRequestSettings struct {
	Title string `yaml:"title"`
	Body  string `yaml:"body"`
}

// PollingSettings bounds the wait for a pushed branch to show up in the API.
type PollingSettings struct {
	Attempts int           `yaml:"attempts"`
	Delay    time.Duration `yaml:"delay"`
}

// envVarPattern matches ${VAR_NAME} placeholders.
var envVarPattern = regexp.MustCompile(`\$\{([^}]+)}`)

// NewDefaultSettings returns the settings used when no configuration file exists.
func NewDefaultSettings() *Settings {
	return &Settings{
		Owner:             defaultOwner,
		Editions:          append([]string(nil), DefaultEditions...),
		RecipesRepository: defaultRecipesRepository,
		FallbackBranch:    defaultFallbackBranch,
		DefaultVersion:    defaultProductVersion,
		DefaultEdition:    defaultEdition,
		CommitMessage:     defaultCommitMessage,
		PullRequest: PullRequestSettings{
			Title: defaultPullRequestTitle,
			Body:  defaultPullRequestBody,
		},
		Polling: PollingSettings{
			Attempts: defaultPollingAttempts,
			Delay:    defaultPollingDelay,
		},
	}
}

// NewSettings reads a configuration file on top of the defaults, expanding
// environment variables and resolving token file paths.
func NewSettings(path string) (*Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %q: %w", path, err)
	}

	settings := NewDefaultSettings()
	if unmarshalErr := yaml.Unmarshal(data, settings); unmarshalErr != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", unmarshalErr)
	}

	settings.Token = ResolveToken(settings.Token)

	if validateErr := validateSettings(settings); validateErr != nil {
		return nil, validateErr
	}

	return settings, nil
}

// FindConfigFile searches for a configuration file in standard locations.
// Returns the path to the first file found or an error if none is found.
func FindConfigFile() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		homeDir = ""
	}

	locations := []string{
		".",
		".config",
		"configs",
	}
	if homeDir != "" {
		locations = append(
			locations,
			homeDir,
			filepath.Join(homeDir, ".config"),
		)
	}

	patterns := []string{
		".ci-scripts.yaml",
		".ci-scripts.yml",
		"ci-scripts.yaml",
		"ci-scripts.yml",
	}

	for _, loc := range locations {
		for _, pat := range patterns {
			p := filepath.Join(loc, pat)
			if _, statErr := os.Stat(p); statErr == nil {
				return p, nil
			}
		}
	}

	return "", errors.New("config file not found in default locations")
}

// ResolveToken expands environment variable references (${VAR}) and, if the
// resulting string is a path to an existing file, reads the token from the file.
func ResolveToken(raw string) string {
	if raw == "" {
		return raw
	}

	resolved := envVarPattern.ReplaceAllStringFunc(raw, func(match string) string {
		varName := envVarPattern.FindStringSubmatch(match)[1]
		if val := os.Getenv(varName); val != "" {
			return val
		}
		logger.Warnf("Environment variable %q is not set", varName)
		return ""
	})

	if resolved == "" {
		return resolved
	}

	if _, statErr := os.Stat(resolved); statErr == nil {
		data, readErr := os.ReadFile(resolved)
		if readErr != nil {
			logger.Warnf("Failed to read token file %q: %v", resolved, readErr)
			return resolved
		}
		logger.Infof("Read token from file %q", resolved)
		return strings.TrimSpace(string(data))
	}

	return resolved
}

// validateSettings checks that overridden values are usable.
func validateSettings(settings *Settings) error {
	if settings.Owner == "" {
		return errors.New("owner must not be empty")
	}
	if len(settings.Editions) == 0 {
		return errors.New("editions must have at least one entry")
	}
	if strings.Count(settings.RecipesRepository, "/") != 1 {
		return fmt.Errorf("recipes_repository must be in the owner/name form, got %q", settings.RecipesRepository)
	}
	if settings.FallbackBranch == "" {
		return errors.New("fallback_branch must not be empty")
	}
	if settings.Polling.Attempts < 1 {
		return fmt.Errorf("polling.attempts must be at least 1, got %d", settings.Polling.Attempts)
	}
	if settings.Polling.Delay < 0 {
		return fmt.Errorf("polling.delay must not be negative, got %s", settings.Polling.Delay)
	}
	return nil
}

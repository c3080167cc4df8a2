package entities

import (
	"context"
	"fmt"

	"github.com/sethvargo/go-envconfig"
)

// Environment holds the process environment variables the tool reads.
type Environment struct {
	GitHubToken  string `env:"GITHUB_TOKEN"`
	GHToken      string `env:"GH_TOKEN"`
	ComposerHome string `env:"COMPOSER_HOME"`
	Debug        bool   `env:"DEBUG, default=false"`
}

// NewEnvironment reads the process environment.
func NewEnvironment(ctx context.Context) (*Environment, error) {
	return NewEnvironmentFrom(ctx, envconfig.OsLookuper())
}

// NewEnvironmentFrom reads the environment through the given lookuper.
func NewEnvironmentFrom(ctx context.Context, lookuper envconfig.Lookuper) (*Environment, error) {
	var env Environment
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{
		Target:   &env,
		Lookuper: lookuper,
	}); err != nil {
		return nil, fmt.Errorf("failed to read environment: %w", err)
	}
	return &env, nil
}

// Token returns the first GitHub token set in the environment.
func (e *Environment) Token() string {
	if e.GitHubToken != "" {
		return e.GitHubToken
	}
	return e.GHToken
}

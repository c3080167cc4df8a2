package composer

import (
	"context"
	"encoding/json"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	logger "github.com/sirupsen/logrus"

	"github.com/ibexa/ci-scripts/internal/domain/entities"
	"github.com/ibexa/ci-scripts/internal/domain/repositories"
)

const (
	githubOAuthKey = "github-oauth.github.com"
	authFile       = "auth.json"
)

// CommandRunner runs the composer binary with args and returns its standard output.
type CommandRunner func(ctx context.Context, args ...string) ([]byte, error)

// ComposerTokenRepository reads the GitHub token Composer keeps in its global configuration.
type ComposerTokenRepository struct {
	run          CommandRunner
	composerHome string
}

// NewTokenRepository creates a ComposerTokenRepository using the composer binary found in PATH.
func NewTokenRepository(env *entities.Environment) repositories.TokenRepository {
	return NewComposerTokenRepository(runComposer, env.ComposerHome)
}

// NewComposerTokenRepository creates a ComposerTokenRepository with the given runner and
// Composer home directory (empty picks the platform default).
func NewComposerTokenRepository(run CommandRunner, composerHome string) *ComposerTokenRepository {
	return &ComposerTokenRepository{run: run, composerHome: composerHome}
}

// GitHubToken asks `composer config` first and falls back to reading auth.json directly.
func (r *ComposerTokenRepository) GitHubToken(ctx context.Context) string {
	if r.run != nil {
		output, err := r.run(ctx, "config", githubOAuthKey, "--global")
		if err == nil {
			if token := firstLine(output); token != "" {
				return token
			}
		} else {
			logger.Debugf("Could not read the GitHub token from composer config: %v", err)
		}
	}

	for _, path := range r.authFiles() {
		if token := readAuthFile(path); token != "" {
			logger.Debugf("Read GitHub token from %s", path)
			return token
		}
	}
	return ""
}

func (r *ComposerTokenRepository) authFiles() []string {
	if r.composerHome != "" {
		return []string{filepath.Join(r.composerHome, authFile)}
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil
	}
	return []string{
		filepath.Join(homeDir, ".config", "composer", authFile),
		filepath.Join(homeDir, ".composer", authFile),
	}
}

func readAuthFile(path string) string {
	content, err := os.ReadFile(path)
	if err != nil {
		return ""
	}

	var auth struct {
		GitHubOAuth map[string]string `json:"github-oauth"`
	}
	if err = json.Unmarshal(content, &auth); err != nil {
		logger.Warnf("Ignoring malformed %s: %v", path, err)
		return ""
	}
	return strings.TrimSpace(auth.GitHubOAuth["github.com"])
}

func firstLine(output []byte) string {
	line, _, _ := strings.Cut(string(output), "\n")
	return strings.TrimSpace(line)
}

func runComposer(ctx context.Context, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, "composer", args...)
	return cmd.Output()
}

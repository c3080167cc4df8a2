//go:build unit

package github_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/dnaeon/go-vcr.v2/recorder"

	"github.com/ibexa/ci-scripts/internal/domain/entities"
	"github.com/ibexa/ci-scripts/internal/infrastructure/repositories/github"
)

// newReplayProvider serves the API calls from testdata/fixtures/<name>.yaml.
func newReplayProvider(t *testing.T, name string) *github.GitHubProviderRepository {
	t.Helper()

	rec, err := recorder.NewAsMode(filepath.Join("testdata", "fixtures", name), recorder.ModeReplaying, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = rec.Stop() })

	return github.NewGitHubProviderRepository(
		"test-token",
		github.WithHTTPClient(&http.Client{Transport: rec}),
	)
}

func TestGitHubProviderRepository_Name(t *testing.T) {
	t.Parallel()

	t.Run("should return github", func(t *testing.T) {
		t.Parallel()

		// given
		provider := github.NewProviderRepository("")

		// when
		name := provider.Name()

		// then
		assert.Equal(t, "github", name)
	})
}

func TestGitHubProviderRepository_GetPullRequest(t *testing.T) {
	t.Parallel()

	t.Run("should map head and base of a pull request opened from a fork", func(t *testing.T) {
		t.Parallel()

		// given
		provider := newReplayProvider(t, "get_pull_request")
		repo := entities.NewGitHubRepository("ibexa", "behat")

		// when
		details, err := provider.GetPullRequest(context.Background(), repo, 82)

		// then
		require.NoError(t, err)
		assert.Equal(t, entities.PullRequestDetails{
			Number:            82,
			HeadRef:           "known-issue-message",
			HeadRepositoryURL: "https://github.com/mnocon/behat",
			HeadPrivate:       false,
			HeadFork:          true,
			BaseOwner:         "ibexa",
			BaseRepository:    "behat",
			BaseRef:           "main",
		}, *details)
	})

	t.Run("should fail when the head repository is gone", func(t *testing.T) {
		t.Parallel()

		// given
		provider := newReplayProvider(t, "get_pull_request")
		repo := entities.NewGitHubRepository("ibexa", "behat")

		// when
		details, err := provider.GetPullRequest(context.Background(), repo, 83)

		// then
		require.Error(t, err)
		assert.Nil(t, details)
		assert.Contains(t, err.Error(), "no head repository")
	})

	t.Run("should wrap the API error when the pull request does not exist", func(t *testing.T) {
		t.Parallel()

		// given
		provider := newReplayProvider(t, "get_pull_request")
		repo := entities.NewGitHubRepository("ibexa", "behat")

		// when
		details, err := provider.GetPullRequest(context.Background(), repo, 999999)

		// then
		require.Error(t, err)
		assert.Nil(t, details)
		assert.Contains(t, err.Error(), "ibexa/behat#999999")
	})
}

func TestGitHubProviderRepository_GetFileContent(t *testing.T) {
	t.Parallel()

	t.Run("should decode the base64 content of a file", func(t *testing.T) {
		t.Parallel()

		// given
		provider := newReplayProvider(t, "get_file_content")
		repo := entities.NewGitHubRepository("ibexa", "admin-ui")

		// when
		content, err := provider.GetFileContent(context.Background(), repo, "composer.json", "main")

		// then
		require.NoError(t, err)
		manifest, parseErr := entities.ParseComposerManifest(content)
		require.NoError(t, parseErr)
		assert.Equal(t, "ibexa/admin-ui", manifest.Name)
		alias, aliasErr := manifest.FirstBranchAlias()
		require.NoError(t, aliasErr)
		assert.Equal(t, "4.2.x-dev", alias)
	})

	t.Run("should return an error when the ref does not exist", func(t *testing.T) {
		t.Parallel()

		// given
		provider := newReplayProvider(t, "get_file_content")
		repo := entities.NewGitHubRepository("ibexa", "admin-ui")

		// when
		content, err := provider.GetFileContent(context.Background(), repo, "composer.json", "missing-branch")

		// then
		require.Error(t, err)
		assert.Nil(t, content)
	})
}

func TestGitHubProviderRepository_BranchExists(t *testing.T) {
	t.Parallel()

	t.Run("should return true when the branch is found", func(t *testing.T) {
		t.Parallel()

		// given
		provider := newReplayProvider(t, "branch_exists")
		repo := entities.NewGitHubRepository("ibexa", "commerce")

		// when
		exists, err := provider.BranchExists(context.Background(), repo, "4.5")

		// then
		require.NoError(t, err)
		assert.True(t, exists)
	})

	t.Run("should return false without error when the API answers 404", func(t *testing.T) {
		t.Parallel()

		// given
		provider := newReplayProvider(t, "branch_exists")
		repo := entities.NewGitHubRepository("ibexa", "commerce")

		// when
		exists, err := provider.BranchExists(context.Background(), repo, "9.9")

		// then
		require.NoError(t, err)
		assert.False(t, exists)
	})

	t.Run("should return the error on any other failure", func(t *testing.T) {
		t.Parallel()

		// given
		provider := newReplayProvider(t, "branch_exists")
		repo := entities.NewGitHubRepository("ibexa", "commerce")

		// when
		exists, err := provider.BranchExists(context.Background(), repo, "broken")

		// then
		require.Error(t, err)
		assert.False(t, exists)
	})
}

func TestGitHubProviderRepository_CreateDraftPullRequest(t *testing.T) {
	t.Parallel()

	t.Run("should open a draft pull request and return its URL", func(t *testing.T) {
		t.Parallel()

		// given
		provider := newReplayProvider(t, "create_draft_pull_request")
		repo := entities.NewGitHubRepository("ibexa", "commerce")
		input := entities.PullRequestInput{
			SourceBranch: "tmp_regression_64f1c2a91b3e7.04218734",
			TargetBranch: "4.5",
			Title:        "Run regression for IBX-XXXX",
			Description:  "Please add your description here.",
		}

		// when
		pr, err := provider.CreateDraftPullRequest(context.Background(), repo, input)

		// then
		require.NoError(t, err)
		assert.Equal(t, 1312, pr.ID)
		assert.Equal(t, "https://github.com/ibexa/commerce/pull/1312", pr.URL)
		assert.Equal(t, "open", pr.Status)
	})

	t.Run("should send the draft flag and strip refs/heads prefixes", func(t *testing.T) {
		t.Parallel()

		// given
		var payload map[string]interface{}
		var authorization string
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authorization = r.Header.Get("Authorization")
			body, _ := io.ReadAll(r.Body)
			_ = json.Unmarshal(body, &payload)
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusCreated)
			_, _ = w.Write([]byte(`{"number":7,"state":"open","html_url":"https://github.com/ibexa/oss/pull/7"}`))
		}))
		t.Cleanup(server.Close)

		provider := github.NewGitHubProviderRepository(
			"secret",
			github.WithHTTPClient(server.Client()),
			github.WithBaseURL(server.URL),
		)
		repo := entities.NewGitHubRepository("ibexa", "oss")

		// when
		pr, err := provider.CreateDraftPullRequest(context.Background(), repo, entities.PullRequestInput{
			SourceBranch: "refs/heads/tmp_regression_x",
			TargetBranch: "refs/heads/master",
			Title:        "title",
			Description:  "body",
		})

		// then
		require.NoError(t, err)
		assert.Equal(t, 7, pr.ID)
		assert.Equal(t, "Bearer secret", authorization)
		assert.Equal(t, true, payload["draft"])
		assert.Equal(t, "tmp_regression_x", payload["head"])
		assert.Equal(t, "master", payload["base"])
	})
}

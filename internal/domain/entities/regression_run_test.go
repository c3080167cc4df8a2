//go:build unit

package entities_test

import (
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/ibexa/ci-scripts/internal/domain/entities"
)

func TestNewRegressionBranchName(t *testing.T) {
	t.Parallel()

	t.Run("should encode the time in hexadecimal with a numeric suffix", func(t *testing.T) {
		t.Parallel()

		// given
		now := time.Unix(1709287200, 123456*1000)

		// when
		name := entities.NewRegressionBranchName(now)

		// then
		assert.Regexp(t, regexp.MustCompile(`^tmp_regression_65e1a7201e240\.\d{8}$`), name)
	})

	t.Run("should differ between two runs started in the same microsecond", func(t *testing.T) {
		t.Parallel()

		// given
		now := time.Now()
		names := make(map[string]struct{})

		// when
		for range 20 {
			names[entities.NewRegressionBranchName(now)] = struct{}{}
		}

		// then
		assert.Greater(t, len(names), 1)
	})
}

func TestNewRegressionRun(t *testing.T) {
	t.Parallel()

	t.Run("should share one branch name across editions", func(t *testing.T) {
		t.Parallel()

		// when
		run := entities.NewRegressionRun("4.5", []string{"oss", "commerce"}, time.Now())

		// then
		assert.Equal(t, "4.5", run.ProductVersion)
		assert.Equal(t, []string{"oss", "commerce"}, run.Editions)
		assert.Contains(t, run.BranchName, entities.RegressionBranchPrefix)
		assert.Empty(t, run.BaseBranches)
		assert.Empty(t, run.PullRequests)
	})
}

func TestRegressionRunOpenedPullRequests(t *testing.T) {
	t.Parallel()

	t.Run("should list the opened pull requests in edition order", func(t *testing.T) {
		t.Parallel()

		// given
		run := entities.NewRegressionRun("4.5", []string{"oss", "content", "commerce"}, time.Now())
		run.PullRequests["commerce"] = entities.PullRequest{URL: "https://github.com/ibexa/commerce/pull/2"}
		run.PullRequests["oss"] = entities.PullRequest{URL: "https://github.com/ibexa/oss/pull/1"}

		// when
		urls := run.OpenedPullRequests()

		// then
		assert.Equal(t, []string{
			"https://github.com/ibexa/oss/pull/1",
			"https://github.com/ibexa/commerce/pull/2",
		}, urls)
	})

	t.Run("should be empty before the first pull request", func(t *testing.T) {
		t.Parallel()

		// given
		run := entities.NewRegressionRun("4.5", []string{"oss"}, time.Now())

		// when
		urls := run.OpenedPullRequests()

		// then
		assert.Empty(t, urls)
	})
}

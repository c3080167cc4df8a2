package entities

import (
	"fmt"
	"math/rand/v2"
	"time"
)

const (
	// RegressionBranchPrefix starts every temporary regression branch name.
	RegressionBranchPrefix = "tmp_regression_"

	microsecondsPerSecond = 1_000_000
	branchEntropyDigits   = 100_000_000
)

// RegressionRun is the in-memory state of one Run-Regression invocation.
type RegressionRun struct {
	ProductVersion string
	Editions       []string

	// BranchName is shared by every edition of the run.
	BranchName string

	// BaseBranches and PullRequests are keyed by edition.
	BaseBranches map[string]string
	PullRequests map[string]PullRequest
}

// NewRegressionRun starts a run with a freshly generated temporary branch name.
func NewRegressionRun(productVersion string, editions []string, now time.Time) *RegressionRun {
	return &RegressionRun{
		ProductVersion: productVersion,
		Editions:       editions,
		BranchName:     NewRegressionBranchName(now),
		BaseBranches:   make(map[string]string, len(editions)),
		PullRequests:   make(map[string]PullRequest, len(editions)),
	}
}

// OpenedPullRequests lists the URLs of the pull requests opened so far, in edition order.
func (r *RegressionRun) OpenedPullRequests() []string {
	urls := make([]string, 0, len(r.PullRequests))
	for _, edition := range r.Editions {
		if pr, ok := r.PullRequests[edition]; ok {
			urls = append(urls, pr.URL)
		}
	}
	return urls
}

// NewRegressionBranchName builds a name from the current time in microseconds plus a random suffix,
// e.g. tmp_regression_64f1c2a91b3e7.04218734.
func NewRegressionBranchName(now time.Time) string {
	micros := now.UnixMicro()
	return fmt.Sprintf(
		"%s%08x%05x.%08d",
		RegressionBranchPrefix,
		micros/microsecondsPerSecond,
		micros%microsecondsPerSecond,
		rand.IntN(branchEntropyDigits), //nolint:gosec // uniqueness only, not security sensitive
	)
}

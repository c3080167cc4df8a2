package entities

import (
	"fmt"
	"regexp"
	"strconv"

	gitforgeEntities "github.com/rios0rios0/gitforge/pkg/global/domain/entities"
)

// PullRequestInput is re-exported from gitforge.
type PullRequestInput = gitforgeEntities.PullRequestInput

// PullRequest is re-exported from gitforge.
type PullRequest = gitforgeEntities.PullRequest

const recipesEndpointFmt = "https://api.github.com/repos/%s/%s/contents/index.json?ref=flex/pull-%d"

// pullRequestURLPattern matches links such as https://github.com/ibexa/admin-ui/pull/577/files.
var pullRequestURLPattern = regexp.MustCompile(`github\.com/([^/]+)/([^/]+)/pull/(\d+)`)

// PullRequestURL is a parsed link to a GitHub pull request.
type PullRequestURL struct {
	Raw        string
	Owner      string
	Repository string
	Number     int
}

// ParsePullRequestURL extracts owner, repository and number from a pull request link.
func ParsePullRequestURL(raw string) (PullRequestURL, error) {
	matches := pullRequestURLPattern.FindStringSubmatch(raw)
	if matches == nil {
		return PullRequestURL{}, fmt.Errorf(
			"%w: %q, expected a link such as https://github.com/ibexa/recipes/pull/22",
			ErrInvalidPullRequestURL, raw,
		)
	}

	number, err := strconv.Atoi(matches[3])
	if err != nil {
		return PullRequestURL{}, fmt.Errorf("%w: %q: %w", ErrInvalidPullRequestURL, raw, err)
	}

	return PullRequestURL{
		Raw:        raw,
		Owner:      matches[1],
		Repository: matches[2],
		Number:     number,
	}, nil
}

// FullName returns "owner/repository".
func (u PullRequestURL) FullName() string {
	return u.Owner + "/" + u.Repository
}

// Is reports whether the pull request belongs to the given "owner/repository".
func (u PullRequestURL) Is(fullName string) bool {
	return u.FullName() == fullName
}

// Target returns the repository the pull request was opened against.
func (u PullRequestURL) Target() Repository {
	return NewGitHubRepository(u.Owner, u.Repository)
}

// RecipesEndpoint returns the contents API URL serving the Flex recipes index built for this pull request.
func (u PullRequestURL) RecipesEndpoint() string {
	return fmt.Sprintf(recipesEndpointFmt, u.Owner, u.Repository, u.Number)
}

// UniquePullRequestURLs removes duplicated links, keeping the first occurrence of each.
func UniquePullRequestURLs(urls []string) []string {
	seen := make(map[string]struct{}, len(urls))
	unique := make([]string, 0, len(urls))
	for _, url := range urls {
		if _, ok := seen[url]; ok {
			continue
		}
		seen[url] = struct{}{}
		unique = append(unique, url)
	}
	return unique
}

// PullRequestDetails holds the pull request data needed to build a dependency override.
type PullRequestDetails struct {
	Number int

	// HeadRef is the branch the changes live on.
	HeadRef string

	// HeadRepositoryURL is the HTML URL of the repository holding HeadRef (a fork for external contributions).
	HeadRepositoryURL string
	HeadPrivate       bool
	HeadFork          bool

	BaseOwner      string
	BaseRepository string

	// BaseRef is the branch the pull request targets.
	BaseRef string
}

// Base returns the repository the pull request targets.
func (d PullRequestDetails) Base() Repository {
	return NewGitHubRepository(d.BaseOwner, d.BaseRepository)
}

package entities

import "errors"

var (
	// ErrInvalidPullRequestURL is returned when a link does not point to a GitHub pull request.
	ErrInvalidPullRequestURL = errors.New("invalid pull request URL")

	// ErrInvalidProductVersion is returned when a product version is not in the X.Y format.
	ErrInvalidProductVersion = errors.New("invalid product version")

	// ErrUnknownEdition is returned when an edition is not one of the configured editions.
	ErrUnknownEdition = errors.New("unknown product edition")

	// ErrBranchAliasNotFound is returned when a composer.json declares no extra.branch-alias entry.
	ErrBranchAliasNotFound = errors.New("branch alias not found")

	// ErrManifestNotFound is returned when the dependencies manifest does not exist on disk.
	ErrManifestNotFound = errors.New("dependencies manifest not found")

	// ErrManifestInvalid is returned when the dependencies manifest is not valid JSON.
	ErrManifestInvalid = errors.New("dependencies manifest is not valid JSON")

	// ErrPushedBranchNotFound is returned when a pushed branch never shows up in the hosting API.
	ErrPushedBranchNotFound = errors.New("pushed branch not found using GitHub API")

	// ErrCloneFailed is returned when a repository could not be cloned over any transport.
	ErrCloneFailed = errors.New("failed to clone repository")
)

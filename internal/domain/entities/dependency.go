package entities

import "fmt"

// DependenciesFile is the name of the manifest shared by the two workflows.
const DependenciesFile = "dependencies.json"

// PullRequestDependency tells the regression build to install a package from a pull request branch.
// Field order is the manifest's key order.
type PullRequestDependency struct {
	// Requirement is a Composer constraint, "dev-<branch> as <alias>".
	Requirement   string `json:"requirement"`
	RepositoryURL string `json:"repositoryUrl"`
	Package       string `json:"package"`

	// ShouldBeAddedAsVCS is set when the branch lives in a private repository or a fork,
	// which Composer can only reach through a VCS repository entry.
	ShouldBeAddedAsVCS bool `json:"shouldBeAddedAsVCS"`
}

// NewPullRequestDependency combines pull request details with the target's composer.json.
func NewPullRequestDependency(details PullRequestDetails, composer *ComposerManifest) (PullRequestDependency, error) {
	alias, err := composer.FirstBranchAlias()
	if err != nil {
		return PullRequestDependency{}, err
	}

	return PullRequestDependency{
		Requirement:        fmt.Sprintf("dev-%s as %s", details.HeadRef, alias),
		RepositoryURL:      details.HeadRepositoryURL,
		Package:            composer.Name,
		ShouldBeAddedAsVCS: details.HeadPrivate || details.HeadFork,
	}, nil
}

// DependencyManifest is the content of dependencies.json.
type DependencyManifest struct {
	RecipesEndpoint string                  `json:"recipesEndpoint"`
	Packages        []PullRequestDependency `json:"packages"`
}

// NewDependencyManifest returns an empty manifest whose packages encode as [] rather than null.
func NewDependencyManifest() *DependencyManifest {
	return &DependencyManifest{
		Packages: []PullRequestDependency{},
	}
}

//go:build integration || unit || test

package entitybuilders //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	testkit "github.com/rios0rios0/testkit/pkg/test"

	"github.com/ibexa/ci-scripts/internal/domain/entities"
)

// PullRequestDetailsBuilder helps create pull request details with a fluent interface.
type PullRequestDetailsBuilder struct {
	*testkit.BaseBuilder
	number            int
	headRef           string
	headRepositoryURL string
	headPrivate       bool
	headFork          bool
	baseOwner         string
	baseRepository    string
	baseRef           string
}

// NewPullRequestDetailsBuilder creates a builder for a same-repository pull request against main.
func NewPullRequestDetailsBuilder() *PullRequestDetailsBuilder {
	b := &PullRequestDetailsBuilder{BaseBuilder: testkit.NewBaseBuilder()}
	b.defaults()
	return b
}

func (b *PullRequestDetailsBuilder) defaults() {
	b.number = 1
	b.headRef = "feature"
	b.headRepositoryURL = "https://github.com/ibexa/admin-ui"
	b.headPrivate = false
	b.headFork = false
	b.baseOwner = "ibexa"
	b.baseRepository = "admin-ui"
	b.baseRef = "main"
}

// WithNumber sets the pull request number.
func (b *PullRequestDetailsBuilder) WithNumber(number int) *PullRequestDetailsBuilder {
	b.number = number
	return b
}

// WithHeadRef sets the branch holding the changes.
func (b *PullRequestDetailsBuilder) WithHeadRef(ref string) *PullRequestDetailsBuilder {
	b.headRef = ref
	return b
}

// WithHeadRepositoryURL sets the HTML URL of the head repository.
func (b *PullRequestDetailsBuilder) WithHeadRepositoryURL(url string) *PullRequestDetailsBuilder {
	b.headRepositoryURL = url
	return b
}

// WithPrivateHead marks the head repository as private.
func (b *PullRequestDetailsBuilder) WithPrivateHead() *PullRequestDetailsBuilder {
	b.headPrivate = true
	return b
}

// WithForkHead marks the head repository as a fork.
func (b *PullRequestDetailsBuilder) WithForkHead() *PullRequestDetailsBuilder {
	b.headFork = true
	return b
}

// WithBase sets the targeted repository and branch.
func (b *PullRequestDetailsBuilder) WithBase(owner, repository, ref string) *PullRequestDetailsBuilder {
	b.baseOwner = owner
	b.baseRepository = repository
	b.baseRef = ref
	return b
}

// Build creates the details (satisfies testkit.Builder interface).
func (b *PullRequestDetailsBuilder) Build() interface{} {
	return b.BuildDetails()
}

// BuildDetails creates the details with a concrete return type.
func (b *PullRequestDetailsBuilder) BuildDetails() *entities.PullRequestDetails {
	return &entities.PullRequestDetails{
		Number:            b.number,
		HeadRef:           b.headRef,
		HeadRepositoryURL: b.headRepositoryURL,
		HeadPrivate:       b.headPrivate,
		HeadFork:          b.headFork,
		BaseOwner:         b.baseOwner,
		BaseRepository:    b.baseRepository,
		BaseRef:           b.baseRef,
	}
}

// Reset clears the builder state, allowing it to be reused.
func (b *PullRequestDetailsBuilder) Reset() testkit.Builder {
	b.BaseBuilder.Reset()
	b.defaults()
	return b
}

// Clone creates a copy of the PullRequestDetailsBuilder.
func (b *PullRequestDetailsBuilder) Clone() testkit.Builder {
	clone := *b
	clone.BaseBuilder = b.BaseBuilder.Clone().(*testkit.BaseBuilder)
	return &clone
}

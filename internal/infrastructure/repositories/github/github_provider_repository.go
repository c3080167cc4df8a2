package github

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	gh "github.com/google/go-github/v66/github"
	logger "github.com/sirupsen/logrus"
	"golang.org/x/oauth2"

	"github.com/ibexa/ci-scripts/internal/domain/entities"
	"github.com/ibexa/ci-scripts/internal/domain/repositories"
)

const (
	providerName = "github"
	maxRedirects = 3
)

// Option configures a GitHubProviderRepository.
type Option func(*options)

type options struct {
	httpClient *http.Client
	baseURL    string
}

// WithHTTPClient sets the HTTP client the API calls go through (authentication is layered on top).
func WithHTTPClient(client *http.Client) Option {
	return func(o *options) {
		o.httpClient = client
	}
}

// WithBaseURL points the client at another API root, such as a test server.
func WithBaseURL(baseURL string) Option {
	return func(o *options) {
		o.baseURL = baseURL
	}
}

// GitHubProviderRepository implements repositories.ProviderRepository for GitHub.
type GitHubProviderRepository struct {
	client *gh.Client
}

// NewProviderRepository creates a GitHub provider. An empty token calls the API anonymously.
func NewProviderRepository(token string) repositories.ProviderRepository {
	return NewGitHubProviderRepository(token)
}

// NewGitHubProviderRepository creates a GitHub provider with the given options.
func NewGitHubProviderRepository(token string, opts ...Option) *GitHubProviderRepository {
	cfg := &options{}
	for _, opt := range opts {
		opt(cfg)
	}

	httpClient := cfg.httpClient
	if token != "" {
		ctx := context.Background()
		if httpClient != nil {
			ctx = context.WithValue(ctx, oauth2.HTTPClient, httpClient)
		}
		httpClient = oauth2.NewClient(ctx, oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token}))
	}

	client := gh.NewClient(httpClient)
	if cfg.baseURL != "" {
		baseURL := cfg.baseURL
		if !strings.HasSuffix(baseURL, "/") {
			baseURL += "/"
		}
		if parsed, err := url.Parse(baseURL); err == nil {
			client.BaseURL = parsed
		} else {
			logger.Warnf("Ignoring invalid GitHub API base URL %q: %v", cfg.baseURL, err)
		}
	}

	return &GitHubProviderRepository{client: client}
}

func (p *GitHubProviderRepository) Name() string { return providerName }

func (p *GitHubProviderRepository) GetPullRequest(
	ctx context.Context,
	repo entities.Repository,
	number int,
) (*entities.PullRequestDetails, error) {
	pr, _, err := p.client.PullRequests.Get(ctx, repo.Organization, repo.Name, number)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch pull request %s#%d: %w", entities.FullName(repo), number, err)
	}

	head := pr.GetHead()
	if head.GetRepo() == nil {
		return nil, fmt.Errorf(
			"pull request %s#%d has no head repository (was the fork deleted?)",
			entities.FullName(repo), number,
		)
	}

	base := pr.GetBase()
	return &entities.PullRequestDetails{
		Number:            pr.GetNumber(),
		HeadRef:           head.GetRef(),
		HeadRepositoryURL: head.GetRepo().GetHTMLURL(),
		HeadPrivate:       head.GetRepo().GetPrivate(),
		HeadFork:          head.GetRepo().GetFork(),
		BaseOwner:         base.GetRepo().GetOwner().GetLogin(),
		BaseRepository:    base.GetRepo().GetName(),
		BaseRef:           base.GetRef(),
	}, nil
}

func (p *GitHubProviderRepository) GetFileContent(
	ctx context.Context,
	repo entities.Repository,
	path, ref string,
) ([]byte, error) {
	fileContent, _, _, err := p.client.Repositories.GetContents(
		ctx, repo.Organization, repo.Name, path,
		&gh.RepositoryContentGetOptions{Ref: ref},
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get file %q of %s at %q: %w", path, entities.FullName(repo), ref, err)
	}
	if fileContent == nil {
		return nil, fmt.Errorf("path %q is a directory, not a file", path)
	}

	content, err := fileContent.GetContent()
	if err != nil {
		return nil, fmt.Errorf("failed to decode file content: %w", err)
	}

	return []byte(content), nil
}

func (p *GitHubProviderRepository) BranchExists(
	ctx context.Context,
	repo entities.Repository,
	branch string,
) (bool, error) {
	_, resp, err := p.client.Repositories.GetBranch(ctx, repo.Organization, repo.Name, branch, maxRedirects)
	if err != nil {
		if isNotFound(resp, err) {
			return false, nil
		}
		return false, fmt.Errorf("failed to get branch %q of %s: %w", branch, entities.FullName(repo), err)
	}
	return true, nil
}

func (p *GitHubProviderRepository) CreateDraftPullRequest(
	ctx context.Context,
	repo entities.Repository,
	input entities.PullRequestInput,
) (*entities.PullRequest, error) {
	sourceBranch := strings.TrimPrefix(input.SourceBranch, "refs/heads/")
	targetBranch := strings.TrimPrefix(input.TargetBranch, "refs/heads/")

	draft := true
	pr, _, err := p.client.PullRequests.Create(
		ctx, repo.Organization, repo.Name,
		&gh.NewPullRequest{
			Title: &input.Title,
			Head:  &sourceBranch,
			Base:  &targetBranch,
			Body:  &input.Description,
			Draft: &draft,
		},
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create pull request: %w", err)
	}

	return &entities.PullRequest{
		ID:     pr.GetNumber(),
		Title:  pr.GetTitle(),
		URL:    pr.GetHTMLURL(),
		Status: pr.GetState(),
	}, nil
}

func isNotFound(resp *gh.Response, err error) bool {
	if resp != nil && resp.StatusCode == http.StatusNotFound {
		return true
	}
	var errResp *gh.ErrorResponse
	return errors.As(err, &errResp) && errResp.Response != nil &&
		errResp.Response.StatusCode == http.StatusNotFound
}

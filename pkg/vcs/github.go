package vcs

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/google/go-github/v60/github"
)

type GitHubClient struct {
	client *github.Client
	logger *log.Logger
}

func NewGitHubClient(client *github.Client, logger *log.Logger) *GitHubClient {
	if logger == nil {
		logger = log.Default()
	}
	return &GitHubClient{
		client: client,
		logger: logger,
	}
}

// NewClient builds a go-github client. Requests carry token when it is set and
// go unauthenticated otherwise. An empty baseURL targets api.github.com.
func NewClient(token, baseURL string) (*github.Client, error) {
	client := github.NewClient(nil)
	if token != "" {
		client = client.WithAuthToken(token)
	}
	if baseURL != "" {
		u, err := url.Parse(strings.TrimSuffix(baseURL, "/") + "/")
		if err != nil {
			return nil, fmt.Errorf("parse api url %q: %w", baseURL, err)
		}
		client.BaseURL = u
	}
	return client, nil
}

func (g *GitHubClient) ListOrgRepos(ctx context.Context, org string) ([]RepoRef, error) {
	pages := Pages(ctx, func(ctx context.Context, page int) ([]*github.Repository, error) {
		opts := &github.RepositoryListByOrgOptions{
			ListOptions: github.ListOptions{PerPage: PageSize, Page: page},
		}
		repos, _, err := g.client.Repositories.ListByOrg(ctx, org, opts)
		return repos, err
	})

	repos, err := Collect(pages, func(err error) {
		g.logger.Warn("API error", "org", org, "message", APIErrorMessage(err))
	})
	if err != nil {
		return nil, fmt.Errorf("list repos for %s: %w", org, err)
	}

	refs := make([]RepoRef, 0, len(repos))
	for _, r := range repos {
		refs = append(refs, RepoRef{Org: org, Name: r.GetName()})
	}
	return refs, nil
}

func (g *GitHubClient) ListTags(ctx context.Context, ref RepoRef) ([]Tag, error) {
	pages := Pages(ctx, func(ctx context.Context, page int) ([]*github.RepositoryTag, error) {
		tags, _, err := g.client.Repositories.ListTags(ctx, ref.Org, ref.Name, &github.ListOptions{
			PerPage: PageSize,
			Page:    page,
		})
		return tags, err
	})

	tags, err := Collect(pages, func(err error) {
		g.logger.Warn("API error", "repo", ref.String(), "message", APIErrorMessage(err))
	})
	if err != nil {
		return nil, fmt.Errorf("list tags for %s: %w", ref, err)
	}

	allTags := make([]Tag, 0, len(tags))
	for _, t := range tags {
		allTags = append(allTags, Tag{
			Name:   t.GetName(),
			Commit: t.GetCommit().GetSHA(),
		})
	}
	return allTags, nil
}

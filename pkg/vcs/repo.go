package vcs

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidRepoRef is returned for repository references not in "org/repo" form.
var ErrInvalidRepoRef = errors.New("invalid repository reference")

// RepoRef identifies a repository by organization and name.
type RepoRef struct {
	Org  string
	Name string
}

// String returns the "org/name" display form used for sorting and lookups.
func (r RepoRef) String() string {
	return r.Org + "/" + r.Name
}

// ParseRepoRef parses an "org/repo" string. Exactly one slash is accepted.
func ParseRepoRef(s string) (RepoRef, error) {
	parts := strings.Split(s, "/")
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return RepoRef{}, fmt.Errorf("%w: %q, expected 'org/repo'", ErrInvalidRepoRef, s)
	}
	return RepoRef{Org: parts[0], Name: parts[1]}, nil
}

type Tag struct {
	Name   string
	Commit string
}

type RepoClient interface {
	// ListOrgRepos returns every repository of org in server order.
	// An API error stops the listing early without failing it.
	ListOrgRepos(ctx context.Context, org string) ([]RepoRef, error)

	// ListTags returns every tag of the repository in server order.
	// An API error stops the listing early without failing it.
	ListTags(ctx context.Context, ref RepoRef) ([]Tag, error)
}

package scanner

import (
	"context"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/action-versions/pkg/cache"
	"github.com/action-versions/pkg/config"
	"github.com/action-versions/pkg/vcs"
	"github.com/action-versions/pkg/version"
)

// Version is a repository pinned to its preferred tag.
type Version struct {
	Repo string `json:"repo"`
	Tag  string `json:"tag"`
}

// PinnedVersion is a repository pinned to the commit of its latest semver tag.
type PinnedVersion struct {
	Repo   string `json:"repo"`
	Commit string `json:"commit"`
	Tag    string `json:"tag"`
}

type Result struct {
	Versions    []Version       `json:"versions"`
	Pinned      []PinnedVersion `json:"pinned"`
	Unversioned cache.Set       `json:"-"`
	OrgRepos    int             `json:"org_repos"`
	Excluded    int             `json:"excluded"`
	CacheHits   int             `json:"cache_hits"`
}

type Scanner struct {
	repoClient vcs.RepoClient
	config     *config.Config
	logger     *log.Logger
	out        io.Writer
}

// New returns a Scanner. Progress lines are written to out.
func New(repoClient vcs.RepoClient, cfg *config.Config, logger *log.Logger, out io.Writer) *Scanner {
	if logger == nil {
		logger = log.Default()
	}
	if out == nil {
		out = io.Discard
	}
	return &Scanner{
		repoClient: repoClient,
		config:     cfg,
		logger:     logger,
		out:        out,
	}
}

// RepoSet is the ordered list of repositories a scan processes. OrgRepos
// counts the organization listing before exclusions.
type RepoSet struct {
	Repos    []vcs.RepoRef
	OrgRepos int
	Excluded int
}

// Repos returns the repositories to process: the organization listing minus
// the skip list, followed by the additional repositories, in that order.
func (s *Scanner) Repos(ctx context.Context) (*RepoSet, error) {
	additional, err := s.config.AdditionalRepos()
	if err != nil {
		return nil, err
	}

	fmt.Fprintf(s.out, "Fetching repos for %s...\n", s.config.Org)
	orgRepos, err := s.repoClient.ListOrgRepos(ctx, s.config.Org)
	if err != nil {
		return nil, err
	}
	fmt.Fprintf(s.out, "Found %d repos\n", len(orgRepos))

	skip := make(map[string]bool, len(s.config.Skip))
	for _, name := range s.config.Skip {
		skip[name] = true
	}

	set := &RepoSet{
		Repos:    make([]vcs.RepoRef, 0, len(orgRepos)+len(additional)),
		OrgRepos: len(orgRepos),
	}
	for _, r := range orgRepos {
		if skip[r.Name] {
			set.Excluded++
			continue
		}
		set.Repos = append(set.Repos, r)
	}
	if set.Excluded > 0 {
		fmt.Fprintf(s.out, "Skipped %d repos from %s\n", set.Excluded, s.config.Org)
	}

	set.Repos = append(set.Repos, additional...)
	fmt.Fprintf(s.out, "Processing %d repos total (including %d additional)\n", len(set.Repos), len(additional))
	return set, nil
}

// Scan resolves the latest version of every repository. Repositories present
// in unversioned are trusted to still have no version tag and are not queried.
// The returned Result holds sorted outputs and the rebuilt unversioned set.
func (s *Scanner) Scan(ctx context.Context, unversioned cache.Set) (*Result, error) {
	set, err := s.Repos(ctx)
	if err != nil {
		return nil, err
	}

	result := &Result{
		Unversioned: cache.NewSet(),
		OrgRepos:    set.OrgRepos,
		Excluded:    set.Excluded,
	}

	for _, ref := range set.Repos {
		name := ref.String()
		if unversioned.Has(name) {
			fmt.Fprintf(s.out, "Skipping %s (cached as unversioned)\n", name)
			result.Unversioned.Add(name)
			result.CacheHits++
			continue
		}

		fmt.Fprintf(s.out, "Fetching tags for %s... ", name)
		tags, err := s.repoClient.ListTags(ctx, ref)
		if err != nil {
			fmt.Fprintln(s.out)
			return nil, err
		}
		s.logger.Debug("fetched tags", "repo", name, "count", len(tags))

		tag, hasInteger := version.LatestInteger(tags)
		semver, hasSemver := version.LatestSemver(tags)

		switch {
		case hasInteger:
			result.Versions = append(result.Versions, Version{Repo: name, Tag: tag})
			if hasSemver {
				result.Pinned = append(result.Pinned, PinnedVersion{Repo: name, Commit: semver.Commit, Tag: semver.Tag})
			}
			fmt.Fprintln(s.out, tag)
		case hasSemver:
			result.Versions = append(result.Versions, Version{Repo: name, Tag: semver.Tag})
			result.Pinned = append(result.Pinned, PinnedVersion{Repo: name, Commit: semver.Commit, Tag: semver.Tag})
			fmt.Fprintf(s.out, "%s (semver fallback)\n", semver.Tag)
		default:
			fmt.Fprintln(s.out, "no version tag")
			result.Unversioned.Add(name)
		}
	}

	sort.SliceStable(result.Versions, func(i, j int) bool {
		return lessFold(result.Versions[i].Repo, result.Versions[j].Repo)
	})
	sort.SliceStable(result.Pinned, func(i, j int) bool {
		return lessFold(result.Pinned[i].Repo, result.Pinned[j].Repo)
	})
	return result, nil
}

func lessFold(a, b string) bool {
	return strings.ToLower(a) < strings.ToLower(b)
}

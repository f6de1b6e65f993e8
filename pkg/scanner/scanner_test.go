package scanner_test

import (
	"bytes"
	"context"
	"errors"
	"io"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/m-mizutani/gt"

	"github.com/action-versions/pkg/cache"
	"github.com/action-versions/pkg/config"
	"github.com/action-versions/pkg/scanner"
	"github.com/action-versions/pkg/vcs"
)

// MockRepoClient serves canned listings and records every call.
type MockRepoClient struct {
	orgRepos  map[string][]string
	tags      map[string][]vcs.Tag
	tagErrors map[string]error
	tagCalls  []string
}

func (m *MockRepoClient) ListOrgRepos(_ context.Context, org string) ([]vcs.RepoRef, error) {
	var refs []vcs.RepoRef
	for _, name := range m.orgRepos[org] {
		refs = append(refs, vcs.RepoRef{Org: org, Name: name})
	}
	return refs, nil
}

func (m *MockRepoClient) ListTags(_ context.Context, ref vcs.RepoRef) ([]vcs.Tag, error) {
	m.tagCalls = append(m.tagCalls, ref.String())
	if err := m.tagErrors[ref.String()]; err != nil {
		return nil, err
	}
	return m.tags[ref.String()], nil
}

func testConfig() *config.Config {
	cfg := config.Default()
	cfg.Org = "actions"
	cfg.Skip = []string{"runner"}
	cfg.Additional = []string{"docker/login-action", "Zeta/x"}
	return cfg
}

func newMock() *MockRepoClient {
	return &MockRepoClient{
		orgRepos: map[string][]string{
			"actions": {"checkout", "runner", "stale", "setup-go", "cache"},
		},
		tags: map[string][]vcs.Tag{
			"actions/checkout": {
				{Name: "v4", Commit: "c4"},
				{Name: "v4.2.2", Commit: "c422"},
				{Name: "v3", Commit: "c3"},
			},
			"actions/setup-go": {
				{Name: "v5.0.0", Commit: "g500"},
				{Name: "v5.1.0", Commit: "g510"},
			},
			"actions/stale": {
				{Name: "release-1", Commit: "s1"},
			},
			"actions/cache": {
				{Name: "v4", Commit: "k4"},
			},
			"docker/login-action": {
				{Name: "v3", Commit: "d3"},
				{Name: "v3.3.0", Commit: "d330"},
			},
			"Zeta/x": {
				{Name: "v1", Commit: "z1"},
			},
		},
	}
}

func TestScanner_Scan(t *testing.T) {
	mock := newMock()
	var out bytes.Buffer
	s := scanner.New(mock, testConfig(), log.New(io.Discard), &out)

	result, err := s.Scan(context.Background(), cache.NewSet())
	gt.NoError(t, err)

	gt.Equal(t, result.Versions, []scanner.Version{
		{Repo: "actions/cache", Tag: "v4"},
		{Repo: "actions/checkout", Tag: "v4"},
		{Repo: "actions/setup-go", Tag: "v5.1.0"},
		{Repo: "docker/login-action", Tag: "v3"},
		{Repo: "Zeta/x", Tag: "v1"},
	})
	gt.Equal(t, result.Pinned, []scanner.PinnedVersion{
		{Repo: "actions/checkout", Commit: "c422", Tag: "v4.2.2"},
		{Repo: "actions/setup-go", Commit: "g510", Tag: "v5.1.0"},
		{Repo: "docker/login-action", Commit: "d330", Tag: "v3.3.0"},
	})
	gt.Equal(t, result.Unversioned.Sorted(), []string{"actions/stale"})
	gt.Equal(t, result.OrgRepos, 5)
	gt.Equal(t, result.Excluded, 1)

	gt.Equal(t, mock.tagCalls, []string{
		"actions/checkout",
		"actions/stale",
		"actions/setup-go",
		"actions/cache",
		"docker/login-action",
		"Zeta/x",
	})

	gt.String(t, out.String()).Contains("Skipped 1 repos from actions\n")
	gt.String(t, out.String()).Contains("Processing 6 repos total (including 2 additional)\n")
	gt.String(t, out.String()).Contains("Fetching tags for actions/setup-go... v5.1.0 (semver fallback)\n")
	gt.String(t, out.String()).Contains("Fetching tags for actions/stale... no version tag\n")
}

func TestScanner_Scan_CacheHitSkipsNetwork(t *testing.T) {
	mock := newMock()
	var out bytes.Buffer
	s := scanner.New(mock, testConfig(), log.New(io.Discard), &out)

	result, err := s.Scan(context.Background(), cache.NewSet("actions/stale", "actions/checkout", "gone/repo"))
	gt.NoError(t, err)

	for _, call := range mock.tagCalls {
		gt.True(t, call != "actions/stale" && call != "actions/checkout")
	}
	// Cached entries are carried forward as-is; entries not seen this run are dropped.
	gt.Equal(t, result.Unversioned.Sorted(), []string{"actions/checkout", "actions/stale"})
	gt.Equal(t, result.CacheHits, 2)
	for _, v := range result.Versions {
		gt.True(t, v.Repo != "actions/checkout")
	}
	gt.String(t, out.String()).Contains("Skipping actions/checkout (cached as unversioned)\n")
}

func TestScanner_Scan_Idempotent(t *testing.T) {
	start := cache.NewSet("actions/stale")

	first, err := scanner.New(newMock(), testConfig(), log.New(io.Discard), nil).Scan(context.Background(), start)
	gt.NoError(t, err)
	second, err := scanner.New(newMock(), testConfig(), log.New(io.Discard), nil).Scan(context.Background(), start)
	gt.NoError(t, err)

	gt.Equal(t, first.Versions, second.Versions)
	gt.Equal(t, first.Pinned, second.Pinned)
	gt.Equal(t, first.Unversioned.Sorted(), second.Unversioned.Sorted())
}

func TestScanner_Scan_ExcludedNeverQueried(t *testing.T) {
	mock := newMock()
	cfg := testConfig()
	// An excluded name only applies to the primary organization.
	cfg.Additional = []string{"other/runner"}
	mock.tags["other/runner"] = []vcs.Tag{{Name: "v2", Commit: "r2"}}

	result, err := scanner.New(mock, cfg, log.New(io.Discard), nil).Scan(context.Background(), cache.NewSet())
	gt.NoError(t, err)

	for _, call := range mock.tagCalls {
		gt.True(t, call != "actions/runner")
	}
	gt.Equal(t, result.Versions[len(result.Versions)-1], scanner.Version{Repo: "other/runner", Tag: "v2"})
}

func TestScanner_Scan_TransportErrorAborts(t *testing.T) {
	mock := newMock()
	boom := errors.New("connection refused")
	mock.tagErrors = map[string]error{"actions/stale": boom}

	_, err := scanner.New(mock, testConfig(), log.New(io.Discard), nil).Scan(context.Background(), cache.NewSet())
	gt.Error(t, err)
	gt.True(t, errors.Is(err, boom))
	gt.Equal(t, mock.tagCalls, []string{"actions/checkout", "actions/stale"})
}

func TestScanner_Scan_MalformedAdditionalFailsFast(t *testing.T) {
	mock := newMock()
	cfg := testConfig()
	cfg.Additional = []string{"bad"}

	_, err := scanner.New(mock, cfg, log.New(io.Discard), nil).Scan(context.Background(), cache.NewSet())
	gt.Error(t, err)
	gt.True(t, errors.Is(err, vcs.ErrInvalidRepoRef))
	gt.Equal(t, len(mock.tagCalls), 0)
}

func TestScanner_Repos(t *testing.T) {
	mock := newMock()
	set, err := scanner.New(mock, testConfig(), log.New(io.Discard), nil).Repos(context.Background())
	gt.NoError(t, err)

	gt.Equal(t, set.OrgRepos, 5)
	gt.Equal(t, set.Excluded, 1)
	gt.Equal(t, set.Repos, []vcs.RepoRef{
		{Org: "actions", Name: "checkout"},
		{Org: "actions", Name: "stale"},
		{Org: "actions", Name: "setup-go"},
		{Org: "actions", Name: "cache"},
		{Org: "docker", Name: "login-action"},
		{Org: "Zeta", Name: "x"},
	})
	gt.Equal(t, len(mock.tagCalls), 0)
}

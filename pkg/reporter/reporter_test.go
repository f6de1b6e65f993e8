package reporter_test

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/m-mizutani/gt"

	"github.com/action-versions/pkg/cache"
	"github.com/action-versions/pkg/reporter"
	"github.com/action-versions/pkg/scanner"
)

func sampleResult() *scanner.Result {
	return &scanner.Result{
		Versions: []scanner.Version{
			{Repo: "actions/checkout", Tag: "v4"},
			{Repo: "Zeta/x", Tag: "v1.0.0"},
		},
		Pinned: []scanner.PinnedVersion{
			{Repo: "actions/checkout", Commit: "11bd71901bbe5b1630ceea73d27597364c9af683", Tag: "v4.2.2"},
			{Repo: "Zeta/x", Commit: "abc", Tag: "v1.0.0"},
		},
		Unversioned: cache.NewSet("actions/stale"),
	}
}

func TestVersionsContent(t *testing.T) {
	got := reporter.VersionsContent(sampleResult().Versions)
	gt.Equal(t, got, "actions/checkout@v4\nZeta/x@v1.0.0\n")
}

func TestPinnedContent(t *testing.T) {
	got := reporter.PinnedContent(sampleResult().Pinned)
	gt.Equal(t, got, "actions/checkout@11bd71901bbe5b1630ceea73d27597364c9af683 # v4.2.2\nZeta/x@abc # v1.0.0\n")
}

func TestContent_Empty(t *testing.T) {
	gt.Equal(t, reporter.VersionsContent(nil), "\n")
	gt.Equal(t, reporter.PinnedContent(nil), "\n")
}

func TestWriteFile_Overwrites(t *testing.T) {
	path := filepath.Join(t.TempDir(), "versions.txt")
	gt.NoError(t, os.WriteFile(path, []byte("old content that is longer\n"), 0o644))
	gt.NoError(t, reporter.WriteFile(path, "a/b@v1\n"))

	content, err := os.ReadFile(path)
	gt.NoError(t, err)
	gt.Equal(t, string(content), "a/b@v1\n")
}

func TestTableReporter(t *testing.T) {
	var buf bytes.Buffer
	gt.NoError(t, reporter.New("table", &buf).Report(sampleResult()))

	gt.String(t, buf.String()).Contains("REPOSITORY")
	gt.String(t, buf.String()).Contains("actions/checkout  v4")
	gt.String(t, buf.String()).Contains("11bd719")
}

func TestTableReporter_Empty(t *testing.T) {
	var buf bytes.Buffer
	gt.NoError(t, reporter.New("table", &buf).Report(&scanner.Result{Unversioned: cache.NewSet()}))
	gt.Equal(t, buf.String(), "No versioned repositories found.\n")
}

func TestJSONReporter(t *testing.T) {
	var buf bytes.Buffer
	gt.NoError(t, reporter.New("json", &buf).Report(sampleResult()))

	var out struct {
		Count       int                     `json:"count"`
		Versions    []scanner.Version       `json:"versions"`
		Pinned      []scanner.PinnedVersion `json:"pinned"`
		Unversioned []string                `json:"unversioned"`
	}
	gt.NoError(t, json.Unmarshal(buf.Bytes(), &out))
	gt.Equal(t, out.Count, 2)
	gt.Equal(t, out.Versions, sampleResult().Versions)
	gt.Equal(t, out.Unversioned, []string{"actions/stale"})
}

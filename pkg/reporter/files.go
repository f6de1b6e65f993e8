package reporter

import (
	"os"
	"strings"

	"github.com/action-versions/pkg/scanner"
)

// VersionsContent renders one "org/repo@tag" line per version. The result
// always ends with a newline, even when there are no versions.
func VersionsContent(versions []scanner.Version) string {
	lines := make([]string, len(versions))
	for i, v := range versions {
		lines[i] = v.Repo + "@" + v.Tag
	}
	return strings.Join(lines, "\n") + "\n"
}

// PinnedContent renders one "org/repo@sha # tag" line per pinned version.
func PinnedContent(pinned []scanner.PinnedVersion) string {
	lines := make([]string, len(pinned))
	for i, p := range pinned {
		lines[i] = p.Repo + "@" + p.Commit + " # " + p.Tag
	}
	return strings.Join(lines, "\n") + "\n"
}

// WriteFile overwrites path with content.
func WriteFile(path, content string) error {
	return os.WriteFile(path, []byte(content), 0o644)
}

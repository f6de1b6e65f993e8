// Package version selects the latest release tag of a repository.
//
// Two independent policies exist. LatestInteger considers only major-version
// tags such as "v4"; LatestSemver considers only full "vMAJOR.MINOR.PATCH"
// tags and keeps the commit they point at. Both ignore everything else,
// including pre-release and build suffixes.
package version

import (
	"regexp"
	"strings"

	"golang.org/x/mod/semver"

	"github.com/action-versions/pkg/vcs"
)

var (
	integerPattern = regexp.MustCompile(`^v(\d+)$`)
	semverPattern  = regexp.MustCompile(`^v(\d+)\.(\d+)\.(\d+)$`)
)

// Semver is a tag selected by LatestSemver together with its commit.
type Semver struct {
	Tag    string
	Commit string
}

// LatestInteger returns the "v<digits>" tag with the largest number, or
// false when no tag matches. Tag names are trimmed before matching.
func LatestInteger(tags []vcs.Tag) (string, bool) {
	var best, bestKey string
	for _, t := range tags {
		name := strings.TrimSpace(t.Name)
		m := integerPattern.FindStringSubmatch(name)
		if m == nil {
			continue
		}
		key := canonical(m[1:])
		if bestKey == "" || semver.Compare(key, bestKey) > 0 {
			best, bestKey = name, key
		}
	}
	return best, bestKey != ""
}

// LatestSemver returns the "v<major>.<minor>.<patch>" tag with the highest
// (major, minor, patch) triple, or false when no tag matches.
func LatestSemver(tags []vcs.Tag) (Semver, bool) {
	var (
		best    Semver
		bestKey string
	)
	for _, t := range tags {
		name := strings.TrimSpace(t.Name)
		m := semverPattern.FindStringSubmatch(name)
		if m == nil {
			continue
		}
		key := canonical(m[1:])
		if bestKey == "" || semver.Compare(key, bestKey) > 0 {
			best, bestKey = Semver{Tag: name, Commit: t.Commit}, key
		}
	}
	return best, bestKey != ""
}

// canonical turns numeric components into a version semver.Compare accepts.
// Leading zeros are dropped so "v010" orders as 10; a single component is
// the "vMAJOR" shorthand.
func canonical(parts []string) string {
	for i, p := range parts {
		p = strings.TrimLeft(p, "0")
		if p == "" {
			p = "0"
		}
		parts[i] = p
	}
	return "v" + strings.Join(parts, ".")
}

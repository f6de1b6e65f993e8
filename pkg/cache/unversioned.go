// Package cache persists the set of repositories known to have no version tag.
//
// The set is a skip-list: entries loaded at start are not queried again, and
// the file is rewritten at the end of every run with that run's findings only.
package cache

import (
	"bufio"
	"errors"
	"io/fs"
	"os"
	"sort"
	"strings"
)

// Set holds repository display strings ("org/repo").
type Set map[string]struct{}

func NewSet(repos ...string) Set {
	s := make(Set, len(repos))
	for _, r := range repos {
		s.Add(r)
	}
	return s
}

func (s Set) Add(repo string) { s[repo] = struct{}{} }

func (s Set) Has(repo string) bool {
	_, ok := s[repo]
	return ok
}

// Sorted returns the members in ascending byte order.
func (s Set) Sorted() []string {
	out := make([]string, 0, len(s))
	for r := range s {
		out = append(out, r)
	}
	sort.Strings(out)
	return out
}

// Load reads the set from path. A missing file yields an empty set. Blank
// lines are ignored and surrounding whitespace is trimmed.
func Load(path string) (Set, error) {
	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return NewSet(), nil
	}
	if err != nil {
		return nil, err
	}
	defer f.Close()

	s := NewSet()
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		s.Add(line)
	}
	return s, scanner.Err()
}

// Save overwrites path with one sorted entry per line.
func Save(path string, s Set) error {
	var b strings.Builder
	for _, r := range s.Sorted() {
		b.WriteString(r)
		b.WriteByte('\n')
	}
	return os.WriteFile(path, []byte(b.String()), 0o644)
}

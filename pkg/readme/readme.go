// Package readme keeps generated version listings inside a markdown document.
//
// Each listing lives between a start and an end marker comment. Splice is a
// pure text transform; Update applies it to a file on disk.
package readme

import (
	"fmt"
	"os"
	"regexp"
	"strings"
	"unicode"
)

// Markers delimit one generated section.
type Markers struct {
	Start string
	End   string
}

var (
	VersionsMarkers = Markers{Start: "<!-- VERSIONS_START -->", End: "<!-- VERSIONS_END -->"}
	PinnedMarkers   = Markers{Start: "<!-- VERSIONS_SHA_START -->", End: "<!-- VERSIONS_SHA_END -->"}
)

// Section is a generated block: a heading and a fenced body between markers.
type Section struct {
	Title   string
	Body    string
	Markers Markers
}

// Splice places section into text. When both markers are present, every
// start marker through the nearest following end marker is replaced by
// section. Otherwise section is appended after a blank line.
func Splice(text, section string, m Markers) string {
	if strings.Contains(text, m.Start) && strings.Contains(text, m.End) {
		re := regexp.MustCompile(regexp.QuoteMeta(m.Start) + `(?s:.*?)` + regexp.QuoteMeta(m.End))
		return re.ReplaceAllLiteralString(text, section)
	}
	return strings.TrimRightFunc(text, unicode.IsSpace) + "\n\n" + section + "\n"
}

// Update rewrites the file at path with every section spliced in, in order.
// A missing file is reported as an error satisfying errors.Is(err, fs.ErrNotExist).
func Update(path string, sections ...Section) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}

	text := string(data)
	for _, s := range sections {
		rendered, err := Render(s)
		if err != nil {
			return err
		}
		text = Splice(text, rendered, s.Markers)
	}

	if err := os.WriteFile(path, []byte(text), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

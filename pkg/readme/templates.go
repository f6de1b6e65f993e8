package readme

import (
	"bytes"
	"fmt"
	"text/template"
)

const fence = "```"

// The body already ends with a newline, so the closing fence follows it directly.
var sectionTmpl = template.Must(template.New("section").Parse(`{{ .Markers.Start }}
## {{ .Title }}

` + fence + `
{{ .Body }}` + fence + `
{{ .Markers.End }}`))

// Render returns the marker-delimited markdown for s.
func Render(s Section) (string, error) {
	var buf bytes.Buffer
	if err := sectionTmpl.Execute(&buf, s); err != nil {
		return "", fmt.Errorf("render section %q: %w", s.Title, err)
	}
	return buf.String(), nil
}

// VersionsSection wraps the contents of versions.txt.
func VersionsSection(body string) Section {
	return Section{Title: "Latest versions", Body: body, Markers: VersionsMarkers}
}

// PinnedSection wraps the contents of versions-sha.txt.
func PinnedSection(body string) Section {
	return Section{Title: "Latest versions (SHA-pinned)", Body: body, Markers: PinnedMarkers}
}

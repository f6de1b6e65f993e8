package reporter

import (
	"encoding/json"
	"io"

	"github.com/action-versions/pkg/scanner"
)

type JSONReporter struct {
	w io.Writer
}

func (r *JSONReporter) Report(result *scanner.Result) error {
	enc := json.NewEncoder(r.w)
	enc.SetIndent("", "  ")

	type output struct {
		Count       int                     `json:"count"`
		Versions    []scanner.Version       `json:"versions"`
		Pinned      []scanner.PinnedVersion `json:"pinned"`
		Unversioned []string                `json:"unversioned"`
	}

	return enc.Encode(output{
		Count:       len(result.Versions),
		Versions:    nonNil(result.Versions),
		Pinned:      nonNil(result.Pinned),
		Unversioned: nonNil(result.Unversioned.Sorted()),
	})
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}

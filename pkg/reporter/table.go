package reporter

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/action-versions/pkg/scanner"
)

type TableReporter struct {
	w io.Writer
}

func (r *TableReporter) Report(result *scanner.Result) error {
	if len(result.Versions) == 0 {
		_, err := fmt.Fprintln(r.w, "No versioned repositories found.")
		return err
	}

	pinned := make(map[string]scanner.PinnedVersion, len(result.Pinned))
	for _, p := range result.Pinned {
		pinned[p.Repo] = p
	}

	w := tabwriter.NewWriter(r.w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "REPOSITORY\tVERSION\tSEMVER\tCOMMIT")
	fmt.Fprintln(w, "----------\t-------\t------\t------")

	for _, v := range result.Versions {
		semver, commit := "-", "-"
		if p, ok := pinned[v.Repo]; ok {
			semver, commit = p.Tag, shortSHA(p.Commit)
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", v.Repo, v.Tag, semver, commit)
	}
	return w.Flush()
}

func shortSHA(sha string) string {
	if len(sha) > 7 {
		return sha[:7]
	}
	return sha
}

package reporter

import (
	"io"

	"github.com/action-versions/pkg/scanner"
)

// Reporter prints a summary of a scan to the console.
type Reporter interface {
	Report(result *scanner.Result) error
}

func New(format string, w io.Writer) Reporter {
	switch format {
	case "json":
		return &JSONReporter{w: w}
	default:
		return &TableReporter{w: w}
	}
}

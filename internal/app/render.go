package app

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/specialistvlad/querygrid/internal/compiler"
)

// render writes res in the requested output format. Text output is the
// statement followed by one line per diagnostic.
func render(w io.Writer, format string, res *compiler.Result) error {
	if format == OutputJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(res)
	}

	if res.Text != "" {
		if _, err := fmt.Fprintln(w, res.Text); err != nil {
			return err
		}
	}
	for _, msg := range res.Errors {
		if _, err := fmt.Fprintf(w, "error: %s\n", msg); err != nil {
			return err
		}
	}
	for _, msg := range res.Warnings {
		if _, err := fmt.Fprintf(w, "warning: %s\n", msg); err != nil {
			return err
		}
	}
	return nil
}

package main

import (
	"encoding/json"
	"io"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
)

// writeJSON encodes v to the command's stdout, indented when stdout is a
// terminal and as a single line otherwise.
func writeJSON(cmd *cobra.Command, v any) error {
	out := cmd.OutOrStdout()

	enc := json.NewEncoder(out)
	if isTerminal(out) {
		enc.SetIndent("", "  ")
	}

	return enc.Encode(v)
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}

	fd := f.Fd()

	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// Package report serializes an aggregated run result into the supported
// output forms: a human-readable line format, SARIF for CI integration, and
// a plain JSON schema.
package report

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"

	"github.com/viant/afs"

	"github.com/conformd/cxxlint/checker"
)

const (
	FormatText  = "text"
	FormatSARIF = "sarif"
	FormatJSON  = "json"
)

// Write renders the result in the given format
func Write(w io.Writer, format string, result *checker.Result) error {
	switch format {
	case FormatText, "":
		return writeText(w, result)
	case FormatSARIF:
		return writeSARIF(w, result)
	case FormatJSON:
		return writeJSON(w, result)
	}
	return fmt.Errorf("unknown report format %q", format)
}

// Save renders the result and writes it to the target URL, or stdout when
// the target is empty. A write failure is fatal for the run and surfaces as
// an IOError, never as a finding.
func Save(ctx context.Context, target, format string, result *checker.Result) error {
	if target == "" {
		if err := Write(os.Stdout, format, result); err != nil {
			return checker.NewIOError("write", "stdout", err)
		}
		return nil
	}
	var buf bytes.Buffer
	if err := Write(&buf, format, result); err != nil {
		return checker.NewIOError("write", target, err)
	}
	fs := afs.New()
	if err := fs.Upload(ctx, target, 0644, &buf); err != nil {
		return checker.NewIOError("write", target, err)
	}
	return nil
}

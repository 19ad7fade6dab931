package report

import (
	"encoding/json"
	"io"

	"github.com/conformd/cxxlint/checker"
)

// writeJSON renders the result as indented JSON for tooling that does not
// consume SARIF.
func writeJSON(w io.Writer, result *checker.Result) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(result)
}

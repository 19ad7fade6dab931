package model

import (
	"fmt"

	"github.com/minio/highwayhash"
)

var hashKey = []byte("0123456789ABCDEF0123456789ABCDEF")

// Finding is one rule violation. Findings are immutable value records; the
// aggregator deduplicates them by Key and orders them by location.
type Finding struct {
	RuleID     string   `json:"ruleId"`
	Category   Category `json:"category"`
	Severity   Severity `json:"severity"`
	Location   Location `json:"location"`
	Message    string   `json:"message"`
	Suggestion string   `json:"suggestion,omitempty"`
}

// Key returns a stable dedup key over (rule id, location)
func (f *Finding) Key() uint64 {
	h, err := highwayhash.New64(hashKey)
	if err != nil {
		return 0
	}
	_, _ = fmt.Fprintf(h, "%s|%s|%d|%d", f.RuleID, f.Location.Path, f.Location.Line, f.Location.Column)
	return h.Sum64()
}

// Less orders findings by (file, line, column, rule id) for deterministic output
func (f *Finding) Less(other *Finding) bool {
	if f.Location.Path != other.Location.Path {
		return f.Location.Path < other.Location.Path
	}
	if f.Location.Line != other.Location.Line {
		return f.Location.Line < other.Location.Line
	}
	if f.Location.Column != other.Location.Column {
		return f.Location.Column < other.Location.Column
	}
	return f.RuleID < other.RuleID
}

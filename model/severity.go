package model

import (
	"fmt"
	"strings"
)

// Severity classifies how a finding affects the run outcome.
// Only Error-severity findings make the process exit nonzero.
type Severity int

const (
	SeverityInfo Severity = iota
	SeverityWarning
	SeverityError
)

func (s Severity) String() string {
	switch s {
	case SeverityError:
		return "error"
	case SeverityWarning:
		return "warning"
	default:
		return "info"
	}
}

// MarshalJSON renders the severity as its configuration name
func (s Severity) MarshalJSON() ([]byte, error) {
	return []byte(`"` + s.String() + `"`), nil
}

// UnmarshalJSON accepts the configuration name form
func (s *Severity) UnmarshalJSON(data []byte) error {
	parsed, err := ParseSeverity(strings.Trim(string(data), `"`))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// ParseSeverity converts a configuration string into a Severity
func ParseSeverity(value string) (Severity, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "info":
		return SeverityInfo, nil
	case "warning", "warn":
		return SeverityWarning, nil
	case "error":
		return SeverityError, nil
	}
	return SeverityInfo, fmt.Errorf("unknown severity %q", value)
}

// Category groups rules by the aspect of the source they inspect
type Category string

const (
	CategoryNaming            Category = "naming"
	CategoryFormatting        Category = "formatting"
	CategoryPointerUsage      Category = "pointer-usage"
	CategoryBooleanParam      Category = "boolean-param"
	CategorySwitchFallthrough Category = "switch-fallthrough"
	CategoryTerminology       Category = "terminology"
)

// Categories lists all rule categories in evaluation order
func Categories() []Category {
	return []Category{
		CategoryNaming,
		CategoryFormatting,
		CategoryPointerUsage,
		CategoryBooleanParam,
		CategorySwitchFallthrough,
		CategoryTerminology,
	}
}

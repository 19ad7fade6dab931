package checker

import "fmt"

// ConfigError marks a malformed configuration. It is fatal and aborts the
// run before any source unit is processed.
type ConfigError struct {
	Err error
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("configuration: %v", e.Err)
}

func (e *ConfigError) Unwrap() error { return e.Err }

// NewConfigError wraps a configuration failure
func NewConfigError(err error) *ConfigError {
	return &ConfigError{Err: err}
}

// IOError marks an inability to read a source or write the report. Read-side
// failures are isolated per unit; a write-side failure is fatal for the run.
type IOError struct {
	Op   string // "read" or "write"
	Path string
	Err  error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *IOError) Unwrap() error { return e.Err }

// NewIOError wraps an I/O failure with its operation and target
func NewIOError(op, path string, err error) *IOError {
	return &IOError{Op: op, Path: path, Err: err}
}

package internal

import "fmt"

// RemoteError represents a failed exchange with the chat service. Detail is
// always populated: it carries the service's structured error detail when one
// was returned, otherwise a generic transport-failure description suitable
// for display.
type RemoteError struct {
	Op     string // "submit", "probe", "clear"
	Status int    // HTTP status, 0 when the request never completed
	Detail string
	Err    error
}

func (e *RemoteError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("remote error [%s] status %d: %s", e.Op, e.Status, e.Detail)
	}
	return fmt.Sprintf("remote error [%s]: %s", e.Op, e.Detail)
}

func (e *RemoteError) Unwrap() error {
	return e.Err
}

// ErrorDetail extracts the displayable detail from a transport error.
func ErrorDetail(err error) string {
	if err == nil {
		return ""
	}
	if re, ok := err.(*RemoteError); ok {
		return re.Detail
	}
	return err.Error()
}

// ConfigError represents errors loading or validating configuration
type ConfigError struct {
	Path string
	Err  error
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("config error %s: %v", e.Path, e.Err)
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}

// ExportError represents errors writing a transcript
type ExportError struct {
	Format string
	Path   string
	Err    error
}

func (e *ExportError) Error() string {
	return fmt.Sprintf("export error [%s] %s: %v", e.Format, e.Path, e.Err)
}

func (e *ExportError) Unwrap() error {
	return e.Err
}

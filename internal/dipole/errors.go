package dipole

import (
	"errors"
	"fmt"
)

var (
	ErrResource      = errors.New("resource error")
	ErrConfiguration = errors.New("configuration error")
)

// ResourceError reports an input file that cannot be opened or parsed.
// Line is 0 when the problem is not tied to a single line.
type ResourceError struct {
	Path string
	Line int
	Err  error
}

func (e *ResourceError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("%s:%d: %v", e.Path, e.Line, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Path, e.Err)
}

func (e *ResourceError) Unwrap() []error {
	return []error{ErrResource, e.Err}
}

// ConfigurationError reports a target configuration the models refuse to run.
type ConfigurationError struct {
	Reason string
}

func (e *ConfigurationError) Error() string {
	return "configuration error: " + e.Reason
}

func (e *ConfigurationError) Unwrap() error {
	return ErrConfiguration
}

func Configurationf(format string, args ...any) error {
	return &ConfigurationError{Reason: fmt.Sprintf(format, args...)}
}

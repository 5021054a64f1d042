package registry

import "fmt"

// --------------------------------------------------------------------------
// Error Types
// --------------------------------------------------------------------------

// ConfigurationError is returned when the registry cannot be loaded or does not
// contain the requested namespace. It is fatal for the whole invocation.
type ConfigurationError struct {
	Msg string
	Err error
}

func (e *ConfigurationError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Msg, e.Err)
	}
	return e.Msg
}

func (e *ConfigurationError) Unwrap() error { return e.Err }

// Kind returns the name under which the error is reported to the user
func (e *ConfigurationError) Kind() string { return "ConfigurationError" }

// NewConfigurationError creates a ConfigurationError with an optional cause
func NewConfigurationError(cause error, format string, args ...any) *ConfigurationError {
	return &ConfigurationError{
		Msg: fmt.Sprintf(format, args...),
		Err: cause,
	}
}

// InvalidDatabaseError is returned when a logical database name is not hosted in
// the resolved partition.
type InvalidDatabaseError struct {
	Name      string
	Namespace string
}

func (e *InvalidDatabaseError) Error() string {
	return fmt.Sprintf("Invalid database name: %s", e.Name)
}

// Kind returns the name under which the error is reported to the user
func (e *InvalidDatabaseError) Kind() string { return "InvalidDatabaseError" }

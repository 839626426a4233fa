package meta

import "fmt"

// ConfigError reports a missing or invalid configuration field. It is returned at
// construction time and is never recovered from.
type ConfigError struct {
	Field  string
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("invalid configuration %s: %s", e.Field, e.Reason)
}

// Invalid returns a ConfigError for the given field.
func Invalid(field, format string, args ...any) error {
	return &ConfigError{Field: field, Reason: fmt.Sprintf(format, args...)}
}

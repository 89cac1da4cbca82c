package config

import "fmt"

// UserError is a configuration error with a user-facing message and a
// concrete suggestion, wrapping the technical cause.
type UserError struct {
	Message    string
	Context    string
	Suggestion string
	Underlying error
}

// Error returns the user-facing message.
func (e *UserError) Error() string {
	if e.Context != "" {
		return fmt.Sprintf("%s (at %s)", e.Message, e.Context)
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *UserError) Unwrap() error {
	return e.Underlying
}

// NewManifestNotFoundError reports a missing manifest file.
func NewManifestNotFoundError(path string) *UserError {
	return &UserError{
		Message:    "manifest file not found",
		Context:    path,
		Suggestion: "Create a provision.yaml, pass --config, or run without --config to use the built-in manifest.",
	}
}

// NewManifestParseError reports an unparseable manifest.
func NewManifestParseError(path string, err error) *UserError {
	return &UserError{
		Message:    "manifest could not be parsed",
		Context:    path,
		Suggestion: "Check the file for syntax errors; it must be valid YAML or TOML.",
		Underlying: err,
	}
}

package types

import (
	"errors"
	"fmt"
)

var (
	ErrMissingBindings   = errors.New("missing bindings")
	ErrNoMySQL           = errors.New("no MySQL instance bound")
	ErrNoKafka           = errors.New("no Kafka instance bound")
	ErrMissingCredential = errors.New("missing credential")
)

// ConfigError reports missing or malformed service bindings
type ConfigError struct {
	Service string // catalog key of the offending binding, if any
	Err     error
}

func (e *ConfigError) Error() string {
	if e.Service != "" {
		return fmt.Sprintf("configuration error: service %q: %s", e.Service, e.Err)
	}
	return fmt.Sprintf("configuration error: %s", e.Err)
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}

// LaunchError reports a failure to hand control to the Maxwell binary
type LaunchError struct {
	Path     string
	ExitCode int // exit status of a supervised child; 0 when it never ran
	Err      error
}

func (e *LaunchError) Error() string {
	if e.ExitCode > 0 {
		return fmt.Sprintf("launch error: %s exited with status %d: %s", e.Path, e.ExitCode, e.Err)
	}
	return fmt.Sprintf("launch error: %s: %s", e.Path, e.Err)
}

func (e *LaunchError) Unwrap() error {
	return e.Err
}

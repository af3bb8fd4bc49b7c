// Package domain holds the error taxonomy shared by the loader, the query
// engine and the transports.
package domain

import (
	"errors"
	"fmt"
)

// DataLoadError reports a malformed or incomplete input table.
type DataLoadError struct {
	Source string // file path or table name
	Row    int    // 1-based data row, 0 when the whole table is affected
	Column string
	Err    error
}

func (e *DataLoadError) Error() string {
	msg := "data load failed"
	if e.Source != "" {
		msg += ": " + e.Source
	}
	if e.Row > 0 {
		msg += fmt.Sprintf(" row %d", e.Row)
	}
	if e.Column != "" {
		msg += fmt.Sprintf(" column %q", e.Column)
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *DataLoadError) Unwrap() error { return e.Err }

// NotFoundError reports a lookup key missing from the loaded tables.
type NotFoundError struct {
	Kind string // "player" or "team"
	Key  string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found: %q", e.Kind, e.Key)
}

// ConfigError reports a value outside a closed enumeration.
type ConfigError struct {
	Field string
	Value string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Value)
}

// AsDataLoadError attempts to unwrap an error into a DataLoadError.
func AsDataLoadError(err error) (*DataLoadError, bool) {
	var target *DataLoadError
	if errors.As(err, &target) {
		return target, true
	}
	return nil, false
}

// AsNotFoundError attempts to unwrap an error into a NotFoundError.
func AsNotFoundError(err error) (*NotFoundError, bool) {
	var target *NotFoundError
	if errors.As(err, &target) {
		return target, true
	}
	return nil, false
}

// AsConfigError attempts to unwrap an error into a ConfigError.
func AsConfigError(err error) (*ConfigError, bool) {
	var target *ConfigError
	if errors.As(err, &target) {
		return target, true
	}
	return nil, false
}

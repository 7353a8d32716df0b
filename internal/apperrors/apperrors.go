// Package apperrors defines the error kinds a digest run can fail with.
package apperrors

import (
	"errors"
	"fmt"
)

// Kind classifies a failure for reporting.
type Kind string

const (
	KindConfiguration Kind = "configuration"
	KindNetwork       Kind = "network"
	KindUnexpected    Kind = "unexpected"
)

// ErrNoProjects is returned when neither projects nor groups are configured.
var ErrNoProjects = errors.New("you should provide projects or groups in your config")

// ConfigurationError is a pre-flight failure caused by missing or invalid
// configuration.
type ConfigurationError struct {
	Message string
	Err     error
}

func (e *ConfigurationError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("configuration error: %s: %v", e.Message, e.Err)
	}
	return "configuration error: " + e.Message
}

func (e *ConfigurationError) Unwrap() error { return e.Err }

// NewConfigurationError wraps err as a configuration failure.
func NewConfigurationError(message string, err error) *ConfigurationError {
	return &ConfigurationError{Message: message, Err: err}
}

// NetworkError is a failed collaborator call. Status is the HTTP status of
// the response, or 0 when no response was received.
type NetworkError struct {
	Status  int
	Message string
	URL     string
}

func (e *NetworkError) Error() string {
	if e.Status == 0 {
		return fmt.Sprintf("network error: %s", e.Message)
	}
	return fmt.Sprintf("network error: status %d: %s", e.Status, e.Message)
}

// UnexpectedError is any failure that is neither a configuration nor a
// network problem, for example a malformed payload.
type UnexpectedError struct {
	Err error
}

func (e *UnexpectedError) Error() string {
	return fmt.Sprintf("unexpected error: %v", e.Err)
}

func (e *UnexpectedError) Unwrap() error { return e.Err }

// KindOf classifies err. Errors of no known kind are unexpected.
func KindOf(err error) Kind {
	var cfgErr *ConfigurationError
	if errors.As(err, &cfgErr) {
		return KindConfiguration
	}
	var netErr *NetworkError
	if errors.As(err, &netErr) {
		return KindNetwork
	}
	return KindUnexpected
}

// AsNetwork returns the NetworkError inside err, if any.
func AsNetwork(err error) (*NetworkError, bool) {
	var netErr *NetworkError
	if errors.As(err, &netErr) {
		return netErr, true
	}
	return nil, false
}

// Classify returns err unchanged when it already carries a known kind and
// wraps it in an UnexpectedError otherwise.
func Classify(err error) error {
	if err == nil {
		return nil
	}
	if KindOf(err) != KindUnexpected {
		return err
	}
	var unexpected *UnexpectedError
	if errors.As(err, &unexpected) {
		return err
	}
	return &UnexpectedError{Err: err}
}

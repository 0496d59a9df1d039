package moodswing

import "fmt"

// FeedError is the base error type for the moodswing client.
type FeedError struct {
	Message string
	Cause   error
}

func (e *FeedError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *FeedError) Unwrap() error {
	return e.Cause
}

// FetchError indicates a transport failure or a non-success HTTP status.
type FetchError struct{ FeedError }

// ParseError indicates a response body that could not be decoded.
type ParseError struct{ FeedError }

// ConfigError indicates an invalid ticker or stream interval.
type ConfigError struct{ FeedError }

func NewFetchError(message string, cause error) *FetchError {
	return &FetchError{FeedError{Message: message, Cause: cause}}
}

func NewParseError(message string, cause error) *ParseError {
	return &ParseError{FeedError{Message: message, Cause: cause}}
}

func NewConfigError(message string, cause error) *ConfigError {
	return &ConfigError{FeedError{Message: message, Cause: cause}}
}

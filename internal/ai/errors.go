package ai

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
)

// ConfigurationError reports a missing required setting, such as the API key.
// It is never retried.
type ConfigurationError struct {
	Setting string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("ai: missing required configuration %q", e.Setting)
}

// ServiceError is a non-success response from the completion service.
type ServiceError struct {
	StatusCode int
	Message    string
}

func (e *ServiceError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("ai service returned %d %s", e.StatusCode, http.StatusText(e.StatusCode))
	}
	return fmt.Sprintf("ai service returned %d: %s", e.StatusCode, e.Message)
}

// ResponseFormatError means the service answered but the content could not be
// read as a plan fragment.
type ResponseFormatError struct {
	Reason string
	Err    error
}

func (e *ResponseFormatError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("ai response format: %s: %v", e.Reason, e.Err)
	}
	return "ai response format: " + e.Reason
}

func (e *ResponseFormatError) Unwrap() error { return e.Err }

// IsRetriable reports whether err is transient: rate limiting, a 5xx, a
// timeout or a network failure. Format errors and other 4xx are final.
func IsRetriable(err error) bool {
	if err == nil {
		return false
	}
	var cfgErr *ConfigurationError
	var fmtErr *ResponseFormatError
	if errors.As(err, &cfgErr) || errors.As(err, &fmtErr) {
		return false
	}
	var svcErr *ServiceError
	if errors.As(err, &svcErr) {
		return svcErr.StatusCode == http.StatusTooManyRequests || svcErr.StatusCode >= 500
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr)
}

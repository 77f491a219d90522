package pkg

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
)

// ErrNoConfirmedCases is returned by ratio based styles when there is nothing to divide by.
var ErrNoConfirmedCases = errors.New("total confirmed is zero, ratio is undefined")

// ConfigurationError is returned before any network call when a required value is absent.
type ConfigurationError struct {
	Missing []string
	Reason  string
}

func (e *ConfigurationError) Error() string {
	if len(e.Missing) > 0 {
		return fmt.Sprintf("configuration: %s must be provided", strings.Join(e.Missing, ", "))
	}
	return "configuration: " + e.Reason
}

// FetchError covers transport, status and decoding failures of the stats call.
// StatusCode is 0 when no response was received.
type FetchError struct {
	StatusCode int
	Err        error
}

func (e *FetchError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("fetch global stats (status %d): %v", e.StatusCode, e.Err)
	}
	return fmt.Sprintf("fetch global stats: %v", e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

// PublishError is returned when the gist update fails. StatusCode is 0 when no response was received.
type PublishError struct {
	StatusCode int
	Err        error
}

func (e *PublishError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("Request Failed %d: %v", e.StatusCode, e.Err)
	}
	return fmt.Sprintf("Request Failed %d", e.StatusCode)
}

func (e *PublishError) Unwrap() error { return e.Err }

package modeladapter

import "fmt"

// ExecutionError reports a local failure before or after the network round
// trip: request construction, JSON encoding or decoding, or a transport
// error surfaced by the HTTP client. The API key never appears in the
// error text.
type ExecutionError struct {
	Reason string
	Err    error
}

func (e *ExecutionError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Reason, e.Err)
	}
	return e.Reason
}

func (e *ExecutionError) Unwrap() error { return e.Err }

// RequestFailedError reports a non-2xx HTTP status. Body holds the raw
// response text verbatim so vendor diagnostics reach the caller intact.
type RequestFailedError struct {
	StatusCode int
	Body       string
}

func (e *RequestFailedError) Error() string {
	return fmt.Sprintf("request failed with status %d: %s", e.StatusCode, e.Body)
}

// UsageError reports that usage extraction failed even though the main
// response parsed. It is recoverable: adapters log it at warning level and
// substitute an empty usage record instead of failing the call.
type UsageError struct {
	Reason string
}

func (e *UsageError) Error() string { return "usage: " + e.Reason }

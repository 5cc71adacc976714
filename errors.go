package formrec

import (
	"fmt"
)

// ErrInitiation is returned when the service accepted an analysis request but
// did not return a usable operation handle. It is fatal; the request is never
// retried by the client.
type ErrInitiation struct {
	Message string
}

func (e ErrInitiation) Error() string {
	return fmt.Sprintf("start analysis: %s", e.Message)
}

// ErrTransientFetch is returned when a single status check fails at the
// transport level or with a retryable service status. The poller itself is
// left intact; calling Poll again retries the check.
type ErrTransientFetch struct {
	// StatusCode is the HTTP status of the failed check, or 0 when the
	// request never produced a response.
	StatusCode int
	Err        error
}

func (e ErrTransientFetch) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("fetch analyze result: service returned %d: %s", e.StatusCode, e.Err)
	}
	return fmt.Sprintf("fetch analyze result: %s", e.Err)
}

func (e ErrTransientFetch) Unwrap() error {
	return e.Err
}

// ErrOperationFailed is returned when the remote analysis job itself reports
// failure. Code and Message carry the service-reported reason.
type ErrOperationFailed struct {
	Code    string
	Message string
}

func (e ErrOperationFailed) Error() string {
	return fmt.Sprintf("analysis failed (%s): %s", e.Code, e.Message)
}

// ErrInvalidOperation is returned on local misuse of the client, such as
// cancelling a completed poller or starting a custom-form analysis with an
// empty model ID. It is raised synchronously, before any network call.
type ErrInvalidOperation struct {
	Message string
}

func (e ErrInvalidOperation) Error() string {
	return fmt.Sprintf("invalid operation: %s", e.Message)
}

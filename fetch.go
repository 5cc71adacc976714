package formrec

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"
)

// fetchOutcome is the decoded result of one status check.
type fetchOutcome struct {
	status     OperationStatus
	retryAfter time.Duration
	payload    *analyzeResultWire
	failure    *ErrOperationFailed
}

// fetchResult retrieves the current state of an analysis operation. The kind
// and modelID always come from the calling poller, fresh or resumed, never
// from cached transport state. Transport failures and retryable service
// statuses are reported as ErrTransientFetch; the caller decides whether to
// poll again.
func (c *Client) fetchResult(ctx context.Context, kind operationKind, modelID, resultID string) (*fetchOutcome, error) {
	resp, err := c.do(ctx, http.MethodGet, resultPath(kind, modelID, resultID), "", nil)
	if err != nil {
		return nil, ErrTransientFetch{Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		drain(resp)
		return nil, ErrTransientFetch{
			StatusCode: resp.StatusCode,
			Err:        errors.New(http.StatusText(resp.StatusCode)),
		}
	}

	var wire analyzeResponse
	if err := json.NewDecoder(resp.Body).Decode(&wire); err != nil {
		return nil, ErrTransientFetch{StatusCode: resp.StatusCode, Err: fmt.Errorf("decode response: %w", err)}
	}
	status, ok := wireStatuses[wire.Status]
	if !ok {
		return nil, ErrTransientFetch{
			StatusCode: resp.StatusCode,
			Err:        fmt.Errorf("unrecognized operation status %q", wire.Status),
		}
	}

	outcome := &fetchOutcome{
		status:     status,
		retryAfter: parseRetryAfter(resp.Header),
		payload:    wire.AnalyzeResult,
	}
	if status == StatusFailed {
		outcome.failure = &ErrOperationFailed{Code: "Unknown", Message: "the service reported failure without details"}
		if wire.Error != nil {
			outcome.failure = &ErrOperationFailed{Code: wire.Error.Code, Message: wire.Error.Message}
		}
	}
	return outcome, nil
}

// parseRetryAfter reads the service's suggested delay in seconds, returning
// zero when absent or unparseable.
func parseRetryAfter(header http.Header) time.Duration {
	value := header.Get("Retry-After")
	if value == "" {
		return 0
	}
	seconds, err := strconv.Atoi(value)
	if err != nil || seconds < 0 {
		return 0
	}
	return time.Duration(seconds) * time.Second
}

// resultPath is the GET path for an operation's analyzeResults resource.
func resultPath(kind operationKind, modelID, resultID string) string {
	if kind == kindCustomForm {
		return "/models/" + modelID + "/analyzeResults/" + resultID
	}
	return "/" + string(kind) + "/analyzeResults/" + resultID
}

// initiatePath is the POST path that starts an analysis of the given kind.
func initiatePath(kind operationKind, modelID string) string {
	if kind == kindCustomForm {
		return "/models/" + modelID + "/analyze"
	}
	return "/" + string(kind) + "/analyze"
}

package formrec

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/gob"
	"fmt"
	"sync"
	"time"
)

// OperationStatus is the lifecycle state of an analysis operation.
type OperationStatus string

const (
	// StatusNotStarted indicates the service accepted the document but has
	// not reported a status yet.
	StatusNotStarted OperationStatus = "notStarted"
	// StatusRunning indicates the analysis is in progress.
	StatusRunning OperationStatus = "running"
	// StatusSucceeded is terminal; the result payload is available.
	StatusSucceeded OperationStatus = "succeeded"
	// StatusFailed is terminal; the service reported a failure reason.
	StatusFailed OperationStatus = "failed"
	// StatusCanceled is terminal and client-side only: local polling was
	// abandoned while the remote job runs to completion on its own.
	StatusCanceled OperationStatus = "canceled"
)

// Terminal reports whether no further transitions can leave the status.
func (s OperationStatus) Terminal() bool {
	return s == StatusSucceeded || s == StatusFailed || s == StatusCanceled
}

var wireStatuses = map[string]OperationStatus{
	"notStarted": StatusNotStarted,
	"running":    StatusRunning,
	"succeeded":  StatusSucceeded,
	"failed":     StatusFailed,
}

// PollerState is a read-only snapshot handed to progress callbacks.
type PollerState struct {
	Status   OperationStatus
	ResultID string
	// RetryAfter is the delay the service suggested before the next check,
	// or zero when it suggested none.
	RetryAfter time.Duration
}

// operationKind selects the analyzeResults family an operation belongs to.
type operationKind string

const (
	kindReceipts   operationKind = "receipts"
	kindLayout     operationKind = "layout"
	kindCustomForm operationKind = "custom"
)

/*
Poller drives a single long-running analysis operation to completion.

A Poller owns its operation state exclusively: status checks are strictly
sequential, and two fetches for the same operation never overlap. Poll and
PollUntilDone may be called from one goroutine while Cancel is called from
another; cancellation is cooperative and takes effect at the next scheduled
check, never pre-empting one already in flight.
*/
type Poller[T any] struct {
	client     *Client
	kind       operationKind
	modelID    string
	resultID   string
	transform  func(*analyzeResultWire) T
	onProgress func(PollerState)
	interval   time.Duration

	mu         sync.Mutex
	status     OperationStatus
	retryAfter time.Duration
	payload    *analyzeResultWire
	failure    *ErrOperationFailed
	result     T
	resolved   bool
	inFlight   bool
}

// Status returns the last observed operation status.
func (p *Poller[T]) Status() OperationStatus {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.status
}

// Done reports whether the operation has reached a terminal status.
func (p *Poller[T]) Done() bool {
	return p.Status().Terminal()
}

// ResultID returns the operation handle the poller is tracking.
func (p *Poller[T]) ResultID() string {
	return p.resultID
}

/*
Poll performs at most one fetch-and-update cycle.

Once the poller is terminal, Poll is a no-op and returns nil. A transient
fetch failure is returned as [ErrTransientFetch] and leaves the poller
intact; calling Poll again retries the check. On an observed status change
the progress callback, if any, is invoked synchronously before Poll returns.
*/
func (p *Poller[T]) Poll(ctx context.Context) error {
	p.mu.Lock()
	if p.terminalLocked() {
		p.mu.Unlock()
		return nil
	}
	if p.inFlight {
		p.mu.Unlock()
		return ErrInvalidOperation{Message: "a status check is already in flight for this operation"}
	}
	p.inFlight = true
	prev := p.status
	p.mu.Unlock()
	defer func() {
		p.mu.Lock()
		p.inFlight = false
		p.mu.Unlock()
	}()

	outcome, err := p.client.fetchResult(ctx, p.kind, p.modelID, p.resultID)
	if err != nil {
		return err
	}

	p.mu.Lock()
	if p.status == StatusCanceled {
		// Cancelled while the fetch was in flight; discard the outcome.
		p.mu.Unlock()
		return nil
	}
	p.status = outcome.status
	p.retryAfter = outcome.retryAfter
	if outcome.payload != nil {
		p.payload = outcome.payload
	}
	p.failure = outcome.failure
	state := PollerState{Status: p.status, ResultID: p.resultID, RetryAfter: p.retryAfter}
	// Notify on observed status changes only. An operation that is already
	// terminal on the very first check never had an observable intermediate
	// state, so no notification fires for it.
	notify := p.onProgress != nil &&
		outcome.status != prev &&
		!(prev == StatusNotStarted && outcome.status.Terminal())
	p.mu.Unlock()

	if notify {
		return p.notifyProgress(state)
	}
	return nil
}

// terminalLocked reports whether Poll should treat the current status as
// final. A poller resumed from a token serialized after completion has the
// terminal status but neither the result payload nor the failure reason yet;
// one more fetch hydrates whichever the operation produced.
func (p *Poller[T]) terminalLocked() bool {
	if p.status == StatusSucceeded && p.payload == nil {
		return false
	}
	if p.status == StatusFailed && p.failure == nil {
		return false
	}
	return p.status.Terminal()
}

// notifyProgress isolates observer failures: the poller state is already
// updated by the time the callback runs, so a panicking observer surfaces as
// an error from this Poll call without corrupting the state machine.
func (p *Poller[T]) notifyProgress(state PollerState) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("progress callback panicked: %v", r)
		}
	}()
	p.onProgress(state)
	return nil
}

/*
PollUntilDone polls repeatedly until the operation reaches a terminal
status, then returns the transformed result.

Between checks it waits for the service-suggested Retry-After when present,
otherwise for interval. An interval <= 0 falls back to the per-operation
update interval and then the client default. The wait is the only suspension
point and honours ctx cancellation.
*/
func (p *Poller[T]) PollUntilDone(ctx context.Context, interval time.Duration) (T, error) {
	var zero T
	for {
		if err := ctx.Err(); err != nil {
			return zero, err
		}
		if err := p.Poll(ctx); err != nil {
			return zero, err
		}
		if p.Done() {
			return p.Result()
		}

		timer := time.NewTimer(p.delay(interval))
		select {
		case <-ctx.Done():
			timer.Stop()
			return zero, ctx.Err()
		case <-timer.C:
		}
	}
}

// delay resolves the next inter-poll wait: server hint, explicit interval,
// per-operation option, client default, in that order.
func (p *Poller[T]) delay(override time.Duration) time.Duration {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.retryAfter > 0 {
		return p.retryAfter
	}
	if override > 0 {
		return override
	}
	if p.interval > 0 {
		return p.interval
	}
	return p.client.pollInterval
}

/*
Cancel abandons local polling of an operation that is still in flight.

The service exposes no cancel endpoint, so the remote job keeps running and
finishes or fails on its own; the poller simply stops observing it. Calling
Cancel on a poller that already reached a terminal status returns
[ErrInvalidOperation].
*/
func (p *Poller[T]) Cancel() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.status.Terminal() {
		return ErrInvalidOperation{Message: "cannot cancel a completed operation"}
	}
	p.status = StatusCanceled
	return nil
}

/*
Result returns the transformed outcome of a succeeded operation.

The transform runs at most once; subsequent calls return the memoized value.
A failed operation returns [ErrOperationFailed] with the service-reported
reason; a canceled or still-running operation returns [ErrInvalidOperation].
*/
func (p *Poller[T]) Result() (T, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	var zero T
	switch p.status {
	case StatusSucceeded:
	case StatusFailed:
		if p.failure != nil {
			return zero, *p.failure
		}
		return zero, ErrOperationFailed{Code: "Unknown", Message: "the service reported failure without details"}
	case StatusCanceled:
		return zero, ErrInvalidOperation{Message: "operation was canceled before completion; no result is available"}
	default:
		return zero, ErrInvalidOperation{Message: "operation is not done; no result is available yet"}
	}
	if !p.resolved {
		p.result = p.transform(p.payload)
		p.resolved = true
	}
	return p.result, nil
}

// resumeState is the plain-data snapshot a resume token encodes.
type resumeState struct {
	Kind     operationKind
	ResultID string
	ModelID  string
	Status   OperationStatus
}

/*
ResumeToken serializes the poller as an opaque string from which an
equivalent poller can be reconstructed, also across process restarts. See
ResumeReceiptPoller, ResumeLayoutPoller and ResumeCustomFormPoller.
*/
func (p *Poller[T]) ResumeToken() (string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.resultID == "" {
		return "", ErrInvalidOperation{Message: "operation has no handle to resume from"}
	}
	var buf bytes.Buffer
	err := gob.NewEncoder(&buf).Encode(resumeState{
		Kind:     p.kind,
		ResultID: p.resultID,
		ModelID:  p.modelID,
		Status:   p.status,
	})
	if err != nil {
		return "", fmt.Errorf("encode resume token: %w", err)
	}
	return base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}

func decodeResumeToken(token string) (resumeState, error) {
	var state resumeState
	data, err := base64.StdEncoding.DecodeString(token)
	if err != nil {
		return state, ErrInvalidOperation{Message: fmt.Sprintf("resume token is not valid base64: %s", err)}
	}
	if err := gob.NewDecoder(bytes.NewReader(data)).Decode(&state); err != nil {
		return state, ErrInvalidOperation{Message: fmt.Sprintf("resume token is malformed: %s", err)}
	}
	if state.ResultID == "" {
		return state, ErrInvalidOperation{Message: "resume token carries no operation handle"}
	}
	return state, nil
}

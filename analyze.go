package formrec

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.skriba.build/formrec/internal/validate"
)

type BeginOptions struct {
	// ContentType overrides content-type sniffing. Always wins when set.
	ContentType ContentType
	// OnProgress is invoked synchronously on every observed status change.
	OnProgress func(PollerState)
	// UpdateInterval overrides the client's default delay between status
	// checks for this operation only.
	UpdateInterval time.Duration
}

// BeginOption is a functional option for the Begin and Resume methods.
type BeginOption func(*BeginOptions)

// WithContentType declares the document format explicitly, skipping
// content-type sniffing.
func WithContentType(contentType ContentType) BeginOption {
	return func(opts *BeginOptions) {
		opts.ContentType = contentType
	}
}

// WithOnProgress registers a callback invoked on every observed status
// change of the operation.
func WithOnProgress(fn func(PollerState)) BeginOption {
	return func(opts *BeginOptions) {
		opts.OnProgress = fn
	}
}

// WithUpdateInterval overrides the delay between status checks for this
// operation. A Retry-After hint from the service still takes precedence.
func WithUpdateInterval(interval time.Duration) BeginOption {
	return func(opts *BeginOptions) {
		opts.UpdateInterval = interval
	}
}

/*
BeginAnalyzeReceipt submits a receipt document for analysis and returns a
Poller tracking the operation.

The document format is sniffed from its leading bytes unless the
WithContentType option is provided. The initiating request is issued
synchronously; a service response without a usable operation handle fails
with [ErrInitiation] before any status check happens.
*/
func (c *Client) BeginAnalyzeReceipt(ctx context.Context, document io.Reader, opts ...BeginOption) (*Poller[AnalyzeResult], error) {
	return c.beginDocument(ctx, kindReceipts, "", document, opts)
}

// BeginAnalyzeReceiptFromURL submits a receipt for analysis by URL. The
// service fetches the URL itself; no content-type sniffing happens locally.
func (c *Client) BeginAnalyzeReceiptFromURL(ctx context.Context, documentURL string, opts ...BeginOption) (*Poller[AnalyzeResult], error) {
	return c.beginURL(ctx, kindReceipts, "", documentURL, opts)
}

// BeginAnalyzeLayout submits a document for layout analysis (text and
// tables). See BeginAnalyzeReceipt for the common Begin semantics.
func (c *Client) BeginAnalyzeLayout(ctx context.Context, document io.Reader, opts ...BeginOption) (*Poller[AnalyzeResult], error) {
	return c.beginDocument(ctx, kindLayout, "", document, opts)
}

// BeginAnalyzeLayoutFromURL submits a document for layout analysis by URL.
func (c *Client) BeginAnalyzeLayoutFromURL(ctx context.Context, documentURL string, opts ...BeginOption) (*Poller[AnalyzeResult], error) {
	return c.beginURL(ctx, kindLayout, "", documentURL, opts)
}

/*
BeginAnalyzeCustomForm submits a document for analysis with a custom-trained
model. The modelID must be the uuid of a trained model; it is validated
synchronously and an invalid value fails with [ErrInvalidOperation] before
any network call. The modelID travels with the poller, including through
resume tokens, since every status check needs it.
*/
func (c *Client) BeginAnalyzeCustomForm(ctx context.Context, modelID string, document io.Reader, opts ...BeginOption) (*Poller[AnalyzeResult], error) {
	if err := validateModelID(modelID); err != nil {
		return nil, err
	}
	return c.beginDocument(ctx, kindCustomForm, modelID, document, opts)
}

// BeginAnalyzeCustomFormFromURL submits a document for custom-form analysis
// by URL. See BeginAnalyzeCustomForm for modelID semantics.
func (c *Client) BeginAnalyzeCustomFormFromURL(ctx context.Context, modelID string, documentURL string, opts ...BeginOption) (*Poller[AnalyzeResult], error) {
	if err := validateModelID(modelID); err != nil {
		return nil, err
	}
	return c.beginURL(ctx, kindCustomForm, modelID, documentURL, opts)
}

// ResumeReceiptPoller reconstructs a receipt-analysis poller from a resume
// token, skipping initiation and continuing from the persisted status.
func ResumeReceiptPoller(client *Client, token string, opts ...BeginOption) (*Poller[AnalyzeResult], error) {
	return resumePoller(client, token, kindReceipts, opts)
}

// ResumeLayoutPoller reconstructs a layout-analysis poller from a resume
// token.
func ResumeLayoutPoller(client *Client, token string, opts ...BeginOption) (*Poller[AnalyzeResult], error) {
	return resumePoller(client, token, kindLayout, opts)
}

// ResumeCustomFormPoller reconstructs a custom-form poller from a resume
// token. The model ID is carried by the token itself, so the resumed poller
// fetches with the same identifier the original used.
func ResumeCustomFormPoller(client *Client, token string, opts ...BeginOption) (*Poller[AnalyzeResult], error) {
	return resumePoller(client, token, kindCustomForm, opts)
}

func validateModelID(modelID string) error {
	if err := validate.NotEmpty("modelId", modelID); err != nil {
		return ErrInvalidOperation{Message: err.Error()}
	}
	if err := validate.Argument("modelId", modelID, validate.ModelIDRegex); err != nil {
		return ErrInvalidOperation{Message: err.Error()}
	}
	return nil
}

func applyBeginOptions(opts []BeginOption) *BeginOptions {
	options := &BeginOptions{}
	for _, opt := range opts {
		opt(options)
	}
	return options
}

func (c *Client) beginDocument(ctx context.Context, kind operationKind, modelID string, document io.Reader, opts []BeginOption) (*Poller[AnalyzeResult], error) {
	options := applyBeginOptions(opts)
	if document == nil {
		return nil, ErrInvalidOperation{Message: "document is required but not provided"}
	}
	data, err := io.ReadAll(document)
	if err != nil {
		return nil, fmt.Errorf("read document: %w", err)
	}
	contentType, err := resolveContentType(options.ContentType, data)
	if err != nil {
		return nil, err
	}

	resultID, err := c.startAnalysis(ctx, kind, modelID, string(contentType), bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	return c.newPoller(kind, modelID, resultID, StatusNotStarted, options), nil
}

func (c *Client) beginURL(ctx context.Context, kind operationKind, modelID string, documentURL string, opts []BeginOption) (*Poller[AnalyzeResult], error) {
	options := applyBeginOptions(opts)
	if err := validate.NotEmpty("documentUrl", documentURL); err != nil {
		return nil, ErrInvalidOperation{Message: err.Error()}
	}
	body, err := json.Marshal(map[string]string{"source": documentURL})
	if err != nil {
		return nil, err
	}

	resultID, err := c.startAnalysis(ctx, kind, modelID, "application/json", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	return c.newPoller(kind, modelID, resultID, StatusNotStarted, options), nil
}

func resumePoller(client *Client, token string, kind operationKind, opts []BeginOption) (*Poller[AnalyzeResult], error) {
	options := applyBeginOptions(opts)
	state, err := decodeResumeToken(token)
	if err != nil {
		return nil, err
	}
	if state.Kind != kind {
		return nil, ErrInvalidOperation{
			Message: fmt.Sprintf("resume token is for a %s operation, not %s", state.Kind, kind),
		}
	}
	if kind == kindCustomForm {
		if err := validateModelID(state.ModelID); err != nil {
			return nil, err
		}
	}
	return client.newPoller(state.Kind, state.ModelID, state.ResultID, state.Status, options), nil
}

func (c *Client) newPoller(kind operationKind, modelID, resultID string, status OperationStatus, options *BeginOptions) *Poller[AnalyzeResult] {
	return &Poller[AnalyzeResult]{
		client:     c,
		kind:       kind,
		modelID:    modelID,
		resultID:   resultID,
		transform:  toAnalyzeResult,
		onProgress: options.OnProgress,
		interval:   options.UpdateInterval,
		status:     status,
	}
}

// startAnalysis issues the initiating request and extracts the operation
// handle from the Operation-Location header, keeping only the substring
// after the final separator. A missing or empty handle is fatal and never
// retried.
func (c *Client) startAnalysis(ctx context.Context, kind operationKind, modelID string, contentType string, body io.Reader) (string, error) {
	resp, err := c.do(ctx, http.MethodPost, initiatePath(kind, modelID), contentType, body)
	if err != nil {
		return "", fmt.Errorf("start analysis: %w", err)
	}
	defer drain(resp)

	if resp.StatusCode != http.StatusAccepted {
		return "", ErrInitiation{Message: fmt.Sprintf("service returned %d, expected 202", resp.StatusCode)}
	}
	location := resp.Header.Get("Operation-Location")
	if location == "" {
		return "", ErrInitiation{Message: "response is missing the Operation-Location header"}
	}
	resultID := location[strings.LastIndex(location, "/")+1:]
	if resultID == "" {
		return "", ErrInitiation{Message: fmt.Sprintf("operation location (%s) does not contain a result id", location)}
	}
	return resultID, nil
}

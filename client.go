package formrec

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sony/gobreaker"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
	"go.uber.org/zap"
)

// apiVersion is the service API version this client speaks.
const apiVersion = "v2"

// defaultPollInterval is the delay between status checks when neither the
// caller nor the service suggested one.
const defaultPollInterval = 5 * time.Second

// requestIDHeader correlates client requests with service-side logs.
const requestIDHeader = "x-client-request-id"

type ClientOptions struct {
	HTTPClient      *http.Client
	Logger          *zap.Logger
	Tracer          trace.Tracer
	PollInterval    time.Duration
	BreakerSettings *gobreaker.Settings
}

// ClientOption is a functional option for the NewClient method.
type ClientOption func(*ClientOptions)

// WithHTTPClient overrides the underlying HTTP client. Timeout behaviour is
// owned by this client; the poller itself imposes no deadline of its own.
func WithHTTPClient(httpClient *http.Client) ClientOption {
	return func(opts *ClientOptions) {
		opts.HTTPClient = httpClient
	}
}

// WithLogger sets the logger used for request/response logging. By default
// the client does not log.
func WithLogger(logger *zap.Logger) ClientOption {
	return func(opts *ClientOptions) {
		opts.Logger = logger
	}
}

// WithTracer sets the tracer used to create a span around every outgoing
// request. By default spans are no-ops.
func WithTracer(tracer trace.Tracer) ClientOption {
	return func(opts *ClientOptions) {
		opts.Tracer = tracer
	}
}

// WithPollInterval sets the default delay between status checks. A
// Retry-After hint from the service still takes precedence.
func WithPollInterval(interval time.Duration) ClientOption {
	return func(opts *ClientOptions) {
		opts.PollInterval = interval
	}
}

// WithCircuitBreaker wraps the transport in a circuit breaker with the
// provided settings.
func WithCircuitBreaker(settings gobreaker.Settings) ClientOption {
	return func(opts *ClientOptions) {
		opts.BreakerSettings = &settings
	}
}

// Client is a client for the Skriba Forms document-analysis API. A single
// Client is safe for concurrent use and is typically created once per
// process.
type Client struct {
	endpoint     string
	credential   Credential
	httpClient   *http.Client
	logger       *zap.Logger
	tracer       trace.Tracer
	pollInterval time.Duration
	breaker      *gobreaker.CircuitBreaker
}

/*
NewClient creates a new Forms API client.
  - endpoint is the base service URL, for example: `https://eu1.api.skriba.build`
  - cred authorises requests; see [NewKeyCredential] and [NewTokenCredential]

Multiple ClientOption functions can be provided to customise the client,
for example: WithLogger(logger), WithPollInterval(2*time.Second)
*/
func NewClient(endpoint string, cred Credential, opts ...ClientOption) (*Client, error) {
	if cred == nil {
		return nil, ErrInvalidOperation{Message: "credential is required but not provided"}
	}
	u, err := url.Parse(endpoint)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, ErrInvalidOperation{Message: fmt.Sprintf("endpoint (%s) is not a valid base URL", endpoint)}
	}

	// Configure the default options
	options := &ClientOptions{
		HTTPClient:   http.DefaultClient,
		Logger:       zap.NewNop(),
		Tracer:       noop.NewTracerProvider().Tracer("go.skriba.build/formrec"),
		PollInterval: defaultPollInterval,
	}
	// Add the user provided overrides.
	for _, opt := range opts {
		opt(options)
	}
	if options.PollInterval <= 0 {
		options.PollInterval = defaultPollInterval
	}

	client := &Client{
		endpoint:     strings.TrimSuffix(u.String(), "/"),
		credential:   cred,
		httpClient:   options.HTTPClient,
		logger:       options.Logger,
		tracer:       options.Tracer,
		pollInterval: options.PollInterval,
	}
	if options.BreakerSettings != nil {
		client.breaker = gobreaker.NewCircuitBreaker(*options.BreakerSettings)
	}
	return client, nil
}

// do sends a single request through the client's policy pipeline: request-id
// injection, authorisation, tracing, optional circuit breaking, transport.
// The caller owns the response body.
func (c *Client) do(ctx context.Context, method, path string, contentType string, body io.Reader) (*http.Response, error) {
	ctx, span := c.tracer.Start(ctx, "formrec."+method+" "+path,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("http.request.method", method),
			attribute.String("url.path", path),
		))
	defer span.End()

	req, err := http.NewRequestWithContext(ctx, method, c.endpoint+"/"+apiVersion+path, body)
	if err != nil {
		return nil, err
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	requestID := uuid.NewString()
	req.Header.Set(requestIDHeader, requestID)

	if err := c.credential.Authorize(ctx, req); err != nil {
		return nil, fmt.Errorf("authorize request: %w", err)
	}

	c.logger.Debug("sending request",
		zap.String("method", method),
		zap.String("path", path),
		zap.String("requestId", requestID))

	resp, err := c.send(req)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	span.SetAttributes(attribute.Int("http.response.status_code", resp.StatusCode))
	if resp.StatusCode >= 400 {
		c.logger.Warn("service returned error status",
			zap.String("method", method),
			zap.String("path", path),
			zap.String("requestId", requestID),
			zap.Int("status", resp.StatusCode))
	}
	return resp, nil
}

func (c *Client) send(req *http.Request) (*http.Response, error) {
	if c.breaker == nil {
		return c.httpClient.Do(req)
	}
	resp, err := c.breaker.Execute(func() (interface{}, error) {
		return c.httpClient.Do(req)
	})
	if err != nil {
		return nil, err
	}
	return resp.(*http.Response), nil
}

// drain releases a response body so the underlying connection can be reused.
func drain(resp *http.Response) {
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
	_ = resp.Body.Close()
}

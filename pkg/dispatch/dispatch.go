// Package dispatch consumes action descriptors produced by package mdmapi:
// it performs the described HTTP request and raises the descriptor's triad
// identifiers as Action events.
//
// Every dispatch runs one lifecycle: the REQUEST identifier is emitted when
// the request goes out, then exactly one of SUCCESS (decoded response
// document) or FAILURE (network error, non-success status, or decode error)
// is emitted. Terminal states are absorbing; retrying means dispatching the
// descriptor again, which starts a fresh lifecycle. Subscribed handlers see
// every emitted action, in order, on the dispatching goroutine.
package dispatch

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/hashicorp/go-retryablehttp"

	"github.com/cmdmnt/mdm-client/internal/auth"
	"github.com/cmdmnt/mdm-client/pkg/mdmapi"
)

// Static errors for misuse of the dispatcher itself. Transport and decode
// failures are not errors in this sense; they come back as FAILURE actions.
var (
	ErrNilDescriptor = errors.New("nil descriptor")
)

const (
	defaultRetryMax     = 3
	defaultRetryWaitMax = 10 * time.Second
	defaultUserAgent    = "mdm-client/1.0"
)

// Action is one emitted lifecycle event. Payload carries the raw response
// document for SUCCESS (and the error body, if any, for FAILURE); Err is set
// only on FAILURE. DispatchID correlates the three events of one dispatch.
type Action struct {
	Type       mdmapi.ActionType
	Types      mdmapi.Triad
	DispatchID uuid.UUID
	StatusCode int
	Payload    json.RawMessage
	Err        error
}

// Handler receives every action the dispatcher emits.
type Handler func(ctx context.Context, action Action)

// Dispatcher performs HTTP requests described by descriptors. It holds no
// per-operation state; concurrent dispatches only share the underlying HTTP
// client and the handler list, so they need no coordination beyond Subscribe
// being called before dispatching starts.
type Dispatcher struct {
	baseURL   string
	client    *retryablehttp.Client
	tokens    auth.TokenManager
	logger    mdmapi.Logger
	userAgent string
	handlers  []Handler
}

// Option configures a Dispatcher.
type Option func(*Dispatcher)

// WithTokenManager attaches bearer tokens from m to every request.
func WithTokenManager(m auth.TokenManager) Option {
	return func(d *Dispatcher) { d.tokens = m }
}

// WithLogger sets the structured logger.
func WithLogger(logger mdmapi.Logger) Option {
	return func(d *Dispatcher) { d.logger = logger }
}

// WithUserAgent overrides the default User-Agent header.
func WithUserAgent(ua string) Option {
	return func(d *Dispatcher) { d.userAgent = ua }
}

// WithRetryMax caps transport-level retries for transient failures.
func WithRetryMax(retries int) Option {
	return func(d *Dispatcher) { d.client.RetryMax = retries }
}

// WithHTTPClient replaces the underlying standard HTTP client, e.g. for
// custom TLS configuration.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(d *Dispatcher) { d.client.HTTPClient = httpClient }
}

// New creates a dispatcher for the API at baseURL.
func New(baseURL string, opts ...Option) *Dispatcher {
	retryClient := retryablehttp.NewClient()
	retryClient.RetryMax = defaultRetryMax
	retryClient.RetryWaitMax = defaultRetryWaitMax
	retryClient.Logger = nil

	dispatcher := &Dispatcher{
		baseURL:   strings.TrimSuffix(baseURL, "/"),
		client:    retryClient,
		userAgent: defaultUserAgent,
	}

	for _, opt := range opts {
		opt(dispatcher)
	}

	return dispatcher
}

// Subscribe registers a handler for all subsequently dispatched actions.
func (d *Dispatcher) Subscribe(h Handler) {
	d.handlers = append(d.handlers, h)
}

// Dispatch performs the operation desc describes and returns the terminal
// action. The returned error reports misuse only (nil descriptor); transport,
// HTTP, and decode failures arrive as the FAILURE action, with Err set.
func (d *Dispatcher) Dispatch(ctx context.Context, desc *mdmapi.Descriptor) (Action, error) {
	return d.dispatch(ctx, desc, nil)
}

// decodeFunc validates and captures a success response body. A non-nil error
// turns the dispatch outcome into FAILURE.
type decodeFunc func(body []byte) error

func (d *Dispatcher) dispatch(ctx context.Context, desc *mdmapi.Descriptor, decode decodeFunc) (Action, error) {
	if desc == nil {
		return Action{}, ErrNilDescriptor
	}

	dispatchID := uuid.New()

	d.emit(ctx, Action{
		Type:       desc.Types.Request,
		Types:      desc.Types,
		DispatchID: dispatchID,
	})

	resp, err := d.do(ctx, desc)
	if err != nil {
		return d.fail(ctx, desc, dispatchID, 0, nil, err), nil
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return d.fail(ctx, desc, dispatchID, resp.StatusCode, nil, fmt.Errorf("reading response body: %w", err)), nil
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		respErr := mdmapi.ParseResponseError(body, resp.StatusCode)

		return d.fail(ctx, desc, dispatchID, resp.StatusCode, body, respErr), nil
	}

	if decode != nil {
		err = decode(body)
		if err != nil {
			return d.fail(ctx, desc, dispatchID, resp.StatusCode, body, err), nil
		}
	}

	final := Action{
		Type:       desc.Types.Success,
		Types:      desc.Types,
		DispatchID: dispatchID,
		StatusCode: resp.StatusCode,
		Payload:    body,
	}
	d.emit(ctx, final)

	return final, nil
}

func (d *Dispatcher) do(ctx context.Context, desc *mdmapi.Descriptor) (*http.Response, error) {
	var body io.Reader
	if desc.Body != nil {
		body = bytes.NewReader(desc.Body)
	}

	req, err := retryablehttp.NewRequestWithContext(ctx, desc.Method, d.baseURL+desc.Endpoint, body)
	if err != nil {
		return nil, fmt.Errorf("building request: %w", err)
	}

	for key, values := range desc.Headers {
		req.Header[key] = append([]string(nil), values...)
	}

	req.Header.Set("User-Agent", d.userAgent)

	if d.tokens != nil {
		token, err := d.tokens.GetToken(ctx)
		if err != nil {
			return nil, fmt.Errorf("getting token: %w", err)
		}

		if token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	resp, err := d.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", desc.Method, desc.Endpoint, err)
	}

	return resp, nil
}

func (d *Dispatcher) fail(ctx context.Context, desc *mdmapi.Descriptor, dispatchID uuid.UUID, status int, body []byte, err error) Action {
	final := Action{
		Type:       desc.Types.Failure,
		Types:      desc.Types,
		DispatchID: dispatchID,
		StatusCode: status,
		Payload:    body,
		Err:        err,
	}
	d.emit(ctx, final)

	return final
}

func (d *Dispatcher) emit(ctx context.Context, action Action) {
	if d.logger != nil {
		fields := map[string]interface{}{
			"action":      string(action.Type),
			"dispatch_id": action.DispatchID.String(),
		}
		if action.StatusCode != 0 {
			fields["status_code"] = action.StatusCode
		}

		if action.Err != nil {
			fields["error"] = action.Err.Error()
			d.logger.Error("action", fields)
		} else {
			d.logger.Debug("action", fields)
		}
	}

	for _, h := range d.handlers {
		h(ctx, action)
	}
}

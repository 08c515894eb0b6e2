// Package collaborator talks to the storefront's backend collaborators over
// HTTP: the product catalog, the order management system and the process
// orchestrator that starts order fulfillment.
package collaborator

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

	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/sony/gobreaker/v2"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.uber.org/zap"
)

const (
	DefaultBaseURL = "http://localhost:9090"

	productsPath     = "/esb/api/products"
	ordersPath       = "/esb/api/oms/orders"
	startProcessPath = "/camunda/engine-rest/process-definition/key/order_delivery/start"

	maxResponseBodySize = 10 << 20 // 10MB
)

type response struct {
	status int
	body   []byte
}

func (r response) ok() bool {
	return r.status >= 200 && r.status < 300
}

type Client struct {
	baseURL    string
	httpClient *http.Client
	breaker    *gobreaker.CircuitBreaker[response]
	log        *zap.Logger
}

type Option func(*Client)

// WithHTTPClient replaces the default client. Its transport is used as is.
func WithHTTPClient(c *http.Client) Option {
	return func(cl *Client) { cl.httpClient = c }
}

func WithLogger(l *zap.Logger) Option {
	return func(cl *Client) { cl.log = l }
}

// WithBreaker overrides the circuit breaker settings.
func WithBreaker(st gobreaker.Settings) Option {
	return func(cl *Client) { cl.breaker = newBreaker(st, cl) }
}

func NewClient(baseURL string, timeout time.Duration, opts ...Option) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout:   timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
		log: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.breaker == nil {
		c.breaker = newBreaker(DefaultBreakerSettings(), c)
	}
	return c
}

// DefaultBreakerSettings opens the breaker after five consecutive network
// failures and probes again after 30 seconds. Calls are never retried.
func DefaultBreakerSettings() gobreaker.Settings {
	return gobreaker.Settings{
		Name:        "collaborators",
		MaxRequests: 1,
		Interval:    time.Minute,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
	}
}

func newBreaker(st gobreaker.Settings, c *Client) *gobreaker.CircuitBreaker[response] {
	// application failures mean the collaborator is up
	st.IsSuccessful = func(err error) bool {
		var done callerDone
		if errors.As(err, &done) {
			return true
		}
		return err == nil || !errors.Is(err, ErrNetwork)
	}
	next := st.OnStateChange
	st.OnStateChange = func(name string, from, to gobreaker.State) {
		c.log.Warn("circuit breaker state changed",
			zap.String("breaker", name),
			zap.String("from", from.String()),
			zap.String("to", to.String()))
		if next != nil {
			next(name, from, to)
		}
	}
	return gobreaker.NewCircuitBreaker[response](st)
}

func (c *Client) do(ctx context.Context, op, method, path string, body []byte) (response, error) {
	res, err := c.breaker.Execute(func() (response, error) {
		res, err := c.roundTrip(ctx, op, method, path, body)
		if err != nil && ctx.Err() != nil {
			return res, callerDone{err}
		}
		return res, err
	})
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return response{}, networkError(op, err)
	}
	if done, ok := err.(callerDone); ok {
		err = done.error
	}
	return res, err
}

// callerDone marks a failure caused by the caller's own context ending. It
// says nothing about the collaborator's health.
type callerDone struct{ error }

func (e callerDone) Unwrap() error { return e.error }

func (c *Client) roundTrip(ctx context.Context, op, method, path string, body []byte) (response, error) {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return response{}, fmt.Errorf("%s: build request: %w", op, err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("X-Request-ID", requestID(ctx))

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log.Warn("collaborator call failed",
			zap.String("op", op), zap.Duration("duration", time.Since(start)), zap.Error(err))
		return response{}, networkError(op, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBodySize))
	if err != nil {
		return response{}, networkError(op, fmt.Errorf("read body: %w", err))
	}
	c.log.Debug("collaborator call",
		zap.String("op", op),
		zap.Int("status", resp.StatusCode),
		zap.Duration("duration", time.Since(start)))
	return response{status: resp.StatusCode, body: data}, nil
}

func requestID(ctx context.Context) string {
	if id := middleware.GetReqID(ctx); id != "" {
		return id
	}
	return uuid.NewString()
}

// encodeJSON marshals v compactly, without HTML escaping and without a
// trailing newline.
func encodeJSON(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}

func isBlank(body []byte) bool {
	return len(bytes.TrimSpace(body)) == 0
}

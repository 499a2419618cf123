package httpclient

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/go-resty/resty/v2"
	"golang.org/x/time/rate"

	"talk-corpus/pkg/logger"
)

// ClientType represents the type of HTTP client configuration
type ClientType string

const (
	// BrowserClient uses browser-like headers to avoid 406 (Not Acceptable) errors
	BrowserClient ClientType = "browser"

	// CloudflareClient uses simple headers (like curl) to avoid 403 (Forbidden) errors
	// from Cloudflare-protected sites that block browser-like User-Agents
	CloudflareClient ClientType = "cloudflare"
)

var (
	// ErrTransient marks failures worth retrying later: transport errors,
	// 429 and 5xx responses that outlived the client's own retries.
	ErrTransient = errors.New("transient HTTP failure")
	ErrEmptyURL  = errors.New("request URL is empty")
)

// StatusError is returned for any non-200 response.
type StatusError struct {
	URL        string
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected status code %d for %s", e.StatusCode, e.URL)
}

// Is lets errors.Is(err, ErrTransient) match rate-limit and server errors.
func (e *StatusError) Is(target error) bool {
	return target == ErrTransient && isTransientStatus(e.StatusCode)
}

// IsNotFound reports whether err is a 404 StatusError.
func IsNotFound(err error) bool {
	var se *StatusError
	return errors.As(err, &se) && se.StatusCode == http.StatusNotFound
}

func isTransientStatus(code int) bool {
	return code == http.StatusTooManyRequests || code >= http.StatusInternalServerError
}

// Options tunes timeouts, retries and the per-host request budget.
type Options struct {
	Timeout      time.Duration
	RetryCount   int
	RetryWait    time.Duration
	RetryMaxWait time.Duration
	// RequestsPerSecond is the per-host budget; 0 disables it.
	RequestsPerSecond float64
	Burst             int
	Logger            *logger.Logger
}

// DefaultOptions matches config.Default().
func DefaultOptions() Options {
	return Options{
		Timeout:           30 * time.Second,
		RetryCount:        3,
		RetryWait:         5 * time.Second,
		RetryMaxWait:      2 * time.Minute,
		RequestsPerSecond: 0.5,
		Burst:             1,
	}
}

// HTTPClient wraps a resty client with header profiles, retry on
// 429/5xx with jittered exponential backoff, and a per-host budget.
type HTTPClient struct {
	client     *resty.Client
	clientType ClientType
	budget     *hostBudget
	log        *logger.Logger
}

// NewClient creates a new HTTP client with the specified type
func NewClient(clientType ClientType, opts Options) *HTTPClient {
	log := opts.Logger
	if log == nil {
		log = logger.Nop()
	}
	log = log.Component("httpclient")

	c := &HTTPClient{
		client:     resty.New(),
		clientType: clientType,
		budget:     newHostBudget(opts.RequestsPerSecond, opts.Burst),
		log:        log,
	}

	c.client.
		SetLogger(log.SugaredLogger).
		SetRedirectPolicy(resty.FlexibleRedirectPolicy(10)).
		SetRetryCount(opts.RetryCount).
		SetRetryWaitTime(opts.RetryWait).
		SetRetryMaxWaitTime(opts.RetryMaxWait).
		AddRetryCondition(func(resp *resty.Response, err error) bool {
			if err != nil {
				return true
			}
			return resp != nil && isTransientStatus(resp.StatusCode())
		}).
		AddRetryHook(func(resp *resty.Response, err error) {
			status := 0
			if resp != nil {
				status = resp.StatusCode()
			}
			c.log.Warn("retrying request", "url", requestURL(resp), "status", status, "err", err)
		}).
		OnBeforeRequest(func(_ *resty.Client, req *resty.Request) error {
			c.setHeaders(req)
			return c.budget.wait(req.Context(), req.URL)
		})

	if opts.Timeout > 0 {
		c.client.SetTimeout(opts.Timeout)
	}

	return c
}

func requestURL(resp *resty.Response) string {
	if resp == nil || resp.Request == nil {
		return ""
	}
	return resp.Request.URL
}

// Get fetches rawURL with the optional query parameters and returns the body
// of a 200 response.
func (c *HTTPClient) Get(ctx context.Context, rawURL string, query map[string]string) ([]byte, error) {
	if rawURL == "" {
		return nil, ErrEmptyURL
	}

	req := c.client.R().SetContext(ctx)
	if len(query) > 0 {
		req.SetQueryParams(query)
	}

	resp, err := req.Get(rawURL)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		return nil, fmt.Errorf("%w: get %s: %w", ErrTransient, rawURL, err)
	}

	if resp.StatusCode() != http.StatusOK {
		return nil, &StatusError{URL: rawURL, StatusCode: resp.StatusCode()}
	}

	return resp.Body(), nil
}

// setHeaders sets the appropriate headers based on client type
func (c *HTTPClient) setHeaders(req *resty.Request) {
	switch c.clientType {
	case BrowserClient:
		req.SetHeader("User-Agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36")
		req.SetHeader("Accept", "text/html,application/xhtml+xml,application/xml,application/json;q=0.9,*/*;q=0.8")
		req.SetHeader("Accept-Language", "en-US,en;q=0.9")

	case CloudflareClient:
		req.SetHeader("User-Agent", "curl/8.7.1")

	default:
		// resty's default User-Agent
	}
}

// hostBudget hands out one token bucket per host.
type hostBudget struct {
	mu       sync.Mutex
	limit    rate.Limit
	burst    int
	limiters map[string]*rate.Limiter
}

func newHostBudget(rps float64, burst int) *hostBudget {
	if burst <= 0 {
		burst = 1
	}
	limit := rate.Inf
	if rps > 0 {
		limit = rate.Limit(rps)
	}
	return &hostBudget{
		limit:    limit,
		burst:    burst,
		limiters: make(map[string]*rate.Limiter),
	}
}

func (b *hostBudget) wait(ctx context.Context, rawURL string) error {
	if b.limit == rate.Inf {
		return nil
	}
	host := rawURL
	if u, err := url.Parse(rawURL); err == nil && u.Host != "" {
		host = u.Host
	}

	b.mu.Lock()
	lim, ok := b.limiters[host]
	if !ok {
		lim = rate.NewLimiter(b.limit, b.burst)
		b.limiters[host] = lim
	}
	b.mu.Unlock()

	return lim.Wait(ctx)
}

package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/zahabco/gold-dashboard/shared"
)

const (
	jsonMediaType   = "application/json"
	csrfHeaderName  = "X-CSRF-Token"
	requestIDHeader = "X-Request-ID"
)

// ClientConfig holds the tunables for the API client.
type ClientConfig struct {
	BaseURL        string
	PathPrefix     string
	Timeout        time.Duration
	RetryAttempts  int
	RetryBaseDelay time.Duration
	PollMinSpacing time.Duration
}

// Client translates logical API calls into HTTP exchanges against the
// pricing service and normalizes every outcome into a payload/error pair.
// It holds no state across calls beyond the cookie jar.
type Client struct {
	baseURL    string
	pathPrefix string
	httpClient *http.Client
	jar        http.CookieJar
	attempts   int
	baseDelay  time.Duration
	limiter    *shared.PollRateLimiter
	tokens     []TokenSource
	logger     *logrus.Logger

	// sleep is the backoff wait; replaced in tests with a fake clock.
	sleep func(time.Duration)
}

// NewClient creates an API client with connection pooling, a cookie jar so
// credentials travel with every request, and an explicit request timeout.
func NewClient(cfg ClientConfig, logger *logrus.Logger) *Client {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	if cfg.RetryAttempts <= 0 {
		cfg.RetryAttempts = 3
	}
	if cfg.RetryBaseDelay <= 0 {
		cfg.RetryBaseDelay = 1 * time.Second
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 15 * time.Second
	}

	jar, _ := cookiejar.New(nil)
	httpClient := &http.Client{
		Timeout: cfg.Timeout,
		Jar:     jar,
		Transport: &http.Transport{
			MaxIdleConns:          100,
			MaxIdleConnsPerHost:   10,
			IdleConnTimeout:       90 * time.Second,
			TLSHandshakeTimeout:   10 * time.Second,
			ResponseHeaderTimeout: cfg.Timeout,
			ExpectContinueTimeout: 1 * time.Second,
		},
	}

	client := &Client{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		pathPrefix: normalizePrefix(cfg.PathPrefix),
		httpClient: httpClient,
		jar:        jar,
		attempts:   cfg.RetryAttempts,
		baseDelay:  cfg.RetryBaseDelay,
		limiter:    shared.NewPollRateLimiter(cfg.PollMinSpacing),
		logger:     logger,
		sleep:      time.Sleep,
	}
	client.tokens = []TokenSource{
		NewCookieTokenSource(jar, client.baseURL),
		NewMetaTagTokenSource(httpClient, client.baseURL),
	}
	return client
}

func normalizePrefix(prefix string) string {
	prefix = strings.Trim(prefix, "/")
	if prefix == "" {
		return ""
	}
	return "/" + prefix
}

// BuildURL joins the base origin, the API path prefix and the endpoint with
// exactly one separating slash, regardless of how the endpoint is spelled.
func (c *Client) BuildURL(endpoint string) string {
	return c.baseURL + c.pathPrefix + "/" + strings.TrimLeft(endpoint, "/")
}

// Headers returns the standard JSON headers. When includeToken is set, the
// anti-forgery token is attached if any source can supply one; absence of a
// token is not an error.
func (c *Client) Headers(includeToken bool) http.Header {
	headers := http.Header{}
	headers.Set("Content-Type", jsonMediaType)
	headers.Set("Accept", jsonMediaType)

	if includeToken {
		if token := c.lookupToken(); token != "" {
			headers.Set(csrfHeaderName, token)
		}
	}
	return headers
}

func (c *Client) lookupToken() string {
	for _, source := range c.tokens {
		if token := source.Token(); token != "" {
			return token
		}
	}
	return ""
}

// Get issues a read without the anti-forgery token. Query parameters are
// serialized as a URL-encoded query string.
func (c *Client) Get(ctx context.Context, endpoint string, query url.Values) (json.RawMessage, error) {
	return c.do(ctx, http.MethodGet, endpoint, nil, query)
}

// Post issues a mutating request with the anti-forgery token attached.
func (c *Client) Post(ctx context.Context, endpoint string, body interface{}) (json.RawMessage, error) {
	return c.do(ctx, http.MethodPost, endpoint, body, nil)
}

// Put issues a mutating request with the anti-forgery token attached.
func (c *Client) Put(ctx context.Context, endpoint string, body interface{}) (json.RawMessage, error) {
	return c.do(ctx, http.MethodPut, endpoint, body, nil)
}

// Delete issues a mutating request with the anti-forgery token attached.
func (c *Client) Delete(ctx context.Context, endpoint string) (json.RawMessage, error) {
	return c.do(ctx, http.MethodDelete, endpoint, nil, nil)
}

func (c *Client) do(ctx context.Context, method, endpoint string, body interface{}, query url.Values) (json.RawMessage, error) {
	target := c.BuildURL(endpoint)
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encode request body: %w", err)
		}
		reader = bytes.NewReader(encoded)
	}

	request, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return nil, fmt.Errorf("build request %s %s: %w", method, endpoint, err)
	}

	// Reads never carry the anti-forgery token, mutations always ask for it.
	includeToken := method != http.MethodGet
	for key, values := range c.Headers(includeToken) {
		for _, value := range values {
			request.Header.Set(key, value)
		}
	}
	request.Header.Set(requestIDHeader, uuid.NewString())

	c.limiter.Wait()

	response, err := c.httpClient.Do(request)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", method, endpoint, err)
	}
	defer response.Body.Close()

	return handleResponse(response)
}

// handleResponse parses the body as JSON. An unparsable body yields a nil
// payload rather than an error. A non-2xx status yields an APIError carrying
// the status, the server's error code and message, and the raw payload; a
// 2xx status returns the parsed payload unchanged without unwrapping the
// success/data envelope.
func handleResponse(response *http.Response) (json.RawMessage, error) {
	var payload json.RawMessage
	raw, err := io.ReadAll(response.Body)
	if err == nil && json.Valid(raw) {
		payload = json.RawMessage(raw)
	}

	if response.StatusCode < http.StatusOK || response.StatusCode >= http.StatusMultipleChoices {
		var failure struct {
			Error   string `json:"error"`
			Message string `json:"message"`
		}
		if payload != nil {
			_ = json.Unmarshal(payload, &failure)
		}
		return payload, shared.NewAPIError(response.StatusCode, failure.Error, failure.Message, payload)
	}

	return payload, nil
}

// RequestWithRetry invokes the given verb up to the configured attempt
// ceiling. Only transport failures and server errors are retried; client
// errors [400,500) propagate immediately. The delay before attempt n+1 is
// baseDelay * n. Exhausting all attempts returns the last observed error.
func (c *Client) RequestWithRetry(ctx context.Context, method, endpoint string, body interface{}, query url.Values) (json.RawMessage, error) {
	logger := c.logger.WithFields(logrus.Fields{
		"component": "Client",
		"method":    method,
		"endpoint":  endpoint,
	})

	var lastErr error
	for attempt := 1; attempt <= c.attempts; attempt++ {
		if attempt > 1 {
			delay := time.Duration(attempt-1) * c.baseDelay
			logger.WithFields(logrus.Fields{
				"attempt": attempt,
				"delay":   delay,
			}).Debug("Retrying request after backoff")
			c.sleep(delay)
		}

		payload, err := c.do(ctx, method, endpoint, body, query)
		if err == nil {
			return payload, nil
		}

		lastErr = err
		if !shared.IsRetryable(err) {
			logger.WithError(err).Debug("Request failed with non-retryable error")
			return payload, err
		}
		logger.WithError(err).WithField("attempt", attempt).Debug("Request attempt failed")
	}

	logger.WithError(lastErr).WithField("total_attempts", c.attempts).Error("Request failed after all retry attempts")
	return nil, lastErr
}

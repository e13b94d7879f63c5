// Package api implements the outbound gateway to the EduInsight backend:
// bearer auth injection, the {data,message,error} envelope, binary report
// downloads, and the shared busy indicator.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/rs/zerolog"

	"github.com/eduinsight/console-client/internal/core/domain"
	"github.com/eduinsight/console-client/internal/core/ports"
	"github.com/eduinsight/console-client/internal/metrics"
)

// TokenSource supplies the current bearer token, or "" when anonymous.
// The session service owns the token; the gateway only reads it per call.
type TokenSource func() string

// Options configures a Client.
type Options struct {
	BaseURL     string
	Timeout     time.Duration
	DownloadDir string
	Token       TokenSource
	// OnBusyChange fires on busy transitions (false→true, true→false),
	// driving the loading overlay. Optional.
	OnBusyChange func(bool)
	Logger       zerolog.Logger
}

// Client implements ports.Gateway over net/http.
type Client struct {
	baseURL     string
	http        *http.Client
	downloadDir string
	token       TokenSource
	busy        *busyTracker
	log         zerolog.Logger
}

var _ ports.Gateway = (*Client)(nil)

func NewClient(opts Options) *Client {
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	token := opts.Token
	if token == nil {
		token = func() string { return "" }
	}
	return &Client{
		baseURL:     opts.BaseURL,
		http:        &http.Client{Timeout: timeout},
		downloadDir: opts.DownloadDir,
		token:       token,
		busy:        &busyTracker{onChange: opts.OnBusyChange},
		log:         opts.Logger,
	}
}

// Busy reports whether at least one call is in flight.
func (c *Client) Busy() bool {
	return c.busy.busy()
}

// Call issues one HTTP request and decodes the response envelope. The busy
// indicator is raised for the whole duration, success or failure. A success
// body that fails to parse as JSON is substituted with an empty envelope.
func (c *Client) Call(ctx context.Context, method, path string, opts ports.CallOptions) (*ports.Envelope, error) {
	c.busy.enter()
	defer c.busy.leave()

	start := time.Now()

	var (
		body        io.Reader
		contentType string
	)
	switch {
	case opts.Multipart != nil:
		// Pass-through: the multipart writer already set the boundary.
		body = opts.Multipart.Body
		contentType = opts.Multipart.ContentType
	case opts.Body != nil:
		b, err := json.Marshal(opts.Body)
		if err != nil {
			return nil, fmt.Errorf("gateway: encode request body: %w", err)
		}
		body = bytes.NewReader(b)
		contentType = "application/json"
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("gateway: build request: %w", err)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if tok := c.token(); tok != "" {
		req.Header.Set("Authorization", "Bearer "+tok)
	}

	res, err := c.http.Do(req)
	if err != nil {
		metrics.RequestsTotal.WithLabelValues(method, path, "error").Inc()
		c.log.Warn().Err(err).Str("method", method).Str("path", path).Msg("request transport failure")
		return nil, domain.NewRequestError(0, "")
	}
	defer res.Body.Close()

	metrics.RequestsTotal.WithLabelValues(method, path, strconv.Itoa(res.StatusCode)).Inc()
	metrics.RequestDuration.WithLabelValues(method, path).Observe(time.Since(start).Seconds())

	env := decodeEnvelope(res.Body)
	if res.StatusCode < http.StatusOK || res.StatusCode >= http.StatusMultipleChoices {
		return nil, requestError(res.StatusCode, env)
	}
	return env, nil
}

// decodeEnvelope parses the response body, substituting an empty envelope
// when the body is not valid JSON.
func decodeEnvelope(r io.Reader) *ports.Envelope {
	env := &ports.Envelope{}
	if err := json.NewDecoder(r).Decode(env); err != nil {
		return &ports.Envelope{}
	}
	return env
}

// requestError extracts the user-facing message: message field first, then
// error, then the generic fallback.
func requestError(status int, env *ports.Envelope) *domain.RequestError {
	msg := env.Message
	if msg == "" {
		msg = env.Error
	}
	return domain.NewRequestError(status, msg)
}

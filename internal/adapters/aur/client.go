// Package aur provides a resilient client for the AUR RPC v5 search endpoint
package aur

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	perr "aurbot/internal/platform/errors"
	pjson "aurbot/internal/platform/json"
	"aurbot/internal/platform/logger"
)

const (
	baseURLDefault       = "https://aur.archlinux.org"
	defaultTimeout       = 10 * time.Second
	defaultUA            = "aurbot"
	defaultMaxRetry      = 2
	defaultRetryBase     = 200 * time.Millisecond
	defaultRecordCeiling = 50
)

// Options configures the Client
type Options struct {
	BaseURL   string
	UserAgent string
	Timeout   time.Duration

	// Retry config for transport errors and transient server replies
	// Client errors and well-formed error envelopes never retry
	MaxRetries int
	RetryBase  time.Duration

	// RecordCeiling bounds how many records one Search returns
	RecordCeiling int
}

// Client is a minimal AUR RPC client with retries and backoff
type Client struct {
	http  *http.Client
	opts  Options
	log   logger.Logger
	now   func() time.Time
	sleep func(time.Duration)
}

// NewClient creates a new Client with sane defaults
func NewClient(o Options) *Client {
	if o.BaseURL == "" {
		o.BaseURL = baseURLDefault
	}
	o.BaseURL = strings.TrimRight(o.BaseURL, "/")
	if o.UserAgent == "" {
		o.UserAgent = defaultUA
	}
	if o.Timeout <= 0 {
		o.Timeout = defaultTimeout
	}
	if o.MaxRetries <= 0 {
		o.MaxRetries = defaultMaxRetry
	}
	if o.RetryBase <= 0 {
		o.RetryBase = defaultRetryBase
	}
	if o.RecordCeiling <= 0 {
		o.RecordCeiling = defaultRecordCeiling
	}
	return &Client{
		http:  &http.Client{Timeout: o.Timeout},
		opts:  o,
		log:   *logger.Named("aur"),
		now:   time.Now,
		sleep: time.Sleep,
	}
}

// Search queries the RPC endpoint for term. Empty or whitespace-only
// terms return no records without touching the network. At most one
// request goes out per call, retries aside. The slice keeps upstream
// relevance order and is capped at RecordCeiling records
func (c *Client) Search(ctx context.Context, term string, by By) ([]Package, error) {
	term = strings.TrimSpace(term)
	if term == "" {
		return nil, nil
	}
	if by == "" {
		by = ByName
	}

	q := url.Values{}
	q.Set("v", "5")
	q.Set("type", "search")
	q.Set("by", string(by))
	q.Set("arg", term)

	resp, err := c.do(ctx, "/rpc/?"+q.Encode())
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	var env envelope
	if err := pjson.NewDecoder(resp.Body).Decode(&env); err != nil {
		return nil, perr.Wrapf(err, perr.ErrorCodeJSON, "aur decode failed")
	}
	if env.Type == "error" {
		msg := env.Error
		if msg == "" {
			msg = "unspecified upstream error"
		}
		return nil, perr.APIErrf("%s", msg)
	}
	if env.ResultCount == 0 || len(env.Results) == 0 {
		return nil, nil
	}

	records := env.Results
	if len(records) > c.opts.RecordCeiling {
		records = records[:c.opts.RecordCeiling]
	}
	return records, nil
}

// Ping probes the upstream base URL for readiness checks. Anything
// below 500 counts as reachable; no retries so the probe reflects the
// current state
func (c *Client) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.opts.BaseURL+"/", nil)
	if err != nil {
		return perr.Wrapf(err, perr.ErrorCodeUnknown, "aur ping request failed")
	}
	req.Header.Set("User-Agent", c.opts.UserAgent)

	resp, err := c.http.Do(req)
	if err != nil {
		return perr.Wrapf(err, perr.ErrorCodeUnavailable, "aur ping failed")
	}
	defer func() { _ = drainAndClose(resp.Body) }()
	if resp.StatusCode >= http.StatusInternalServerError {
		return perr.Unavailablef("aur ping status %d", resp.StatusCode)
	}
	return nil
}

// do issues one GET with retries for transport errors and 5xx replies
func (c *Client) do(ctx context.Context, path string) (*http.Response, error) {
	url := c.opts.BaseURL + path
	attempts := 0
	for {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return nil, perr.Wrapf(err, perr.ErrorCodeUnknown, "aur new request failed")
		}
		req.Header.Set("User-Agent", c.opts.UserAgent)
		req.Header.Set("Accept", "application/json")

		start := c.now()
		resp, err := c.http.Do(req)
		lat := c.now().Sub(start)

		if err != nil {
			if !c.shouldRetry(attempts) {
				return nil, perr.Wrapf(err, perr.ErrorCodeUnavailable, "aur do failed")
			}
			back := c.backoff(attempts)
			c.log.Warn().Dur("retry_in", back).Int("attempt", attempts).Msg("aur transport error retrying")
			c.sleep(back)
			attempts++
			continue
		}

		c.log.Debug().
			Str("path", path).
			Int("status", resp.StatusCode).
			Int("attempt", attempts).
			Dur("latency", lat).
			Msg("aur http response")

		switch {
		case resp.StatusCode == http.StatusOK:
			return resp, nil
		case resp.StatusCode == http.StatusTooManyRequests:
			_ = drainAndClose(resp.Body)
			return nil, perr.TooManyRequestsf("aur rate limited")
		case resp.StatusCode >= http.StatusInternalServerError:
			// transient server side
			if !c.shouldRetry(attempts) {
				_ = drainAndClose(resp.Body)
				return nil, perr.Unavailablef("aur transient server error %d", resp.StatusCode)
			}
			back := c.backoff(attempts)
			c.log.Warn().Dur("retry_in", back).Int("status", resp.StatusCode).Int("attempt", attempts).Msg("aur transient error retrying")
			_ = drainAndClose(resp.Body)
			c.sleep(back)
			attempts++
			continue
		default:
			// read a small tail for diagnostics then return
			body, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
			_ = resp.Body.Close()
			return nil, perr.Newf(perr.ErrorCodeUnknown, "aur unexpected status %d body %s", resp.StatusCode, string(body))
		}
	}
}

func (c *Client) backoff(attempt int) time.Duration {
	d := c.opts.RetryBase
	// exponential with cap, quadrupling per attempt: 200ms then 800ms
	// with the default base
	ms := int64(d / time.Millisecond)
	ms = ms << uint(2*attempt)
	max := int64(30 * time.Second / time.Millisecond)
	if ms > max {
		ms = max
	}
	return time.Duration(ms) * time.Millisecond
}

func (c *Client) shouldRetry(attempt int) bool {
	return attempt < c.opts.MaxRetries
}

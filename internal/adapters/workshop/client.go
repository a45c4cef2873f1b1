// Package workshop is the HTTP client for the workshop backend API. Listing responses are
// normalized into a Result; detail lookups return errors; admin lookups soft-fail
package workshop

import (
	"context"
	"net/http"
	"net/url"
	"strings"
	"time"

	"workshopdex/internal/core/query"
	"workshopdex/internal/platform/config"
	perr "workshopdex/internal/platform/errors"
	"workshopdex/internal/platform/logger"
	pnet "workshopdex/internal/platform/net"
)

const (
	baseURLDefault = "http://localhost:5800"
	defaultUA      = "workshopdex"
	defaultMaxBody = 8 << 20
)

// Options configures the Client
type Options struct {
	BaseURL   string
	UserAgent string
	// Timeout bounds a whole request. Zero leaves it to the caller's context
	Timeout time.Duration
	// MaxBody caps how many response bytes are read
	MaxBody int64
	// LanguageParam is the query key the backend reads the language filter from
	LanguageParam string
	// Transport overrides http.DefaultTransport, mostly for tests
	Transport http.RoundTripper
}

// FromConfig reads WORKSHOP_API_* style keys under cfg's prefix
func FromConfig(cfg config.Conf) Options {
	return Options{
		BaseURL:       cfg.MayURL("BASE_URL", baseURLDefault).String(),
		UserAgent:     cfg.MayString("USER_AGENT", defaultUA),
		Timeout:       cfg.MayDuration("TIMEOUT", 0),
		MaxBody:       cfg.MayInt64("MAX_BODY", defaultMaxBody),
		LanguageParam: cfg.MayEnum("LANGUAGE_PARAM", query.KeyLanguage, query.KeyLanguage, query.KeyLanguages),
	}
}

// Client talks to one workshop backend. Safe for concurrent use
type Client struct {
	http *http.Client
	opts Options
	log  logger.Logger
	now  func() time.Time
}

// NewClient creates a Client, filling unset options with defaults
func NewClient(o Options) *Client {
	o.BaseURL = strings.TrimRight(o.BaseURL, "/")
	if o.BaseURL == "" {
		o.BaseURL = baseURLDefault
	}
	if o.UserAgent == "" {
		o.UserAgent = defaultUA
	}
	if o.MaxBody <= 0 {
		o.MaxBody = defaultMaxBody
	}
	if o.LanguageParam == "" {
		o.LanguageParam = query.KeyLanguage
	}
	return &Client{
		http: &http.Client{Timeout: o.Timeout, Transport: o.Transport},
		opts: o,
		log:  *logger.Named("workshop"),
		now:  time.Now,
	}
}

// BaseURL returns the normalized backend root
func (c *Client) BaseURL() string { return c.opts.BaseURL }

// Builder returns a query builder speaking this backend's parameter dialect
func (c *Client) Builder() query.Builder {
	return query.Builder{LanguageKey: c.opts.LanguageParam}
}

// get issues one GET. endpoint is the bounded metrics label, path is already escaped.
// Transport failures come back as Unavailable errors; any HTTP status is returned to the caller
func (c *Client) get(ctx context.Context, endpoint, path, rawQuery string) (*http.Response, error) {
	u := c.opts.BaseURL + path
	if rawQuery != "" {
		u += "?" + rawQuery
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, perr.Wrap(err, perr.ErrorCodeUnknown, "workshop new request failed")
	}
	ctx, reqID := pnet.EnsureRequestID(ctx)
	req.Header.Set("User-Agent", c.opts.UserAgent)
	req.Header.Set("Accept", "application/json")
	req.Header.Set(pnet.HeaderRequestID, reqID)

	log := c.log.With().Str("request_id", reqID).Logger()

	start := c.now()
	resp, err := c.http.Do(req)
	lat := c.now().Sub(start)
	observeLatency(endpoint, lat)

	if err != nil {
		countRequest(endpoint, outcomeError)
		log.Warn().Err(err).Str("path", path).Dur("latency", lat).Msg("workshop transport error")
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, perr.Wrapf(ctxErr, perr.ErrorCodeUnavailable, "workshop %s cancelled", path)
		}
		return nil, perr.Wrapf(err, perr.ErrorCodeUnavailable, "workshop %s unreachable", path)
	}

	log.Debug().
		Str("method", http.MethodGet).
		Str("path", path).
		Str("query", rawQuery).
		Int("status", resp.StatusCode).
		Dur("latency", lat).
		Msg("workshop http response")
	return resp, nil
}

// close logs body close failures the way every endpoint wants
func (c *Client) close(resp *http.Response, path string) {
	if cerr := resp.Body.Close(); cerr != nil {
		c.log.Error().Err(cerr).Str("path", path).Msg("workshop close body failed")
	}
}

// segment escapes one path segment
func segment(s string) string { return url.PathEscape(s) }

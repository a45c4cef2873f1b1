package workshop

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	perr "workshopdex/internal/platform/errors"
)

// metric labels per endpoint
const (
	endpointList  = "list"
	endpointItem  = "item"
	endpointApp   = "app"
	endpointApps  = "apps"
	endpointAdmin = "admin"
	endpointPing  = "ping"
)

// Listing fetches GET /api/list?<rawQuery>. A non-2xx status is returned as a Failure with a
// nil error; only transport and decode problems are errors
func (c *Client) Listing(ctx context.Context, rawQuery string) (Result, error) {
	const path = "/api/list"
	resp, err := c.get(ctx, endpointList, path, rawQuery)
	if err != nil {
		return Result{}, err
	}
	defer c.close(resp, path)

	if !ok(resp) {
		body, err := c.readText(resp)
		if err != nil {
			countRequest(endpointList, outcomeError)
			return Result{}, err
		}
		countRequest(endpointList, outcomeFailure)
		return Fail(Failure{Status: resp.StatusCode, StatusText: statusText(resp), Body: body}), nil
	}

	p, err := c.readJSON(resp, path)
	if err != nil {
		countRequest(endpointList, outcomeError)
		return Result{}, err
	}
	countRequest(endpointList, outcomeSuccess)
	return Success(p), nil
}

// Item fetches GET /api/item/<id>. Non-OK statuses are errors wrapping *StatusError
func (c *Client) Item(ctx context.Context, id string) (Payload, error) {
	return c.detail(ctx, endpointItem, "/api/item/"+segment(id))
}

// App fetches GET /api/app/<id>. Non-OK statuses are errors wrapping *StatusError
func (c *Client) App(ctx context.Context, id string) (Payload, error) {
	return c.detail(ctx, endpointApp, "/api/app/"+segment(id))
}

// Apps fetches the full app listing, GET /api/apps
func (c *Client) Apps(ctx context.Context) (Payload, error) {
	return c.detail(ctx, endpointApps, "/api/apps")
}

// Admin fetches GET /api/admin/<name>. A non-OK status soft-fails as (nil, false, nil) so
// optional admin widgets can simply be left out
func (c *Client) Admin(ctx context.Context, name string) (Payload, bool, error) {
	path := "/api/admin/" + segment(name)
	resp, err := c.get(ctx, endpointAdmin, path, "")
	if err != nil {
		return nil, false, err
	}
	defer c.close(resp, path)

	if !ok(resp) {
		c.log.Debug().Str("path", path).Int("status", resp.StatusCode).Msg("workshop admin resource omitted")
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, c.opts.MaxBody))
		countRequest(endpointAdmin, outcomeFailure)
		return nil, false, nil
	}

	p, err := c.readJSON(resp, path)
	if err != nil {
		countRequest(endpointAdmin, outcomeError)
		return nil, false, err
	}
	countRequest(endpointAdmin, outcomeSuccess)
	return p, true, nil
}

// Ping reports whether the backend answers /api/apps with a 2xx. The body is discarded
func (c *Client) Ping(ctx context.Context) error {
	const path = "/api/apps"
	resp, err := c.get(ctx, endpointPing, path, "")
	if err != nil {
		return err
	}
	defer c.close(resp, path)
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, c.opts.MaxBody))

	if !ok(resp) {
		countRequest(endpointPing, outcomeFailure)
		return statusErr(&StatusError{Path: path, Status: resp.StatusCode, StatusText: statusText(resp)})
	}
	countRequest(endpointPing, outcomeSuccess)
	return nil
}

func (c *Client) detail(ctx context.Context, endpoint, path string) (Payload, error) {
	resp, err := c.get(ctx, endpoint, path, "")
	if err != nil {
		return nil, err
	}
	defer c.close(resp, path)

	if !ok(resp) {
		body, rerr := c.readText(resp)
		if rerr != nil {
			c.log.Warn().Err(rerr).Str("path", path).Int("status", resp.StatusCode).Msg("workshop error body unreadable")
		}
		countRequest(endpoint, outcomeFailure)
		return nil, statusErr(&StatusError{
			Path:       path,
			Status:     resp.StatusCode,
			StatusText: statusText(resp),
			Body:       body,
			BodyErr:    rerr,
		})
	}

	p, err := c.readJSON(resp, path)
	if err != nil {
		countRequest(endpoint, outcomeError)
		return nil, err
	}
	countRequest(endpoint, outcomeSuccess)
	return p, nil
}

func ok(resp *http.Response) bool { return resp.StatusCode >= 200 && resp.StatusCode <= 299 }

var errTooLarge = errors.New("response body exceeds limit")

// readBody reads at most MaxBody bytes and reports whether more were available
func (c *Client) readBody(resp *http.Response) ([]byte, bool, error) {
	b, err := io.ReadAll(io.LimitReader(resp.Body, c.opts.MaxBody+1))
	if err != nil {
		return nil, false, perr.Wrapf(err, perr.ErrorCodeUnavailable, "workshop read body failed")
	}
	if int64(len(b)) > c.opts.MaxBody {
		return b[:c.opts.MaxBody], true, nil
	}
	return b, false, nil
}

// readText returns the body as text, truncated at MaxBody
func (c *Client) readText(resp *http.Response) (string, error) {
	b, _, err := c.readBody(resp)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// readJSON returns the body once it is known to be one complete JSON value
func (c *Client) readJSON(resp *http.Response, path string) (Payload, error) {
	b, truncated, err := c.readBody(resp)
	if err != nil {
		return nil, err
	}
	if truncated {
		return nil, perr.Wrapf(errTooLarge, perr.ErrorCodeUpstream, "workshop %s body larger than %d bytes", path, c.opts.MaxBody)
	}
	if !json.Valid(b) {
		return nil, perr.JSONErrf("workshop %s returned invalid JSON", path)
	}
	return Payload(b), nil
}

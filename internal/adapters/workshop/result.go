package workshop

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	perr "workshopdex/internal/platform/errors"
)

// Payload is a decoded-and-validated JSON response body kept in its wire form.
// It marshals verbatim and DecodeAs turns it into a typed value
type Payload = json.RawMessage

// Failure describes a non-2xx listing response. Field names are part of the contract
// presentation code reads
type Failure struct {
	Status     int    `json:"status"`
	StatusText string `json:"statusText"`
	Body       string `json:"body"`
}

// Result is the normalized outcome of a listing fetch: exactly one of Payload or Failure
type Result struct {
	OK      bool     `json:"ok"`
	Payload Payload  `json:"payload,omitempty"`
	Failure *Failure `json:"failure,omitempty"`
}

// Success wraps a decoded payload
func Success(p Payload) Result { return Result{OK: true, Payload: p} }

// Fail wraps a failure descriptor
func Fail(f Failure) Result { return Result{Failure: &f} }

// StatusError is a non-2xx answer from an endpoint that does not normalize failures
type StatusError struct {
	Path       string
	Status     int
	StatusText string
	Body       string
	// BodyErr is set when the error body could not be read, Body is then empty
	BodyErr error
}

func (e *StatusError) Error() string {
	switch {
	case e.BodyErr != nil:
		return fmt.Sprintf("workshop %s: %d %s (body unreadable: %v)", e.Path, e.Status, e.StatusText, e.BodyErr)
	case e.Body == "":
		return fmt.Sprintf("workshop %s: %d %s", e.Path, e.Status, e.StatusText)
	}
	return fmt.Sprintf("workshop %s: %d %s: %s", e.Path, e.Status, e.StatusText, e.Body)
}

// Unwrap exposes the body read failure, if any
func (e *StatusError) Unwrap() error { return e.BodyErr }

// HTTPStatus returns the backend status
func (e *StatusError) HTTPStatus() int { return e.Status }

// statusText returns the reason phrase the server sent, falling back to the canonical one
func statusText(resp *http.Response) string {
	code := fmt.Sprintf("%d", resp.StatusCode)
	if s := strings.TrimSpace(strings.TrimPrefix(resp.Status, code)); s != "" {
		return s
	}
	return http.StatusText(resp.StatusCode)
}

// statusErr wraps a StatusError into a project error whose code follows the status
func statusErr(se *StatusError) error {
	return perr.Wrapf(se, perr.FromHTTPStatus(se.Status), "workshop %s answered %d %s", se.Path, se.Status, se.StatusText)
}

// DecodeAs unmarshals a payload into T. An empty payload is a JSON error
func DecodeAs[T any](p Payload) (T, error) {
	var out T
	if len(p) == 0 {
		return out, perr.JSONErrf("empty payload")
	}
	if err := json.Unmarshal(p, &out); err != nil {
		var zero T
		return zero, perr.Wrapf(err, perr.ErrorCodeJSON, "decode %T", out)
	}
	return out, nil
}

// Package query turns a listing filter snapshot into the ordered, form-encoded query string
// the workshop backend's /api/list endpoint takes
package query

import (
	"net/url"
	"strconv"
	"strings"

	perr "workshopdex/internal/platform/errors"
	ptime "workshopdex/internal/platform/time"
)

// Query parameter keys
const (
	KeyLanguage    = "language"
	KeyLanguages   = "languages"
	KeyTags        = "tags"
	KeyOrderBy     = "order_by"
	KeyLimit       = "limit"
	KeyTitle       = "title"
	KeyLastUpdated = "last_updated"
	KeyApp         = "app"
)

// ErrInvalidDate is returned (wrapped) when LastUpdated does not parse as a date
var ErrInvalidDate = perr.New(perr.ErrorCodeInvalidArgument, "invalid date")

// Snapshot is the filter state at the moment a page loads. Every field is optional and
// nil or an empty string means "no constraint". Tags is sent as given, one tags param per
// element including empty ones; gateway and CLI input drops blank tags before it gets here
type Snapshot struct {
	Language    *string  `json:"language,omitempty"`
	Tags        []string `json:"tags,omitempty"`
	OrderBy     *string  `json:"order_by,omitempty"`
	Limit       *int     `json:"limit,omitempty"`
	Title       *string  `json:"title,omitempty"`
	LastUpdated *string  `json:"last_updated,omitempty"`
	AppID       *string  `json:"app,omitempty"`
}

// ForApp returns a copy of s scoped to one app
func (s Snapshot) ForApp(id string) Snapshot {
	s.AppID = &id
	return s
}

// Param is one key/value pair of a query string. Keys may repeat
type Param struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// Builder maps snapshots to params. The zero value keys the language filter as "language"
type Builder struct {
	// LanguageKey is KeyLanguage or KeyLanguages depending on what the backend reads
	LanguageKey string
}

func (b Builder) languageKey() string {
	if b.LanguageKey == "" {
		return KeyLanguage
	}
	return b.LanguageKey
}

// Params returns the params for s in fixed order:
// language, tags..., order_by, limit, title, last_updated, app
func (b Builder) Params(s Snapshot) ([]Param, error) {
	var out []Param
	add := func(k string, v *string) {
		if v != nil && *v != "" {
			out = append(out, Param{Key: k, Value: *v})
		}
	}

	add(b.languageKey(), s.Language)
	for _, tag := range s.Tags {
		out = append(out, Param{Key: KeyTags, Value: tag})
	}
	add(KeyOrderBy, s.OrderBy)
	if s.Limit != nil {
		out = append(out, Param{Key: KeyLimit, Value: strconv.Itoa(*s.Limit)})
	}
	add(KeyTitle, s.Title)
	if s.LastUpdated != nil && *s.LastUpdated != "" {
		t, err := ptime.ParseDateLike(*s.LastUpdated)
		if err != nil {
			return nil, perr.WithField(
				perr.Wrapf(ErrInvalidDate, perr.ErrorCodeInvalidArgument, "last_updated %q is not a date", *s.LastUpdated),
				KeyLastUpdated,
			)
		}
		out = append(out, Param{Key: KeyLastUpdated, Value: strconv.FormatInt(ptime.EpochSeconds(t), 10)})
	}
	add(KeyApp, s.AppID)
	return out, nil
}

// Build returns the encoded query string for s, without a leading "?"
func (b Builder) Build(s Snapshot) (string, error) {
	ps, err := b.Params(s)
	if err != nil {
		return "", err
	}
	return Encode(ps), nil
}

// Params is Builder{}.Params
func Params(s Snapshot) ([]Param, error) { return Builder{}.Params(s) }

// Build is Builder{}.Build
func Build(s Snapshot) (string, error) { return Builder{}.Build(s) }

// Encode form-encodes ps in order. Unlike url.Values.Encode it never sorts keys
func Encode(ps []Param) string {
	var sb strings.Builder
	for i, p := range ps {
		if i > 0 {
			sb.WriteByte('&')
		}
		sb.WriteString(url.QueryEscape(p.Key))
		sb.WriteByte('=')
		sb.WriteString(url.QueryEscape(p.Value))
	}
	return sb.String()
}

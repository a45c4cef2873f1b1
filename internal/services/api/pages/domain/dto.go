// Package domain holds DTOs for page loads and the filter input contract
package domain

import (
	"workshopdex/internal/adapters/workshop"
	"workshopdex/internal/core/langs"
	"workshopdex/internal/core/query"
	perr "workshopdex/internal/platform/errors"
	str "workshopdex/internal/platform/strings"
)

// Orderings the backend list endpoint understands
const (
	OrderAlphabetical = "Alphabetical"
	OrderLastUpdated  = "LastUpdated"
	OrderScore        = "Score"
	OrderDependents   = "Dependents"
)

// MaxLimit is the backend page size cap
const MaxLimit = 100

// FilterInput is the app page filter bound from the query string
// blank values mean no constraint
type FilterInput struct {
	Language    string   `query:"language" validate:"omitempty,max=64" example:"en"`
	Tags        []string `query:"tags" validate:"omitempty,dive,max=128" example:"Mod"`
	OrderBy     string   `query:"order_by" validate:"omitempty,oneof=Alphabetical LastUpdated Score Dependents" example:"Score"`
	Limit       *int     `query:"limit" validate:"omitempty,min=0,max=100" example:"50"`
	Title       string   `query:"title" validate:"omitempty,max=200" example:"harmony"`
	LastUpdated string   `query:"last_updated" validate:"omitempty,datelike" example:"2021-01-01T00:00:00Z"`
}

// QueryInput is FilterInput plus the app scope, used by the query preview
type QueryInput struct {
	FilterInput
	App string `query:"app" validate:"omitempty,max=32" example:"294100"`
}

// Snapshot turns the input into a filter snapshot. The language is canonicalized to the
// backend's name so en, ja-JP and Japanese all work. Blank tags are dropped
func (in FilterInput) Snapshot() (query.Snapshot, error) {
	s := query.Snapshot{
		Tags:        str.Compact(in.Tags),
		OrderBy:     str.Ptr(in.OrderBy),
		Limit:       in.Limit,
		Title:       str.Ptr(in.Title),
		LastUpdated: str.Ptr(in.LastUpdated),
	}
	if lang := str.Ptr(in.Language); lang != nil {
		name, err := langs.Canonicalize(*lang)
		if err != nil {
			return query.Snapshot{}, err
		}
		s.Language = &name
	}
	return s, nil
}

// Snapshot adds the app scope to the filter snapshot
func (in QueryInput) Snapshot() (query.Snapshot, error) {
	s, err := in.FilterInput.Snapshot()
	if err != nil {
		return s, err
	}
	s.AppID = str.Ptr(in.App)
	return s, nil
}

// Section carries one independently loaded part of a page. Err stays available to Go
// callers, Error is its wire form
type Section struct {
	Data  workshop.Payload `json:"data,omitempty" swaggertype:"object"`
	Err   error            `json:"-"`
	Error *perr.Wire       `json:"error,omitempty"`
}

// NewSection records either the payload or the error of one fetch
func NewSection(p workshop.Payload, err error) Section {
	if err != nil {
		w := perr.WireFrom(err)
		return Section{Err: err, Error: &w}
	}
	return Section{Data: p}
}

// ListingSection is the normalized listing outcome, or the error that prevented one
type ListingSection struct {
	workshop.Result
	Err   error      `json:"-"`
	Error *perr.Wire `json:"error,omitempty"`
}

// NewListingSection records either the listing result or its error
func NewListingSection(res workshop.Result, err error) ListingSection {
	if err != nil {
		w := perr.WireFrom(err)
		return ListingSection{Err: err, Error: &w}
	}
	return ListingSection{Result: res}
}

// AdminSection is one admin resource. Available is false when the backend refused it
type AdminSection struct {
	Data      workshop.Payload `json:"data,omitempty" swaggertype:"object"`
	Available bool             `json:"available"`
	Err       error            `json:"-"`
	Error     *perr.Wire       `json:"error,omitempty"`
}

// HomePage lists every workshop app
type HomePage struct {
	Apps workshop.Payload `json:"apps" swaggertype:"array,object"`
}

// AppPage is one app with its filtered item listing. The two halves load concurrently and
// fail independently
type AppPage struct {
	ID      string         `json:"id" example:"294100"`
	Query   string         `json:"query" example:"language=English&limit=50&app=294100"`
	App     Section        `json:"app"`
	Listing ListingSection `json:"listing"`
}

// ItemPage is a single item detail document
type ItemPage struct {
	ID   string           `json:"id" example:"2009463077"`
	Item workshop.Payload `json:"item" swaggertype:"object"`
}

// AdminPage holds the optional admin resources
type AdminPage struct {
	Users      AdminSection `json:"users"`
	Properties AdminSection `json:"properties"`
}

// QueryPreview shows what the list request for a filter would look like
type QueryPreview struct {
	Params []query.Param `json:"params"`
	Query  string        `json:"query" example:"tags=Mod&tags=QoL&limit=0"`
	URL    string        `json:"url" example:"http://localhost:5800/api/list?tags=Mod&tags=QoL&limit=0"`
}

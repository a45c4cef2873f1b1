// Package service contains the page load workflows
package service

import (
	"context"
	"strings"
	"sync"

	"workshopdex/internal/core/query"
	perr "workshopdex/internal/platform/errors"
	"workshopdex/internal/platform/logger"
	"workshopdex/internal/services/api/pages/domain"
)

// admin resources fetched by the admin page
const (
	adminUsers      = "users"
	adminProperties = "properties"
)

// Service defines the pages service contract
type Service interface {
	domain.ServicePort
}

// Svc implements the pages service over a workshop backend
type Svc struct {
	backend domain.Backend
	builder query.Builder
}

// New constructs a pages service
func New(backend domain.Backend) *Svc {
	if backend == nil {
		panic("pages.Service requires a non nil Backend")
	}
	return &Svc{backend: backend, builder: backend.Builder()}
}

// Home loads the full app listing
func (s *Svc) Home(ctx context.Context) (domain.HomePage, error) {
	apps, err := s.backend.Apps(ctx)
	if err != nil {
		return domain.HomePage{}, perr.WithOp(err, "pages.home")
	}
	return domain.HomePage{Apps: apps}, nil
}

// App loads one app and its filtered listing. The query is built first so an invalid filter
// fails before anything is sent. Both fetches then start before either is awaited and each
// outcome is kept on its own section; only a bad filter is returned as an error
func (s *Svc) App(ctx context.Context, id string, snap query.Snapshot) (domain.AppPage, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return domain.AppPage{}, perr.WithField(perr.InvalidArgf("app id is required"), "id")
	}
	rawQuery, err := s.builder.Build(snap.ForApp(id))
	if err != nil {
		return domain.AppPage{}, err
	}

	page := domain.AppPage{ID: id, Query: rawQuery}

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		p, err := s.backend.App(ctx, id)
		page.App = domain.NewSection(p, err)
	}()
	go func() {
		defer wg.Done()
		res, err := s.backend.Listing(ctx, rawQuery)
		page.Listing = domain.NewListingSection(res, err)
	}()
	wg.Wait()

	log := logger.C(logger.WithRequest(ctx, "", "app"))
	if page.App.Err != nil {
		log.Warn().Err(page.App.Err).Str("app", id).Msg("app detail failed")
	}
	if page.Listing.Err != nil {
		log.Warn().Err(page.Listing.Err).Str("app", id).Msg("app listing failed")
	}
	return page, nil
}

// Item loads one item detail document
func (s *Svc) Item(ctx context.Context, id string) (domain.ItemPage, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return domain.ItemPage{}, perr.WithField(perr.InvalidArgf("item id is required"), "item")
	}
	p, err := s.backend.Item(ctx, id)
	if err != nil {
		return domain.ItemPage{}, perr.WithOp(err, "pages.item")
	}
	return domain.ItemPage{ID: id, Item: p}, nil
}

// Admin loads users and properties concurrently. A refused resource is simply unavailable,
// a transport failure is recorded on that section only
func (s *Svc) Admin(ctx context.Context) (domain.AdminPage, error) {
	var page domain.AdminPage

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		page.Users = s.admin(ctx, adminUsers)
	}()
	go func() {
		defer wg.Done()
		page.Properties = s.admin(ctx, adminProperties)
	}()
	wg.Wait()

	return page, nil
}

func (s *Svc) admin(ctx context.Context, name string) domain.AdminSection {
	p, ok, err := s.backend.Admin(ctx, name)
	if err != nil {
		logger.C(logger.WithRequest(ctx, "", "admin")).Warn().Err(err).Str("resource", name).Msg("admin resource failed")
		w := perr.WireFrom(err)
		return domain.AdminSection{Err: err, Error: &w}
	}
	return domain.AdminSection{Data: p, Available: ok}
}

// Preview builds the list query for a snapshot without sending it
func (s *Svc) Preview(snap query.Snapshot) (domain.QueryPreview, error) {
	params, err := s.builder.Params(snap)
	if err != nil {
		return domain.QueryPreview{}, err
	}
	if params == nil {
		params = []query.Param{}
	}
	raw := query.Encode(params)
	u := s.backend.BaseURL() + "/api/list"
	if raw != "" {
		u += "?" + raw
	}
	return domain.QueryPreview{Params: params, Query: raw, URL: u}, nil
}

// Package http provides http transport for page loads
package http

import (
	stdhttp "net/http"

	"workshopdex/internal/modkit/httpkit"
	"workshopdex/internal/services/api/pages/domain"
	svc "workshopdex/internal/services/api/pages/service"
)

// Register mounts the page endpoints on the given router
func Register(r httpkit.Router, s svc.Service) {
	h := &handlers{svc: s}

	// app listing
	httpkit.Get(r, "/home", h.home)

	// app detail plus filtered listing
	httpkit.GetQuery[domain.FilterInput](r, "/apps/{id}", h.app)

	httpkit.Get(r, "/items/{item}", h.item)
	httpkit.Get(r, "/admin", h.admin)
}

// RegisterQuery mounts the list query preview
func RegisterQuery(r httpkit.Router, s svc.Service) {
	h := &handlers{svc: s}
	httpkit.GetQuery[domain.QueryInput](r, "/query", h.query)
}

type handlers struct{ svc svc.Service }

// swagger:route GET /pages/home Pages pagesHome
// @Summary Home page data
// @Tags Pages
// @Produce json
// @Success 200 {object} domain.HomePage "ok"
// @Router /pages/home [get]
func (h *handlers) home(r *stdhttp.Request) (any, error) {
	return h.svc.Home(r.Context())
}

// swagger:route GET /pages/apps/{id} Pages pagesApp
// @Summary App page data
// @Tags Pages
// @Produce json
// @Param id path string true "App id"
// @Param filter query domain.FilterInput false "Filter"
// @Success 200 {object} domain.AppPage "ok"
// @Router /pages/apps/{id} [get]
func (h *handlers) app(r *stdhttp.Request, in domain.FilterInput) (any, error) {
	snap, err := in.Snapshot()
	if err != nil {
		return nil, err
	}
	return h.svc.App(r.Context(), httpkit.URLParam(r, "id"), snap)
}

// swagger:route GET /pages/items/{item} Pages pagesItem
// @Summary Item page data
// @Tags Pages
// @Produce json
// @Param item path string true "Item id"
// @Success 200 {object} domain.ItemPage "ok"
// @Router /pages/items/{item} [get]
func (h *handlers) item(r *stdhttp.Request) (any, error) {
	return h.svc.Item(r.Context(), httpkit.URLParam(r, "item"))
}

// swagger:route GET /pages/admin Pages pagesAdmin
// @Summary Admin page data
// @Tags Pages
// @Produce json
// @Success 200 {object} domain.AdminPage "ok"
// @Router /pages/admin [get]
func (h *handlers) admin(r *stdhttp.Request) (any, error) {
	return h.svc.Admin(r.Context())
}

// swagger:route GET /query Query queryPreview
// @Summary Preview the backend list query for a filter
// @Tags Query
// @Produce json
// @Param filter query domain.QueryInput false "Filter"
// @Success 200 {object} domain.QueryPreview "ok"
// @Router /query [get]
func (h *handlers) query(_ *stdhttp.Request, in domain.QueryInput) (any, error) {
	snap, err := in.Snapshot()
	if err != nil {
		return nil, err
	}
	return h.svc.Preview(snap)
}

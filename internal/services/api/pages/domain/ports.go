package domain

import (
	"context"

	"workshopdex/internal/adapters/workshop"
	"workshopdex/internal/core/query"
)

// ServicePort is consumed by handlers and the CLI
type ServicePort interface {
	Home(ctx context.Context) (HomePage, error)
	App(ctx context.Context, id string, s query.Snapshot) (AppPage, error)
	Item(ctx context.Context, id string) (ItemPage, error)
	Admin(ctx context.Context) (AdminPage, error)
	Preview(s query.Snapshot) (QueryPreview, error)
}

// Backend is the slice of the workshop client the page loaders use
type Backend interface {
	Apps(ctx context.Context) (workshop.Payload, error)
	App(ctx context.Context, id string) (workshop.Payload, error)
	Item(ctx context.Context, id string) (workshop.Payload, error)
	Listing(ctx context.Context, rawQuery string) (workshop.Result, error)
	Admin(ctx context.Context, name string) (workshop.Payload, bool, error)
	Builder() query.Builder
	BaseURL() string
}

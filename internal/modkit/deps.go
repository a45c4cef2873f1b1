// Package modkit provides module wiring and core deps
package modkit

import (
	"time"

	"workshopdex/internal/adapters/workshop"
	"workshopdex/internal/platform/config"
	"workshopdex/internal/platform/logger"
)

// Deps holds core dependencies passed to modules
// this is wiring only and does not introduce new abstractions
type Deps struct {
	Log       *logger.Logger
	Cfg       config.Conf
	Workshop  *workshop.Client
	StartedAt time.Time
}

// Logger returns Log, or a named root logger when unset
func (d Deps) Logger(component string) *logger.Logger {
	if d.Log != nil {
		l := d.Log.With().Str("component", component).Logger()
		return &l
	}
	return logger.Named(component)
}

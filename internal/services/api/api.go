// Package api provides the HTTP API for the gateway
package api

import (
	"time"

	"workshopdex/internal/adapters/workshop"
	"workshopdex/internal/platform/config"
	"workshopdex/internal/platform/logger"
	phttp "workshopdex/internal/platform/net/http"

	"workshopdex/internal/modkit"
	"workshopdex/internal/modkit/httpkit"
	"workshopdex/internal/modkit/swaggerkit"

	metamod "workshopdex/internal/services/api/meta/module"
	pagesmod "workshopdex/internal/services/api/pages/module"

	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Options are the API options
type Options struct {
	Config         config.Conf
	Logger         *logger.Logger
	Workshop       *workshop.Client
	EnableSwagger  bool
	EnableProfiler bool
	EnableMetrics  bool
	CORSOrigins    []string
	CORSMaxAge     int
	Timeout        time.Duration
	Slow           time.Duration
}

// OptionsFromConfig reads the gateway toggles under cfg's prefix
func OptionsFromConfig(cfg config.Conf) Options {
	return Options{
		Config:         cfg,
		EnableSwagger:  cfg.MayBool("SWAGGER", true),
		EnableProfiler: cfg.MayBool("PROFILER", false),
		EnableMetrics:  cfg.MayBool("METRICS", true),
		CORSOrigins:    cfg.MayCSV("CORS_ORIGINS", nil),
		CORSMaxAge:     cfg.MayInt("CORS_MAX_AGE", 300),
		Timeout:        cfg.MayDuration("TIMEOUT", 30*time.Second),
		Slow:           cfg.MayDuration("SLOW", time.Second),
	}
}

// Mount mounts the gateway onto the given router. Call it before anything else registers
// routes so the common stack applies everywhere
func Mount(r phttp.Router, opt Options) {
	if opt.Workshop == nil {
		panic("api.Mount requires a workshop client")
	}

	// shared deps for modules
	deps := modkit.Deps{
		Log:       opt.Logger,
		Cfg:       opt.Config,
		Workshop:  opt.Workshop,
		StartedAt: time.Now(),
	}

	mods := []modkit.Module{
		metamod.New(deps),
		pagesmod.New(deps),
	}

	r.Use(httpkit.CommonStack(httpkit.StackOptions{
		CORSOrigins: opt.CORSOrigins,
		CORSMaxAge:  opt.CORSMaxAge,
		Timeout:     opt.Timeout,
		Slow:        opt.Slow,
	})...)

	// Swagger + profiler + metrics
	swaggerkit.Mount(r, opt.EnableSwagger)
	phttp.MountProfiler(r, "/debug", opt.EnableProfiler)
	if opt.EnableMetrics {
		r.Handle("/metrics", promhttp.Handler())
	}

	log := deps.Logger("api")
	httpkit.MountAPIV1(r, nil, func(api httpkit.Router) {
		for _, m := range mods {
			m.MountRoutes(api)
			log.Debug().Str("module", m.Name()).Msg("module mounted")
		}
	})
}

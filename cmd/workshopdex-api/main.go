// @title         workshopdex gateway
// @version       1.0
// @description   Read only JSON gateway over the workshop backend page loads

package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"workshopdex/internal/adapters/workshop"
	"workshopdex/internal/core/version"
	"workshopdex/internal/platform/config"
	"workshopdex/internal/platform/logger"
	phttp "workshopdex/internal/platform/net/http"

	"workshopdex/internal/services/api"
)

func main() {
	root := config.New()
	apiCfg := root.Prefix("GATEWAY_")     // gateway http surface lives under GATEWAY_*
	wsCfg := root.Prefix("WORKSHOP_API_") // backend client lives under WORKSHOP_API_*

	// bring up logging early
	l := logger.Get()
	l.Info().Str("build", version.Info("workshopdex-api").String()).Msg("starting")

	ws := workshop.NewClient(workshop.FromConfig(wsCfg))
	l.Info().Str("backend", ws.BaseURL()).Msg("workshop backend")

	// http server (reads GATEWAY_API_PORT)
	srv := phttp.NewServer(apiCfg)

	opt := api.OptionsFromConfig(apiCfg)
	opt.Logger = l
	opt.Workshop = ws
	api.Mount(srv.Router(), opt)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// run until signalled
	if err := srv.Run(ctx); err != nil {
		l.Panic().Err(err).Msg("http server stopped")
	}
	l.Info().Msg("bye")
}

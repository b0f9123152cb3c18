package handler

import (
	"net/http"
	"sync"

	"seatq/config"
	"seatq/di"
	"seatq/internal/app"
	"seatq/shared/logger"

	"github.com/rs/zerolog/log"
)

var (
	once        sync.Once
	application *app.App
	initErr     error
)

// Handler serves the API from a serverless function. The rebalancer does not
// run here: an arrival is still seated on join, but a freed table stays idle
// until the next join or a call to POST /v1/queue/rebalance.
func Handler(w http.ResponseWriter, r *http.Request) {
	r.RequestURI = r.URL.String()

	once.Do(func() {
		logger.InitLogger()

		var cfg *config.Config
		if cfg, initErr = config.Load(); initErr != nil {
			return
		}

		logger.SetLogLevel(cfg)

		application, _, initErr = di.InitializeService()
	})

	if initErr != nil {
		log.Error().Err(initErr).Msg("Failed to initialize service")
		http.Error(w, http.StatusText(http.StatusServiceUnavailable), http.StatusServiceUnavailable)

		return
	}

	application.ServeHTTP(w, r)
}

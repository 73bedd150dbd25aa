package stats

import (
	"net/http"

	"github.com/rs/zerolog"

	"bookshelf/internal/httpx"
)

type HTTPHandler struct {
	engine *Engine
	logger zerolog.Logger
}

func NewHTTPHandler(engine *Engine, logger zerolog.Logger) *HTTPHandler {
	return &HTTPHandler{
		engine: engine,
		logger: logger.With().Str("component", "stats_handler").Logger(),
	}
}

// Get handles GET /stats.
func (h *HTTPHandler) Get(w http.ResponseWriter, r *http.Request) {
	snap, err := h.engine.Compute(r.Context())
	if err != nil {
		h.logger.Error().Err(err).Msg("compute stats failed")
		httpx.JSONError(w, http.StatusServiceUnavailable, httpx.CodeStoreError, "catalog is unavailable", nil)
		return
	}
	httpx.JSONSuccess(r, w, snap)
}

// Decades handles GET /stats/decades.
func (h *HTTPHandler) Decades(w http.ResponseWriter, r *http.Request) {
	dist, err := h.engine.DecadeDistribution(r.Context())
	if err != nil {
		h.logger.Error().Err(err).Msg("decade distribution failed")
		httpx.JSONError(w, http.StatusServiceUnavailable, httpx.CodeStoreError, "catalog is unavailable", nil)
		return
	}
	httpx.JSONSuccess(r, w, dist)
}

package api

import (
	"context"
	"net/http"
	"time"

	"github.com/rpupo63/developer-portfolio-backend/errs"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type pinger interface {
	Ping(ctx context.Context) error
}

type healthHandler struct {
	responder   Responder
	logger      zerolog.Logger
	db          pinger
	startupTime time.Time
}

func newHealthHandler(db pinger, startupTime time.Time) healthHandler {
	logger := log.With().Str("handlerName", "healthHandler").Logger()

	return healthHandler{
		responder:   NewResponder(logger),
		logger:      logger,
		db:          db,
		startupTime: startupTime,
	}
}

type healthResponse struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
	Database  string    `json:"database"`
	StartedAt time.Time `json:"startedAt"`
	Uptime    string    `json:"uptime"`
}

// check pings the database with a two second budget and reports whether it answered.
func (h healthHandler) check(ctx context.Context) (healthResponse, bool) {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	now := time.Now()
	response := healthResponse{
		Status:    "ok",
		Timestamp: now,
		Database:  "ok",
		StartedAt: h.startupTime,
		Uptime:    now.Sub(h.startupTime).Round(time.Second).String(),
	}

	if err := h.db.Ping(ctx); err != nil {
		h.logger.Error().Err(err).Msg("Database ping failed")
		response.Status = "degraded"
		response.Database = "unreachable"
		return response, false
	}
	return response, true
}

// healthcheck reports 503 when the database does not answer
// @Router /healthcheck [get]
func (h healthHandler) healthcheck() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		response, ok := h.check(r.Context())
		status := http.StatusOK
		if !ok {
			status = http.StatusServiceUnavailable
		}
		h.responder.WriteJSONStatus(w, status, response)
	}
}

// healthcheckQuery is the remote procedure form of healthcheck.
func (h healthHandler) healthcheckQuery() operation {
	return func(ctx context.Context, _ []byte, _ *int64) (any, error) {
		response, ok := h.check(ctx)
		if !ok {
			apiErr := errs.NewApiErr(http.StatusServiceUnavailable, "service unavailable")
			apiErr.Details = "database unreachable"
			return nil, apiErr
		}
		return response, nil
	}
}

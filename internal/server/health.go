package server

import (
	"context"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/iota-uz/iam-console/pkg/composables"
	"github.com/iota-uz/iam-console/pkg/httpapi"
)

const healthPingTimeout = 2 * time.Second

type healthResponse struct {
	Status  string `json:"status"`
	Storage string `json:"storage"`
}

// healthController answers the ops health probe. In postgres mode it pings the pool.
type healthController struct {
	storage string
	pool    *pgxpool.Pool
}

func (c *healthController) Key() string {
	return "/health"
}

func (c *healthController) Register(r *mux.Router) {
	r.HandleFunc("/health", c.Health).Methods(http.MethodGet)
}

func (c *healthController) Health(w http.ResponseWriter, r *http.Request) {
	if c.pool != nil {
		ctx, cancel := context.WithTimeout(r.Context(), healthPingTimeout)
		defer cancel()
		if err := c.pool.Ping(ctx); err != nil {
			composables.UseLogger(r.Context()).WithError(err).Warn("health: database ping failed")
			_ = httpapi.WriteError(w, http.StatusServiceUnavailable, "DB_UNAVAILABLE", "database is unreachable", errorMeta(r))
			return
		}
	}
	_ = httpapi.WriteJSON(w, http.StatusOK, healthResponse{Status: "ok", Storage: c.storage})
}

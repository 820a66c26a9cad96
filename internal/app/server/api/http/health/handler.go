package health

import (
	"context"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"golang.org/x/exp/slog"
)

const (
	statusOK       = "OK"
	statusDegraded = "DEGRADED"
	statusDown     = "DOWN"

	pingTimeout = 2 * time.Second
)

type Pinger interface {
	Ping(ctx context.Context) error
}

type Handler struct {
	db         Pinger
	log        *slog.Logger
	middleware huma.Middlewares
}

func NewHandler(db Pinger, log *slog.Logger, middleware huma.Middlewares) *Handler {
	return &Handler{
		db:         db,
		log:        log,
		middleware: middleware,
	}
}

func (h *Handler) SetupRoutes(api huma.API) {
	huma.Register(api, h.healthCheckOp(), h.healthCheck)
}

func (h *Handler) healthCheck(ctx context.Context, _ *Input) (*Output, error) {
	ctx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()

	resp := Response{Status: statusOK, Database: statusOK}
	if err := h.db.Ping(ctx); err != nil {
		h.log.Warn("database ping failed", "error", err)
		resp.Status = statusDegraded
		resp.Database = statusDown
	}

	return &Output{Body: resp}, nil
}

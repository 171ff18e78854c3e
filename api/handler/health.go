package handler

import (
	"net/http"
	"time"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/fastygo/boilerplate/api/transport"
	"github.com/fastygo/boilerplate/internal/infrastructure/monitor"
	"github.com/fastygo/boilerplate/pkg/httpcontext"
)

// StatusSource provides the latest collection snapshot.
type StatusSource interface {
	GetStatus() monitor.Status
}

type HealthHandler struct {
	baseHandler
	monitor StatusSource
	started time.Time
}

func NewHealthHandler(mon StatusSource, adapter *httpcontext.Adapter, logger *zap.Logger) *HealthHandler {
	return &HealthHandler{
		baseHandler: newBaseHandler(adapter, logger),
		monitor:     mon,
		started:     time.Now(),
	}
}

// @Summary Health check
// @Tags health
// @Router /health [get]
func (h *HealthHandler) Check(ctx *fasthttp.RequestCtx) {
	now := h.now()
	payload := transport.HealthResponse{
		Status:    "OK",
		Timestamp: now.UTC().Format(transport.TimestampLayout),
		Uptime:    now.Sub(h.started).Seconds(),
	}
	if h.monitor != nil {
		status := h.monitor.GetStatus()
		payload.Collections = map[string]int{
			"tasks": status.Tasks,
			"users": status.Users,
		}
		payload.Journal = &transport.JournalHealth{
			Enabled: status.JournalEnabled,
			Entries: status.JournalEntries,
		}
	}
	h.respondJSON(ctx, http.StatusOK, payload)
}

package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/fastygo/boilerplate/api/transport"
	"github.com/fastygo/boilerplate/domain"
	"github.com/fastygo/boilerplate/pkg/httpcontext"
	"github.com/fastygo/boilerplate/pkg/logger"
)

const (
	msgInternal    = "Internal Server Error"
	msgInvalidJSON = "Invalid JSON body"
	msgNoRoute     = "Route not found"
)

type baseHandler struct {
	adapter *httpcontext.Adapter
	logger  *zap.Logger
	now     func() time.Time
}

func newBaseHandler(adapter *httpcontext.Adapter, logger *zap.Logger) baseHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return baseHandler{adapter: adapter, logger: logger, now: time.Now}
}

func (h baseHandler) requestContext(ctx *fasthttp.RequestCtx) (context.Context, context.CancelFunc) {
	if h.adapter != nil {
		return h.adapter.Attach(ctx)
	}
	return context.WithCancel(context.Background())
}

func (h baseHandler) respondJSON(ctx *fasthttp.RequestCtx, status int, payload interface{}) {
	body, err := json.Marshal(payload)
	if err != nil {
		h.logger.Error("failed to encode response", zap.Error(err))
		ctx.SetStatusCode(http.StatusInternalServerError)
		return
	}
	ctx.Response.Header.SetContentType("application/json")
	ctx.SetStatusCode(status)
	ctx.SetBody(body)
}

func (h baseHandler) respondSuccess(ctx *fasthttp.RequestCtx, status int, data interface{}) {
	h.respondJSON(ctx, status, transport.NewSuccess(data))
}

func (h baseHandler) respondList(ctx *fasthttp.RequestCtx, data interface{}, total int) {
	h.respondJSON(ctx, http.StatusOK, transport.NewList(data, total))
}

func (h baseHandler) respondNoContent(ctx *fasthttp.RequestCtx) {
	ctx.SetStatusCode(http.StatusNoContent)
	ctx.ResetBody()
}

// respondError reports validation and not-found conditions with their precise
// message and hands everything else to respondInternal.
func (h baseHandler) respondError(ctx *fasthttp.RequestCtx, err error) {
	switch {
	case domain.IsDomainError(err, domain.ErrCodeInvalid):
		h.respondJSON(ctx, http.StatusBadRequest, transport.ErrorMessage{Error: domain.PublicMessage(err, "invalid payload")})
	case domain.IsDomainError(err, domain.ErrCodeNotFound):
		h.respondJSON(ctx, http.StatusNotFound, transport.ErrorMessage{Error: domain.PublicMessage(err, "not found")})
	default:
		h.respondInternal(ctx, err)
	}
}

// respondInternal logs the full error and renders a redacted envelope.
func (h baseHandler) respondInternal(ctx *fasthttp.RequestCtx, err error) {
	status := http.StatusInternalServerError

	h.logger.Error("request failed",
		zap.String("request_id", httpcontext.RequestID(ctx)),
		zap.ByteString("method", ctx.Method()),
		zap.ByteString("path", ctx.Path()),
		zap.Error(err))
	h.respondJSON(ctx, status, transport.NewErrorEnvelope(status, msgInternal, string(ctx.Path()), h.now()))
}

// decodeBody unmarshals a JSON request body into dst. An empty body leaves dst
// untouched. It reports false after writing a 400 response.
func (h baseHandler) decodeBody(ctx *fasthttp.RequestCtx, dst interface{}) bool {
	body := ctx.PostBody()
	if len(body) == 0 {
		return true
	}
	if err := json.Unmarshal(body, dst); err != nil {
		h.logger.Debug("malformed request body",
			zap.String("request_id", httpcontext.RequestID(ctx)),
			zap.Error(err))
		h.respondJSON(ctx, http.StatusBadRequest,
			transport.NewErrorEnvelope(http.StatusBadRequest, msgInvalidJSON, string(ctx.Path()), h.now()))
		return false
	}
	return true
}

func (h baseHandler) log(stdCtx context.Context) *zap.Logger {
	return logger.WithRequestID(stdCtx, h.logger)
}

func pathID(ctx *fasthttp.RequestCtx) string {
	id, _ := ctx.UserValue("id").(string)
	return id
}

// Fallback renders unmatched routes and recovered panics.
type Fallback struct {
	baseHandler
}

func NewFallback(logger *zap.Logger) *Fallback {
	return &Fallback{baseHandler: newBaseHandler(nil, logger)}
}

// NotFound answers every request no route matched.
func (f *Fallback) NotFound(ctx *fasthttp.RequestCtx) {
	f.respondJSON(ctx, http.StatusNotFound, transport.ErrorMessage{
		Error: msgNoRoute,
		Path:  string(ctx.Path()),
	})
}

// Panic converts a recovered panic into a redacted 500 response.
func (f *Fallback) Panic(ctx *fasthttp.RequestCtx, recovered interface{}) {
	err, ok := recovered.(error)
	if !ok {
		err = errors.New("panic: " + toString(recovered))
	}
	f.logger.Error("handler panicked", zap.Stack("stack"))
	f.respondInternal(ctx, err)
}

func toString(v interface{}) string {
	if s, ok := v.(string); ok {
		return s
	}
	b, err := json.Marshal(v)
	if err != nil {
		return "unknown"
	}
	return string(b)
}

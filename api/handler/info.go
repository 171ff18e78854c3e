package handler

import (
	"net/http"

	"github.com/valyala/fasthttp"

	"github.com/fastygo/boilerplate/api/transport"
)

type InfoHandler struct {
	baseHandler
	info transport.APIInfo
}

func NewInfoHandler(name, version string) *InfoHandler {
	return &InfoHandler{
		baseHandler: newBaseHandler(nil, nil),
		info: transport.APIInfo{
			Message: name,
			Version: version,
			Endpoints: map[string]string{
				"users": "/api/users",
				"tasks": "/api/tasks",
			},
		},
	}
}

// @Summary API index
// @Tags meta
// @Router /api [get]
func (h *InfoHandler) Index(ctx *fasthttp.RequestCtx) {
	h.respondJSON(ctx, http.StatusOK, h.info)
}

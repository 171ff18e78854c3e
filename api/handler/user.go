package handler

import (
	"net/http"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/fastygo/boilerplate/api/transport"
	"github.com/fastygo/boilerplate/pkg/httpcontext"
	userUC "github.com/fastygo/boilerplate/usecase/user"
)

type UserHandler struct {
	baseHandler
	uc *userUC.UseCase
}

func NewUserHandler(uc *userUC.UseCase, adapter *httpcontext.Adapter, logger *zap.Logger) *UserHandler {
	return &UserHandler{
		baseHandler: newBaseHandler(adapter, logger),
		uc:          uc,
	}
}

// @Summary List users
// @Tags users
// @Router /api/users [get]
func (h *UserHandler) ListUsers(ctx *fasthttp.RequestCtx) {
	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	users, err := h.uc.ListUsers(stdCtx)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondList(ctx, users, len(users))
}

// @Summary Get user
// @Tags users
// @Router /api/users/{id} [get]
func (h *UserHandler) GetUser(ctx *fasthttp.RequestCtx) {
	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	user, err := h.uc.GetUser(stdCtx, pathID(ctx))
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, user)
}

// @Summary Create user
// @Tags users
// @Router /api/users [post]
func (h *UserHandler) CreateUser(ctx *fasthttp.RequestCtx) {
	var req transport.UserCreateRequest
	if !h.decodeBody(ctx, &req) {
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	created, err := h.uc.CreateUser(stdCtx, userUC.CreateInput{Name: req.Name, Email: req.Email})
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.log(stdCtx).Info("user created", zap.String("user_id", created.ID))
	h.respondSuccess(ctx, http.StatusCreated, created)
}

// @Summary Update user
// @Tags users
// @Router /api/users/{id} [put]
func (h *UserHandler) UpdateUser(ctx *fasthttp.RequestCtx) {
	var req transport.UserUpdateRequest
	if !h.decodeBody(ctx, &req) {
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	updated, err := h.uc.UpdateUser(stdCtx, pathID(ctx), req.Patch())
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, updated)
}

// @Summary Delete user
// @Tags users
// @Router /api/users/{id} [delete]
func (h *UserHandler) DeleteUser(ctx *fasthttp.RequestCtx) {
	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	id := pathID(ctx)
	if err := h.uc.DeleteUser(stdCtx, id); err != nil {
		h.respondError(ctx, err)
		return
	}
	h.log(stdCtx).Info("user deleted", zap.String("user_id", id))
	h.respondNoContent(ctx)
}

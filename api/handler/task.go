package handler

import (
	"net/http"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/fastygo/boilerplate/api/transport"
	"github.com/fastygo/boilerplate/domain"
	"github.com/fastygo/boilerplate/pkg/httpcontext"
	"github.com/fastygo/boilerplate/repository"
	taskUC "github.com/fastygo/boilerplate/usecase/task"
)

type TaskHandler struct {
	baseHandler
	uc *taskUC.UseCase
}

func NewTaskHandler(uc *taskUC.UseCase, adapter *httpcontext.Adapter, logger *zap.Logger) *TaskHandler {
	return &TaskHandler{
		baseHandler: newBaseHandler(adapter, logger),
		uc:          uc,
	}
}

// @Summary List tasks
// @Tags tasks
// @Param completed query bool false "only tasks with this completion state"
// @Param priority query string false "low, medium or high"
// @Router /api/tasks [get]
func (h *TaskHandler) ListTasks(ctx *fasthttp.RequestCtx) {
	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	tasks, err := h.uc.ListTasks(stdCtx, parseTaskFilter(ctx.QueryArgs()))
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondList(ctx, tasks, len(tasks))
}

// @Summary Get task
// @Tags tasks
// @Router /api/tasks/{id} [get]
func (h *TaskHandler) GetTask(ctx *fasthttp.RequestCtx) {
	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	task, err := h.uc.GetTask(stdCtx, pathID(ctx))
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, task)
}

// @Summary Create task
// @Tags tasks
// @Accept json
// @Produce json
// @Router /api/tasks [post]
func (h *TaskHandler) CreateTask(ctx *fasthttp.RequestCtx) {
	var req transport.TaskCreateRequest
	if !h.decodeBody(ctx, &req) {
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	created, err := h.uc.CreateTask(stdCtx, taskUC.CreateInput{
		Title:       req.Title,
		Description: req.Description,
		Priority:    req.Priority,
	})
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.log(stdCtx).Info("task created", zap.String("task_id", created.ID))
	h.respondSuccess(ctx, http.StatusCreated, created)
}

// @Summary Update task
// @Tags tasks
// @Accept json
// @Produce json
// @Router /api/tasks/{id} [put]
func (h *TaskHandler) UpdateTask(ctx *fasthttp.RequestCtx) {
	var req transport.TaskUpdateRequest
	if !h.decodeBody(ctx, &req) {
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	updated, err := h.uc.UpdateTask(stdCtx, pathID(ctx), req.Patch())
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, updated)
}

// @Summary Delete task
// @Tags tasks
// @Router /api/tasks/{id} [delete]
func (h *TaskHandler) DeleteTask(ctx *fasthttp.RequestCtx) {
	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	id := pathID(ctx)
	if err := h.uc.DeleteTask(stdCtx, id); err != nil {
		h.respondError(ctx, err)
		return
	}
	h.log(stdCtx).Info("task deleted", zap.String("task_id", id))
	h.respondNoContent(ctx)
}

// parseTaskFilter follows the query semantics of the list endpoint: any
// completed value other than "true" selects open tasks.
func parseTaskFilter(args *fasthttp.Args) repository.TaskFilter {
	var filter repository.TaskFilter
	if args.Has("completed") {
		completed := string(args.Peek("completed")) == "true"
		filter.Completed = &completed
	}
	filter.Priority = domain.Priority(args.Peek("priority"))
	return filter
}

package router

import (
	"github.com/fasthttp/router"
	"github.com/valyala/fasthttp"

	apiHandler "github.com/fastygo/boilerplate/api/handler"
)

type Handlers struct {
	Task     *apiHandler.TaskHandler
	User     *apiHandler.UserHandler
	Health   *apiHandler.HealthHandler
	Info     *apiHandler.InfoHandler
	Fallback *apiHandler.Fallback
}

// Middleware wraps a request handler.
type Middleware func(fasthttp.RequestHandler) fasthttp.RequestHandler

// New builds the route table. Middlewares wrap the whole router, outermost
// first, so they also see unmatched routes and preflight requests.
func New(handlers Handlers, middlewares ...Middleware) fasthttp.RequestHandler {
	r := router.New()
	r.RedirectTrailingSlash = false
	r.RedirectFixedPath = false
	// unsupported methods fall through to NotFound
	r.HandleMethodNotAllowed = false
	r.HandleOPTIONS = false
	r.NotFound = handlers.Fallback.NotFound
	r.PanicHandler = handlers.Fallback.Panic

	r.GET("/health", handlers.Health.Check)
	r.GET("/api", handlers.Info.Index)

	r.GET("/api/tasks", handlers.Task.ListTasks)
	r.POST("/api/tasks", handlers.Task.CreateTask)
	r.GET("/api/tasks/{id}", handlers.Task.GetTask)
	r.PUT("/api/tasks/{id}", handlers.Task.UpdateTask)
	r.DELETE("/api/tasks/{id}", handlers.Task.DeleteTask)

	r.GET("/api/users", handlers.User.ListUsers)
	r.POST("/api/users", handlers.User.CreateUser)
	r.GET("/api/users/{id}", handlers.User.GetUser)
	r.PUT("/api/users/{id}", handlers.User.UpdateUser)
	r.DELETE("/api/users/{id}", handlers.User.DeleteUser)

	h := r.Handler
	for i := len(middlewares) - 1; i >= 0; i-- {
		h = middlewares[i](h)
	}
	return h
}

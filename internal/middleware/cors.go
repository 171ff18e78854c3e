package middleware

import (
	"net/http"
	"strings"

	"github.com/valyala/fasthttp"
)

var (
	corsMethods = "GET, POST, PUT, DELETE, OPTIONS"
	corsHeaders = "Content-Type, Authorization, X-Request-ID"
)

// CORS allows the listed origins with credentials and answers preflight
// requests directly with 204.
func CORS(origins []string) func(fasthttp.RequestHandler) fasthttp.RequestHandler {
	allowed := make(map[string]struct{}, len(origins))
	for _, origin := range origins {
		allowed[strings.TrimRight(origin, "/")] = struct{}{}
	}

	return func(next fasthttp.RequestHandler) fasthttp.RequestHandler {
		return func(ctx *fasthttp.RequestCtx) {
			origin := string(ctx.Request.Header.Peek("Origin"))
			_, ok := allowed[origin]
			if ok {
				ctx.Response.Header.Set("Access-Control-Allow-Origin", origin)
				ctx.Response.Header.Set("Access-Control-Allow-Credentials", "true")
				ctx.Response.Header.Add("Vary", "Origin")
			}

			if ctx.IsOptions() && len(ctx.Request.Header.Peek("Access-Control-Request-Method")) > 0 {
				if ok {
					ctx.Response.Header.Set("Access-Control-Allow-Methods", corsMethods)
					ctx.Response.Header.Set("Access-Control-Allow-Headers", corsHeaders)
				}
				ctx.SetStatusCode(http.StatusNoContent)
				return
			}

			next(ctx)
		}
	}
}

package middleware

import "github.com/valyala/fasthttp"

var securityHeaders = [][2]string{
	{"X-Content-Type-Options", "nosniff"},
	{"X-Frame-Options", "SAMEORIGIN"},
	{"X-DNS-Prefetch-Control", "off"},
	{"Referrer-Policy", "no-referrer"},
	{"Cross-Origin-Resource-Policy", "same-origin"},
	{"Content-Security-Policy", "default-src 'self'"},
}

// SecureHeaders sets conservative browser security headers on every response.
func SecureHeaders(next fasthttp.RequestHandler) fasthttp.RequestHandler {
	return func(ctx *fasthttp.RequestCtx) {
		for _, kv := range securityHeaders {
			ctx.Response.Header.Set(kv[0], kv[1])
		}
		next(ctx)
	}
}

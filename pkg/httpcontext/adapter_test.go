package httpcontext_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/valyala/fasthttp"

	"github.com/fastygo/boilerplate/pkg/httpcontext"
	"github.com/fastygo/boilerplate/pkg/logger"
)

func TestAttachPropagatesRequestID(t *testing.T) {
	var ctx fasthttp.RequestCtx
	ctx.Request.SetRequestURI("/api/tasks")
	ctx.Request.Header.Set(httpcontext.HeaderRequestID, "abc")
	ctx.Request.Header.SetUserAgent("taskctl")

	stdCtx, cancel := httpcontext.NewAdapter(time.Second).Attach(&ctx)
	defer cancel()

	assert.Equal(t, "abc", logger.RequestID(stdCtx))
	assert.Equal(t, "abc", string(ctx.Response.Header.Peek(httpcontext.HeaderRequestID)))
	assert.Equal(t, "/api/tasks", stdCtx.Value(httpcontext.KeyPath))
	assert.Equal(t, "taskctl", stdCtx.Value(httpcontext.KeyUserAgent))

	deadline, ok := stdCtx.Deadline()
	assert.True(t, ok)
	assert.WithinDuration(t, time.Now().Add(time.Second), deadline, 500*time.Millisecond)
}

func TestRequestIDIsGeneratedOnce(t *testing.T) {
	var ctx fasthttp.RequestCtx
	first := httpcontext.RequestID(&ctx)
	assert.Len(t, first, 36)
	assert.Equal(t, first, httpcontext.RequestID(&ctx))
}

package apiclient_test

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/valyala/fasthttp"

	"github.com/fastygo/boilerplate/pkg/apiclient"
)

type doerFunc func(req *fasthttp.Request, resp *fasthttp.Response) error

func (f doerFunc) Do(req *fasthttp.Request, resp *fasthttp.Response) error {
	return f(req, resp)
}

func (f doerFunc) DoDeadline(req *fasthttp.Request, resp *fasthttp.Response, _ time.Time) error {
	return f(req, resp)
}

func respondWith(status int, body string) doerFunc {
	return func(_ *fasthttp.Request, resp *fasthttp.Response) error {
		resp.SetStatusCode(status)
		resp.SetBodyString(body)
		return nil
	}
}

const baseURL = "http://localhost:3001/api"

func TestGetReturnsEnvelope(t *testing.T) {
	var gotURI, gotMethod, gotType string
	client := apiclient.New(baseURL, apiclient.WithDoer(doerFunc(func(req *fasthttp.Request, resp *fasthttp.Response) error {
		gotURI = req.URI().String()
		gotMethod = string(req.Header.Method())
		gotType = string(req.Header.ContentType())
		resp.SetStatusCode(http.StatusOK)
		resp.SetBodyString(`{"data":[{"id":"1","name":"Test"}],"total":1}`)
		return nil
	})))

	resp, err := client.Get(context.Background(), "/test")
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:3001/api/test", gotURI)
	assert.Equal(t, http.MethodGet, gotMethod)
	assert.Equal(t, "application/json", gotType)
	assert.JSONEq(t, `[{"id":"1","name":"Test"}]`, string(resp.Data))
	require.NotNil(t, resp.Total)
	assert.Equal(t, 1, *resp.Total)
}

func TestPostBody(t *testing.T) {
	var body []byte
	client := apiclient.New(baseURL, apiclient.WithDoer(doerFunc(func(req *fasthttp.Request, resp *fasthttp.Response) error {
		body = append([]byte(nil), req.Body()...)
		resp.SetStatusCode(http.StatusCreated)
		resp.SetBodyString(`{"data":{"id":"1"}}`)
		return nil
	})))

	_, err := client.Post(context.Background(), "/test", map[string]string{"name": "New Item"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"name":"New Item"}`, string(body))

	_, err = client.Post(context.Background(), "/test", nil)
	require.NoError(t, err)
	assert.Empty(t, body)
}

func TestDeleteWithEmptyBody(t *testing.T) {
	client := apiclient.New(baseURL, apiclient.WithDoer(respondWith(http.StatusNoContent, "")))

	resp, err := client.Delete(context.Background(), "/test/1")
	require.NoError(t, err)
	assert.Empty(t, resp.Data)
	assert.Nil(t, resp.Total)
}

func TestErrorTranslation(t *testing.T) {
	cases := []struct {
		name    string
		status  int
		body    string
		kind    apiclient.Kind
		message string
		detail  string
	}{
		{
			name:    "structured envelope",
			status:  http.StatusNotFound,
			body:    `{"error":{"message":"Not found","status":404,"timestamp":"2024-01-01T00:00:00.000Z","path":"/test"}}`,
			kind:    apiclient.KindNotFound,
			message: "Not found",
		},
		{
			name:    "short error string",
			status:  http.StatusBadRequest,
			body:    `{"error":"Title is required"}`,
			kind:    apiclient.KindValidation,
			message: "HTTP 400",
			detail:  "Title is required",
		},
		{
			name:    "short not found string",
			status:  http.StatusNotFound,
			body:    `{"error":"Task not found"}`,
			kind:    apiclient.KindNotFound,
			message: "HTTP 404",
			detail:  "Task not found",
		},
		{
			name:    "malformed error body",
			status:  http.StatusInternalServerError,
			body:    `{}`,
			kind:    apiclient.KindUnknown,
			message: "HTTP 500",
		},
		{
			name:    "envelope without message",
			status:  http.StatusNotFound,
			body:    `{"error":{"status":404}}`,
			kind:    apiclient.KindNotFound,
			message: "HTTP 404",
		},
		{
			name:    "not json",
			status:  http.StatusBadGateway,
			body:    `<html>bad gateway</html>`,
			kind:    apiclient.KindUnknown,
			message: "HTTP 502",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			client := apiclient.New(baseURL, apiclient.WithDoer(respondWith(tc.status, tc.body)))

			_, err := client.Get(context.Background(), "/test")
			require.Error(t, err)
			assert.Equal(t, tc.message, err.Error())

			var apiErr *apiclient.Error
			require.ErrorAs(t, err, &apiErr)
			assert.Equal(t, tc.kind, apiErr.Kind)
			assert.Equal(t, tc.status, apiErr.Status)
			assert.Equal(t, tc.detail, apiErr.Detail)
			assert.Equal(t, tc.detail, apiclient.DetailOf(err))
		})
	}
}

func TestTransportFailure(t *testing.T) {
	cause := errors.New("Network error")
	client := apiclient.New(baseURL, apiclient.WithDoer(doerFunc(func(*fasthttp.Request, *fasthttp.Response) error {
		return cause
	})))

	_, err := client.Get(context.Background(), "/test")
	require.Error(t, err)
	assert.Equal(t, "Network error", err.Error())
	assert.Equal(t, apiclient.KindNetwork, apiclient.KindOf(err))
	assert.ErrorIs(t, err, cause)
}

func TestTransportPanicWithoutError(t *testing.T) {
	client := apiclient.New(baseURL, apiclient.WithDoer(doerFunc(func(*fasthttp.Request, *fasthttp.Response) error {
		panic("Unknown error")
	})))

	_, err := client.Get(context.Background(), "/test")
	require.Error(t, err)
	assert.Equal(t, apiclient.ErrMsgNetworkFailure, err.Error())
	assert.Equal(t, apiclient.KindUnknown, apiclient.KindOf(err))
}

func TestTransportPanicWithError(t *testing.T) {
	client := apiclient.New(baseURL, apiclient.WithDoer(doerFunc(func(*fasthttp.Request, *fasthttp.Response) error {
		panic(errors.New("connection reset"))
	})))

	_, err := client.Get(context.Background(), "/test")
	require.Error(t, err)
	assert.Equal(t, "connection reset", err.Error())
	assert.Equal(t, apiclient.KindNetwork, apiclient.KindOf(err))
}

func TestCancelledContextSkipsTransport(t *testing.T) {
	called := false
	client := apiclient.New(baseURL, apiclient.WithDoer(doerFunc(func(*fasthttp.Request, *fasthttp.Response) error {
		called = true
		return nil
	})))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := client.Get(ctx, "/test")
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, apiclient.KindNetwork, apiclient.KindOf(err))
	assert.False(t, called)
}

type deadlineDoer struct {
	deadline time.Time
}

func (d *deadlineDoer) Do(*fasthttp.Request, *fasthttp.Response) error {
	return errors.New("Do must not be used when a deadline is set")
}

func (d *deadlineDoer) DoDeadline(_ *fasthttp.Request, resp *fasthttp.Response, deadline time.Time) error {
	d.deadline = deadline
	resp.SetStatusCode(http.StatusOK)
	resp.SetBodyString(`{"data":null}`)
	return nil
}

func TestDeadlineIsForwarded(t *testing.T) {
	doer := &deadlineDoer{}
	client := apiclient.New(baseURL, apiclient.WithDoer(doer))

	deadline := time.Now().Add(time.Minute)
	ctx, cancel := context.WithDeadline(context.Background(), deadline)
	defer cancel()

	_, err := client.Get(ctx, "/test")
	require.NoError(t, err)
	assert.True(t, doer.deadline.Equal(deadline))
}

func TestHealth(t *testing.T) {
	var gotURI string
	healthy := apiclient.New(baseURL, apiclient.WithDoer(doerFunc(func(req *fasthttp.Request, resp *fasthttp.Response) error {
		gotURI = req.URI().String()
		resp.SetStatusCode(http.StatusOK)
		return nil
	})))
	assert.True(t, healthy.Health(context.Background()))
	assert.Equal(t, "http://localhost:3001/health", gotURI)

	unhealthy := apiclient.New(baseURL, apiclient.WithDoer(respondWith(http.StatusInternalServerError, "")))
	assert.False(t, unhealthy.Health(context.Background()))

	unreachable := apiclient.New(baseURL, apiclient.WithDoer(doerFunc(func(*fasthttp.Request, *fasthttp.Response) error {
		return errors.New("Network error")
	})))
	assert.False(t, unreachable.Health(context.Background()))

	panicking := apiclient.New(baseURL, apiclient.WithDoer(doerFunc(func(*fasthttp.Request, *fasthttp.Response) error {
		panic("boom")
	})))
	assert.False(t, panicking.Health(context.Background()))
}

package apiclient

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/fastygo/boilerplate/api/transport"
)

// Response is the decoded success envelope with data left raw.
type Response = transport.RawEnvelope

// Doer sends one HTTP request. *fasthttp.Client satisfies it.
type Doer interface {
	Do(req *fasthttp.Request, resp *fasthttp.Response) error
	DoDeadline(req *fasthttp.Request, resp *fasthttp.Response, deadline time.Time) error
}

// Client issues single-attempt JSON requests against the resource API.
type Client struct {
	baseURL string
	doer    Doer
	logger  *zap.Logger
}

type Option func(*Client)

// WithDoer replaces the default fasthttp client.
func WithDoer(doer Doer) Option {
	return func(c *Client) {
		if doer != nil {
			c.doer = doer
		}
	}
}

func WithLogger(logger *zap.Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// New returns a client for baseURL, e.g. "http://localhost:3001/api".
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		doer:    &fasthttp.Client{Name: "taskctl"},
		logger:  zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL returns the configured base URL without a trailing slash.
func (c *Client) BaseURL() string {
	return c.baseURL
}

func (c *Client) Get(ctx context.Context, path string) (*Response, error) {
	return c.request(ctx, http.MethodGet, path, nil)
}

// Post sends payload as the JSON body. A nil payload sends no body.
func (c *Client) Post(ctx context.Context, path string, payload interface{}) (*Response, error) {
	return c.request(ctx, http.MethodPost, path, payload)
}

// Put sends payload as the JSON body. A nil payload sends no body.
func (c *Client) Put(ctx context.Context, path string, payload interface{}) (*Response, error) {
	return c.request(ctx, http.MethodPut, path, payload)
}

func (c *Client) Delete(ctx context.Context, path string) (*Response, error) {
	return c.request(ctx, http.MethodDelete, path, nil)
}

// Health probes the service's health endpoint, which lives next to the API
// root rather than under it. It never returns an error.
func (c *Client) Health(ctx context.Context) bool {
	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(c.healthURL())
	req.Header.SetMethod(http.MethodGet)

	if err := c.send(ctx, req, resp); err != nil {
		c.logger.Debug("health probe failed", zap.Error(err))
		return false
	}
	status := resp.StatusCode()
	return status >= 200 && status < 300
}

func (c *Client) healthURL() string {
	return strings.TrimSuffix(c.baseURL, "/api") + "/health"
}

func (c *Client) request(ctx context.Context, method, path string, payload interface{}) (*Response, error) {
	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(c.baseURL + path)
	req.Header.SetMethod(method)
	req.Header.SetContentType("application/json")
	if payload != nil {
		body, err := json.Marshal(payload)
		if err != nil {
			return nil, &Error{Kind: KindUnknown, Message: err.Error(), Err: err}
		}
		req.SetBodyRaw(body)
	}

	if err := c.send(ctx, req, resp); err != nil {
		c.logger.Debug("request failed",
			zap.String("method", method),
			zap.String("path", path),
			zap.Error(err))
		return nil, err
	}

	status := resp.StatusCode()
	body := resp.Body()
	c.logger.Debug("request served",
		zap.String("method", method),
		zap.String("path", path),
		zap.Int("status", status))

	if status < 200 || status >= 300 {
		message, detail := errorText(body)
		return nil, statusError(status, message, detail)
	}

	out := &Response{}
	if len(body) == 0 {
		return out, nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return nil, &Error{Kind: KindUnknown, Status: status, Message: err.Error(), Err: err}
	}
	return out, nil
}

// send performs the round trip and converts transport failures, including
// panics raised by the Doer, into *Error.
func (c *Client) send(ctx context.Context, req *fasthttp.Request, resp *fasthttp.Response) (err error) {
	if ctxErr := ctx.Err(); ctxErr != nil {
		return networkError(ctxErr)
	}

	defer func() {
		if r := recover(); r != nil {
			if rErr, ok := r.(error); ok {
				err = networkError(rErr)
				return
			}
			err = &Error{Kind: KindUnknown, Message: ErrMsgNetworkFailure}
		}
	}()

	if deadline, ok := ctx.Deadline(); ok {
		err = c.doer.DoDeadline(req, resp, deadline)
	} else {
		err = c.doer.Do(req, resp)
	}
	if err != nil {
		return networkError(err)
	}
	return nil
}

// errorText reads a failure body. message is error.message of the structured
// envelope; detail is the text of the short {"error":"..."} form. Both are
// empty when the body is not an error envelope.
func errorText(body []byte) (message, detail string) {
	var parsed transport.ErrorResponse
	if err := json.Unmarshal(body, &parsed); err != nil || parsed.Error == nil {
		return "", ""
	}
	if parsed.Error.Structured {
		return parsed.Error.Message, ""
	}
	return "", parsed.Error.Message
}

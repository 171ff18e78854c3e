package transport

import (
	"encoding/json"
	"time"
)

// TimestampLayout renders envelope timestamps with millisecond precision.
const TimestampLayout = "2006-01-02T15:04:05.000Z07:00"

// Envelope is the success wrapper: {data} for single records and {data,total}
// for lists.
type Envelope struct {
	Data  interface{} `json:"data"`
	Total *int        `json:"total,omitempty"`
}

// NewSuccess wraps a single record.
func NewSuccess(data interface{}) Envelope {
	return Envelope{Data: data}
}

// NewList wraps a list together with its length.
func NewList(data interface{}, total int) Envelope {
	return Envelope{Data: data, Total: &total}
}

// RawEnvelope is the client-side view of Envelope with data left undecoded.
type RawEnvelope struct {
	Data  json.RawMessage `json:"data"`
	Total *int            `json:"total,omitempty"`
}

// ErrorMessage is the short error body handlers emit for conditions they
// detect themselves, e.g. {"error":"Task not found"}.
type ErrorMessage struct {
	Error string `json:"error"`
	Path  string `json:"path,omitempty"`
}

// ErrorDetail is the body of the centralized error envelope.
type ErrorDetail struct {
	Message   string `json:"message"`
	Status    int    `json:"status"`
	Timestamp string `json:"timestamp"`
	Path      string `json:"path"`
}

// ErrorEnvelope is rendered by the centralized error handler:
// {"error":{"message","status","timestamp","path"}}.
type ErrorEnvelope struct {
	Error ErrorDetail `json:"error"`
}

// NewErrorEnvelope stamps an ErrorEnvelope with the current time.
func NewErrorEnvelope(status int, message, path string, now time.Time) ErrorEnvelope {
	return ErrorEnvelope{Error: ErrorDetail{
		Message:   message,
		Status:    status,
		Timestamp: now.UTC().Format(TimestampLayout),
		Path:      path,
	}}
}

// ErrorBody decodes the "error" member of any error response, accepting both
// the short string form and the structured object form.
type ErrorBody struct {
	ErrorDetail
	// Structured is true when the member was an object.
	Structured bool
}

func (b *ErrorBody) UnmarshalJSON(data []byte) error {
	var text string
	if err := json.Unmarshal(data, &text); err == nil {
		b.ErrorDetail = ErrorDetail{Message: text}
		b.Structured = false
		return nil
	}
	var detail ErrorDetail
	if err := json.Unmarshal(data, &detail); err != nil {
		return err
	}
	b.ErrorDetail = detail
	b.Structured = true
	return nil
}

// ErrorResponse is the client-side view of any non-2xx body.
type ErrorResponse struct {
	Error *ErrorBody `json:"error"`
}

// HealthResponse is served on /health.
type HealthResponse struct {
	Status      string         `json:"status"`
	Timestamp   string         `json:"timestamp"`
	Uptime      float64        `json:"uptime"`
	Collections map[string]int `json:"collections,omitempty"`
	Journal     *JournalHealth `json:"journal,omitempty"`
}

type JournalHealth struct {
	Enabled bool `json:"enabled"`
	Entries int  `json:"entries"`
}

// APIInfo is served on /api.
type APIInfo struct {
	Message   string            `json:"message"`
	Version   string            `json:"version"`
	Endpoints map[string]string `json:"endpoints"`
}

// String returns the JSON representation (best-effort) for logging purposes.
func (e Envelope) String() string {
	out, err := json.Marshal(e)
	if err != nil {
		return "{}"
	}
	return string(out)
}

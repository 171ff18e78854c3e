package journal

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

const (
	EntityTask = "task"
	EntityUser = "user"
)

// Entry is one successful mutation of a collection record.
type Entry struct {
	ID        string          `json:"id"`
	Entity    string          `json:"entity"`
	Operation string          `json:"operation"`
	RecordID  string          `json:"record_id"`
	Data      json.RawMessage `json:"data,omitempty"`
	Timestamp time.Time       `json:"timestamp"`
}

func (e *Entry) normalize() {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	if e.Timestamp.IsZero() {
		e.Timestamp = time.Now().UTC()
	}
}

package domain

import "time"

// Priority ranks a task. The zero value is not a valid priority.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// DefaultPriority is assigned to tasks created without an explicit priority.
const DefaultPriority = PriorityMedium

// Valid reports whether p is one of the known priorities.
func (p Priority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}

// ParsePriority validates a raw priority value.
func ParsePriority(raw string) (Priority, error) {
	p := Priority(raw)
	if !p.Valid() {
		return "", ErrInvalidPriority
	}
	return p, nil
}

// Task represents a to-do item in the task collection.
type Task struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	Completed   bool      `json:"completed"`
	Priority    Priority  `json:"priority"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// Touch refreshes UpdatedAt with now, keeping it strictly ahead of the
// previous value even when the clock has not advanced.
func (t *Task) Touch(now time.Time) {
	if t == nil {
		return
	}
	if !now.After(t.UpdatedAt) {
		now = t.UpdatedAt.Add(time.Nanosecond)
	}
	t.UpdatedAt = now
	if t.CreatedAt.IsZero() {
		t.CreatedAt = t.UpdatedAt
	}
}

// TaskPatch carries the fields of a partial task update. Unset fields keep
// their current value.
type TaskPatch struct {
	Title       Optional[string]
	Description Optional[string]
	Completed   Optional[bool]
	Priority    Optional[string]
}

// Validate checks the provided fields without touching any task.
func (p TaskPatch) Validate() error {
	if p.Title.Set && (p.Title.Null || p.Title.Value == "") {
		return ErrTitleEmpty
	}
	if p.Completed.Set && p.Completed.Null {
		return ErrCompletedNull
	}
	if p.Priority.Set {
		if p.Priority.Null {
			return ErrInvalidPriority
		}
		if _, err := ParsePriority(p.Priority.Value); err != nil {
			return err
		}
	}
	return nil
}

// Apply copies the provided fields onto t. Callers validate first.
func (p TaskPatch) Apply(t *Task) {
	if p.Title.Set {
		t.Title = p.Title.Value
	}
	if p.Description.Set {
		// null clears the description
		t.Description = p.Description.Value
	}
	if p.Completed.Set {
		t.Completed = p.Completed.Value
	}
	if p.Priority.Set {
		t.Priority = Priority(p.Priority.Value)
	}
}

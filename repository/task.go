package repository

import (
	"context"

	"github.com/fastygo/boilerplate/domain"
)

// TaskFilter narrows List results. Nil / empty fields do not filter.
type TaskFilter struct {
	Completed *bool
	Priority  domain.Priority
}

// Matches reports whether task passes every set filter.
func (f TaskFilter) Matches(task *domain.Task) bool {
	if f.Completed != nil && task.Completed != *f.Completed {
		return false
	}
	if f.Priority != "" && task.Priority != f.Priority {
		return false
	}
	return true
}

type TaskRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Task, error)
	List(ctx context.Context, filter TaskFilter) ([]domain.Task, error)
	// Create assigns a fresh id and stores the task.
	Create(ctx context.Context, task *domain.Task) (*domain.Task, error)
	// Update runs apply on the stored task atomically and persists the result
	// unless apply returns an error.
	Update(ctx context.Context, id string, apply func(*domain.Task) error) (*domain.Task, error)
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int, error)
}

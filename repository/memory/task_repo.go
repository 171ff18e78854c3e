package memory

import (
	"context"

	"github.com/fastygo/boilerplate/domain"
	"github.com/fastygo/boilerplate/repository"
)

type taskRepository struct {
	items *collection[domain.Task]
}

func (r *taskRepository) GetByID(ctx context.Context, id string) (*domain.Task, error) {
	task, ok, err := r.items.get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, domain.ErrTaskNotFound
	}
	return &task, nil
}

func (r *taskRepository) List(ctx context.Context, filter repository.TaskFilter) ([]domain.Task, error) {
	return r.items.list(ctx, filter.Matches)
}

func (r *taskRepository) Create(ctx context.Context, task *domain.Task) (*domain.Task, error) {
	if task == nil {
		return nil, domain.ErrInvalidPayload
	}
	created, err := r.items.insert(ctx, *task)
	if err != nil {
		return nil, err
	}
	return &created, nil
}

func (r *taskRepository) Update(ctx context.Context, id string, apply func(*domain.Task) error) (*domain.Task, error) {
	task, found, err := r.items.update(ctx, id, apply)
	if !found && err == nil {
		return nil, domain.ErrTaskNotFound
	}
	if err != nil {
		return nil, err
	}
	return &task, nil
}

func (r *taskRepository) Delete(ctx context.Context, id string) error {
	removed, err := r.items.remove(ctx, id)
	if err != nil {
		return err
	}
	if !removed {
		return domain.ErrTaskNotFound
	}
	return nil
}

func (r *taskRepository) Count(ctx context.Context) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	return r.items.size(), nil
}

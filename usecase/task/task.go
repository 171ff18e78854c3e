package task

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/fastygo/boilerplate/domain"
	"github.com/fastygo/boilerplate/repository"
	"github.com/fastygo/boilerplate/usecase"
)

// CreateInput holds the client-supplied fields of a new task.
type CreateInput struct {
	Title       string
	Description string
	Priority    string
}

type UseCase struct {
	tasks    repository.TaskRepository
	recorder usecase.MutationRecorder
	logger   *zap.Logger
	now      func() time.Time
}

type Option func(*UseCase)

// WithClock overrides the time source used for timestamps.
func WithClock(now func() time.Time) Option {
	return func(uc *UseCase) {
		if now != nil {
			uc.now = now
		}
	}
}

func New(tasks repository.TaskRepository, recorder usecase.MutationRecorder, logger *zap.Logger, opts ...Option) *UseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	uc := &UseCase{
		tasks:    tasks,
		recorder: recorder,
		logger:   logger,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(uc)
	}
	return uc
}

func (uc *UseCase) ListTasks(ctx context.Context, filter repository.TaskFilter) ([]domain.Task, error) {
	return uc.tasks.List(ctx, filter)
}

func (uc *UseCase) GetTask(ctx context.Context, id string) (*domain.Task, error) {
	return uc.tasks.GetByID(ctx, id)
}

func (uc *UseCase) CreateTask(ctx context.Context, in CreateInput) (*domain.Task, error) {
	if in.Title == "" {
		return nil, domain.ErrTitleRequired
	}
	priority := domain.DefaultPriority
	if in.Priority != "" {
		p, err := domain.ParsePriority(in.Priority)
		if err != nil {
			return nil, err
		}
		priority = p
	}

	now := uc.now().UTC()
	created, err := uc.tasks.Create(ctx, &domain.Task{
		Title:       in.Title,
		Description: in.Description,
		Priority:    priority,
		CreatedAt:   now,
		UpdatedAt:   now,
	})
	if err != nil {
		return nil, err
	}
	uc.record(ctx, usecase.OperationCreate, created)
	return created, nil
}

// UpdateTask applies the fields present in patch. The lookup happens first,
// so an unknown id reports not found even when the patch is invalid.
func (uc *UseCase) UpdateTask(ctx context.Context, id string, patch domain.TaskPatch) (*domain.Task, error) {
	updated, err := uc.tasks.Update(ctx, id, func(task *domain.Task) error {
		if err := patch.Validate(); err != nil {
			return err
		}
		patch.Apply(task)
		task.Touch(uc.now().UTC())
		return nil
	})
	if err != nil {
		return nil, err
	}
	uc.record(ctx, usecase.OperationUpdate, updated)
	return updated, nil
}

func (uc *UseCase) DeleteTask(ctx context.Context, id string) error {
	if err := uc.tasks.Delete(ctx, id); err != nil {
		return err
	}
	uc.record(ctx, usecase.OperationDelete, &domain.Task{ID: id})
	return nil
}

func (uc *UseCase) CountTasks(ctx context.Context) (int, error) {
	return uc.tasks.Count(ctx)
}

func (uc *UseCase) record(ctx context.Context, operation string, task *domain.Task) {
	if uc.recorder == nil {
		return
	}
	if err := uc.recorder.RecordTask(ctx, operation, task); err != nil {
		uc.logger.Warn("failed to record task mutation",
			zap.String("operation", operation),
			zap.String("task_id", task.ID),
			zap.Error(err))
	}
}

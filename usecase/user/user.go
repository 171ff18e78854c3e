package user

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/fastygo/boilerplate/domain"
	"github.com/fastygo/boilerplate/repository"
	"github.com/fastygo/boilerplate/usecase"
)

type CreateInput struct {
	Name  string
	Email string
}

type UseCase struct {
	users    repository.UserRepository
	recorder usecase.MutationRecorder
	logger   *zap.Logger
	now      func() time.Time
}

type Option func(*UseCase)

func WithClock(now func() time.Time) Option {
	return func(uc *UseCase) {
		if now != nil {
			uc.now = now
		}
	}
}

func New(users repository.UserRepository, recorder usecase.MutationRecorder, logger *zap.Logger, opts ...Option) *UseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	uc := &UseCase{
		users:    users,
		recorder: recorder,
		logger:   logger,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(uc)
	}
	return uc
}

func (uc *UseCase) ListUsers(ctx context.Context) ([]domain.User, error) {
	return uc.users.List(ctx)
}

func (uc *UseCase) GetUser(ctx context.Context, id string) (*domain.User, error) {
	return uc.users.GetByID(ctx, id)
}

func (uc *UseCase) CreateUser(ctx context.Context, in CreateInput) (*domain.User, error) {
	if in.Name == "" || in.Email == "" {
		return nil, domain.ErrNameEmailMissing
	}
	created, err := uc.users.Create(ctx, &domain.User{
		Name:      in.Name,
		Email:     in.Email,
		CreatedAt: uc.now().UTC(),
	})
	if err != nil {
		return nil, err
	}
	uc.record(ctx, usecase.OperationCreate, created)
	return created, nil
}

func (uc *UseCase) UpdateUser(ctx context.Context, id string, patch domain.UserPatch) (*domain.User, error) {
	updated, err := uc.users.Update(ctx, id, func(u *domain.User) error {
		if err := patch.Validate(); err != nil {
			return err
		}
		patch.Apply(u)
		return nil
	})
	if err != nil {
		return nil, err
	}
	uc.record(ctx, usecase.OperationUpdate, updated)
	return updated, nil
}

func (uc *UseCase) DeleteUser(ctx context.Context, id string) error {
	if err := uc.users.Delete(ctx, id); err != nil {
		return err
	}
	uc.record(ctx, usecase.OperationDelete, &domain.User{ID: id})
	return nil
}

func (uc *UseCase) CountUsers(ctx context.Context) (int, error) {
	return uc.users.Count(ctx)
}

func (uc *UseCase) record(ctx context.Context, operation string, u *domain.User) {
	if uc.recorder == nil {
		return
	}
	if err := uc.recorder.RecordUser(ctx, operation, u); err != nil {
		uc.logger.Warn("failed to record user mutation",
			zap.String("operation", operation),
			zap.String("user_id", u.ID),
			zap.Error(err))
	}
}

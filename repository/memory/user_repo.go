package memory

import (
	"context"

	"github.com/fastygo/boilerplate/domain"
)

type userRepository struct {
	items *collection[domain.User]
}

func (r *userRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	user, ok, err := r.items.get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return &user, nil
}

func (r *userRepository) List(ctx context.Context) ([]domain.User, error) {
	return r.items.list(ctx, nil)
}

func (r *userRepository) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	if user == nil {
		return nil, domain.ErrInvalidPayload
	}
	created, err := r.items.insert(ctx, *user)
	if err != nil {
		return nil, err
	}
	return &created, nil
}

func (r *userRepository) Update(ctx context.Context, id string, apply func(*domain.User) error) (*domain.User, error) {
	user, found, err := r.items.update(ctx, id, apply)
	if !found && err == nil {
		return nil, domain.ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) Delete(ctx context.Context, id string) error {
	removed, err := r.items.remove(ctx, id)
	if err != nil {
		return err
	}
	if !removed {
		return domain.ErrUserNotFound
	}
	return nil
}

func (r *userRepository) Count(ctx context.Context) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	return r.items.size(), nil
}

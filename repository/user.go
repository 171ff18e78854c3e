package repository

import (
	"context"

	"github.com/fastygo/boilerplate/domain"
)

type UserRepository interface {
	GetByID(ctx context.Context, id string) (*domain.User, error)
	List(ctx context.Context) ([]domain.User, error)
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	Update(ctx context.Context, id string, apply func(*domain.User) error) (*domain.User, error)
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int, error)
}

package usecase

import (
	"context"

	"github.com/fastygo/boilerplate/domain"
)

const (
	OperationCreate = "create"
	OperationUpdate = "update"
	OperationDelete = "delete"
)

// MutationRecorder receives every successful mutation so use cases stay
// unaware of where the audit trail lives.
type MutationRecorder interface {
	RecordTask(ctx context.Context, operation string, task *domain.Task) error
	RecordUser(ctx context.Context, operation string, user *domain.User) error
}

package services

import (
	"context"
	"encoding/json"

	"github.com/fastygo/boilerplate/domain"
	"github.com/fastygo/boilerplate/internal/infrastructure/journal"
	"github.com/fastygo/boilerplate/usecase"
)

// Appender is the slice of journal.Store the recorder needs.
type Appender interface {
	Append(entry journal.Entry) error
}

// JournalRecorder turns use-case mutations into journal entries.
type JournalRecorder struct {
	journal Appender
}

func NewJournalRecorder(journal Appender) *JournalRecorder {
	return &JournalRecorder{journal: journal}
}

func (r *JournalRecorder) RecordTask(ctx context.Context, operation string, task *domain.Task) error {
	if task == nil {
		return domain.ErrInvalidPayload
	}
	return r.append(ctx, journal.EntityTask, operation, task.ID, task)
}

func (r *JournalRecorder) RecordUser(ctx context.Context, operation string, user *domain.User) error {
	if user == nil {
		return domain.ErrInvalidPayload
	}
	return r.append(ctx, journal.EntityUser, operation, user.ID, user)
}

func (r *JournalRecorder) append(ctx context.Context, entity, operation, id string, record interface{}) error {
	if r.journal == nil {
		return nil
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	var data json.RawMessage
	if operation != usecase.OperationDelete {
		payload, err := json.Marshal(record)
		if err != nil {
			return err
		}
		data = payload
	}
	return r.journal.Append(journal.Entry{
		Entity:    entity,
		Operation: operation,
		RecordID:  id,
		Data:      data,
	})
}

var _ usecase.MutationRecorder = (*JournalRecorder)(nil)

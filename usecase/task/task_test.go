package task_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fastygo/boilerplate/domain"
	"github.com/fastygo/boilerplate/repository/memory"
	"github.com/fastygo/boilerplate/usecase"
	taskUC "github.com/fastygo/boilerplate/usecase/task"
)

type recordedMutation struct {
	operation string
	id        string
}

type fakeRecorder struct {
	mu   sync.Mutex
	err  error
	seen []recordedMutation
}

func (r *fakeRecorder) RecordTask(_ context.Context, operation string, task *domain.Task) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seen = append(r.seen, recordedMutation{operation: operation, id: task.ID})
	return r.err
}

func (r *fakeRecorder) RecordUser(context.Context, string, *domain.User) error {
	return errors.New("unexpected user mutation")
}

// stepClock advances by one second on every reading.
type stepClock struct {
	current time.Time
}

func (c *stepClock) Now() time.Time {
	c.current = c.current.Add(time.Second)
	return c.current
}

func newUseCase(t *testing.T) (*taskUC.UseCase, *fakeRecorder) {
	t.Helper()
	clock := &stepClock{current: time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)}
	recorder := &fakeRecorder{}
	uc := taskUC.New(memory.NewStore(nil).Tasks(), recorder, nil, taskUC.WithClock(clock.Now))
	return uc, recorder
}

func TestCreateTaskDefaults(t *testing.T) {
	uc, recorder := newUseCase(t)

	created, err := uc.CreateTask(context.Background(), taskUC.CreateInput{Title: "Buy milk"})
	require.NoError(t, err)

	assert.NotEmpty(t, created.ID)
	assert.Equal(t, "Buy milk", created.Title)
	assert.False(t, created.Completed)
	assert.Equal(t, domain.PriorityMedium, created.Priority)
	assert.Equal(t, created.CreatedAt, created.UpdatedAt)
	assert.Equal(t, []recordedMutation{{usecase.OperationCreate, created.ID}}, recorder.seen)
}

func TestCreateTaskValidation(t *testing.T) {
	uc, recorder := newUseCase(t)
	ctx := context.Background()

	_, err := uc.CreateTask(ctx, taskUC.CreateInput{})
	assert.ErrorIs(t, err, domain.ErrTitleRequired)

	_, err = uc.CreateTask(ctx, taskUC.CreateInput{Title: "x", Priority: "urgent"})
	assert.ErrorIs(t, err, domain.ErrInvalidPriority)

	assert.Empty(t, recorder.seen)
}

func TestCreatedIDsAreUnique(t *testing.T) {
	uc, _ := newUseCase(t)
	ctx := context.Background()

	seen := map[string]bool{}
	for i := 0; i < 20; i++ {
		created, err := uc.CreateTask(ctx, taskUC.CreateInput{Title: "x"})
		require.NoError(t, err)
		require.False(t, seen[created.ID])
		seen[created.ID] = true
		if i%3 == 0 {
			require.NoError(t, uc.DeleteTask(ctx, created.ID))
		}
	}
}

func TestUpdateTaskKeepsOmittedFields(t *testing.T) {
	uc, _ := newUseCase(t)
	ctx := context.Background()

	created, err := uc.CreateTask(ctx, taskUC.CreateInput{
		Title:       "Buy milk",
		Description: "two liters",
		Priority:    "high",
	})
	require.NoError(t, err)

	updated, err := uc.UpdateTask(ctx, created.ID, domain.TaskPatch{Completed: domain.Some(true)})
	require.NoError(t, err)

	assert.Equal(t, created.ID, updated.ID)
	assert.Equal(t, created.CreatedAt, updated.CreatedAt)
	assert.Equal(t, "Buy milk", updated.Title)
	assert.Equal(t, "two liters", updated.Description)
	assert.Equal(t, domain.PriorityHigh, updated.Priority)
	assert.True(t, updated.Completed)
	assert.True(t, updated.UpdatedAt.After(created.UpdatedAt))
}

func TestUpdateTaskClearsDescriptionOnNull(t *testing.T) {
	uc, _ := newUseCase(t)
	ctx := context.Background()

	created, err := uc.CreateTask(ctx, taskUC.CreateInput{Title: "a", Description: "b"})
	require.NoError(t, err)

	updated, err := uc.UpdateTask(ctx, created.ID, domain.TaskPatch{Description: domain.Null[string]()})
	require.NoError(t, err)
	assert.Empty(t, updated.Description)
}

func TestUpdateTaskErrors(t *testing.T) {
	uc, recorder := newUseCase(t)
	ctx := context.Background()

	created, err := uc.CreateTask(ctx, taskUC.CreateInput{Title: "a"})
	require.NoError(t, err)

	_, err = uc.UpdateTask(ctx, "missing", domain.TaskPatch{Title: domain.Some("")})
	assert.ErrorIs(t, err, domain.ErrTaskNotFound)

	_, err = uc.UpdateTask(ctx, created.ID, domain.TaskPatch{Title: domain.Some("")})
	assert.ErrorIs(t, err, domain.ErrTitleEmpty)

	stored, err := uc.GetTask(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created, stored)
	assert.Len(t, recorder.seen, 1)
}

func TestDeleteTask(t *testing.T) {
	uc, recorder := newUseCase(t)
	ctx := context.Background()

	created, err := uc.CreateTask(ctx, taskUC.CreateInput{Title: "a"})
	require.NoError(t, err)

	require.NoError(t, uc.DeleteTask(ctx, created.ID))
	_, err = uc.GetTask(ctx, created.ID)
	assert.ErrorIs(t, err, domain.ErrTaskNotFound)
	assert.ErrorIs(t, uc.DeleteTask(ctx, created.ID), domain.ErrTaskNotFound)

	assert.Equal(t, recordedMutation{usecase.OperationDelete, created.ID}, recorder.seen[len(recorder.seen)-1])
}

func TestRecorderFailureDoesNotFailMutation(t *testing.T) {
	uc, recorder := newUseCase(t)
	recorder.err = errors.New("journal offline")

	created, err := uc.CreateTask(context.Background(), taskUC.CreateInput{Title: "a"})
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)
}

func TestCreateGetRoundTrip(t *testing.T) {
	uc, _ := newUseCase(t)
	ctx := context.Background()

	created, err := uc.CreateTask(ctx, taskUC.CreateInput{Title: "a", Description: "b", Priority: "low"})
	require.NoError(t, err)

	fetched, err := uc.GetTask(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created, fetched)
}

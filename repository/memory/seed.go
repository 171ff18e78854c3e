package memory

import (
	"context"
	"time"

	"github.com/fastygo/boilerplate/domain"
)

// Seed loads the starter records shown by a freshly started service.
func (s *Store) Seed(ctx context.Context, now time.Time) error {
	tasks := []domain.Task{
		{
			Title:       "Setup project",
			Description: "Initialize the boilerplate project",
			Completed:   true,
			Priority:    domain.PriorityHigh,
		},
		{
			Title:       "Create API endpoints",
			Description: "Build the REST API",
			Priority:    domain.PriorityMedium,
		},
	}
	for i := range tasks {
		tasks[i].CreatedAt, tasks[i].UpdatedAt = now, now
		if _, err := s.Tasks().Create(ctx, &tasks[i]); err != nil {
			return err
		}
	}

	users := []domain.User{
		{Name: "John Doe", Email: "john@example.com"},
		{Name: "Jane Smith", Email: "jane@example.com"},
	}
	for i := range users {
		users[i].CreatedAt = now
		if _, err := s.Users().Create(ctx, &users[i]); err != nil {
			return err
		}
	}
	return nil
}

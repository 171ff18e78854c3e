package memory

import (
	"github.com/fastygo/boilerplate/domain"
	"github.com/fastygo/boilerplate/repository"
)

// Store owns the task and user collections of one process. Nothing outside
// the store mutates them; handlers reach them through the repositories.
type Store struct {
	tasks *collection[domain.Task]
	users *collection[domain.User]
}

// NewStore builds an empty store, asking newIDs for one generator per collection.
func NewStore(newIDs GeneratorFactory) *Store {
	if newIDs == nil {
		newIDs = func() IDGenerator { return &Sequence{} }
	}
	return &Store{
		tasks: newCollection(newIDs(),
			func(t *domain.Task, id string) { t.ID = id },
		),
		users: newCollection(newIDs(),
			func(u *domain.User, id string) { u.ID = id },
		),
	}
}

// Tasks returns the task repository backed by this store.
func (s *Store) Tasks() repository.TaskRepository {
	return &taskRepository{items: s.tasks}
}

// Users returns the user repository backed by this store.
func (s *Store) Users() repository.UserRepository {
	return &userRepository{items: s.users}
}

// Close drops every record. The store stays usable afterwards.
func (s *Store) Close() error {
	s.tasks.reset()
	s.users.reset()
	return nil
}

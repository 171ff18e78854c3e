package transport

import "github.com/fastygo/boilerplate/domain"

type TaskCreateRequest struct {
	Title       string `json:"title,omitzero"`
	Description string `json:"description,omitempty"`
	Priority    string `json:"priority,omitempty"`
}

// TaskUpdateRequest tracks which fields the caller actually sent.
type TaskUpdateRequest struct {
	Title       domain.Optional[string] `json:"title,omitzero"`
	Description domain.Optional[string] `json:"description,omitzero"`
	Completed   domain.Optional[bool]   `json:"completed,omitzero"`
	Priority    domain.Optional[string] `json:"priority,omitzero"`
}

func (r TaskUpdateRequest) Patch() domain.TaskPatch {
	return domain.TaskPatch{
		Title:       r.Title,
		Description: r.Description,
		Completed:   r.Completed,
		Priority:    r.Priority,
	}
}

type UserCreateRequest struct {
	Name  string `json:"name,omitzero"`
	Email string `json:"email,omitzero"`
}

type UserUpdateRequest struct {
	Name  domain.Optional[string] `json:"name,omitzero"`
	Email domain.Optional[string] `json:"email,omitzero"`
}

func (r UserUpdateRequest) Patch() domain.UserPatch {
	return domain.UserPatch{Name: r.Name, Email: r.Email}
}

package domain

import "time"

// User represents a person record in the user collection.
type User struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"createdAt"`
}

// UserPatch carries the fields of a partial user update.
type UserPatch struct {
	Name  Optional[string]
	Email Optional[string]
}

func (p UserPatch) Validate() error {
	if p.Name.Set && (p.Name.Null || p.Name.Value == "") {
		return ErrNameEmpty
	}
	if p.Email.Set && (p.Email.Null || p.Email.Value == "") {
		return ErrEmailEmpty
	}
	return nil
}

func (p UserPatch) Apply(u *User) {
	if p.Name.Set {
		u.Name = p.Name.Value
	}
	if p.Email.Set {
		u.Email = p.Email.Value
	}
}

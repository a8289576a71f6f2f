package domain

import "errors"

var (
	ErrEmptyUserID   = errors.New("id is required")
	ErrEmptyUserName = errors.New("name is required")
)

// User is the guest identity a booking references. Immutable after creation.
type User struct {
	id   string
	name string
}

func NewUser(id, name string) (*User, error) {
	if id == "" {
		return nil, ErrEmptyUserID
	}

	if name == "" {
		return nil, ErrEmptyUserName
	}

	return &User{id: id, name: name}, nil
}

func (u *User) ID() string { return u.id }

func (u *User) Name() string { return u.name }

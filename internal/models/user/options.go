package models

import "github.com/google/uuid"

func WithID(id uuid.UUID) UserOption {
	return func(u *User) { u.ID = id }
}

func WithUsername(username string) UserOption {
	return func(u *User) { u.Username = username }
}

func WithRole(role string) UserOption {
	return func(u *User) { u.Role = role }
}

func AsAdmin() UserOption {
	return func(u *User) { u.Role = RoleAdmin }
}

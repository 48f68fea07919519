package domain

import (
	"errors"
	"time"
)

var (
	ErrPersonNotFound = errors.New("person not found")
	ErrEmailTaken     = errors.New("email already in use")
	ErrBadCredentials = errors.New("invalid email or password")
)

type Person struct {
	ID           int64
	Name         string
	FirstName    string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
}

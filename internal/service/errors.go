package service

import (
	"errors"
	"fmt"
)

var (
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("Invalid email or password!")
	ErrIncorrectPassword  = errors.New("Current password is incorrect.")
	ErrUserNotFound       = errors.New("User not found.")
	ErrContactNotFound    = errors.New("Contact not found")
	ErrMissingID          = errors.New("No ID specified.")
	ErrInvalidID          = errors.New("Please enter a valid ID")
)

// EmailTakenError names the address that is already registered.
// It matches ErrEmailTaken with errors.Is.
type EmailTakenError struct {
	Email string
}

func (e *EmailTakenError) Error() string {
	return fmt.Sprintf("a user with that email [%s] already exists so please try another one.", e.Email)
}

func (e *EmailTakenError) Is(target error) bool {
	return target == ErrEmailTaken
}

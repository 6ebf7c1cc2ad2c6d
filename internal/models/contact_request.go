package models

import "contactly-be/internal/entities"

// AddressInput is the optional address block of a contact payload.
// Empty strings are allowed and clear the field.
type AddressInput struct {
	Street     string `json:"street" validate:"omitempty,min=4,max=100"`
	City       string `json:"city" validate:"omitempty,min=2,max=50"`
	State      string `json:"state" validate:"omitempty,min=2,max=50"`
	PostalCode string `json:"postalCode" validate:"omitempty,min=4,max=20"`
}

// ToEntity converts the input to a stored address, nil when every field is empty.
func (a *AddressInput) ToEntity() *entities.Address {
	if a == nil {
		return nil
	}
	addr := entities.Address{
		Street:     a.Street,
		City:       a.City,
		State:      a.State,
		PostalCode: a.PostalCode,
	}
	if addr.IsZero() {
		return nil
	}
	return &addr
}

// CreateContactRequest represents the request body for creating a contact.
// The owner is never read from the payload.
type CreateContactRequest struct {
	Name     string        `json:"name" validate:"required,min=4,max=50"`
	Phone    string        `json:"phone" validate:"required,min=7,max=15,phone"`
	Email    string        `json:"email" validate:"required,email"`
	Address  *AddressInput `json:"address"`
	Notes    string        `json:"notes" validate:"max=500"`
	Birthday *Birthday     `json:"birthday"`
	Tags     []string      `json:"tags" validate:"max=20,dive,min=1,max=50"`
	Favorite bool          `json:"favorite"`
}

// UpdateContactRequest represents the request body for updating a contact.
// Nil fields are left unchanged.
type UpdateContactRequest struct {
	ID       string        `json:"id"`
	Name     *string       `json:"name" validate:"omitempty,min=4,max=50"`
	Phone    *string       `json:"phone" validate:"omitempty,min=7,max=15,phone"`
	Email    *string       `json:"email" validate:"omitempty,email"`
	Address  *AddressInput `json:"address"`
	Notes    *string       `json:"notes" validate:"omitempty,max=500"`
	Birthday *Birthday     `json:"birthday"`
	Tags     []string      `json:"tags" validate:"omitempty,max=20,dive,min=1,max=50"`
	Favorite *bool         `json:"favorite"`
}

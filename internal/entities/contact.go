package entities

import "time"

// Address is the optional postal address of a contact. Empty strings mean unset.
type Address struct {
	Street     string `json:"street,omitempty"`
	City       string `json:"city,omitempty"`
	State      string `json:"state,omitempty"`
	PostalCode string `json:"postalCode,omitempty"`
}

// IsZero reports whether no address field is set.
func (a Address) IsZero() bool {
	return a == Address{}
}

// Contact represents an address-book entry owned by exactly one user
type Contact struct {
	ID        string     `json:"_id"` // UUID
	Name      string     `json:"name"`
	Phone     string     `json:"phone"`
	Email     string     `json:"email"`
	Address   *Address   `json:"address,omitempty"`
	Notes     string     `json:"notes,omitempty"`
	Birthday  *time.Time `json:"birthday,omitempty"` // Date only, UTC midnight
	Tags      []string   `json:"tags"`
	Favorite  bool       `json:"favorite"`
	PostedBy  string     `json:"postedBy"` // Owning user ID
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`
}

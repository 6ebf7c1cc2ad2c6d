package models

import "contactly-be/internal/entities"

// Pagination describes the page of a paginated listing
type Pagination struct {
	Total      int `json:"total"`
	Page       int `json:"page"`
	TotalPages int `json:"totalPages"`
}

// ContactListResponse is returned by the contact listing endpoints.
// Pagination fields are only present for paginated requests.
type ContactListResponse struct {
	Contacts []*entities.Contact `json:"contacts"`
	*Pagination
}

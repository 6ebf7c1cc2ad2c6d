package models

import "contactly-be/internal/entities"

// LoginResponse is returned after a successful login
type LoginResponse struct {
	Token string         `json:"token"` // JWT token
	User  *entities.User `json:"user"`
}

// MessageResponse carries a human-readable confirmation
type MessageResponse struct {
	Message string `json:"message"`
}

package dto

import "github.com/davidjirca/dreamhome/domain"

// RegisterRequest is the payload for creating a user account.
type RegisterRequest struct {
	Email     string `json:"email" binding:"required,email"`
	Password  string `json:"password" binding:"required,min=8"`
	FirstName string `json:"first_name" binding:"required"`
	LastName  string `json:"last_name" binding:"required"`
	Phone     string `json:"phone"`
}

// LoginRequest is the payload for authenticating a user.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// LoginResponse carries the JWT and the authenticated user.
type LoginResponse struct {
	Token string      `json:"token"`
	User  domain.User `json:"user"`
}

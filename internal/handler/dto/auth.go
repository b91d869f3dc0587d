// Package dto provides Data Transfer Objects for API requests and responses.
package dto

import "github.com/clavier/clavier/internal/model"

// CredentialsRequest represents the request body for sign-up and sign-in.
type CredentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// UserResponse is the public view of a user. The password hash never
// leaves the server.
type UserResponse struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

// SessionResponse represents a successful sign-up or sign-in.
type SessionResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

// ErrorResponse represents an API error.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// ToSessionResponse converts a user and token to a SessionResponse.
func ToSessionResponse(token string, user *model.User) *SessionResponse {
	return &SessionResponse{
		Token: token,
		User: UserResponse{
			ID:    string(user.ID),
			Email: user.Email,
		},
	}
}

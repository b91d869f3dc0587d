// Package model defines domain entities for the application.
package model

import "time"

// UserID is an opaque user identifier.
// Ownership checks compare UserID values directly as typed values;
// never compare stringified forms.
type UserID string

// User represents a registered account.
// PasswordHash holds the Argon2id PHC string and is never serialized.
type User struct {
	ID           UserID    `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

// Identity is the authenticated caller resolved by the auth middleware
// from a verified bearer token.
type Identity struct {
	UserID UserID
}

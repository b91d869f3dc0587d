// Package model defines domain entities for the application.
package model

import "time"

// Score represents a saved musical phrase: a sequence of notes in a
// textual notation micro-language, composed on the piano UI.
type Score struct {
	ID          string `json:"id"`
	OwnerID     UserID `json:"owner_id"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	Notation    string `json:"notation"`

	// ClientTimestamp is the epoch-millis moment the phrase was played,
	// as reported by the composer UI. Optional and never updated.
	ClientTimestamp *int64 `json:"timestamp,omitempty"`

	CreatedAt time.Time `json:"created_at"`
}

// OwnedBy reports whether the score belongs to the given user.
func (s *Score) OwnedBy(id UserID) bool {
	return s.OwnerID == id
}

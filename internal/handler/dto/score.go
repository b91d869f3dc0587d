package dto

import (
	"time"

	"github.com/clavier/clavier/internal/model"
)

// CreateScoreRequest represents the request body for saving a score.
// Any other field, including an owner id, is rejected at decode time.
type CreateScoreRequest struct {
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	Notation    string `json:"notation"`
	Timestamp   *int64 `json:"timestamp,omitempty"`
}

// UpdateScoreRequest represents the patch body for an existing score.
// Only these three fields are mutable; nil means unchanged.
type UpdateScoreRequest struct {
	Title       *string `json:"title,omitempty"`
	Description *string `json:"description,omitempty"`
	Notation    *string `json:"notation,omitempty"`
}

// ScoreResponse represents a score in API responses.
type ScoreResponse struct {
	ID          string    `json:"id"`
	OwnerID     string    `json:"owner_id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	Notation    string    `json:"notation"`
	Timestamp   *int64    `json:"timestamp,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// DeleteScoreResponse acknowledges a deletion.
type DeleteScoreResponse struct {
	Deleted bool   `json:"deleted"`
	ID      string `json:"id"`
}

// ToScoreResponse converts a Score model to a ScoreResponse DTO.
func ToScoreResponse(score *model.Score) *ScoreResponse {
	return &ScoreResponse{
		ID:          score.ID,
		OwnerID:     string(score.OwnerID),
		Title:       score.Title,
		Description: score.Description,
		Notation:    score.Notation,
		Timestamp:   score.ClientTimestamp,
		CreatedAt:   score.CreatedAt,
	}
}

// ToScoreListResponse converts a slice of Score models to response DTOs.
func ToScoreListResponse(scores []*model.Score) []ScoreResponse {
	responses := make([]ScoreResponse, len(scores))
	for i, score := range scores {
		responses[i] = *ToScoreResponse(score)
	}
	return responses
}

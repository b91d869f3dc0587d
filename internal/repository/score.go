package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/clavier/clavier/internal/model"
)

// ErrScoreNotFound indicates no score exists with the given id.
var ErrScoreNotFound = errors.New("score not found")

// CreateScore inserts a new score into the database.
func (r *Repository) CreateScore(ctx context.Context, score *model.Score) error {
	query := `
		INSERT INTO scores (id, owner_id, title, description, notation, client_timestamp, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := r.pool.Exec(ctx, query,
		score.ID,
		score.OwnerID,
		score.Title,
		score.Description,
		score.Notation,
		score.ClientTimestamp,
		score.CreatedAt,
	)

	if err != nil {
		return fmt.Errorf("failed to create score: %w", err)
	}

	return nil
}

// GetScoreByID retrieves a score by its ID.
func (r *Repository) GetScoreByID(ctx context.Context, id string) (*model.Score, error) {
	query := `
		SELECT id, owner_id, title, description, notation, client_timestamp, created_at
		FROM scores
		WHERE id = $1
	`

	score, err := scanScore(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrScoreNotFound
		}
		return nil, fmt.Errorf("failed to get score by ID: %w", err)
	}

	return score, nil
}

// ListScoresByOwner retrieves all scores belonging to a user,
// most recently created first. A fresh query per call; no pagination.
func (r *Repository) ListScoresByOwner(ctx context.Context, ownerID model.UserID) ([]*model.Score, error) {
	query := `
		SELECT id, owner_id, title, description, notation, client_timestamp, created_at
		FROM scores
		WHERE owner_id = $1
		ORDER BY created_at DESC, id DESC
	`

	rows, err := r.pool.Query(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list scores: %w", err)
	}
	defer rows.Close()

	scores := make([]*model.Score, 0)
	for rows.Next() {
		score, err := scanScore(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan score: %w", err)
		}
		scores = append(scores, score)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating scores: %w", err)
	}

	return scores, nil
}

// UpdateScore writes a score's mutable fields (title, description, notation).
// The id and owner_id columns are never touched.
func (r *Repository) UpdateScore(ctx context.Context, score *model.Score) error {
	query := `
		UPDATE scores
		SET title = $2, description = $3, notation = $4
		WHERE id = $1
	`

	result, err := r.pool.Exec(ctx, query,
		score.ID,
		score.Title,
		score.Description,
		score.Notation,
	)

	if err != nil {
		return fmt.Errorf("failed to update score: %w", err)
	}

	if result.RowsAffected() == 0 {
		return ErrScoreNotFound
	}

	return nil
}

// DeleteScore removes a score permanently.
func (r *Repository) DeleteScore(ctx context.Context, id string) error {
	query := `DELETE FROM scores WHERE id = $1`

	result, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete score: %w", err)
	}

	if result.RowsAffected() == 0 {
		return ErrScoreNotFound
	}

	return nil
}

// scanScore scans a single row into a Score model.
func scanScore(row pgx.Row) (*model.Score, error) {
	var score model.Score
	err := row.Scan(
		&score.ID,
		&score.OwnerID,
		&score.Title,
		&score.Description,
		&score.Notation,
		&score.ClientTimestamp,
		&score.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &score, nil
}

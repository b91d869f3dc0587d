package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/clavier/clavier/internal/metrics"
	"github.com/clavier/clavier/internal/model"
	"github.com/clavier/clavier/internal/repository"
)

// Score service errors.
var (
	// ErrScoreNotFound indicates no score exists with the given id.
	ErrScoreNotFound = errors.New("score not found")
	// ErrNotOwner indicates the caller is authenticated but does not own the score.
	ErrNotOwner = errors.New("score belongs to another user")
	// ErrEmptyNotation indicates the notation string was empty.
	ErrEmptyNotation = errors.New("notation must not be empty")
	// ErrEmptyTitle indicates the title was empty.
	ErrEmptyTitle = errors.New("title must not be empty")
)

// ScoreStore is the persistence surface the score service needs.
// *repository.Repository satisfies it.
type ScoreStore interface {
	CreateScore(ctx context.Context, score *model.Score) error
	GetScoreByID(ctx context.Context, id string) (*model.Score, error)
	ListScoresByOwner(ctx context.Context, ownerID model.UserID) ([]*model.Score, error)
	UpdateScore(ctx context.Context, score *model.Score) error
	DeleteScore(ctx context.Context, id string) error
}

// ScoreService implements ownership-checked CRUD over saved scores.
// Every operation takes the caller identity resolved by the auth gate;
// only the owner of a score may read, update, or delete it.
type ScoreService struct {
	scores  ScoreStore
	metrics metrics.Recorder
}

// NewScoreService creates a new ScoreService.
func NewScoreService(scores ScoreStore, recorder metrics.Recorder) *ScoreService {
	if recorder == nil {
		recorder = metrics.NewNoop()
	}
	return &ScoreService{
		scores:  scores,
		metrics: recorder,
	}
}

// CreateScoreInput defines input for saving a new score.
type CreateScoreInput struct {
	Title           string
	Description     string
	Notation        string
	ClientTimestamp *int64
}

// UpdateScoreInput defines the patch for an existing score.
// Only title, description, and notation are mutable; nil means unchanged.
type UpdateScoreInput struct {
	Title       *string
	Description *string
	Notation    *string
}

// Create validates and persists a new score owned by the caller.
// The owner is always the authenticated identity, never client-supplied.
func (s *ScoreService) Create(ctx context.Context, identity model.Identity, input CreateScoreInput) (*model.Score, error) {
	if strings.TrimSpace(input.Notation) == "" {
		return nil, ErrEmptyNotation
	}
	if strings.TrimSpace(input.Title) == "" {
		return nil, ErrEmptyTitle
	}

	score := &model.Score{
		ID:              ulid.Make().String(),
		OwnerID:         identity.UserID,
		Title:           input.Title,
		Description:     input.Description,
		Notation:        input.Notation,
		ClientTimestamp: input.ClientTimestamp,
		CreatedAt:       time.Now().UTC(),
	}

	if err := s.scores.CreateScore(ctx, score); err != nil {
		return nil, fmt.Errorf("create score: %w", err)
	}

	s.metrics.IncScoreCreated()

	return score, nil
}

// List returns all of the caller's scores, most recent first.
func (s *ScoreService) List(ctx context.Context, identity model.Identity) ([]*model.Score, error) {
	scores, err := s.scores.ListScoresByOwner(ctx, identity.UserID)
	if err != nil {
		return nil, fmt.Errorf("list scores: %w", err)
	}

	s.metrics.IncScoreListed()

	return scores, nil
}

// Update applies a patch to a score the caller owns.
// Returns ErrScoreNotFound for a missing id and ErrNotOwner when the score
// belongs to someone else; a rejected update never mutates the record.
func (s *ScoreService) Update(ctx context.Context, identity model.Identity, id string, patch UpdateScoreInput) (*model.Score, error) {
	score, err := s.load(ctx, identity, id)
	if err != nil {
		return nil, err
	}

	if patch.Title != nil {
		if strings.TrimSpace(*patch.Title) == "" {
			return nil, ErrEmptyTitle
		}
		score.Title = *patch.Title
	}
	if patch.Description != nil {
		score.Description = *patch.Description
	}
	if patch.Notation != nil {
		if strings.TrimSpace(*patch.Notation) == "" {
			return nil, ErrEmptyNotation
		}
		score.Notation = *patch.Notation
	}

	if err := s.scores.UpdateScore(ctx, score); err != nil {
		if errors.Is(err, repository.ErrScoreNotFound) {
			return nil, ErrScoreNotFound
		}
		return nil, fmt.Errorf("update score: %w", err)
	}

	s.metrics.IncScoreUpdated()

	return score, nil
}

// Delete removes a score the caller owns.
func (s *ScoreService) Delete(ctx context.Context, identity model.Identity, id string) error {
	if _, err := s.load(ctx, identity, id); err != nil {
		return err
	}

	if err := s.scores.DeleteScore(ctx, id); err != nil {
		if errors.Is(err, repository.ErrScoreNotFound) {
			return ErrScoreNotFound
		}
		return fmt.Errorf("delete score: %w", err)
	}

	s.metrics.IncScoreDeleted()

	return nil
}

// load fetches a score and enforces ownership.
func (s *ScoreService) load(ctx context.Context, identity model.Identity, id string) (*model.Score, error) {
	score, err := s.scores.GetScoreByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrScoreNotFound) {
			return nil, ErrScoreNotFound
		}
		return nil, fmt.Errorf("get score: %w", err)
	}

	if !score.OwnedBy(identity.UserID) {
		return nil, ErrNotOwner
	}

	return score, nil
}

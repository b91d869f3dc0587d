package handler

import (
	"context"
	"io"
	"log/slog"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/clavier/clavier/internal/auth"
	"github.com/clavier/clavier/internal/middleware"
	"github.com/clavier/clavier/internal/model"
	"github.com/clavier/clavier/internal/repository"
	"github.com/clavier/clavier/internal/service"
)

// fakeUserStore is an in-memory service.UserStore keyed by email.
type fakeUserStore struct {
	mu    sync.Mutex
	users map[string]*model.User
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{users: make(map[string]*model.User)}
}

func (s *fakeUserStore) CreateUser(_ context.Context, user *model.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.users[user.Email]; exists {
		return repository.ErrEmailExists
	}
	copied := *user
	s.users[user.Email] = &copied
	return nil
}

func (s *fakeUserStore) GetUserByEmail(_ context.Context, email string) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, exists := s.users[email]
	if !exists {
		return nil, repository.ErrUserNotFound
	}
	copied := *user
	return &copied, nil
}

// fakeScoreStore is an in-memory service.ScoreStore keyed by score id.
type fakeScoreStore struct {
	mu     sync.Mutex
	scores map[string]*model.Score
}

func newFakeScoreStore() *fakeScoreStore {
	return &fakeScoreStore{scores: make(map[string]*model.Score)}
}

func (s *fakeScoreStore) CreateScore(_ context.Context, score *model.Score) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	copied := *score
	s.scores[score.ID] = &copied
	return nil
}

func (s *fakeScoreStore) GetScoreByID(_ context.Context, id string) (*model.Score, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	score, exists := s.scores[id]
	if !exists {
		return nil, repository.ErrScoreNotFound
	}
	copied := *score
	return &copied, nil
}

func (s *fakeScoreStore) ListScoresByOwner(_ context.Context, ownerID model.UserID) ([]*model.Score, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	result := make([]*model.Score, 0)
	for _, score := range s.scores {
		if score.OwnerID == ownerID {
			copied := *score
			result = append(result, &copied)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		if !result[i].CreatedAt.Equal(result[j].CreatedAt) {
			return result[i].CreatedAt.After(result[j].CreatedAt)
		}
		return result[i].ID > result[j].ID
	})
	return result, nil
}

func (s *fakeScoreStore) UpdateScore(_ context.Context, score *model.Score) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, exists := s.scores[score.ID]
	if !exists {
		return repository.ErrScoreNotFound
	}
	existing.Title = score.Title
	existing.Description = score.Description
	existing.Notation = score.Notation
	return nil
}

func (s *fakeScoreStore) DeleteScore(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.scores[id]; !exists {
		return repository.ErrScoreNotFound
	}
	delete(s.scores, id)
	return nil
}

// testEnv wires handlers, services, and the auth gate onto a router
// the same way the server entrypoint does, minus rate limiting.
type testEnv struct {
	router *chi.Mux
	tokens *auth.Tokens
	users  *fakeUserStore
	scores *fakeScoreStore
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	tokens := auth.NewTokens("test-secret-not-for-production", time.Hour)
	users := newFakeUserStore()
	scores := newFakeScoreStore()

	authService := service.NewAuthService(users, tokens, nil)
	scoreService := service.NewScoreService(scores, nil)

	h := New()
	authHandler := NewAuthHandler(authService, logger)
	scoreHandler := NewScoreHandler(scoreService, logger)

	r := chi.NewRouter()
	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Post("/signup", authHandler.Signup)
			r.Post("/signin", authHandler.Signin)
		})

		r.Route("/scores", func(r chi.Router) {
			r.Use(middleware.Auth(middleware.AuthConfig{
				Logger: logger,
				Tokens: tokens,
			}))

			r.Get("/", scoreHandler.List)
			r.Post("/", scoreHandler.Create)
			r.Put("/{id}", scoreHandler.Update)
			r.Delete("/{id}", scoreHandler.Delete)
		})
	})
	r.NotFound(h.NotFound)
	r.MethodNotAllowed(h.MethodNotAllowed)

	return &testEnv{
		router: r,
		tokens: tokens,
		users:  users,
		scores: scores,
	}
}

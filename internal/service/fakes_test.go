package service

import (
	"context"
	"sort"
	"sync"

	"github.com/clavier/clavier/internal/model"
	"github.com/clavier/clavier/internal/repository"
)

// fakeUserStore is an in-memory UserStore for unit tests.
type fakeUserStore struct {
	mu    sync.Mutex
	users map[string]*model.User // keyed by email
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{users: make(map[string]*model.User)}
}

func (f *fakeUserStore) CreateUser(_ context.Context, user *model.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if _, ok := f.users[user.Email]; ok {
		return repository.ErrEmailExists
	}
	copied := *user
	f.users[user.Email] = &copied
	return nil
}

func (f *fakeUserStore) GetUserByEmail(_ context.Context, email string) (*model.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	user, ok := f.users[email]
	if !ok {
		return nil, repository.ErrUserNotFound
	}
	copied := *user
	return &copied, nil
}

// fakeScoreStore is an in-memory ScoreStore for unit tests.
type fakeScoreStore struct {
	mu     sync.Mutex
	scores map[string]*model.Score
}

func newFakeScoreStore() *fakeScoreStore {
	return &fakeScoreStore{scores: make(map[string]*model.Score)}
}

func (f *fakeScoreStore) CreateScore(_ context.Context, score *model.Score) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	copied := *score
	f.scores[score.ID] = &copied
	return nil
}

func (f *fakeScoreStore) GetScoreByID(_ context.Context, id string) (*model.Score, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	score, ok := f.scores[id]
	if !ok {
		return nil, repository.ErrScoreNotFound
	}
	copied := *score
	return &copied, nil
}

func (f *fakeScoreStore) ListScoresByOwner(_ context.Context, ownerID model.UserID) ([]*model.Score, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	result := make([]*model.Score, 0)
	for _, score := range f.scores {
		if score.OwnerID == ownerID {
			copied := *score
			result = append(result, &copied)
		}
	}

	// Newest first, id as tiebreaker, matching the SQL ordering
	sort.Slice(result, func(i, j int) bool {
		if !result[i].CreatedAt.Equal(result[j].CreatedAt) {
			return result[i].CreatedAt.After(result[j].CreatedAt)
		}
		return result[i].ID > result[j].ID
	})

	return result, nil
}

func (f *fakeScoreStore) UpdateScore(_ context.Context, score *model.Score) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	existing, ok := f.scores[score.ID]
	if !ok {
		return repository.ErrScoreNotFound
	}

	// Only the mutable columns, as in the SQL UPDATE
	existing.Title = score.Title
	existing.Description = score.Description
	existing.Notation = score.Notation
	return nil
}

func (f *fakeScoreStore) DeleteScore(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if _, ok := f.scores[id]; !ok {
		return repository.ErrScoreNotFound
	}
	delete(f.scores, id)
	return nil
}

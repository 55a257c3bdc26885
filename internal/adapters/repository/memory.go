package repository

import (
	"context"
	"sort"
	"sync"

	"github.com/okian/callbreak/internal/domain/model"
)

// memoryStore is a mutex-guarded in-memory Store. Games are deep-copied on
// the way in and out so callers never share the stored aggregate.
type memoryStore struct {
	mu    sync.RWMutex
	games map[string]*model.Game
}

// NewMemoryStore creates an empty in-memory game store.
func NewMemoryStore() Store {
	return &memoryStore{games: make(map[string]*model.Game)}
}

func (m *memoryStore) Save(ctx context.Context, g *model.Game) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.games[g.ID] = g.Clone()
	return nil
}

func (m *memoryStore) FindByID(ctx context.Context, id string) (*model.Game, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	g, ok := m.games[id]
	if !ok {
		return nil, ErrNotFound
	}
	return g.Clone(), nil
}

func (m *memoryStore) ActiveGame(ctx context.Context) (*model.Game, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, g := range m.games {
		if g.Status == model.StatusInProgress {
			return g.Clone(), nil
		}
	}
	return nil, ErrNotFound
}

func (m *memoryStore) CompletedGames(ctx context.Context) ([]*model.Game, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []*model.Game
	for _, g := range m.games {
		if g.Status == model.StatusCompleted {
			out = append(out, g.Clone())
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return completedOrCreated(out[i]).After(completedOrCreated(out[j]))
	})
	return out, nil
}

func (m *memoryStore) AllGames(ctx context.Context) ([]*model.Game, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]*model.Game, 0, len(m.games))
	for _, g := range m.games {
		out = append(out, g.Clone())
	}
	sort.Slice(out, func(i, j int) bool {
		return completedOrCreated(out[i]).After(completedOrCreated(out[j]))
	})
	return out, nil
}

func (m *memoryStore) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.games, id)
	return nil
}

func (m *memoryStore) DeleteAll(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.games = make(map[string]*model.Game)
	return nil
}

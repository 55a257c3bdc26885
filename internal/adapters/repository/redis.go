package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"

	"github.com/redis/go-redis/v9"

	"github.com/okian/callbreak/internal/domain/model"
)

// Key scheme:
//
//	kv : cb:game:{id}  -> JSON-encoded Game
//	set: cb:games      -> Set(id, ...)
const (
	gameKeyPrefix = "cb:game:"
	gameIndexKey  = "cb:games"
)

// redisStore persists each game as a JSON record keyed by ID, with a set of
// IDs as the index. Listings load the full aggregates; the volume (one
// record per played game) keeps that cheap.
type redisStore struct {
	rdb *redis.Client
}

// NewRedisStore creates a Store backed by the given redis client.
func NewRedisStore(rdb *redis.Client) Store {
	return &redisStore{rdb: rdb}
}

func gameKey(id string) string {
	return gameKeyPrefix + id
}

func (r *redisStore) Save(ctx context.Context, g *model.Game) error {
	raw, err := json.Marshal(g)
	if err != nil {
		return fmt.Errorf("encode game %s: %w", g.ID, err)
	}
	p := r.rdb.Pipeline()
	p.Set(ctx, gameKey(g.ID), raw, 0)
	p.SAdd(ctx, gameIndexKey, g.ID)
	_, err = p.Exec(ctx)
	return err
}

func (r *redisStore) FindByID(ctx context.Context, id string) (*model.Game, error) {
	raw, err := r.rdb.Get(ctx, gameKey(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	var g model.Game
	if err := json.Unmarshal(raw, &g); err != nil {
		return nil, fmt.Errorf("decode game %s: %w", id, err)
	}
	return &g, nil
}

func (r *redisStore) ActiveGame(ctx context.Context) (*model.Game, error) {
	games, err := r.loadAll(ctx)
	if err != nil {
		return nil, err
	}
	for _, g := range games {
		if g.Status == model.StatusInProgress {
			return g, nil
		}
	}
	return nil, ErrNotFound
}

func (r *redisStore) CompletedGames(ctx context.Context) ([]*model.Game, error) {
	games, err := r.loadAll(ctx)
	if err != nil {
		return nil, err
	}
	out := games[:0]
	for _, g := range games {
		if g.Status == model.StatusCompleted {
			out = append(out, g)
		}
	}
	sortNewestFirst(out)
	return out, nil
}

func (r *redisStore) AllGames(ctx context.Context) ([]*model.Game, error) {
	games, err := r.loadAll(ctx)
	if err != nil {
		return nil, err
	}
	sortNewestFirst(games)
	return games, nil
}

func (r *redisStore) Delete(ctx context.Context, id string) error {
	p := r.rdb.Pipeline()
	p.Del(ctx, gameKey(id))
	p.SRem(ctx, gameIndexKey, id)
	_, err := p.Exec(ctx)
	return err
}

func (r *redisStore) DeleteAll(ctx context.Context) error {
	ids, err := r.rdb.SMembers(ctx, gameIndexKey).Result()
	if err != nil {
		return err
	}
	p := r.rdb.Pipeline()
	for _, id := range ids {
		p.Del(ctx, gameKey(id))
	}
	p.Del(ctx, gameIndexKey)
	_, err = p.Exec(ctx)
	return err
}

// loadAll reads every indexed game, skipping index entries whose record has
// gone missing.
func (r *redisStore) loadAll(ctx context.Context) ([]*model.Game, error) {
	ids, err := r.rdb.SMembers(ctx, gameIndexKey).Result()
	if err != nil {
		return nil, err
	}
	games := make([]*model.Game, 0, len(ids))
	for _, id := range ids {
		g, err := r.FindByID(ctx, id)
		if errors.Is(err, ErrNotFound) {
			continue
		}
		if err != nil {
			return nil, err
		}
		games = append(games, g)
	}
	return games, nil
}

func sortNewestFirst(games []*model.Game) {
	sort.Slice(games, func(i, j int) bool {
		return completedOrCreated(games[i]).After(completedOrCreated(games[j]))
	})
}

package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/comitanigiacomo/kanso-routine-engine/internal/core/domain"
	"github.com/redis/go-redis/v9"
)

var _ domain.UserStateRepository = (*CachedStateRepository)(nil)

const stateCacheTTL = 30 * time.Minute

var errStaleFill = errors.New("cache: state changed during read")

// CachedStateRepository is a read-through Redis cache in front of another
// state repository. Redis failures never fail a request.
//
// Every save bumps a per-user version key. A reader only fills the cache when
// the version it saw before reading the store is still current, so a slow
// reader cannot put back a state older than the last save.
type CachedStateRepository struct {
	next  domain.UserStateRepository
	cache *redis.Client
	ttl   time.Duration
}

func NewCachedStateRepository(next domain.UserStateRepository, cache *redis.Client) *CachedStateRepository {
	return &CachedStateRepository{
		next:  next,
		cache: cache,
		ttl:   stateCacheTTL,
	}
}

func (r *CachedStateRepository) cacheKey(userID string) string {
	return fmt.Sprintf("state:%s", userID)
}

func (r *CachedStateRepository) versionKey(userID string) string {
	return fmt.Sprintf("state_version:%s", userID)
}

// invalidate bumps the version and drops the cached copy in one transaction.
// The version key has no TTL so it never resets to a value a reader saw.
func (r *CachedStateRepository) invalidate(ctx context.Context, userID string) {
	_, err := r.cache.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Incr(ctx, r.versionKey(userID))
		pipe.Del(ctx, r.cacheKey(userID))
		return nil
	})
	if err != nil {
		log.Printf("[CACHE] Failed to invalidate for user %s: %v", userID, err)
	}
}

func (r *CachedStateRepository) version(ctx context.Context, userID string) (string, error) {
	v, err := r.cache.Get(ctx, r.versionKey(userID)).Result()
	if errors.Is(err, redis.Nil) {
		return "", nil
	}
	return v, err
}

// fill stores data unless a save moved the version past seen.
func (r *CachedStateRepository) fill(ctx context.Context, userID, seen string, data []byte) error {
	vkey := r.versionKey(userID)
	err := r.cache.Watch(ctx, func(tx *redis.Tx) error {
		current, err := tx.Get(ctx, vkey).Result()
		if err != nil && !errors.Is(err, redis.Nil) {
			return err
		}
		if current != seen {
			return errStaleFill
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, r.cacheKey(userID), data, r.ttl)
			return nil
		})
		return err
	}, vkey)

	if errors.Is(err, errStaleFill) || errors.Is(err, redis.TxFailedErr) {
		log.Printf("[CACHE] Skipping fill for user %s, state changed during read", userID)
		return nil
	}
	return err
}

func (r *CachedStateRepository) LoadUserState(ctx context.Context, userID string) (*domain.UserState, error) {
	key := r.cacheKey(userID)

	val, err := r.cache.Get(ctx, key).Bytes()
	if err == nil {
		var state domain.UserState
		if err := json.Unmarshal(val, &state); err == nil {
			if state.Routines == nil {
				state.Routines = []*domain.Routine{}
			}
			if state.Completions == nil {
				state.Completions = domain.CompletionLog{}
			}
			return &state, nil
		}

		log.Printf("[CACHE] Corrupted data for user %s, cleaning up key", userID)
		r.cache.Del(ctx, key)
	} else if !errors.Is(err, redis.Nil) {
		log.Printf("[CACHE] Redis read error: %v", err)
	}

	seen, verErr := r.version(ctx, userID)
	if verErr != nil {
		log.Printf("[CACHE] Redis version read error: %v", verErr)
	}

	state, err := r.next.LoadUserState(ctx, userID)
	if err != nil {
		return nil, err
	}

	if verErr == nil {
		if data, err := json.Marshal(state); err == nil {
			if fillErr := r.fill(ctx, userID, seen, data); fillErr != nil {
				log.Printf("[CACHE] Redis set error: %v", fillErr)
			}
		}
	}

	return state, nil
}

// LoadUserStateForUpdate reads the backing store directly. Load-mutate-save
// cycles use it so they never start from a cached copy.
func (r *CachedStateRepository) LoadUserStateForUpdate(ctx context.Context, userID string) (*domain.UserState, error) {
	return r.next.LoadUserState(ctx, userID)
}

func (r *CachedStateRepository) SaveUserState(ctx context.Context, userID string, state *domain.UserState) error {
	if err := r.next.SaveUserState(ctx, userID, state); err != nil {
		return err
	}
	r.invalidate(ctx, userID)
	return nil
}

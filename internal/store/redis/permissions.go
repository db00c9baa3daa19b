// Package redis caches role permission sets so the authorization check does
// not hit PostgreSQL on every request. On a cache read failure lookups fall
// through to the underlying source.
package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"

	"github.com/botplane/botplane/internal/authz"
)

type PermissionCache struct {
	client *redis.Client
	source authz.PermissionSource
	ttl    time.Duration
}

func NewPermissionCache(ctx context.Context, addr, password string, db int, source authz.PermissionSource, ttl time.Duration) (*PermissionCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis.NewPermissionCache: ping: %w", err)
	}

	return &PermissionCache{client: client, source: source, ttl: ttl}, nil
}

func (c *PermissionCache) Close() error {
	if err := c.client.Close(); err != nil {
		return fmt.Errorf("redis.PermissionCache.Close: %w", err)
	}
	return nil
}

// PermissionsForRole serves the role's permission names from cache, loading
// and storing them on a miss. An empty permission set is cached too, so a
// permissionless role does not hammer the database.
func (c *PermissionCache) PermissionsForRole(ctx context.Context, roleID uuid.UUID) ([]string, error) {
	key := permKey(roleID)

	raw, err := c.client.Get(ctx, key).Result()
	if err == nil {
		var names []string
		if unmarshalErr := json.Unmarshal([]byte(raw), &names); unmarshalErr == nil {
			return names, nil
		}
		// Corrupt entry; drop it and reload.
		_ = c.client.Del(ctx, key).Err()
	} else if !errors.Is(err, redis.Nil) {
		log.Warn().Err(err).Str("role_id", roleID.String()).Msg("permission cache read failed, falling through")
	}

	names, err := c.source.PermissionsForRole(ctx, roleID)
	if err != nil {
		return nil, err
	}

	if names == nil {
		names = []string{}
	}

	payload, err := json.Marshal(names)
	if err != nil {
		return names, nil
	}
	if setErr := c.client.Set(ctx, key, payload, c.ttl).Err(); setErr != nil {
		log.Warn().Err(setErr).Str("role_id", roleID.String()).Msg("permission cache write failed")
	}

	return names, nil
}

// Invalidate drops the cached permission set for a role.
func (c *PermissionCache) Invalidate(ctx context.Context, roleID uuid.UUID) error {
	if err := c.client.Del(ctx, permKey(roleID)).Err(); err != nil {
		return fmt.Errorf("redis.PermissionCache.Invalidate: %w", err)
	}
	return nil
}

func permKey(roleID uuid.UUID) string {
	return "perms:" + roleID.String()
}

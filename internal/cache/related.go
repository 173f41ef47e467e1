// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// related.go provides a Valkey-backed cache for resolved related-article
// lists. Resolution walks similarity vectors and listing queries, so the
// result is worth keeping; a miss or a Valkey outage just means the
// resolver runs again.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"inkwell/internal/models"
)

const (
	// relatedKeyPrefix is the Valkey key prefix for cached related lists.
	relatedKeyPrefix = "related:"

	// DefaultRelatedTTL is how long a resolved list stays cached.
	DefaultRelatedTTL = 10 * time.Minute
)

// RelatedCache stores resolver output in Valkey, keyed by article and limit.
type RelatedCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRelatedCache creates a related-article cache backed by the given
// Valkey client.
func NewRelatedCache(client *redis.Client, ttl time.Duration) *RelatedCache {
	if ttl == 0 {
		ttl = DefaultRelatedTTL
	}
	return &RelatedCache{client: client, ttl: ttl}
}

func relatedKey(articleID uuid.UUID, limit int) string {
	return fmt.Sprintf("%s%s:%d", relatedKeyPrefix, articleID, limit)
}

// Get retrieves a cached related list. Returns false on miss or error.
func (rc *RelatedCache) Get(ctx context.Context, articleID uuid.UUID, limit int) ([]models.Article, bool) {
	key := relatedKey(articleID, limit)
	data, err := rc.client.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return nil, false
	}
	if err != nil {
		slog.Warn("related cache get error", "key", key, "error", err)
		return nil, false
	}
	var items []models.Article
	if err := json.Unmarshal(data, &items); err != nil {
		slog.Warn("related cache decode error", "key", key, "error", err)
		return nil, false
	}
	slog.Debug("related cache hit", "key", key)
	return items, true
}

// Set stores a resolved related list with the configured TTL.
func (rc *RelatedCache) Set(ctx context.Context, articleID uuid.UUID, limit int, items []models.Article) {
	data, err := json.Marshal(items)
	if err != nil {
		slog.Warn("related cache encode error", "article_id", articleID, "error", err)
		return
	}
	if err := rc.client.Set(ctx, relatedKey(articleID, limit), data, rc.ttl).Err(); err != nil {
		slog.Warn("related cache set error", "article_id", articleID, "error", err)
	}
}

// Invalidate drops every cached list for an article, across all limits.
// Called when the article is republished or its body changes.
func (rc *RelatedCache) Invalidate(ctx context.Context, articleID uuid.UUID) {
	pattern := relatedKeyPrefix + articleID.String() + ":*"
	var cursor uint64
	for {
		keys, next, err := rc.client.Scan(ctx, cursor, pattern, 100).Result()
		if err != nil {
			slog.Warn("related cache scan error", "error", err)
			return
		}
		if len(keys) > 0 {
			if err := rc.client.Del(ctx, keys...).Err(); err != nil {
				slog.Warn("related cache delete error", "error", err)
			}
		}
		cursor = next
		if cursor == 0 {
			break
		}
	}
	slog.Debug("related cache invalidated", "article_id", articleID)
}

package service

import (
	"college-site/internal/logger"
	"context"
	"encoding/json"
)

// publicPrefix namespaces every cached public read.
const publicPrefix = "public:"

// Cache stores serialized public reads. *cache.Cache satisfies it.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	DeletePrefix(ctx context.Context, prefix string) error
}

// cached returns the value stored under key, or runs fetch and stores its
// result. Cache failures are logged and never fail the read.
func cached[T any](ctx context.Context, c Cache, log logger.Logger, key string, fetch func(context.Context) (T, error)) (T, error) {
	key = publicPrefix + key
	if c != nil {
		raw, err := c.Get(ctx, key)
		if err != nil {
			log.Error(err, "Failed to read cache")
		} else if raw != nil {
			var v T
			if err := json.Unmarshal(raw, &v); err == nil {
				return v, nil
			}
		}
	}

	v, err := fetch(ctx)
	if err != nil {
		return v, err
	}

	if c != nil {
		if raw, err := json.Marshal(v); err == nil {
			if err := c.Set(ctx, key, raw); err != nil {
				log.Error(err, "Failed to write cache")
			}
		}
	}
	return v, nil
}

// invalidate drops every cached public read after a write.
func invalidate(ctx context.Context, c Cache, log logger.Logger) {
	if c == nil {
		return
	}
	if err := c.DeletePrefix(ctx, publicPrefix); err != nil {
		log.Error(err, "Failed to invalidate public cache")
	}
}

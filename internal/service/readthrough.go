package service

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/Totarae/linkshortener/internal/cache"
	"go.uber.org/zap"
)

// Ключи кэша списков.
const (
	UsersCacheKey   = "users:all"
	ArtistsCacheKey = "artists:all"
)

// readThrough отдаёт список из кэша, а при промахе грузит его из хранилища
// и кладёт снапшот обратно. Сбои кэша только логируются.
func readThrough[T any](ctx context.Context, c Cache, logger *zap.Logger, key string,
	load func(context.Context) ([]T, error)) ([]T, error) {

	data, err := c.Get(ctx, key)
	switch {
	case err == nil:
		var cached []T
		decodeErr := json.Unmarshal(data, &cached)
		if decodeErr == nil {
			return cached, nil
		}
		logger.Warn("discarding undecodable cache entry", zap.String("key", key), zap.Error(decodeErr))
	case !errors.Is(err, cache.ErrMiss):
		logger.Warn("cache read failed, falling back to store", zap.String("key", key), zap.Error(err))
	}

	items, err := load(ctx)
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []T{}
	}

	encoded, err := json.Marshal(items)
	if err != nil {
		logger.Warn("failed to encode cache entry", zap.String("key", key), zap.Error(err))
		return items, nil
	}
	if err := c.Set(ctx, key, encoded); err != nil {
		logger.Warn("cache write failed", zap.String("key", key), zap.Error(err))
	}
	return items, nil
}

// invalidate удаляет ключ; ошибка не поднимается выше.
func invalidate(ctx context.Context, c Cache, logger *zap.Logger, key string) {
	if err := c.Delete(ctx, key); err != nil {
		logger.Warn("cache invalidation failed", zap.String("key", key), zap.Error(err))
	}
}

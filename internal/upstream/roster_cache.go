package upstream

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"teachove/backend/internal/dto"
)

// Cache JSON 缓存（由 pkg/redis.Client 实现）
type Cache interface {
	GetJSON(ctx context.Context, key string, dst interface{}) (bool, error)
	SetJSON(ctx context.Context, key string, v interface{}, ttl time.Duration) error
}

// CachedRoster 带缓存的班级名册；缓存读写失败时退化为直接访问远端
type CachedRoster struct {
	inner  RosterProvider
	cache  Cache
	ttl    time.Duration
	logger *zap.Logger
}

// NewCachedRoster 创建带缓存的名册
func NewCachedRoster(inner RosterProvider, cache Cache, ttl time.Duration, logger *zap.Logger) *CachedRoster {
	return &CachedRoster{inner: inner, cache: cache, ttl: ttl, logger: logger}
}

func rosterKey(schoolID, academicYear string) string {
	return fmt.Sprintf("roster:%s:%s", schoolID, academicYear)
}

func (r *CachedRoster) ListClasses(ctx context.Context, schoolID, academicYear string) ([]dto.Classroom, error) {
	key := rosterKey(schoolID, academicYear)

	var cached []dto.Classroom
	hit, err := r.cache.GetJSON(ctx, key, &cached)
	if err != nil {
		r.logger.Warn("读取名册缓存失败", zap.String("key", key), zap.Error(err))
	} else if hit {
		return cached, nil
	}

	classes, err := r.inner.ListClasses(ctx, schoolID, academicYear)
	if err != nil {
		return nil, err
	}

	if err := r.cache.SetJSON(ctx, key, classes, r.ttl); err != nil {
		r.logger.Warn("写入名册缓存失败", zap.String("key", key), zap.Error(err))
	}
	return classes, nil
}

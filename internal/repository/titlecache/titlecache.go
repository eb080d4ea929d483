package titlecache

import (
	"context"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	KeyTitle     = "title"
	KeySeparator = ":"

	defaultTitleExpiration = 7 * 24 * time.Hour
)

// titleCacheRepository keeps resolved workshop titles in redis so repeated
// runs skip the metadata round trip. All operations are best effort.
type titleCacheRepository struct {
	cl  *redis.Client
	log *slog.Logger
}

func NewTitleCacheRepository(cl *redis.Client, log *slog.Logger) *titleCacheRepository {
	return &titleCacheRepository{
		cl:  cl,
		log: log.With(slog.String("item", "TitleCacheRepository")),
	}
}

func (r *titleCacheRepository) Get(ctx context.Context, id string) (string, bool) {
	title, err := r.cl.Get(ctx, getKey(id)).Result()
	if err != nil {
		if err != redis.Nil {
			r.log.Warn("Cannot read title cache", slog.String("id", id), slog.Any("error", err))
		}

		return "", false
	}

	return title, true
}

func (r *titleCacheRepository) Set(ctx context.Context, id, title string) {
	if err := r.cl.Set(ctx, getKey(id), title, defaultTitleExpiration).Err(); err != nil {
		r.log.Warn("Cannot write title cache", slog.String("id", id), slog.Any("error", err))
	}
}

func getKey(id string) string {
	return KeyTitle + KeySeparator + id
}

// noopCache satisfies the resolver's cache contract when redis is not
// configured.
type noopCache struct{}

func NewNoopCache() noopCache {
	return noopCache{}
}

func (noopCache) Get(_ context.Context, _ string) (string, bool) { return "", false }

func (noopCache) Set(_ context.Context, _, _ string) {}

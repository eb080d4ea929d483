package app

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/spf13/afero"

	"github.com/pingu-dev/gmod-translator/internal/adapter/gmad"
	"github.com/pingu-dev/gmod-translator/internal/adapter/overrides"
	"github.com/pingu-dev/gmod-translator/internal/adapter/shortcut"
	"github.com/pingu-dev/gmod-translator/internal/adapter/steam"
	"github.com/pingu-dev/gmod-translator/internal/config"
	"github.com/pingu-dev/gmod-translator/internal/entity"
	"github.com/pingu-dev/gmod-translator/internal/repository/titlecache"
	"github.com/pingu-dev/gmod-translator/internal/scanner"
	"github.com/pingu-dev/gmod-translator/internal/service/report"
	"github.com/pingu-dev/gmod-translator/internal/service/translate"
	"github.com/pingu-dev/gmod-translator/internal/storage/workshop"
)

const redisPingTimeout = 3 * time.Second

type App struct {
	cfgPath string
	workers int
	cfg     *config.Config
	log     *slog.Logger
}

type Option func(*App)

// WithWorkers overrides the configured worker count when n is positive.
func WithWorkers(n int) Option {
	return func(a *App) {
		a.workers = n
	}
}

func New(cfgPath string, opts ...Option) *App {
	a := &App{
		cfgPath: cfgPath,
	}

	for _, opt := range opts {
		opt(a)
	}

	return a
}

// Run discovers the installed workshop library and translates it,
// returning the aggregated run summary.
func (a *App) Run(ctx context.Context) (*entity.RunSummary, error) {
	a.cfg = config.MustLoad(a.cfgPath)
	if a.workers > 0 {
		a.cfg.Translator.Workers = a.workers
	}

	lo := &slog.HandlerOptions{}
	switch a.cfg.LogLevel {
	case config.LogLevelInfo:
		lo.Level = slog.LevelInfo
	case config.LogLevelWarn:
		lo.Level = slog.LevelWarn
	case config.LogLevelError:
		lo.Level = slog.LevelError
	case config.LogLevelDebug:
		lo.Level = slog.LevelDebug
	}
	log := slog.New(slog.NewTextHandler(os.Stderr, lo))
	a.log = log

	fs := afero.NewOsFs()

	sc := scanner.NewScanner(&a.cfg.Steam, log)
	contentRoot, err := sc.FindContentRoot(ctx)
	if err != nil {
		return nil, fmt.Errorf("cannot find workshop installation: %w", err)
	}

	gmadPath, found := sc.FindGmadBinary(ctx)
	if !found {
		return nil, fmt.Errorf("gmad binary not found, set steam.gmad_path in the config")
	}

	cacheDir, found := sc.FindCacheDir(ctx)
	if !found {
		log.Warn("Package cache dir not found, cache fallback disabled")
	}

	translatedRoot := workshop.TranslatedRoot(contentRoot)

	cache := a.titleCache(ctx, log)

	titleOverrides, err := overrides.NewLoader(fs, log).Load(translatedRoot)
	if err != nil {
		log.Warn("Cannot load title overrides", slog.Any("error", err))
		titleOverrides = map[string]string{}
	}

	resolver := steam.NewResolver(a.cfg.Translator.ResolveTimeout(), cache, log,
		steam.WithOverrides(titleOverrides))

	decompiler, err := gmad.New(gmadPath, a.cfg.Translator.DecompileTimeout(), log, gmad.WithFS(fs))
	if err != nil {
		return nil, fmt.Errorf("cannot create gmad client: %w", err)
	}

	store := workshop.NewStorage(fs, contentRoot, cacheDir, log)
	emitter := shortcut.NewEmitter(log)

	coordinator := translate.NewCoordinator(fs, store, resolver, decompiler, emitter,
		translatedRoot, a.cfg.Translator.Retranslate, log)

	summary, err := coordinator.Run(ctx, a.cfg.Translator.Workers)
	if err != nil {
		return nil, fmt.Errorf("translation run failed: %w", err)
	}

	if err := report.NewWriter(fs, log).Write(translatedRoot, summary); err != nil {
		log.Error("Cannot write run report", slog.Any("error", err))
	}

	return summary, nil
}

// titleCache returns the redis-backed cache when configured and reachable,
// degrading to a no-op cache otherwise.
func (a *App) titleCache(ctx context.Context, log *slog.Logger) steam.TitleCache {
	if a.cfg.RedisURL == "" {
		return titlecache.NewNoopCache()
	}

	opt, err := redis.ParseURL(a.cfg.RedisURL)
	if err != nil {
		log.Warn("Invalid redis url, title cache disabled", slog.Any("error", err))

		return titlecache.NewNoopCache()
	}

	rdb := redis.NewClient(opt)

	pingCtx, cancel := context.WithTimeout(ctx, redisPingTimeout)
	defer cancel()

	if _, err := rdb.Ping(pingCtx).Result(); err != nil {
		log.Warn("Redis unreachable, title cache disabled", slog.Any("error", err))

		return titlecache.NewNoopCache()
	}

	return titlecache.NewTitleCacheRepository(rdb, log)
}

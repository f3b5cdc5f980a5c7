package app

import (
	"context"
	"fmt"

	"github.com/Gunvolt24/semfilms/config"
	cachemem "github.com/Gunvolt24/semfilms/internal/cache/memory"
	"github.com/Gunvolt24/semfilms/internal/ports"
	"github.com/Gunvolt24/semfilms/internal/repo/postgres"
	rdrepo "github.com/Gunvolt24/semfilms/internal/repo/redis"
)

// buildCache — кэш результатов по конфигурации:
//   - memory: только LRU в памяти процесса;
//   - postgres | redis: постоянное хранилище, перед ним LRU (если FrontCapacity > 0) с прогревом.
func buildCache(ctx context.Context, cfg *config.Config, log ports.Logger) (ports.ResultCache, func(), error) {
	if cfg.Cache.Backend == config.BackendMemory {
		log.Infof(ctx, "result cache: memory only capacity=%d ttl=%s", cfg.Cache.FrontCapacity, cfg.Cache.FrontTTL)
		return cachemem.NewLRUCacheTTL(cfg.Cache.FrontCapacity, cfg.Cache.FrontTTL), func() {}, nil
	}

	store, closeStore, err := openStore(ctx, cfg)
	if err != nil {
		return nil, func() {}, err
	}

	if cfg.Cache.FrontCapacity <= 0 {
		log.Infof(ctx, "result cache: %s without memory tier", cfg.Cache.Backend)
		return store, closeStore, nil
	}

	tiered := cachemem.NewTiered(cachemem.NewLRUCacheTTL(cfg.Cache.FrontCapacity, cfg.Cache.FrontTTL), store, log)
	if err := tiered.WarmFront(ctx, cfg.Cache.WarmUpN); err != nil {
		log.Warnf(ctx, "warm-up cache failed: %v", err)
	}
	log.Infof(ctx, "result cache: memory(capacity=%d) -> %s", cfg.Cache.FrontCapacity, cfg.Cache.Backend)
	return tiered, closeStore, nil
}

func openStore(ctx context.Context, cfg *config.Config) (ports.ResultStore, func(), error) {
	switch cfg.Cache.Backend {
	case config.BackendRedis:
		client, err := rdrepo.NewClient(ctx, rdrepo.Config{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
			PoolSize: cfg.Redis.PoolSize,
		})
		if err != nil {
			return nil, func() {}, err
		}
		store := rdrepo.NewResultStore(client, cfg.Redis.Prefix)
		return store, func() { _ = store.Close() }, nil

	case config.BackendPostgres:
		pool, err := postgres.NewPool(ctx, cfg.Postgres.DSN, cfg.Postgres.MaxConns)
		if err != nil {
			return nil, func() {}, err
		}
		if err := postgres.CheckSchema(ctx, pool); err != nil {
			pool.Close()
			return nil, func() {}, err
		}
		return postgres.NewSavedQueryRepository(pool), pool.Close, nil

	default:
		return nil, func() {}, fmt.Errorf("unsupported cache backend %q", cfg.Cache.Backend)
	}
}

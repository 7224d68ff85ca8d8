package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/aretw0/screenwalk/internal/config"
	"github.com/aretw0/screenwalk/pkg/adapters/file"
	"github.com/aretw0/screenwalk/pkg/adapters/memory"
	"github.com/aretw0/screenwalk/pkg/adapters/redis"
	"github.com/aretw0/screenwalk/pkg/adapters/sim"
	"github.com/aretw0/screenwalk/pkg/adapters/wda"
	"github.com/aretw0/screenwalk/pkg/persistence/middleware"
	"github.com/aretw0/screenwalk/pkg/ports"
	"github.com/aretw0/screenwalk/pkg/session"
)

// env holds the adapters selected by the configuration.
type env struct {
	driver   ports.Driver
	store    ports.ReportStore
	sessions *session.Manager
	closers  []func() error
}

func (e *env) Close() {
	for _, c := range e.closers {
		_ = c()
	}
}

func newEnv(ctx context.Context, cfg config.Config, logger *slog.Logger) (*env, error) {
	e := &env{}

	switch cfg.Driver {
	case config.DriverWDA:
		e.driver = wda.New(cfg.WDA.URL, wda.WithBundleID(cfg.WDA.BundleID), wda.WithLogger(logger))
	default:
		device := sim.Phone
		if cfg.Device == "tablet" {
			device = sim.Tablet
		}
		e.driver = sim.New(sim.WithDevice(device), sim.WithLogger(logger))
	}

	if err := e.openStore(ctx, cfg, logger); err != nil {
		return nil, err
	}

	if len(cfg.Redact) > 0 {
		redact, err := middleware.NewRedactionMiddleware(cfg.Redact)
		if err != nil {
			e.Close()
			return nil, err
		}
		e.store = middleware.Chain(e.store, redact)
	}
	return e, nil
}

// openStore picks Redis when configured, then a report directory, then memory.
// The device lock is distributed only with Redis.
func (e *env) openStore(ctx context.Context, cfg config.Config, logger *slog.Logger) error {
	if cfg.Redis.Addr == "" {
		if cfg.ReportsDir != "" {
			e.store = file.New(cfg.ReportsDir)
		} else {
			e.store = memory.NewStore()
		}
		e.sessions = session.NewManager(session.WithLogger(logger))
		return nil
	}

	store := redis.New(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB,
		redis.WithPrefix(cfg.Redis.Prefix+"report:"),
		redis.WithTTL(cfg.Redis.ReportTTL),
	)
	if err := store.Client().Ping(ctx).Err(); err != nil {
		_ = store.Close()
		return fmt.Errorf("failed to reach redis at %s: %w", cfg.Redis.Addr, err)
	}
	e.store = store
	e.closers = append(e.closers, store.Close)
	e.sessions = session.NewManager(
		session.WithLocker(redis.NewLocker(store.Client(), cfg.Redis.Prefix)),
		session.WithLogger(logger),
	)
	return nil
}

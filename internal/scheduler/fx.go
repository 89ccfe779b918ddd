package scheduler

import (
	"context"
	"time"

	"go.uber.org/fx"

	"github.com/thititongumpun/uoobpremium/internal/config"
)

var Module = fx.Module("scheduler",
	fx.Provide(func(cfg config.Config) (Config, error) {
		interval, err := time.ParseDuration(cfg.Scheduler.PollInterval)
		if err != nil {
			return Config{}, err
		}
		return Config{
			Enabled:      cfg.Scheduler.Enabled,
			PollInterval: interval,
		}, nil
	}),
	fx.Provide(NewScheduler),
	fx.Invoke(runScheduler),
)

func runScheduler(lc fx.Lifecycle, worker *Scheduler, cfg Config) {
	if !cfg.Enabled {
		return
	}
	runCtx, cancel := context.WithCancel(context.Background())
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go worker.RunForever(runCtx)
			return nil
		},
		OnStop: func(ctx context.Context) error {
			cancel()
			return nil
		},
	})
}

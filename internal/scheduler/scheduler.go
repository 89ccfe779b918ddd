package scheduler

import (
	"context"
	"time"

	"go.uber.org/fx"
	"go.uber.org/zap"

	billingdomain "github.com/thititongumpun/uoobpremium/internal/billing/domain"
	"github.com/thititongumpun/uoobpremium/internal/clock"
)

type Params struct {
	fx.In

	Log     *zap.Logger
	Billing billingdomain.Service
	Clock   clock.Clock
	Config  Config `optional:"true"`
}

// Scheduler periodically ensures the current month's billing cycle
// exists. The loop itself carries no creation state; every tick runs
// the same idempotent cycle logic, so overlapping deploys or restarts
// at month boundaries are safe.
type Scheduler struct {
	log     *zap.Logger
	billing billingdomain.Service
	clock   clock.Clock
	cfg     Config
}

func NewScheduler(p Params) *Scheduler {
	return &Scheduler{
		log:     p.Log.Named("scheduler"),
		billing: p.Billing,
		clock:   p.Clock,
		cfg:     p.Config.withDefaults(),
	}
}

func (s *Scheduler) RunForever(ctx context.Context) {
	ticker := time.NewTicker(s.cfg.PollInterval)
	defer ticker.Stop()

	for {
		if err := s.RunOnce(); err != nil {
			s.log.Warn("billing cycle run failed", zap.Error(err))
		}

		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

func (s *Scheduler) RunOnce() error {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	period := billingdomain.PeriodOf(s.clock.Now())
	result, err := s.billing.RunCycle(ctx, period)
	if err != nil {
		return err
	}

	s.log.Info("billing cycle run finished",
		zap.String("period", period.String()),
		zap.String("outcome", string(result.Outcome)),
		zap.Int("rows", len(result.Statuses)),
		zap.Bool("announced", result.Announced),
	)
	return nil
}

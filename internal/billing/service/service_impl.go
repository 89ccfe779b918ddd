package service

import (
	"context"
	"time"

	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/thititongumpun/uoobpremium/internal/billing/announce"
	billingdomain "github.com/thititongumpun/uoobpremium/internal/billing/domain"
	"github.com/thititongumpun/uoobpremium/internal/cache"
	"github.com/thititongumpun/uoobpremium/internal/clock"
	"github.com/thititongumpun/uoobpremium/internal/events"
	"github.com/thititongumpun/uoobpremium/internal/notify"
	"github.com/thititongumpun/uoobpremium/internal/observability/metrics"
)

// summaryTTL bounds how stale a checkbill reply may be. Discord retries
// interactions aggressively; a short cache keeps the read path cheap.
const summaryTTL = 30 * time.Second

type Params struct {
	fx.In

	Log      *zap.Logger
	Repo     billingdomain.Repository
	Notifier notify.Notifier
	Outbox   *events.Outbox
	Clock    clock.Clock
	Metrics  *metrics.CycleMetrics `optional:"true"`
}

type Service struct {
	log      *zap.Logger
	repo     billingdomain.Repository
	notifier notify.Notifier
	outbox   *events.Outbox
	clock    clock.Clock
	metrics  *metrics.CycleMetrics

	summaries *cache.TTLCache[string, billingdomain.BillSummary]
}

func NewService(p Params) billingdomain.Service {
	return &Service{
		log:       p.Log.Named("billing.service"),
		repo:      p.Repo,
		notifier:  p.Notifier,
		outbox:    p.Outbox,
		clock:     p.Clock,
		metrics:   p.Metrics,
		summaries: cache.NewTTLCache[string, billingdomain.BillSummary](),
	}
}

// RunCycle creates the period's payment rows if they do not exist yet,
// then reads the cycle back and, when this run created it, announces
// it. The existence check and
// the insert are not transactional; the unique key on
// (year, month, customer_id) is what makes repeated or concurrent runs
// converge on one row set. An insert failure is therefore treated as
// "another run won", not as a fatal error.
func (s *Service) RunCycle(ctx context.Context, period billingdomain.Period) (billingdomain.CycleResult, error) {
	result := billingdomain.CycleResult{Period: period}
	if !period.Valid() {
		return result, billingdomain.ErrInvalidPeriod
	}

	log := s.log.With(zap.String("period", period.String()))

	count, err := s.repo.CountPayments(ctx, period)
	if err != nil {
		s.metrics.ObserveRun("error")
		return result, err
	}

	if count > 0 {
		log.Info("cycle already exists, skipping creation", zap.Int64("rows", count))
		result.Outcome = billingdomain.CycleAlreadyExists
	} else {
		customerIDs, err := s.repo.ListCustomerIDs(ctx)
		if err != nil {
			s.metrics.ObserveRun("error")
			return result, err
		}

		if err := s.repo.InsertPayments(ctx, period, customerIDs); err != nil {
			// Likely a concurrent run inserted between our check and
			// write. The read-back below decides what actually exists.
			log.Warn("cycle insert failed, assuming concurrent creation", zap.Error(err))
			result.Outcome = billingdomain.CycleCreationRaced
		} else {
			log.Info("cycle created", zap.Int("customers", len(customerIDs)))
			result.Outcome = billingdomain.CycleCreated
			s.metrics.AddPaymentsCreated(len(customerIDs))
			s.publishEvent(ctx, events.EventCycleCreated, period, len(customerIDs), false)
		}
	}

	statuses, err := s.repo.ListStatuses(ctx, period)
	if err != nil {
		s.metrics.ObserveRun("error")
		return result, err
	}
	if len(statuses) == 0 {
		log.Info("no payment rows for period, nothing to announce")
		result.Outcome = billingdomain.CycleEmpty
		s.metrics.ObserveRun(string(result.Outcome))
		return result, nil
	}
	result.Statuses = statuses

	// The reminder is tied to cycle creation. Ticks that find an
	// existing cycle stay silent; the poll interval is much shorter
	// than a month, so announcing on every tick would spam the channel.
	if result.Outcome == billingdomain.CycleAlreadyExists {
		s.metrics.ObserveRun(string(result.Outcome))
		return result, nil
	}

	s.summaries.Delete(period.String())

	msg := announce.Cycle(period, statuses, s.clock.Now().UTC())
	if err := s.notifier.Send(ctx, msg); err != nil {
		// Best effort. The cycle rows exist either way and later ticks
		// will not re-announce them, so this send is not retried.
		log.Error("announcement send failed", zap.Error(err))
		s.metrics.ObserveAnnounceFailure()
	} else {
		result.Announced = true
		s.publishEvent(ctx, events.EventAnnouncementSent, period, len(statuses), true)
	}

	s.metrics.ObserveRun(string(result.Outcome))
	return result, nil
}

// Summarize builds the checkbill view. An empty period is a defined
// "no bill" case, distinct from a store failure.
func (s *Service) Summarize(ctx context.Context, period billingdomain.Period) (*billingdomain.BillSummary, error) {
	if !period.Valid() {
		return nil, billingdomain.ErrInvalidPeriod
	}

	if cached, ok := s.summaries.Get(period.String()); ok {
		return &cached, nil
	}

	statuses, err := s.repo.ListStatuses(ctx, period)
	if err != nil {
		return nil, err
	}
	if len(statuses) == 0 {
		return nil, billingdomain.ErrBillNotFound
	}

	allPaid := true
	for _, status := range statuses {
		if !status.IsPaid {
			allPaid = false
			break
		}
	}

	summary := billingdomain.BillSummary{
		Period:   period,
		Statuses: statuses,
		AllPaid:  allPaid,
	}
	s.summaries.Set(period.String(), summary, summaryTTL)
	return &summary, nil
}

func (s *Service) publishEvent(ctx context.Context, eventType string, period billingdomain.Period, rows int, announced bool) {
	if s.outbox == nil {
		return
	}
	payload := events.CyclePayload{
		Year:     period.Year,
		Month:    period.Month,
		Rows:     rows,
		Announce: announced,
	}
	event := events.Event{
		Type:      eventType,
		Payload:   payload.ToMap(),
		DedupeKey: eventType + ":" + period.String(),
	}
	if err := s.outbox.Publish(ctx, event); err != nil {
		s.log.Warn("outbox publish failed", zap.String("event", eventType), zap.Error(err))
	}
}

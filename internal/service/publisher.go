package service

import (
	"context"
	"time"

	"sensor_station/internal/logger"
	"sensor_station/internal/models"
	"sensor_station/internal/telemetry"
)

// ReadingPublisher sends a reading upstream.
type ReadingPublisher interface {
	PublishReading(ctx context.Context, r models.SensorReading) error
}

// publishTimeout bounds a single upstream send.
const publishTimeout = 5 * time.Second

// PublisherService forwards current readings to an upstream sink on its own
// cadence. It reads through the same snapshot contract as every other
// consumer and never touches the updater.
type PublisherService struct {
	store *telemetry.Store
	sink  ReadingPublisher
	log   *logger.Logger
}

func NewPublisherService(store *telemetry.Store, sink ReadingPublisher, log *logger.Logger) *PublisherService {
	return &PublisherService{store: store, sink: sink, log: log}
}

// Run publishes one reading per tick until ctx is canceled. Degraded
// snapshots are skipped: fallback values would pollute upstream series.
// A failed publish is logged and the next tick proceeds.
func (s *PublisherService) Run(ctx context.Context, tick time.Duration) {
	s.log.Infow("publisher started", "period", tick.String())
	t := time.NewTicker(tick)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			s.log.Infow("publisher stopped")
			return
		case <-t.C:
			s.publishCurrent(ctx)
		}
	}
}

func (s *PublisherService) publishCurrent(ctx context.Context) {
	r, ok := s.store.Snapshot()
	if !ok {
		s.log.Warnw("skipping publish, store degraded")
		return
	}
	pubCtx, cancel := context.WithTimeout(ctx, publishTimeout)
	defer cancel()
	if err := s.sink.PublishReading(pubCtx, r); err != nil {
		s.log.Warnw("publish failed", "error", err)
	}
}

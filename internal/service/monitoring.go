package service

import (
	"context"

	"sensor_station/internal/models"
	"sensor_station/internal/telemetry"
)

// MonitoringService reads the current telemetry. It never returns an error:
// when the store is degraded the caller still gets the fallback reading,
// flagged by the second return value.
type MonitoringService struct {
	store *telemetry.Store
}

func NewMonitoringService(store *telemetry.Store) *MonitoringService {
	return &MonitoringService{store: store}
}

// Current returns a consistent copy of the latest reading.
func (s *MonitoringService) Current(ctx context.Context) (models.SensorReading, bool) {
	return s.store.Snapshot()
}

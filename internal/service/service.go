package service

import (
	"context"

	"sensor_station/internal/models"
	"sensor_station/internal/repository"
	"sensor_station/internal/telemetry"
)

type Authorization interface {
	SignUp(username, password string) (int, error)
	GenerateToken(username, password string) (string, error)
	ParseToken(accessToken string) (int, error)
}

// Monitoring exposes the current reading. The bool mirrors the store's
// health: false means the fallback reading is being served.
type Monitoring interface {
	Current(ctx context.Context) (models.SensorReading, bool)
}

// EventLog exposes the append-only journal with filtering access.
type EventLog interface {
	List(ctx context.Context, f LogFilter) ([]models.StationEvent, error)
}

// Network reports the settled outcome of the startup bring-up.
type Network interface {
	Status() (string, models.LinkInfo)
}

// Service aggregates the request-facing sub-services.
type Service struct {
	Monitoring
	EventLog
	Network
	Authorization
}

// NewService wires the repository layer and the telemetry store into the
// concrete services. Bring-up finishes before the server starts, so the
// network status arrives here as a settled value.
func NewService(repos *repository.Repository, store *telemetry.Store, network *NetworkService, auth AuthConfig) *Service {
	return &Service{
		Monitoring:    NewMonitoringService(store),
		EventLog:      NewEventLogService(repos.EventRepo),
		Network:       network,
		Authorization: NewAuthService(repos.Auth, auth),
	}
}

package service

import (
	"context"
	"time"

	"sensor_station/internal/logger"
	"sensor_station/internal/models"
	"sensor_station/internal/repository"
	"sensor_station/internal/telemetry"
	"sensor_station/internal/wifi"
)

// Recorder fans degradation notices and bring-up transitions out to the log
// and the journal. Journal writes are bounded and best effort; observability
// must never wedge the paths it watches.
type Recorder struct {
	events repository.EventRepo
	log    *logger.Logger
}

func NewRecorder(events repository.EventRepo, log *logger.Logger) *Recorder {
	return &Recorder{events: events, log: log}
}

var (
	_ telemetry.Reporter = (*Recorder)(nil)
	_ wifi.Events        = (*Recorder)(nil)
)

const appendTimeout = 2 * time.Second

func (r *Recorder) StoreDegraded(op string, waited time.Duration) {
	r.log.Warnw("telemetry store degraded", "op", op, "waited", waited.String())
	r.append(models.StationEvent{
		Type:        models.EventStoreDegraded,
		Description: "store guard unavailable during " + op,
		Metadata:    map[string]any{"op": op, "waited_ms": waited.Milliseconds()},
	})
}

func (r *Recorder) UpdateSkipped(err error) {
	r.log.Warnw("update cycle skipped", "error", err)
	r.append(models.StationEvent{
		Type:        models.EventUpdateSkipped,
		Description: "reading not installed, cycle skipped",
		Metadata:    map[string]any{"error": err.Error()},
	})
}

func (r *Recorder) BringupTransition(state wifi.BringupState, detail string) {
	var typ string
	switch state {
	case wifi.StateConfigured:
		typ = models.EventAPConfigured
	case wifi.StateStarted:
		typ = models.EventAPStarted
	case wifi.StateLinkUp:
		typ = models.EventLinkUp
	case wifi.StateFailed:
		typ = models.EventBringupFailed
	default:
		return
	}

	if state == wifi.StateFailed {
		r.log.Errorw("network bring-up failed", "reason", detail)
	} else {
		r.log.Infow("network bring-up", "state", state.String(), "detail", detail)
	}
	r.append(models.StationEvent{
		Type:        typ,
		Description: detail,
		Metadata:    map[string]any{"state": state.String()},
	})
}

func (r *Recorder) append(e models.StationEvent) {
	ctx, cancel := context.WithTimeout(context.Background(), appendTimeout)
	defer cancel()
	if err := r.events.Append(ctx, e); err != nil {
		r.log.Errorw("journal append failed", "type", e.Type, "error", err)
	}
}

package telemetry

import (
	"context"
	"math/rand"
	"time"

	"sensor_station/internal/logger"
	"sensor_station/internal/models"
)

// ----------- Synthesis ranges -----------
const (
	TemperatureBaseC = 20.0 // °C floor of the simulated range
	TemperatureSpanC = 10.0 // °C width of the simulated range
	HumidityBasePct  = 50.0 // %RH floor
	HumiditySpanPct  = 20.0 // %RH width
)

// Updater refreshes the store on a fixed cadence. It is the store's only
// writer; request handlers never mutate readings.
type Updater struct {
	store  *Store
	report Reporter
	log    *logger.Logger

	rand func() float64 // uniform in [0, 1)
	now  func() time.Time
}

// NewUpdater returns an updater producing simulated readings.
func NewUpdater(store *Store, report Reporter, log *logger.Logger) *Updater {
	return &Updater{
		store:  store,
		report: report,
		log:    log,
		rand:   rand.Float64,
		now:    time.Now,
	}
}

// Run installs a reading immediately, then one per tick until ctx is
// canceled. A cycle that cannot acquire the store is skipped; a missed
// install never perturbs the cadence.
func (u *Updater) Run(ctx context.Context, tick time.Duration) {
	u.log.Infow("updater started", "period", tick.String())
	u.cycle()
	t := time.NewTicker(tick)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			u.log.Infow("updater stopped")
			return
		case <-t.C:
			u.cycle()
		}
	}
}

// cycle synthesizes one reading and installs it.
func (u *Updater) cycle() {
	r := u.synthesize()
	if err := u.store.Replace(r); err != nil {
		if u.report != nil {
			u.report.UpdateSkipped(err)
		}
		return
	}
	u.log.Debugw("reading installed",
		"temperature", r.Temperature,
		"humidity", r.Humidity,
		"timestamp", r.Timestamp,
	)
}

// synthesize stands in for real sensor acquisition.
func (u *Updater) synthesize() models.SensorReading {
	return models.SensorReading{
		Temperature: TemperatureBaseC + u.rand()*TemperatureSpanC,
		Humidity:    HumidityBasePct + u.rand()*HumiditySpanPct,
		Timestamp:   uint64(u.now().Unix()),
	}
}

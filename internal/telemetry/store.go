// Package telemetry owns the station's current sensor reading. A single
// background updater installs replacements while any number of request
// handlers take snapshots concurrently.
package telemetry

import (
	"errors"
	"time"

	"sensor_station/internal/models"
)

// Default values served while no trustworthy reading exists: the initial
// record installed at startup and the fallback returned on a wedged guard.
const (
	DefaultTemperature = 25.0 // °C
	DefaultHumidity    = 60.0 // %RH
)

// defaultAcquireWait bounds how long Snapshot and Replace wait for the guard
// token. The critical section is a single record copy, so a wait this long
// means a holder died without returning the token.
const defaultAcquireWait = 250 * time.Millisecond

// ErrWedged is returned by Replace when the guard token never came back from
// a previous holder. The updater treats it as a skipped cycle.
var ErrWedged = errors.New("telemetry: store guard wedged")

// Reporter receives degradation notices. Implementations log and journal
// them; the store itself carries no logging dependency.
type Reporter interface {
	StoreDegraded(op string, waited time.Duration)
	UpdateSkipped(err error)
}

// Store holds the current reading behind a one-token guard channel. Holding
// the token is holding the lock; a holder that never returns it leaves the
// store wedged, and both operations then degrade instead of blocking forever.
type Store struct {
	guard   chan struct{}
	current models.SensorReading

	wait   time.Duration
	report Reporter
	now    func() time.Time
}

// NewStore returns a store primed with the default reading stamped at
// creation time. A nil report silences degradation notices.
func NewStore(report Reporter) *Store {
	s := &Store{
		guard:  make(chan struct{}, 1),
		wait:   defaultAcquireWait,
		report: report,
		now:    time.Now,
	}
	s.current = Fallback(s.now())
	s.guard <- struct{}{}
	return s
}

// Fallback is the reading served when no trustworthy record is available:
// fixed defaults stamped at t.
func Fallback(t time.Time) models.SensorReading {
	return models.SensorReading{
		Temperature: DefaultTemperature,
		Humidity:    DefaultHumidity,
		Timestamp:   uint64(t.Unix()),
	}
}

// Snapshot returns a full copy of the current reading. ok is false when the
// guard could not be acquired within the bounded wait; the caller then gets
// the fallback reading with a fresh timestamp instead of an error, and the
// degradation is reported. A reader never fails because a writer failed.
func (s *Store) Snapshot() (models.SensorReading, bool) {
	if !s.acquire() {
		if s.report != nil {
			s.report.StoreDegraded("snapshot", s.wait)
		}
		return Fallback(s.now()), false
	}
	r := s.current
	s.release()
	return r, true
}

// Replace installs r as the current reading. A wedged guard yields ErrWedged;
// nothing is partially written.
func (s *Store) Replace(r models.SensorReading) error {
	if !s.acquire() {
		if s.report != nil {
			s.report.StoreDegraded("replace", s.wait)
		}
		return ErrWedged
	}
	s.current = r
	s.release()
	return nil
}

// acquire takes the guard token, waiting at most s.wait.
func (s *Store) acquire() bool {
	select {
	case <-s.guard:
		return true
	default:
	}
	t := time.NewTimer(s.wait)
	defer t.Stop()
	select {
	case <-s.guard:
		return true
	case <-t.C:
		return false
	}
}

func (s *Store) release() {
	s.guard <- struct{}{}
}

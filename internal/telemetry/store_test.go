package telemetry

import (
	"errors"
	"sync"
	"testing"
	"time"

	"sensor_station/internal/models"
)

// ---- Test doubles ----

// countingReporter records degradation notices.
type countingReporter struct {
	mu       sync.Mutex
	degraded []string
	skipped  int
}

func (r *countingReporter) StoreDegraded(op string, waited time.Duration) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.degraded = append(r.degraded, op)
}

func (r *countingReporter) UpdateSkipped(err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.skipped++
}

// wedge steals the guard token so it is never returned, simulating a holder
// that died inside the critical section. The acquire wait is shortened so
// degraded paths resolve quickly in tests.
func wedge(s *Store) {
	<-s.guard
	s.wait = time.Millisecond
}

// ---- Tests ----

func TestStore_InitialReadingUsesDefaults(t *testing.T) {
	before := uint64(time.Now().Unix())
	s := NewStore(nil)

	got, ok := s.Snapshot()
	if !ok {
		t.Fatalf("expected healthy snapshot")
	}
	if got.Temperature != DefaultTemperature || got.Humidity != DefaultHumidity {
		t.Fatalf("unexpected initial reading: %+v", got)
	}
	if got.Timestamp < before {
		t.Fatalf("timestamp %d older than store creation %d", got.Timestamp, before)
	}
}

func TestStore_ReplaceThenSnapshot(t *testing.T) {
	s := NewStore(nil)
	want := models.SensorReading{Temperature: 21.5, Humidity: 55.2, Timestamp: 1700000000}

	if err := s.Replace(want); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got, ok := s.Snapshot()
	if !ok {
		t.Fatalf("expected healthy snapshot")
	}
	if got != want {
		t.Fatalf("got %+v, want %+v", got, want)
	}
}

func TestStore_SnapshotNeverTearsUnderConcurrentReplace(t *testing.T) {
	s := NewStore(nil)
	// Correlated fields: any mix of two records breaks the relation.
	if err := s.Replace(models.SensorReading{}); err != nil {
		t.Fatalf("seed replace: %v", err)
	}

	stop := make(chan struct{})
	var writer sync.WaitGroup
	writer.Add(1)
	go func() {
		defer writer.Done()
		for i := 0; ; i++ {
			select {
			case <-stop:
				return
			default:
			}
			v := float64(i % 512)
			_ = s.Replace(models.SensorReading{Temperature: v, Humidity: 2 * v, Timestamp: uint64(i)})
		}
	}()

	var readers sync.WaitGroup
	for g := 0; g < 8; g++ {
		readers.Add(1)
		go func() {
			defer readers.Done()
			for i := 0; i < 2000; i++ {
				r, ok := s.Snapshot()
				if !ok {
					t.Errorf("snapshot degraded under normal contention")
					return
				}
				if r.Humidity != 2*r.Temperature {
					t.Errorf("torn read: %+v", r)
					return
				}
			}
		}()
	}

	readers.Wait()
	close(stop)
	writer.Wait()
}

func TestStore_SnapshotDegradesWhenWedged(t *testing.T) {
	rep := &countingReporter{}
	s := NewStore(rep)
	wedge(s)

	before := uint64(time.Now().Unix())
	got, ok := s.Snapshot()
	if ok {
		t.Fatalf("expected degraded snapshot")
	}
	if got.Temperature != DefaultTemperature || got.Humidity != DefaultHumidity {
		t.Fatalf("fallback defaults not served: %+v", got)
	}
	if got.Timestamp < before {
		t.Fatalf("fallback timestamp %d is stale", got.Timestamp)
	}
	if len(rep.degraded) != 1 || rep.degraded[0] != "snapshot" {
		t.Fatalf("want one snapshot degradation, got %v", rep.degraded)
	}

	// Every degraded read reports again.
	_, _ = s.Snapshot()
	if len(rep.degraded) != 2 {
		t.Fatalf("want two degradations after second read, got %d", len(rep.degraded))
	}
}

func TestStore_ReplaceReturnsErrWedged(t *testing.T) {
	rep := &countingReporter{}
	s := NewStore(rep)
	wedge(s)

	err := s.Replace(models.SensorReading{Temperature: 22, Humidity: 51, Timestamp: 1})
	if !errors.Is(err, ErrWedged) {
		t.Fatalf("want ErrWedged, got %v", err)
	}
	if len(rep.degraded) != 1 || rep.degraded[0] != "replace" {
		t.Fatalf("want one replace degradation, got %v", rep.degraded)
	}
}

func TestStore_RecoversWhenTokenReturns(t *testing.T) {
	s := NewStore(nil)
	wedge(s)
	if _, ok := s.Snapshot(); ok {
		t.Fatalf("expected degraded snapshot while wedged")
	}

	s.guard <- struct{}{} // the holder finally returns the token

	want := models.SensorReading{Temperature: 23, Humidity: 58, Timestamp: 42}
	if err := s.Replace(want); err != nil {
		t.Fatalf("unexpected error after recovery: %v", err)
	}
	got, ok := s.Snapshot()
	if !ok || got != want {
		t.Fatalf("got %+v ok=%v, want %+v ok=true", got, ok, want)
	}
}

package wifi

import (
	"context"
	"errors"
	"fmt"
	"time"

	"sensor_station/internal/logger"
	"sensor_station/internal/models"
)

// BringupState tracks the one-shot bring-up progression. States only move
// forward; LinkUp and Failed are terminal.
type BringupState int

const (
	StateIdle BringupState = iota
	StateConfigured
	StateStarted
	StateLinkUp
	StateFailed
)

func (s BringupState) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateConfigured:
		return "configured"
	case StateStarted:
		return "started"
	case StateLinkUp:
		return "link_up"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Bring-up errors. Each names the stage that aborted so the caller can
// decide between retrying and giving up.
var (
	ErrConfigRejected = errors.New("wifi: radio rejected configuration")
	ErrStartFailed    = errors.New("wifi: access point failed to start")
	ErrLinkTimeout    = errors.New("wifi: link did not come up in time")
)

// Events receives bring-up transitions for the journal. The StateFailed
// transition carries the failure reason as its detail.
type Events interface {
	BringupTransition(state BringupState, detail string)
}

// Tuning and link-wait defaults.
const (
	DefaultTxPowerDBm  = 21
	DefaultLinkTimeout = 15 * time.Second
)

// Bringup drives the radio from Idle to LinkUp. It runs once at startup,
// before the updater and request handling exist, and never retries; retry
// policy belongs to the caller.
type Bringup struct {
	driver AccessPointDriver
	events Events
	log    *logger.Logger

	state BringupState

	// TxPowerDBm and LinkTimeout may be adjusted before Run.
	TxPowerDBm  int
	LinkTimeout time.Duration
}

// NewBringup returns a bring-up sequence in Idle with default tuning.
func NewBringup(driver AccessPointDriver, events Events, log *logger.Logger) *Bringup {
	return &Bringup{
		driver:      driver,
		events:      events,
		log:         log,
		state:       StateIdle,
		TxPowerDBm:  DefaultTxPowerDBm,
		LinkTimeout: DefaultLinkTimeout,
	}
}

// State returns the current bring-up state.
func (b *Bringup) State() BringupState { return b.state }

// Run walks Idle -> Configured -> Started -> LinkUp, stopping in Failed when
// a stage's driver call fails or the link wait times out. Power-save and TX
// power tuning after a successful start are best effort; their failure never
// aborts. Run returns the link facts on success and must not be called twice.
func (b *Bringup) Run(ctx context.Context, params models.NetworkParameters) (models.LinkInfo, error) {
	if b.state != StateIdle {
		return models.LinkInfo{}, fmt.Errorf("wifi: bring-up already ran (state %s)", b.state)
	}

	if err := b.driver.Configure(ctx, params); err != nil {
		return models.LinkInfo{}, b.fail(fmt.Errorf("%w: %v", ErrConfigRejected, err))
	}
	b.advance(StateConfigured, fmt.Sprintf("ssid %q channel %d", params.SSID, params.Channel))

	if err := b.driver.Start(ctx); err != nil {
		return models.LinkInfo{}, b.fail(fmt.Errorf("%w: %v", ErrStartFailed, err))
	}
	b.advance(StateStarted, "broadcasting")

	b.tune(ctx)

	linkCtx, cancel := context.WithTimeout(ctx, b.LinkTimeout)
	defer cancel()
	info, err := b.driver.WaitForLink(linkCtx)
	if err != nil {
		return models.LinkInfo{}, b.fail(fmt.Errorf("%w: %v", ErrLinkTimeout, err))
	}
	b.advance(StateLinkUp, "ip "+info.IP)
	return info, nil
}

// tune applies post-start stability settings.
func (b *Bringup) tune(ctx context.Context) {
	if err := b.driver.DisablePowerSave(ctx); err != nil {
		b.log.Warnw("power save stays on", "error", err)
	}
	if err := b.driver.SetTxPower(ctx, b.TxPowerDBm); err != nil {
		b.log.Warnw("tx power unchanged", "dbm", b.TxPowerDBm, "error", err)
	}
}

func (b *Bringup) advance(next BringupState, detail string) {
	b.state = next
	if b.events != nil {
		b.events.BringupTransition(next, detail)
	}
}

func (b *Bringup) fail(reason error) error {
	b.state = StateFailed
	if b.events != nil {
		b.events.BringupTransition(StateFailed, reason.Error())
	}
	return reason
}

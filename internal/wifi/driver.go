package wifi

import (
	"context"
	"time"

	"sensor_station/internal/models"
)

// AccessPointDriver is the boundary to the radio subsystem. Implementations
// talk to real hardware; development hosts and tests use SimulatedDriver.
// The bring-up sequence calls each method at most once.
type AccessPointDriver interface {
	// Configure applies validated parameters to the radio.
	Configure(ctx context.Context, params models.NetworkParameters) error
	// Start begins broadcasting the configured network.
	Start(ctx context.Context) error
	// DisablePowerSave turns off radio power management for latency stability.
	DisablePowerSave(ctx context.Context) error
	// SetTxPower sets the transmit power in dBm.
	SetTxPower(ctx context.Context, dBm int) error
	// WaitForLink blocks until the interface has an address or ctx expires,
	// then reports the link facts.
	WaitForLink(ctx context.Context) (models.LinkInfo, error)
}

// defaultAPAddress is the address a freshly started access point hands
// itself on the soft-AP subnet.
const defaultAPAddress = "192.168.4.1"

// SimulatedDriver fakes a radio for development hosts. The fault fields let
// tests force individual bring-up stages to fail; LinkDelay models the gap
// between broadcast start and interface readiness.
type SimulatedDriver struct {
	IP        string // address reported on link-up; empty means 192.168.4.1
	LinkDelay time.Duration

	ConfigureErr error
	StartErr     error
	TuneErr      error
	LinkErr      error

	params  models.NetworkParameters
	started bool
}

func (d *SimulatedDriver) Configure(ctx context.Context, params models.NetworkParameters) error {
	if d.ConfigureErr != nil {
		return d.ConfigureErr
	}
	d.params = params
	return nil
}

func (d *SimulatedDriver) Start(ctx context.Context) error {
	if d.StartErr != nil {
		return d.StartErr
	}
	d.started = true
	return nil
}

func (d *SimulatedDriver) DisablePowerSave(ctx context.Context) error {
	return d.TuneErr
}

func (d *SimulatedDriver) SetTxPower(ctx context.Context, dBm int) error {
	return d.TuneErr
}

func (d *SimulatedDriver) WaitForLink(ctx context.Context) (models.LinkInfo, error) {
	if d.LinkErr != nil {
		return models.LinkInfo{}, d.LinkErr
	}
	if d.LinkDelay > 0 {
		t := time.NewTimer(d.LinkDelay)
		defer t.Stop()
		select {
		case <-ctx.Done():
			return models.LinkInfo{}, ctx.Err()
		case <-t.C:
		}
	} else if err := ctx.Err(); err != nil {
		return models.LinkInfo{}, err
	}

	ip := d.IP
	if ip == "" {
		ip = defaultAPAddress
	}
	return models.LinkInfo{
		IP:      ip,
		SSID:    d.params.SSID,
		Channel: d.params.Channel,
		Open:    d.params.Open(),
	}, nil
}

// Package wifi validates access-point parameters and drives the one-shot
// network bring-up that must finish before the station serves requests.
package wifi

import (
	"errors"
	"fmt"

	"sensor_station/internal/models"
)

// Radio limits. Channels above 13 are region-restricted, so the policy stops
// there even where hardware advertises 14.
const (
	MaxSSIDBytes     = 32
	MinPassphraseLen = 8
	MaxPassphraseLen = 63
	MinChannel       = 1
	MaxChannel       = 13

	// DefaultMaxClients is the station association limit applied by Validate.
	DefaultMaxClients = 4
)

// Validation errors, checked in this order.
var (
	ErrSSIDTooLong       = errors.New("wifi: ssid exceeds 32 bytes")
	ErrPassphraseLength  = errors.New("wifi: passphrase must be 8 to 63 bytes")
	ErrChannelOutOfRange = errors.New("wifi: channel outside 1..13")
)

// Validate checks access-point parameters in order: SSID length, passphrase
// length, channel. The first violation wins. An empty passphrase selects an
// open network. Validate performs no I/O and keeps no state; equal inputs
// always yield equal results. Lengths are byte counts, not rune counts, to
// match what the radio firmware enforces.
func Validate(ssid, passphrase string, channel int) (models.NetworkParameters, error) {
	if len(ssid) > MaxSSIDBytes {
		return models.NetworkParameters{}, fmt.Errorf("%w: %q is %d bytes", ErrSSIDTooLong, ssid, len(ssid))
	}
	if passphrase != "" {
		if n := len(passphrase); n < MinPassphraseLen || n > MaxPassphraseLen {
			return models.NetworkParameters{}, fmt.Errorf("%w: got %d", ErrPassphraseLength, n)
		}
	}
	if channel < MinChannel || channel > MaxChannel {
		return models.NetworkParameters{}, fmt.Errorf("%w: got %d", ErrChannelOutOfRange, channel)
	}
	return models.NetworkParameters{
		SSID:       ssid,
		Passphrase: passphrase,
		Channel:    channel,
		Hidden:     false,
		MaxClients: DefaultMaxClients,
	}, nil
}

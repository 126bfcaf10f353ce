// Package mqtt publishes station readings to an external broker. The client
// wraps paho with connection-state tracking so a broker outage turns into
// skipped publishes instead of blocked goroutines.
package mqtt

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"

	"sensor_station/internal/logger"
	"sensor_station/internal/models"
	"sensor_station/internal/service"
)

// ErrNotConnected is returned by PublishReading while the broker link is
// down. The caller skips the cycle; paho keeps reconnecting underneath.
var ErrNotConnected = errors.New("mqtt: client not connected")

var errStopped = errors.New("mqtt: client stopped")

// tokenPoll is how often ctx and stop are rechecked while waiting on a
// paho token.
const tokenPoll = 200 * time.Millisecond

// Options configure the broker connection. StationID names the topic the
// readings land on.
type Options struct {
	Broker    string
	Port      int
	ClientID  string
	StationID string
}

// Client publishes sensor readings to stations/<station_id>/telemetry with
// QoS 1.
type Client struct {
	client  mqtt.Client
	station string
	topic   string
	log     *logger.Logger

	mu        sync.RWMutex
	connected bool

	stopCh   chan struct{}
	stopOnce sync.Once
}

var _ service.ReadingPublisher = (*Client)(nil)

// payload is the wire shape. Field names follow the broker-side consumers.
type payload struct {
	StationID   string  `json:"station_id"`
	Temperature float64 `json:"temperature_c"`
	Humidity    float64 `json:"humidity_pct"`
	Timestamp   uint64  `json:"timestamp"`
}

func NewClient(opts Options, log *logger.Logger) *Client {
	c := &Client{
		station: opts.StationID,
		topic:   fmt.Sprintf("stations/%s/telemetry", opts.StationID),
		log:     log,
		stopCh:  make(chan struct{}),
	}

	po := mqtt.NewClientOptions()
	po.AddBroker(fmt.Sprintf("tcp://%s:%d", opts.Broker, opts.Port))
	po.SetClientID(opts.ClientID)
	po.SetCleanSession(true)
	po.SetAutoReconnect(true)
	po.SetConnectRetry(true)
	po.SetConnectRetryInterval(5 * time.Second)
	po.SetMaxReconnectInterval(60 * time.Second)
	po.SetKeepAlive(30 * time.Second)
	po.SetPingTimeout(10 * time.Second)

	// Callbacks keep internal state accurate across reconnects.
	po.SetOnConnectHandler(func(_ mqtt.Client) {
		c.setConnected(true)
		log.Infow("mqtt connected", "broker", opts.Broker, "port", opts.Port)
	})
	po.SetConnectionLostHandler(func(_ mqtt.Client, err error) {
		c.setConnected(false)
		log.Warnw("mqtt connection lost", "error", err)
	})

	c.client = mqtt.NewClient(po)
	return c
}

// Connect waits for the initial broker connection, honoring ctx and
// Disconnect. With connect-retry enabled the attempt keeps retrying until
// one of them fires.
func (c *Client) Connect(ctx context.Context) error {
	select {
	case <-c.stopCh:
		return errStopped
	default:
	}
	if c.IsConnected() {
		return nil
	}
	if err := c.wait(ctx, c.client.Connect()); err != nil {
		return fmt.Errorf("mqtt connect: %w", err)
	}
	return nil
}

// PublishReading sends r to the station topic.
func (c *Client) PublishReading(ctx context.Context, r models.SensorReading) error {
	if !c.IsConnected() {
		return ErrNotConnected
	}

	data, err := json.Marshal(payload{
		StationID:   c.station,
		Temperature: r.Temperature,
		Humidity:    r.Humidity,
		Timestamp:   r.Timestamp,
	})
	if err != nil {
		return fmt.Errorf("marshal reading: %w", err)
	}

	if err := c.wait(ctx, c.client.Publish(c.topic, 1, false, data)); err != nil {
		return fmt.Errorf("publish %s: %w", c.topic, err)
	}
	c.log.Debugw("published reading", "topic", c.topic)
	return nil
}

// IsConnected reports whether the broker link is up.
func (c *Client) IsConnected() bool {
	c.mu.RLock()
	connected := c.connected
	c.mu.RUnlock()
	return connected && c.client.IsConnected()
}

// Disconnect stops the client and closes the broker connection. Idempotent;
// after Disconnect, Connect returns an error.
func (c *Client) Disconnect() {
	c.stopOnce.Do(func() { close(c.stopCh) })

	// Paho quiesces in-flight work for the given ms and tolerates being
	// called while already disconnected.
	if c.client != nil {
		c.client.Disconnect(250)
	}

	c.setConnected(false)
	c.log.Infow("mqtt disconnected")
}

// wait blocks on a paho token, rechecking ctx and stop between polls.
func (c *Client) wait(ctx context.Context, token mqtt.Token) error {
	for {
		if token.WaitTimeout(tokenPoll) {
			return token.Error()
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-c.stopCh:
			return errStopped
		default:
		}
	}
}

func (c *Client) setConnected(v bool) {
	c.mu.Lock()
	c.connected = v
	c.mu.Unlock()
}

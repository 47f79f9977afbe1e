package mqtt

import (
	"context"
	"fmt"
	"strings"
	"sync"

	pahomqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/google/uuid"

	"github.com/nerrad567/gray-logic-edge/internal/infrastructure/config"
)

// instanceSuffixLen is how much of a UUID is appended to the configured
// client ID. Two agents with the same config must not evict each other
// from the broker, so every process gets a unique instance suffix.
const instanceSuffixLen = 8

// Client is the agent's publish-only connection to the Gray Logic bus.
//
// It manages connection state, automatic reconnection with exponential
// backoff, and online/offline health status (retained, with a Last Will
// for crash detection).
//
// Thread Safety:
//   - All methods are safe for concurrent use from multiple goroutines.
type Client struct {
	client   pahomqtt.Client
	cfg      config.MQTTConfig
	clientID string

	// connected tracks current connection state.
	connected bool
	connMu    sync.RWMutex
}

// Connect establishes a connection to the MQTT broker.
//
// It builds connection options from config (broker URL, auth, TLS,
// Last Will on the health topic), connects with a timeout, and publishes
// retained online status.
//
// Parameters:
//   - cfg: MQTT configuration from config.yaml
//
// Returns:
//   - *Client: Connected client ready for use
//   - error: If initial connection fails within timeout
func Connect(cfg config.MQTTConfig) (*Client, error) {
	clientID := cfg.Broker.ClientID
	if suffix := strings.ReplaceAll(uuid.NewString(), "-", ""); len(suffix) >= instanceSuffixLen {
		clientID = fmt.Sprintf("%s-%s", clientID, suffix[:instanceSuffixLen])
	}

	opts := buildClientOptions(cfg, clientID)

	c := &Client{
		cfg:      cfg,
		clientID: clientID,
	}

	opts.SetOnConnectHandler(func(_ pahomqtt.Client) {
		c.handleConnect()
	})
	opts.SetConnectionLostHandler(func(_ pahomqtt.Client, _ error) {
		c.setConnected(false)
	})

	c.client = pahomqtt.NewClient(opts)
	token := c.client.Connect()
	if !token.WaitTimeout(defaultConnectTimeout) {
		return nil, fmt.Errorf("%w: timeout after %v", ErrConnectionFailed, defaultConnectTimeout)
	}
	if err := token.Error(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrConnectionFailed, err)
	}

	// The OnConnectHandler runs asynchronously and may not have executed
	// yet; set state here so IsConnected() is immediately true.
	c.setConnected(true)

	return c, nil
}

// handleConnect runs on initial connect and every reconnect.
func (c *Client) handleConnect() {
	c.setConnected(true)

	// Refresh retained online status; replaces any LWT offline payload
	// left by a previous crash.
	c.client.Publish(Topics{}.Health(), byte(c.cfg.QoS), true, statusPayload(c.clientID, "online", ""))
}

// setConnected updates the tracked connection state.
func (c *Client) setConnected(v bool) {
	c.connMu.Lock()
	c.connected = v
	c.connMu.Unlock()
}

// ClientID returns the broker-facing client identifier, including the
// per-process instance suffix.
func (c *Client) ClientID() string {
	return c.clientID
}

// Publish sends a message to the specified topic.
//
// QoS comes from configuration; retained controls whether the broker
// stores the last message for new subscribers (use for state topics,
// not for alert events).
//
// Returns:
//   - error: nil on success, or wrapped error describing the failure
func (c *Client) Publish(topic string, payload []byte, retained bool) error {
	if topic == "" {
		return ErrInvalidTopic
	}
	if !c.IsConnected() {
		return ErrNotConnected
	}

	token := c.client.Publish(topic, byte(c.cfg.QoS), retained, payload)
	if !token.WaitTimeout(defaultPublishTimeout) {
		return fmt.Errorf("%w: timeout after %v", ErrPublishFailed, defaultPublishTimeout)
	}
	if err := token.Error(); err != nil {
		return fmt.Errorf("%w: %w", ErrPublishFailed, err)
	}

	return nil
}

// Close gracefully disconnects from the broker.
//
// A retained graceful offline status is published first so subscribers
// can distinguish shutdown from a crash (which leaves the LWT payload).
func (c *Client) Close() error {
	if c.client == nil {
		return nil
	}

	if c.IsConnected() {
		token := c.client.Publish(Topics{}.Health(), byte(c.cfg.QoS), true,
			statusPayload(c.clientID, "offline", "graceful_shutdown"))
		token.WaitTimeout(defaultPublishTimeout)
	}

	c.client.Disconnect(defaultDisconnectQuiesce)
	c.setConnected(false)

	return nil
}

// HealthCheck verifies the MQTT connection is alive.
//
// Parameters:
//   - ctx: Context for timeout/cancellation
//
// Returns:
//   - error: nil if healthy, error describing the issue otherwise
func (c *Client) HealthCheck(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return fmt.Errorf("mqtt health check: %w", ctx.Err())
	default:
	}

	if !c.IsConnected() {
		return ErrNotConnected
	}

	return nil
}

// IsConnected returns the current connection state.
func (c *Client) IsConnected() bool {
	c.connMu.RLock()
	defer c.connMu.RUnlock()
	return c.connected && c.client.IsConnected()
}

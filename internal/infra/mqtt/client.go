package mqtt

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	paho "github.com/eclipse/paho.mqtt.golang"
)

const (
	_defaultQoS            = 0 // At most once
	_defaultRetained       = false
	_defaultPublishTimeout = 5 * time.Second
	_defaultConnectRetries = 10
	_defaultRetryDelay     = 5 * time.Second
)

//go:generate mockgen -source=client.go -destination=../../../test/unit/doubles/infra/mqtt/client_mock.go -package=mqtt

var ErrPublishTimeout = errors.New("publish timed out")

type Client interface {
	Subscribe(topic string, qos byte, callback MessageHandler) error
	Publish(topic string, msg any) error

	Disconnect()
}

type SimpleClientOpts struct {
	Broker         string
	ClientID       string
	Username       string
	Password       string
	PublishTimeout time.Duration
	ConnectRetries int
	RetryDelay     time.Duration
}

func (o SimpleClientOpts) withDefaults() SimpleClientOpts {
	if o.PublishTimeout <= 0 {
		o.PublishTimeout = _defaultPublishTimeout
	}
	if o.ConnectRetries <= 0 {
		o.ConnectRetries = _defaultConnectRetries
	}
	if o.RetryDelay <= 0 {
		o.RetryDelay = _defaultRetryDelay
	}
	return o
}

// Subscription tracks a topic subscription for reconnection recovery
type subscription struct {
	topic    string
	qos      byte
	callback MessageHandler
}

// NewSimpleClient connects to the broker, retrying up to opts.ConnectRetries
// times before giving up.
func NewSimpleClient(opts SimpleClientOpts) (*SimpleClient, error) {
	opts = opts.withDefaults()
	simpleClient := &SimpleClient{
		subscriptions:  make(map[string]subscription),
		publishTimeout: opts.PublishTimeout,
	}

	onConnectHandler := func(client paho.Client) {
		slog.Info("connected to MQTT broker", "broker", opts.Broker)
		simpleClient.resubscribeAll(client)
	}

	onConnectionLostHandler := func(_ paho.Client, err error) {
		slog.Error("connection lost to MQTT broker", "error", err)
	}

	pahoOpts := paho.NewClientOptions().
		AddBroker(opts.Broker).
		SetClientID(opts.ClientID).
		SetUsername(opts.Username).
		SetPassword(opts.Password).
		SetOnConnectHandler(onConnectHandler).
		SetAutoReconnect(true).
		SetConnectionLostHandler(onConnectionLostHandler).
		SetKeepAlive(10 * time.Second).
		SetConnectTimeout(5 * time.Second)

	var lastErr error
	for try := 1; try <= opts.ConnectRetries; try++ {
		client := paho.NewClient(pahoOpts)
		token := client.Connect()
		if !token.WaitTimeout(5 * time.Second) {
			lastErr = errors.New("connect timed out")
		} else {
			lastErr = token.Error()
		}

		if lastErr == nil {
			simpleClient.client = client
			return simpleClient, nil
		}

		slog.Warn("error connecting to mqtt broker", "try", try, "error", lastErr)
		if try < opts.ConnectRetries {
			time.Sleep(opts.RetryDelay)
		}
	}

	return nil, fmt.Errorf("connecting to %s after %d tries: %w", opts.Broker, opts.ConnectRetries, lastErr)
}

var _ Client = (*SimpleClient)(nil)

type SimpleClient struct {
	client         paho.Client
	subscriptions  map[string]subscription
	publishTimeout time.Duration
	mu             sync.RWMutex
}

// resubscribeAll re-establishes all subscriptions after reconnection
func (c *SimpleClient) resubscribeAll(client paho.Client) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if len(c.subscriptions) == 0 {
		slog.Debug("no subscriptions to restore")
		return
	}

	slog.Info("restoring MQTT subscriptions after reconnection", "count", len(c.subscriptions))

	for topic, sub := range c.subscriptions {
		token := client.Subscribe(sub.topic, sub.qos, c.pahoCallback(sub.callback))
		token.WaitTimeout(5 * time.Second)
		if token.Error() != nil {
			slog.Error("failed to restore subscription after reconnection",
				"topic", topic, "error", token.Error())
		} else {
			slog.Debug("subscription restored", "topic", topic)
		}
	}
}

func (c *SimpleClient) pahoCallback(callback MessageHandler) paho.MessageHandler {
	return func(_ paho.Client, msg paho.Message) {
		callback(c, msg)
	}
}

func (c *SimpleClient) Subscribe(topic string, qos byte, callback MessageHandler) error {
	c.mu.Lock()
	c.subscriptions[topic] = subscription{
		topic:    topic,
		qos:      qos,
		callback: callback,
	}
	c.mu.Unlock()

	token := c.client.Subscribe(topic, qos, c.pahoCallback(callback))
	token.WaitTimeout(5 * time.Second)
	if token.Error() != nil {
		c.mu.Lock()
		delete(c.subscriptions, topic)
		c.mu.Unlock()
		return fmt.Errorf("subscribing to topic %s: %w", topic, token.Error())
	}

	slog.Info("subscribed to MQTT topic", "topic", topic, "qos", qos)
	return nil
}

type MessageHandler func(Client, Message)

type Message interface {
	Topic() string
	MessageID() uint16
	Payload() []byte
	Ack()
}

func (c *SimpleClient) Disconnect() {
	c.mu.Lock()
	c.subscriptions = make(map[string]subscription)
	c.mu.Unlock()

	waitForInMilliseconds := 5 * 1000
	c.client.Disconnect(uint(waitForInMilliseconds))
}

// Publish sends raw byte payloads as they are and JSON encodes anything else.
func (c *SimpleClient) Publish(topic string, msg any) error {
	payload, err := encodePayload(msg)
	if err != nil {
		return err
	}

	token := c.client.Publish(topic, _defaultQoS, _defaultRetained, payload)
	if !token.WaitTimeout(c.publishTimeout) {
		return fmt.Errorf("publishing to topic %s: %w", topic, ErrPublishTimeout)
	}
	if token.Error() != nil {
		return fmt.Errorf("publishing to topic %s: %w", topic, token.Error())
	}

	return nil
}

func encodePayload(msg any) ([]byte, error) {
	if raw, ok := msg.([]byte); ok {
		return raw, nil
	}

	payload, err := json.Marshal(msg)
	if err != nil {
		return nil, fmt.Errorf("marshaling message: %w", err)
	}
	return payload, nil
}

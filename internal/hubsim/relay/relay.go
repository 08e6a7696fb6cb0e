package relay

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"

	"github.com/moonblokz/telemetry-cli/internal/core/domain"
	"github.com/moonblokz/telemetry-cli/internal/telemetry/logger"
)

// Relay publishes documents to probes.
type Relay interface {
	Publish(ctx context.Context, doc *domain.Document) error
	Close() error
}

// ErrTimeout is returned when the broker does not acknowledge in time.
var ErrTimeout = errors.New("mqtt publish timed out")

// Options configures an MQTT relay.
type Options struct {
	Broker   string
	ClientID string
	Username string
	Password string
	Topic    string
	QoS      byte
	Timeout  time.Duration
}

// Topic returns the topic doc is published on.
func Topic(prefix string, doc *domain.Document) string {
	if id, ok := doc.NodeIDOf(); ok {
		return prefix + "/" + strconv.FormatUint(uint64(id), 10) + "/command"
	}
	return prefix + "/all/command"
}

// publisher is the subset of mqtt.Client the relay uses.
type publisher interface {
	Publish(topic string, qos byte, retained bool, payload interface{}) mqtt.Token
	Disconnect(quiesce uint)
}

// MQTTRelay publishes documents through an MQTT broker.
type MQTTRelay struct {
	client  publisher
	topic   string
	qos     byte
	timeout time.Duration
	logger  logger.Logger
}

// Dial connects to the broker and returns a ready relay.
func Dial(opts Options, log logger.Logger) (*MQTTRelay, error) {
	clientOpts := mqtt.NewClientOptions().
		AddBroker(opts.Broker).
		SetClientID(opts.ClientID).
		SetAutoReconnect(true).
		SetConnectTimeout(opts.Timeout).
		SetConnectionLostHandler(func(_ mqtt.Client, err error) {
			log.Warn("mqtt connection lost", "broker", opts.Broker, "error", err)
		}).
		SetOnConnectHandler(func(mqtt.Client) {
			log.Info("mqtt connected", "broker", opts.Broker)
		})
	if opts.Username != "" {
		clientOpts.SetUsername(opts.Username)
		clientOpts.SetPassword(opts.Password)
	}

	client := mqtt.NewClient(clientOpts)
	token := client.Connect()
	if !token.WaitTimeout(opts.Timeout) {
		return nil, fmt.Errorf("connect %s: %w", opts.Broker, ErrTimeout)
	}
	if err := token.Error(); err != nil {
		return nil, fmt.Errorf("connect %s: %w", opts.Broker, err)
	}

	return newMQTTRelay(client, opts, log), nil
}

func newMQTTRelay(client publisher, opts Options, log logger.Logger) *MQTTRelay {
	return &MQTTRelay{
		client:  client,
		topic:   opts.Topic,
		qos:     opts.QoS,
		timeout: opts.Timeout,
		logger:  log,
	}
}

// Publish sends doc and waits for the broker acknowledgement, the relay
// timeout or ctx, whichever comes first.
func (r *MQTTRelay) Publish(ctx context.Context, doc *domain.Document) error {
	payload, err := doc.Marshal()
	if err != nil {
		return fmt.Errorf("encode document: %w", err)
	}

	topic := Topic(r.topic, doc)
	token := r.client.Publish(topic, r.qos, false, payload)

	timer := time.NewTimer(r.timeout)
	defer timer.Stop()

	select {
	case <-token.Done():
	case <-timer.C:
		return ErrTimeout
	case <-ctx.Done():
		return ctx.Err()
	}
	if err := token.Error(); err != nil {
		return fmt.Errorf("publish %s: %w", topic, err)
	}

	r.logger.Debug("command relayed", "topic", topic, "command", doc.Command)
	return nil
}

// Close disconnects from the broker.
func (r *MQTTRelay) Close() error {
	r.client.Disconnect(250)
	return nil
}

package telemetry

import (
	"context"
	"errors"
	"fmt"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	log "github.com/sirupsen/logrus"
	"github.com/ukydev/ring-traffic/internal/models"
)

var (
	ErrNotConnected   = errors.New("mqtt client is not connected")
	ErrPublishTimeout = errors.New("mqtt publish timed out")
)

// mqttClient is the part of mqtt.Client the publisher uses.
type mqttClient interface {
	IsConnected() bool
	Publish(topic string, qos byte, retained bool, payload interface{}) mqtt.Token
	Disconnect(quiesce uint)
}

// MQTTOptions configures an MQTTPublisher.
type MQTTOptions struct {
	Broker   string
	ClientID string
	Topic    string
	QoS      byte
	Encoding Encoding
	Timeout  time.Duration
}

// MQTTPublisher publishes frames to a single MQTT topic.
type MQTTPublisher struct {
	client   mqttClient
	topic    string
	qos      byte
	encoding Encoding
	timeout  time.Duration
}

// NewMQTTPublisher connects to the broker and returns a publisher.
func NewMQTTPublisher(opts MQTTOptions) (*MQTTPublisher, error) {
	if opts.Broker == "" {
		return nil, fmt.Errorf("mqtt broker is required")
	}
	if opts.Timeout <= 0 {
		opts.Timeout = 5 * time.Second
	}

	clientOpts := mqtt.NewClientOptions().
		AddBroker(opts.Broker).
		SetClientID(opts.ClientID).
		SetAutoReconnect(true).
		SetConnectTimeout(opts.Timeout).
		SetConnectionLostHandler(func(_ mqtt.Client, err error) {
			log.WithError(err).Warn("MQTT connection lost")
		}).
		SetOnConnectHandler(func(_ mqtt.Client) {
			log.WithField("broker", opts.Broker).Info("Connected to MQTT broker")
		})

	client := mqtt.NewClient(clientOpts)
	token := client.Connect()
	if !token.WaitTimeout(opts.Timeout) {
		return nil, fmt.Errorf("mqtt connect to %s timed out", opts.Broker)
	}
	if err := token.Error(); err != nil {
		return nil, fmt.Errorf("mqtt connect error: %w", err)
	}
	return newMQTTPublisher(client, opts), nil
}

func newMQTTPublisher(client mqttClient, opts MQTTOptions) *MQTTPublisher {
	if opts.Encoding == "" {
		opts.Encoding = EncodingJSON
	}
	if opts.Timeout <= 0 {
		opts.Timeout = 5 * time.Second
	}
	return &MQTTPublisher{
		client:   client,
		topic:    opts.Topic,
		qos:      opts.QoS,
		encoding: opts.Encoding,
		timeout:  opts.Timeout,
	}
}

// Publish encodes the frame and waits for the broker to accept it.
func (p *MQTTPublisher) Publish(ctx context.Context, frame models.Frame) error {
	if !p.client.IsConnected() {
		return ErrNotConnected
	}
	payload, err := EncodeFrame(p.encoding, frame)
	if err != nil {
		return err
	}

	token := p.client.Publish(p.topic, p.qos, false, payload)
	select {
	case <-token.Done():
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(p.timeout):
		return ErrPublishTimeout
	}
	if err := token.Error(); err != nil {
		return fmt.Errorf("mqtt publish error: %w", err)
	}
	return nil
}

// Close disconnects from the broker.
func (p *MQTTPublisher) Close() error {
	p.client.Disconnect(250)
	return nil
}

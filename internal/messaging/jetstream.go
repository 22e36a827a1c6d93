package messaging

import (
	"context"
	"fmt"
	"net"
	"time"

	"badge/internal/models"

	"github.com/ThreeDotsLabs/watermill-nats/v2/pkg/jetstream"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/nats-io/nats.go"
	natsJs "github.com/nats-io/nats.go/jetstream"
)

type JetStreamSubscriber struct {
	TopicName  string
	conn       *nats.Conn
	subscriber *jetstream.Subscriber
}

// NewJetStreamSubscriber declares a work-queue stream and an explicit-ack durable consumer for the topic.
func NewJetStreamSubscriber(ctx context.Context, config *models.JetStreamEventsConfig, topicName string) (ISubscriber, error) {
	nc, err := nats.Connect(net.JoinHostPort(config.Host, config.Port))
	if err != nil {
		return nil, fmt.Errorf("connect to NATS: %w", err)
	}

	js, err := natsJs.New(nc)
	if err != nil {
		nc.Close()
		return nil, fmt.Errorf("create JetStream context: %w", err)
	}

	stream, err := js.CreateOrUpdateStream(ctx, natsJs.StreamConfig{
		Name:      topicName,
		Subjects:  []string{topicName},
		Retention: natsJs.WorkQueuePolicy,
	})
	if err != nil {
		nc.Close()
		return nil, fmt.Errorf("create stream %s: %w", topicName, err)
	}

	consumerName := fmt.Sprintf("watermill__%s", topicName)
	_, err = stream.CreateOrUpdateConsumer(ctx, natsJs.ConsumerConfig{
		Name:      consumerName,
		Durable:   consumerName,
		AckPolicy: natsJs.AckExplicitPolicy,
	})
	if err != nil {
		nc.Close()
		return nil, fmt.Errorf("create consumer %s: %w", consumerName, err)
	}

	var namer jetstream.ConsumerConfigurator
	subscriber, err := jetstream.NewSubscriber(jetstream.SubscriberConfig{
		Conn:                nc,
		AckWaitTimeout:      30 * time.Second,
		ResourceInitializer: jetstream.ExistingConsumer(namer, ""),
		Logger:              logger(),
	})
	if err != nil {
		nc.Close()
		return nil, fmt.Errorf("create JetStream subscriber: %w", err)
	}

	return &JetStreamSubscriber{TopicName: topicName, conn: nc, subscriber: subscriber}, nil
}

func (s *JetStreamSubscriber) Subscribe(ctx context.Context) (<-chan *message.Message, error) {
	return s.subscriber.Subscribe(ctx, s.TopicName)
}

func (s *JetStreamSubscriber) Close() error {
	err := s.subscriber.Close()
	s.conn.Close()
	return err
}

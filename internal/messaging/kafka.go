package messaging

import (
	"context"
	"fmt"

	"badge/internal/models"

	"github.com/IBM/sarama"
	"github.com/ThreeDotsLabs/watermill-kafka/v3/pkg/kafka"
	"github.com/ThreeDotsLabs/watermill/message"
)

type KafkaSubscriber struct {
	TopicName  string
	subscriber *kafka.Subscriber
}

// NewKafkaSaramaConfig starts from the oldest offset so a new consumer group replays retained events.
func NewKafkaSaramaConfig(config *models.KafkaEventsConfig) (*sarama.Config, error) {
	saramaConfig := kafka.DefaultSaramaSubscriberConfig()
	saramaConfig.Consumer.Offsets.Initial = sarama.OffsetOldest

	if config.Version != "" {
		version, err := sarama.ParseKafkaVersion(config.Version)
		if err != nil {
			return nil, fmt.Errorf("invalid kafka version %q: %w", config.Version, err)
		}
		saramaConfig.Version = version
	}

	if config.User != "" {
		saramaConfig.Net.SASL.Enable = true
		saramaConfig.Net.SASL.Mechanism = sarama.SASLTypePlaintext
		saramaConfig.Net.SASL.User = config.User
		saramaConfig.Net.SASL.Password = config.Password
	}
	saramaConfig.Net.TLS.Enable = config.TLSEnabled

	return saramaConfig, nil
}

func NewKafkaSubscriber(config *models.KafkaEventsConfig, topicName string) (ISubscriber, error) {
	saramaConfig, err := NewKafkaSaramaConfig(config)
	if err != nil {
		return nil, err
	}

	subscriber, err := kafka.NewSubscriber(kafka.SubscriberConfig{
		Brokers:               config.Brokers,
		Unmarshaler:           kafka.DefaultMarshaler{},
		OverwriteSaramaConfig: saramaConfig,
		ConsumerGroup:         config.ConsumerGroup,
		NackResendSleep:       config.NackResendSleep,
	}, logger())
	if err != nil {
		return nil, fmt.Errorf("create kafka subscriber: %w", err)
	}

	return &KafkaSubscriber{TopicName: topicName, subscriber: subscriber}, nil
}

func (s *KafkaSubscriber) Subscribe(ctx context.Context) (<-chan *message.Message, error) {
	return s.subscriber.Subscribe(ctx, s.TopicName)
}

func (s *KafkaSubscriber) Close() error {
	return s.subscriber.Close()
}

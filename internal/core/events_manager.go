package core

import (
	"context"
	"fmt"

	"badge/internal/configuration"
	"badge/internal/messaging"
	"badge/internal/models"

	"go.uber.org/zap"
)

// EventsManager owns one subscriber per configured queue. The in-memory provider also keeps
// the publisher sharing its channel.
type EventsManager struct {
	publishers  map[string]messaging.IPublisher
	subscribers map[string]messaging.ISubscriber
	config      models.EventsConfiguration
}

func NewEventsManager(ctx context.Context, config models.EventsConfiguration) (*EventsManager, error) {
	manager := &EventsManager{
		publishers:  make(map[string]messaging.IPublisher),
		subscribers: make(map[string]messaging.ISubscriber),
		config:      config,
	}

	if err := manager.initializeSubscribers(ctx); err != nil {
		manager.Close()
		return nil, err
	}

	return manager, nil
}

func (em *EventsManager) initializeSubscribers(ctx context.Context) error {
	for topicKey, topicConfig := range em.config.Queues {
		var subscriber messaging.ISubscriber
		var err error

		switch em.config.Type {
		case configuration.ProviderKafka:
			subscriber, err = messaging.NewKafkaSubscriber(em.config.Kafka, topicConfig.Name)
		case configuration.ProviderJetstream:
			subscriber, err = messaging.NewJetStreamSubscriber(ctx, em.config.Jetstream, topicConfig.Name)
		case configuration.ProviderGCP:
			subscriber, err = messaging.NewGCPSubscriber(em.config.PubSub, topicConfig.Name)
		case configuration.ProviderAWS:
			subscriber, err = messaging.NewAWSSubscriber(ctx, topicConfig.Name)
		case configuration.ProviderMemory:
			ch := messaging.NewMemoryChannel()
			em.publishers[topicKey] = messaging.NewMemoryPublisher(ch, topicConfig.Name)
			subscriber = messaging.NewMemorySubscriber(ch, topicConfig.Name)
		default:
			err = fmt.Errorf("unsupported events provider %q", em.config.Type)
		}
		if err != nil {
			return fmt.Errorf("topic %s: %w", topicKey, err)
		}

		em.subscribers[topicKey] = subscriber
		zap.L().Info("Initialized subscriber",
			zap.String("topic_key", topicKey),
			zap.String("topic_name", topicConfig.Name),
			zap.String("provider", em.config.Type))
	}
	return nil
}

func (em *EventsManager) GetPublisher(topicKey string) messaging.IPublisher {
	publisher, exists := em.publishers[topicKey]
	if !exists {
		zap.L().Warn("Publisher not found", zap.String("topic_key", topicKey))
		return nil
	}
	return publisher
}

func (em *EventsManager) GetSubscriber(topicKey string) messaging.ISubscriber {
	subscriber, exists := em.subscribers[topicKey]
	if !exists {
		zap.L().Warn("Subscriber not found", zap.String("topic_key", topicKey))
		return nil
	}
	return subscriber
}

func (em *EventsManager) Close() {
	for topicKey, subscriber := range em.subscribers {
		if err := subscriber.Close(); err != nil {
			zap.L().Error("Failed to close subscriber",
				zap.String("topic_key", topicKey),
				zap.Error(err))
		}
	}

	for topicKey, publisher := range em.publishers {
		if err := publisher.Close(); err != nil {
			zap.L().Debug("Failed to close publisher",
				zap.String("topic_key", topicKey),
				zap.Error(err))
		}
	}
}

package messaging

import (
	"context"
	"fmt"

	"badge/internal/models"

	"github.com/ThreeDotsLabs/watermill-googlecloud/pkg/googlecloud"
	"github.com/ThreeDotsLabs/watermill/message"
)

type GCPSubscriber struct {
	TopicName  string
	subscriber *googlecloud.Subscriber
}

func NewGCPSubscriber(config *models.PubSubConfiguration, topicName string) (ISubscriber, error) {
	subscriber, err := googlecloud.NewSubscriber(
		googlecloud.SubscriberConfig{
			ProjectID: config.ProjectID,
			GenerateSubscriptionName: func(topic string) string {
				return topic + config.SubscriptionSuffix
			},
			DoNotCreateSubscriptionIfMissing: true,
		},
		logger(),
	)
	if err != nil {
		return nil, fmt.Errorf("create Pub/Sub subscriber: %w", err)
	}

	return &GCPSubscriber{TopicName: topicName, subscriber: subscriber}, nil
}

func (s *GCPSubscriber) Subscribe(ctx context.Context) (<-chan *message.Message, error) {
	return s.subscriber.Subscribe(ctx, s.TopicName)
}

func (s *GCPSubscriber) Close() error {
	return s.subscriber.Close()
}

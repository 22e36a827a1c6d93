package messaging

import (
	"context"

	"github.com/ThreeDotsLabs/watermill/message"
)

type IPublisher interface {
	Publish(messages ...*message.Message) error
	Close() error
}

// ISubscriber delivers messages that must each be acked or nacked by the consumer.
type ISubscriber interface {
	Subscribe(ctx context.Context) (<-chan *message.Message, error)
	Close() error
}

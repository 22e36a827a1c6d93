package messaging

import (
	"context"
	"fmt"

	"github.com/ThreeDotsLabs/watermill-aws/sqs"
	"github.com/ThreeDotsLabs/watermill/message"
	awsConfig "github.com/aws/aws-sdk-go-v2/config"
)

type AWSSubscriber struct {
	TopicName  string
	subscriber *sqs.Subscriber
}

func NewAWSSubscriber(ctx context.Context, sqsName string) (ISubscriber, error) {
	awsCfg, err := awsConfig.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, fmt.Errorf("load AWS SDK config: %w", err)
	}

	subscriber, err := sqs.NewSubscriber(sqs.SubscriberConfig{
		AWSConfig:                   awsCfg,
		DoNotCreateQueueIfNotExists: true,
	}, logger())
	if err != nil {
		return nil, fmt.Errorf("create SQS subscriber: %w", err)
	}

	return &AWSSubscriber{TopicName: sqsName, subscriber: subscriber}, nil
}

func (s *AWSSubscriber) Subscribe(ctx context.Context) (<-chan *message.Message, error) {
	return s.subscriber.Subscribe(ctx, s.TopicName)
}

func (s *AWSSubscriber) Close() error {
	return s.subscriber.Close()
}

package repo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"ledger/config"

	pubsub "cloud.google.com/go/pubsub/apiv1"
	pubsubpb "cloud.google.com/go/pubsub/apiv1/pubsubpb"
	"go.uber.org/zap"
	"google.golang.org/api/option"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/status"
)

// MessageHandler processes one message payload. Returning an error does not
// cause redelivery: a rejected transaction is final.
type MessageHandler func(ctx context.Context, data []byte) error

type PubSubInterface interface {
	Subscribe(ctx context.Context, handler MessageHandler) error
	Publish(ctx context.Context, data []byte) error
	Close() error
}

type PubSub struct {
	pubClient *pubsub.PublisherClient
	subClient *pubsub.SubscriberClient
	config    *config.Config
	log       *zap.Logger
}

func NewPubSubClient(config *config.Config, log *zap.Logger) (PubSubInterface, error) {
	ctx := context.Background()

	opts := []option.ClientOption{
		option.WithEndpoint(config.PubSub.Endpoint),
		option.WithoutAuthentication(),
		option.WithGRPCDialOption(grpc.WithTransportCredentials(insecure.NewCredentials())),
	}

	pubClient, err := pubsub.NewPublisherClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create pubsub publisher client: %w", err)
	}

	subClient, err := pubsub.NewSubscriberClient(ctx, opts...)
	if err != nil {
		_ = pubClient.Close()
		return nil, fmt.Errorf("failed to create pubsub subscriber client: %w", err)
	}

	return &PubSub{
		pubClient: pubClient,
		subClient: subClient,
		config:    config,
		log:       log.Named("pubsub"),
	}, nil
}

func (p *PubSub) topicPath() string {
	return fmt.Sprintf("projects/%s/topics/%s", p.config.PubSub.ProjectID, p.config.PubSub.Topic)
}

func (p *PubSub) subscriptionPath() string {
	return fmt.Sprintf("projects/%s/subscriptions/%s", p.config.PubSub.ProjectID, p.config.PubSub.Subscription)
}

func (p *PubSub) Publish(ctx context.Context, data []byte) error {
	var lastErr error
	for i := 0; i < 3; i++ {
		attemptCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		resp, err := p.pubClient.Publish(attemptCtx, &pubsubpb.PublishRequest{
			Topic: p.topicPath(),
			Messages: []*pubsubpb.PubsubMessage{
				{Data: data},
			},
		})
		cancel()
		if err == nil {
			p.log.Debug("published message", zap.Strings("message_ids", resp.MessageIds))
			return nil
		}

		lastErr = err
		p.log.Warn("publish attempt failed", zap.Int("attempt", i+1), zap.Error(err))
		if ctx.Err() != nil {
			break
		}
	}
	return fmt.Errorf("failed to publish after retries: %w", lastErr)
}

// Subscribe pulls until ctx is done, handing each message to handler in
// delivery order and acknowledging every batch.
func (p *PubSub) Subscribe(ctx context.Context, handler MessageHandler) error {
	subPath := p.subscriptionPath()
	p.log.Info("starting consumer", zap.String("subscription", subPath))

	for {
		resp, err := p.subClient.Pull(ctx, &pubsubpb.PullRequest{
			Subscription: subPath,
			MaxMessages:  p.config.PubSub.MaxMessages,
		})
		if err != nil {
			if isStopped(ctx, err) {
				p.log.Info("consumer stopped")
				return nil
			}
			if isIdleTimeout(err) {
				continue
			}
			p.log.Warn("pull failed, retrying", zap.Error(err))
			if !sleepCtx(ctx, time.Second) {
				return nil
			}
			continue
		}

		if resp == nil || len(resp.ReceivedMessages) == 0 {
			continue
		}

		ackIDs := make([]string, 0, len(resp.ReceivedMessages))
		for _, m := range resp.ReceivedMessages {
			if err := handler(ctx, m.Message.GetData()); err != nil {
				p.log.Debug("message rejected",
					zap.String("message_id", m.Message.GetMessageId()),
					zap.Error(err))
			}
			ackIDs = append(ackIDs, m.AckId)
		}

		if err := p.subClient.Acknowledge(context.WithoutCancel(ctx), &pubsubpb.AcknowledgeRequest{
			Subscription: subPath,
			AckIds:       ackIDs,
		}); err != nil {
			p.log.Error("ack failed", zap.Int("count", len(ackIDs)), zap.Error(err))
		}
	}
}

func (p *PubSub) Close() error {
	return errors.Join(p.pubClient.Close(), p.subClient.Close())
}

// isStopped reports whether the consumer itself was asked to stop. Errors
// from a single call, cancellation included, do not stop a live consumer.
func isStopped(ctx context.Context, err error) bool {
	return ctx.Err() != nil
}

// isIdleTimeout reports a Pull that hit its per-call deadline with no messages.
func isIdleTimeout(err error) bool {
	return status.Code(err) == codes.DeadlineExceeded || errors.Is(err, context.DeadlineExceeded)
}

func sleepCtx(ctx context.Context, d time.Duration) bool {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}

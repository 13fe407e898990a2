package kafka

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/Shopify/sarama"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/luissevero/ignitegofinances/internal/logger"
	"github.com/luissevero/ignitegofinances/internal/model/register"
)

type consumerConfig interface {
	producerConfig
	ConsumerGroup() string
}

type dashboardWarmer interface {
	WarmUp(ctx context.Context, userID string) error
}

type Consumer struct {
	consumerGroup sarama.ConsumerGroup
	topic         string
	warmer        dashboardWarmer
}

func NewConsumer(cfg consumerConfig, warmer dashboardWarmer) (*Consumer, error) {
	config := sarama.NewConfig()
	config.Version = sarama.V2_5_0_0
	config.Consumer.Offsets.Initial = sarama.OffsetOldest

	consumerGroup, err := sarama.NewConsumerGroup(cfg.Brokers(), cfg.ConsumerGroup(), config)
	if err != nil {
		return nil, errors.Wrap(err, "new consumer group")
	}
	return &Consumer{
		consumerGroup: consumerGroup,
		topic:         cfg.TransactionsTopic(),
		warmer:        warmer,
	}, nil
}

func (c *Consumer) StartConsuming(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		default:
			err := c.consumerGroup.Consume(ctx, []string{c.topic}, c)
			if err != nil {
				return errors.Wrap(err, fmt.Sprintf("consume from %s", c.topic))
			}
		}
	}
}

func (c *Consumer) Close() error {
	return c.consumerGroup.Close()
}

func (c *Consumer) Setup(sarama.ConsumerGroupSession) error {
	logger.Info("consumer - setup")
	return nil
}

func (c *Consumer) Cleanup(sarama.ConsumerGroupSession) error {
	logger.Info("consumer - cleanup")
	return nil
}

func (c *Consumer) ConsumeClaim(session sarama.ConsumerGroupSession, claim sarama.ConsumerGroupClaim) error {
	for message := range claim.Messages() {
		c.handleMessage(session.Context(), message)
		session.MarkMessage(message, "")
	}
	return nil
}

// handleMessage never fails the claim: a bad message is logged and skipped.
func (c *Consumer) handleMessage(ctx context.Context, message *sarama.ConsumerMessage) {
	if t := eventType(message); t != "" && t != TransactionCreated {
		logger.Info("skip unknown event", zap.String("type", t))
		return
	}

	var event register.Event
	if err := json.Unmarshal(message.Value, &event); err != nil || event.UserID == "" {
		logger.Error("cannot decode transaction event", zap.ByteString("key", message.Key), zap.Error(err))
		return
	}
	logger.Info("received transaction event",
		zap.String("userID", event.UserID),
		zap.String("transactionID", event.Transaction.ID))

	if err := c.warmer.WarmUp(ctx, event.UserID); err != nil {
		logger.Error("failed to warm up dashboard", zap.String("userID", event.UserID), zap.Error(err))
	}
}

func eventType(message *sarama.ConsumerMessage) string {
	for _, h := range message.Headers {
		if h != nil && string(h.Key) == eventTypeHeader {
			return string(h.Value)
		}
	}
	return ""
}

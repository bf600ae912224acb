package bootstrap

import (
	"context"
	"log/slog"

	"marketplace-catalog/internal/handler/consumer"
	"marketplace-catalog/internal/pkg/config"
	"marketplace-catalog/internal/usecase/commands"

	"github.com/segmentio/kafka-go"
	"go.uber.org/fx"
)

var MessagingModule = fx.Module("messaging",
	fx.Invoke(startOrderConsumer),
)

func NewOrderEventReader(cfg config.KafkaConfig) *kafka.Reader {
	return kafka.NewReader(kafka.ReaderConfig{
		Brokers:     cfg.Brokers,
		GroupID:     cfg.GroupID,
		GroupTopics: []string{cfg.OrderCreatedTopic, cfg.OrderStatusTopic},
		MinBytes:    1,
		MaxBytes:    10e6,
		StartOffset: kafka.FirstOffset,
	})
}

// startOrderConsumer is a no-op unless KAFKA_ENABLED is set, so the API can run without a broker.
func startOrderConsumer(lc fx.Lifecycle, cfg config.Config, orders commands.OrderStockCommands, logger *slog.Logger) {
	if !cfg.Kafka.Enabled {
		logger.Info("order event consumer disabled")
		return
	}

	c := consumer.NewOrderEventConsumer(NewOrderEventReader(cfg.Kafka), orders, consumer.Config{
		OrderCreatedTopic: cfg.Kafka.OrderCreatedTopic,
		OrderStatusTopic:  cfg.Kafka.OrderStatusTopic,
		MaxAttempts:       cfg.Kafka.MaxAttempts,
		RetryBackoff:      cfg.Kafka.RetryBackoff,
	}, logger)

	lc.Append(fx.Hook{
		OnStart: func(_ context.Context) error {
			c.Start()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			return c.Stop(ctx)
		},
	})
}

package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/couchcryptid/forecast-download-wizard/internal/config"
	"github.com/couchcryptid/forecast-download-wizard/internal/domain"
	kafkago "github.com/segmentio/kafka-go"
)

// Writer publishes download events to a Kafka topic.
// It implements download.EventPublisher.
type Writer struct {
	writer *kafkago.Writer
	logger *slog.Logger
}

// NewWriter creates a Kafka producer for the configured download topic.
func NewWriter(cfg *config.Config, logger *slog.Logger) *Writer {
	w := &kafkago.Writer{
		Addr:         kafkago.TCP(cfg.KafkaBrokers...),
		Topic:        cfg.KafkaDownloadTopic,
		Balancer:     &kafkago.Hash{},
		RequiredAcks: kafkago.RequireAll,
	}
	return &Writer{writer: w, logger: logger}
}

// Publish serializes one download event and writes it synchronously.
func (w *Writer) Publish(ctx context.Context, event domain.DownloadEvent) error {
	msg, err := serializeToMessage(event)
	if err != nil {
		return err
	}
	if err := w.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("write download event: %w", err)
	}
	w.logger.Debug("download event published", "id", event.ID, "topic", w.writer.Topic)
	return nil
}

func (w *Writer) Close() error {
	return w.writer.Close()
}

// serializeToMessage marshals a DownloadEvent into a Kafka message keyed by
// event ID.
func serializeToMessage(event domain.DownloadEvent) (kafkago.Message, error) {
	data, err := json.Marshal(event)
	if err != nil {
		return kafkago.Message{}, fmt.Errorf("serialize download event: %w", err)
	}
	return kafkago.Message{
		Key:   []byte(event.ID),
		Value: data,
		Headers: []kafkago.Header{
			{Key: "forecast_id", Value: []byte(event.ForecastID)},
			{Key: "requested_at", Value: []byte(event.RequestedAt.Format(time.RFC3339))},
		},
	}, nil
}

// DecodeMessage converts a consumed Kafka message back into a DownloadEvent.
func DecodeMessage(msg kafkago.Message) (domain.DownloadEvent, error) {
	var event domain.DownloadEvent
	if err := json.Unmarshal(msg.Value, &event); err != nil {
		return domain.DownloadEvent{}, fmt.Errorf("decode download event: %w", err)
	}
	return event, nil
}

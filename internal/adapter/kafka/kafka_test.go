package kafka

import (
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/couchcryptid/forecast-download-wizard/internal/config"
	"github.com/couchcryptid/forecast-download-wizard/internal/domain"
	kafkago "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleEvent(now time.Time) domain.DownloadEvent {
	return domain.DownloadEvent{
		ID:           "dl-0123456789abcdef",
		ForecastID:   "short",
		ForecastName: "단기예보",
		City:         "서울특별시",
		District:     "중구",
		Town:         "명동",
		Variables:    []string{"1시간기온", "풍속"},
		Start:        domain.DownloadStart,
		End:          domain.DownloadEnd,
		File:         "명동_20240101_20240131.zip",
		Bytes:        1024,
		RequestedAt:  now,
	}
}

func TestSerializeToMessage(t *testing.T) {
	now := time.Date(2024, 2, 1, 9, 0, 0, 0, time.UTC)
	event := sampleEvent(now)

	msg, err := serializeToMessage(event)
	require.NoError(t, err)

	assert.Equal(t, []byte("dl-0123456789abcdef"), msg.Key)
	assert.Contains(t, string(msg.Value), `"town":"명동"`)
	assert.Len(t, msg.Headers, 2)
	assert.Equal(t, "forecast_id", msg.Headers[0].Key)
	assert.Equal(t, []byte("short"), msg.Headers[0].Value)
	assert.Equal(t, "requested_at", msg.Headers[1].Key)
	assert.Equal(t, []byte(now.Format(time.RFC3339)), msg.Headers[1].Value)
}

func TestDecodeMessage(t *testing.T) {
	now := time.Date(2024, 2, 1, 9, 0, 0, 0, time.UTC)
	msg, err := serializeToMessage(sampleEvent(now))
	require.NoError(t, err)

	got, err := DecodeMessage(msg)
	require.NoError(t, err)
	assert.Equal(t, sampleEvent(now), got)
}

func TestDecodeMessage_Invalid(t *testing.T) {
	_, err := DecodeMessage(kafkago.Message{Value: []byte("{not json")})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decode download event")
}

func TestNewWriter_UsesDownloadTopic(t *testing.T) {
	cfg := &config.Config{KafkaBrokers: []string{"localhost:9092"}, KafkaDownloadTopic: "downloads"}
	w := NewWriter(cfg, slog.New(slog.NewTextHandler(io.Discard, nil)))
	t.Cleanup(func() { _ = w.Close() })

	assert.Equal(t, "downloads", w.writer.Topic)
	assert.Equal(t, kafkago.RequireAll, w.writer.RequiredAcks)
}

package kafka

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/couchcryptid/tempo-aqi-etl/internal/config"
	"github.com/couchcryptid/tempo-aqi-etl/internal/domain"
	"github.com/couchcryptid/tempo-aqi-etl/internal/observability"
	"github.com/goccy/go-json"
	kafkago "github.com/segmentio/kafka-go"
)

// messageWriter is the subset of *kafkago.Writer the adapter uses.
type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafkago.Message) error
	Close() error
}

// Writer publishes zone advisories to a Kafka topic, one message per zone.
// It implements pipeline.Loader.
type Writer struct {
	writer  messageWriter
	logger  *slog.Logger
	metrics *observability.Metrics
}

// NewWriter creates a Kafka producer for the configured advisory topic.
// Messages are keyed by zone so each zone's history stays on one partition.
func NewWriter(cfg *config.Config, logger *slog.Logger, metrics *observability.Metrics) *Writer {
	w := &kafkago.Writer{
		Addr:         kafkago.TCP(cfg.KafkaBrokers...),
		Topic:        cfg.KafkaAdvisoryTopic,
		Balancer:     &kafkago.Hash{},
		RequiredAcks: kafkago.RequireAll,
	}
	return &Writer{writer: w, logger: logger, metrics: metrics}
}

// Load publishes every advisory of the assessment in a single WriteMessages call.
func (w *Writer) Load(ctx context.Context, a domain.Assessment) error {
	if len(a.Advisories) == 0 {
		return nil
	}
	msgs := make([]kafkago.Message, len(a.Advisories))
	for i := range a.Advisories {
		msg, err := serializeToMessage(a, a.Advisories[i])
		if err != nil {
			return err
		}
		msgs[i] = msg
	}
	if err := w.writer.WriteMessages(ctx, msgs...); err != nil {
		return fmt.Errorf("publish advisories: %w", err)
	}
	w.metrics.AdvisoriesPublished.Add(float64(len(msgs)))
	w.logger.Info("advisories published", "count", len(msgs), "run_id", a.RunID)
	return nil
}

func (w *Writer) Close() error {
	return w.writer.Close()
}

// serializeToMessage marshals an advisory into a Kafka message whose headers
// carry the run metadata and risk level for consumers that filter without
// decoding.
func serializeToMessage(a domain.Assessment, rec domain.AdvisoryRecord) (kafkago.Message, error) {
	data, err := json.Marshal(rec)
	if err != nil {
		return kafkago.Message{}, fmt.Errorf("serialize advisory: %w", err)
	}
	return kafkago.Message{
		Key:   []byte(rec.Zone),
		Value: data,
		Time:  a.GeneratedAt,
		Headers: []kafkago.Header{
			{Key: "run_id", Value: []byte(a.RunID)},
			{Key: "risk_level", Value: []byte(rec.Level.String())},
			{Key: "risk_score", Value: []byte(strconv.Itoa(rec.RiskScore))},
			{Key: "generated_at", Value: []byte(a.GeneratedAt.Format(time.RFC3339))},
		},
	}, nil
}

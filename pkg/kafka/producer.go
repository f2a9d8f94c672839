package kafka

import (
	"context"
	"fmt"
	"time"

	"github.com/Gobusters/ectologger"
	"github.com/Ramsey-B/fern/pkg/metrics"
	"github.com/segmentio/kafka-go"
)

// Producer publishes parsed records to Kafka
type Producer struct {
	writer *kafka.Writer
	logger ectologger.Logger
	config ProducerConfig
}

// NewProducer creates a new Kafka producer
func NewProducer(config ProducerConfig, logger ectologger.Logger) (*Producer, error) {
	if len(config.Brokers) == 0 {
		return nil, fmt.Errorf("at least one broker is required")
	}

	// Topic stays unset on the writer so each message can name its own
	writer := &kafka.Writer{
		Addr:                   kafka.TCP(config.Brokers...),
		Balancer:               &kafka.Hash{},
		BatchSize:              config.BatchSize,
		BatchTimeout:           config.BatchTimeout,
		MaxAttempts:            config.MaxAttempts,
		WriteTimeout:           config.WriteTimeout,
		Async:                  config.Async,
		Compression:            compressionCodec(config.Compression),
		RequiredAcks:           kafka.RequiredAcks(config.RequiredAcks),
		AllowAutoTopicCreation: true,
	}

	return &Producer{
		writer: writer,
		logger: logger,
		config: config,
	}, nil
}

func compressionCodec(name string) kafka.Compression {
	switch name {
	case "gzip":
		return kafka.Gzip
	case "snappy":
		return kafka.Snappy
	case "lz4":
		return kafka.Lz4
	case "zstd":
		return kafka.Zstd
	default:
		return 0
	}
}

// Publish publishes a parsed record to the default topic
func (p *Producer) Publish(ctx context.Context, msg *ParsedRecord) error {
	return p.PublishToTopic(ctx, p.config.Topic, msg)
}

// PublishToTopic publishes a parsed record to a specific topic
func (p *Producer) PublishToTopic(ctx context.Context, topic string, msg *ParsedRecord) error {
	kafkaMsg, err := toKafkaMessage(topic, msg)
	if err != nil {
		return err
	}

	start := time.Now()
	if err := p.writer.WriteMessages(ctx, kafkaMsg); err != nil {
		metrics.RecordKafkaPublish(topic, "error", time.Since(start).Seconds())
		return fmt.Errorf("failed to publish message: %w", err)
	}
	metrics.RecordKafkaPublish(topic, "success", time.Since(start).Seconds())

	return nil
}

// PublishBatch publishes multiple records to the default topic in one write
func (p *Producer) PublishBatch(ctx context.Context, messages []*ParsedRecord) error {
	if len(messages) == 0 {
		return nil
	}

	kafkaMessages := make([]kafka.Message, 0, len(messages))
	for _, msg := range messages {
		kafkaMsg, err := toKafkaMessage(p.config.Topic, msg)
		if err != nil {
			p.logger.WithError(err).Error("Failed to serialize message in batch, skipping")
			continue
		}
		kafkaMessages = append(kafkaMessages, kafkaMsg)
	}

	start := time.Now()
	if err := p.writer.WriteMessages(ctx, kafkaMessages...); err != nil {
		metrics.RecordKafkaPublish(p.config.Topic, "error", time.Since(start).Seconds())
		return fmt.Errorf("failed to publish batch: %w", err)
	}
	metrics.RecordKafkaPublish(p.config.Topic, "success", time.Since(start).Seconds())

	return nil
}

// toKafkaMessage keys a record by document id so that re-parses of the
// same document land on the same partition.
func toKafkaMessage(topic string, msg *ParsedRecord) (kafka.Message, error) {
	data, err := msg.ToJSON()
	if err != nil {
		return kafka.Message{}, fmt.Errorf("failed to serialize message: %w", err)
	}

	headers := headersFor(msg)
	kafkaHeaders := make([]kafka.Header, 0)
	for _, h := range headers.ToKafkaHeaders() {
		kafkaHeaders = append(kafkaHeaders, kafka.Header{Key: h.Key, Value: h.Value})
	}

	return kafka.Message{
		Topic:   topic,
		Key:     []byte(msg.ID),
		Value:   data,
		Headers: kafkaHeaders,
		Time:    msg.Timestamp,
	}, nil
}

// Close closes the producer
func (p *Producer) Close() error {
	if err := p.writer.Close(); err != nil {
		return fmt.Errorf("failed to close producer: %w", err)
	}
	p.logger.Info("Kafka producer closed")
	return nil
}

// Stats returns producer statistics
func (p *Producer) Stats() kafka.WriterStats {
	return p.writer.Stats()
}

// NewParsedRecord creates the output message for doc
func NewParsedRecord(doc *RawDocument, locale string, record any, err error) *ParsedRecord {
	msg := &ParsedRecord{
		ID:        doc.ID,
		Type:      doc.Type,
		Locale:    locale,
		Timestamp: time.Now().UTC(),
	}
	if err != nil {
		msg.Error = NewRecordError(err)
	} else {
		msg.Record = record
	}
	return msg
}

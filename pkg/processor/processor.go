// Package processor turns raw documents consumed from Kafka into parsed
// records.
package processor

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/Gobusters/ectologger"
	"github.com/Ramsey-B/fern/pkg/kafka"
	"github.com/Ramsey-B/fern/pkg/locale"
	"github.com/Ramsey-B/fern/pkg/metrics"
	"github.com/Ramsey-B/fern/pkg/parser"
	"github.com/Ramsey-B/fern/pkg/requestctx"
	"github.com/Ramsey-B/fern/pkg/tracing"
	"go.opentelemetry.io/otel/attribute"
)

// DocumentParser parses a decoded document of a given type. The locale of
// the document is carried in ctx.
type DocumentParser interface {
	ParseDocument(ctx context.Context, docType parser.DocumentType, document any) (any, error)
}

// Publisher writes parsed records
type Publisher interface {
	Publish(ctx context.Context, msg *kafka.ParsedRecord) error
	PublishToTopic(ctx context.Context, topic string, msg *kafka.ParsedRecord) error
}

// ProcessorConfig configures the document processor
type ProcessorConfig struct {
	// WorkerCount is the number of documents ProcessAll parses at once
	WorkerCount int

	// ProcessTimeout is the timeout for processing a single document
	ProcessTimeout time.Duration

	// ErrorTopic, when set, receives the records of documents that failed to
	// parse. They go to the output topic otherwise.
	ErrorTopic string
}

// DefaultProcessorConfig returns a ProcessorConfig with sensible defaults
func DefaultProcessorConfig() ProcessorConfig {
	return ProcessorConfig{
		WorkerCount:    4,
		ProcessTimeout: 30 * time.Second,
		ErrorTopic:     "",
	}
}

// Processor parses raw documents and publishes the outcome
type Processor struct {
	config    ProcessorConfig
	parser    DocumentParser
	publisher Publisher
	logger    ectologger.Logger

	documentsProcessed int64
	documentsFailed    int64
	mu                 sync.Mutex
}

// NewProcessor creates a new processor. publisher may be nil when records
// are only returned, e.g. by the CLI.
func NewProcessor(config ProcessorConfig, documentParser DocumentParser, publisher Publisher, logger ectologger.Logger) *Processor {
	if config.WorkerCount < 1 {
		config.WorkerCount = 1
	}
	return &Processor{
		config:    config,
		parser:    documentParser,
		publisher: publisher,
		logger:    logger,
	}
}

// ProcessDocument parses doc. Failures are reported in the returned record,
// never as an error.
func (p *Processor) ProcessDocument(ctx context.Context, doc *kafka.RawDocument) *kafka.ParsedRecord {
	ctx, span := tracing.StartSpan(ctx, "processor.ProcessDocument",
		attribute.String("document.id", doc.ID), attribute.String("document.type", doc.Type))

	metrics.DocumentsInFlight.Inc()
	defer metrics.DocumentsInFlight.Dec()

	if p.config.ProcessTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.config.ProcessTimeout)
		defer cancel()
	}

	loc, _ := locale.Normalize(doc.Locale)
	ctx = requestctx.SetLocale(ctx, loc)

	record, err := p.parse(ctx, doc)
	tracing.EndSpan(span, err)

	msg := kafka.NewParsedRecord(doc, loc, record, err)
	msg.TraceID = tracing.GetTraceID(ctx)
	msg.SpanID = tracing.GetSpanID(ctx)

	p.mu.Lock()
	p.documentsProcessed++
	if err != nil {
		p.documentsFailed++
	}
	p.mu.Unlock()

	status := "success"
	if err != nil {
		status = "error"
		p.logger.WithContext(ctx).WithError(err).WithFields(map[string]any{
			"document_id":   doc.ID,
			"document_type": doc.Type,
		}).Warn("Failed to parse document")
	}
	metrics.RecordDocument(doc.Type, status)

	return msg
}

func (p *Processor) parse(ctx context.Context, doc *kafka.RawDocument) (any, error) {
	docType, err := parser.ParseDocumentType(doc.Type)
	if err != nil {
		return nil, err
	}
	document, err := doc.Document()
	if err != nil {
		return nil, err
	}
	return p.parser.ParseDocument(ctx, docType, document)
}

// ProcessAll parses docs on WorkerCount workers. Results keep the order of
// docs.
func (p *Processor) ProcessAll(ctx context.Context, docs []*kafka.RawDocument) []*kafka.ParsedRecord {
	results := make([]*kafka.ParsedRecord, len(docs))
	jobs := make(chan int)

	var wg sync.WaitGroup
	for w := 0; w < p.config.WorkerCount; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				results[i] = p.ProcessDocument(ctx, docs[i])
			}
		}()
	}

	for i := range docs {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	return results
}

// publish routes msg to the error topic when it failed and one is set
func (p *Processor) publish(ctx context.Context, msg *kafka.ParsedRecord) error {
	if p.publisher == nil {
		return nil
	}
	if msg.Error != nil && p.config.ErrorTopic != "" {
		return p.publisher.PublishToTopic(ctx, p.config.ErrorTopic, msg)
	}
	return p.publisher.Publish(ctx, msg)
}

// MessageHandler returns a kafka.MessageHandler for use with the consumer
func (p *Processor) MessageHandler() kafka.MessageHandler {
	return func(ctx context.Context, msg *kafka.ReceivedMessage) error {
		ctx = tracing.ContextWithTraceParent(ctx, msg.Headers.TraceParent, msg.Headers.TraceState)

		record := p.ProcessDocument(ctx, msg.Document)
		if err := p.publish(ctx, record); err != nil {
			return fmt.Errorf("failed to publish record for document %s: %w", msg.Document.ID, err)
		}
		return nil
	}
}

// Stats returns processor statistics
type Stats struct {
	DocumentsProcessed int64
	DocumentsFailed    int64
}

func (p *Processor) Stats() Stats {
	p.mu.Lock()
	defer p.mu.Unlock()

	return Stats{
		DocumentsProcessed: p.documentsProcessed,
		DocumentsFailed:    p.documentsFailed,
	}
}

package processor

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"testing"

	"github.com/Gobusters/ectologger"
	"github.com/Ramsey-B/fern/pkg/errors"
	"github.com/Ramsey-B/fern/pkg/kafka"
	"github.com/Ramsey-B/fern/pkg/parser"
	"github.com/Ramsey-B/fern/pkg/requestctx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestLogger() ectologger.Logger {
	return ectologger.NewEctoLogger(func(ectologger.EctoLogMessage) {})
}

type fakeParser struct {
	mu      sync.Mutex
	locales []string
}

func (f *fakeParser) ParseDocument(ctx context.Context, docType parser.DocumentType, document any) (any, error) {
	f.mu.Lock()
	f.locales = append(f.locales, requestctx.GetLocale(ctx))
	f.mu.Unlock()

	doc, _ := document.(map[string]any)
	if doc["fail"] == true {
		return nil, errors.NewParseError("boom").AddEntity(string(docType)).AddField("title")
	}
	return map[string]any{"type": string(docType), "id": doc["id"]}, nil
}

type fakePublisher struct {
	mu       sync.Mutex
	output   []*kafka.ParsedRecord
	byTopic  map[string][]*kafka.ParsedRecord
	failWith error
}

func (f *fakePublisher) Publish(ctx context.Context, msg *kafka.ParsedRecord) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failWith != nil {
		return f.failWith
	}
	f.output = append(f.output, msg)
	return nil
}

func (f *fakePublisher) PublishToTopic(ctx context.Context, topic string, msg *kafka.ParsedRecord) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.byTopic == nil {
		f.byTopic = map[string][]*kafka.ParsedRecord{}
	}
	f.byTopic[topic] = append(f.byTopic[topic], msg)
	return nil
}

func rawDocument(id, docType, locale, payload string) *kafka.RawDocument {
	return &kafka.RawDocument{
		ID:      id,
		Type:    docType,
		Locale:  locale,
		Payload: json.RawMessage(payload),
	}
}

func TestProcessDocument_Success(t *testing.T) {
	fp := &fakeParser{}
	p := NewProcessor(DefaultProcessorConfig(), fp, nil, newTestLogger())

	record := p.ProcessDocument(context.Background(), rawDocument("doc-1", "title", "IT", `{"id":"tt0133093"}`))

	assert.Equal(t, "doc-1", record.ID)
	assert.Equal(t, "title", record.Type)
	assert.Equal(t, "it", record.Locale)
	assert.Nil(t, record.Error)
	assert.Equal(t, map[string]any{"type": "title", "id": "tt0133093"}, record.Record)
	assert.Equal(t, []string{"it"}, fp.locales)

	stats := p.Stats()
	assert.Equal(t, int64(1), stats.DocumentsProcessed)
	assert.Equal(t, int64(0), stats.DocumentsFailed)
}

func TestProcessDocument_Failures(t *testing.T) {
	tests := []struct {
		name string
		doc  *kafka.RawDocument
	}{
		{name: "unknown type", doc: rawDocument("a", "podcast", "", `{}`)},
		{name: "malformed payload", doc: rawDocument("b", "title", "", `{`)},
		{name: "parse error", doc: rawDocument("c", "title", "", `{"fail":true}`)},
	}

	p := NewProcessor(DefaultProcessorConfig(), &fakeParser{}, nil, newTestLogger())

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			record := p.ProcessDocument(context.Background(), tt.doc)
			require.NotNil(t, record.Error)
			assert.Nil(t, record.Record)
			assert.NotEmpty(t, record.Error.Message)
		})
	}

	assert.Equal(t, int64(3), p.Stats().DocumentsFailed)
}

func TestProcessDocument_ParseErrorLocation(t *testing.T) {
	p := NewProcessor(DefaultProcessorConfig(), &fakeParser{}, nil, newTestLogger())

	record := p.ProcessDocument(context.Background(), rawDocument("c", "person", "", `{"fail":true}`))

	require.NotNil(t, record.Error)
	assert.Equal(t, "person", record.Error.Entity)
	assert.Equal(t, "title", record.Error.Field)
}

func TestProcessAll_KeepsOrder(t *testing.T) {
	config := DefaultProcessorConfig()
	config.WorkerCount = 3
	p := NewProcessor(config, &fakeParser{}, nil, newTestLogger())

	docs := make([]*kafka.RawDocument, 10)
	for i := range docs {
		docs[i] = rawDocument(fmt.Sprintf("doc-%d", i), "title", "", fmt.Sprintf(`{"id":"tt%07d"}`, i))
	}

	records := p.ProcessAll(context.Background(), docs)

	assert.Len(t, records, 10)
	for i, record := range records {
		assert.Equal(t, fmt.Sprintf("doc-%d", i), record.ID)
	}
	assert.Equal(t, int64(10), p.Stats().DocumentsProcessed)
}

func TestProcessAll_Empty(t *testing.T) {
	p := NewProcessor(ProcessorConfig{}, &fakeParser{}, nil, newTestLogger())
	assert.Empty(t, p.ProcessAll(context.Background(), nil))
}

func TestMessageHandler_Routing(t *testing.T) {
	pub := &fakePublisher{}
	config := DefaultProcessorConfig()
	config.ErrorTopic = "parse-errors"
	p := NewProcessor(config, &fakeParser{}, pub, newTestLogger())
	handler := p.MessageHandler()

	ok := &kafka.ReceivedMessage{Document: rawDocument("ok", "title", "", `{"id":"tt1"}`)}
	bad := &kafka.ReceivedMessage{Document: rawDocument("bad", "title", "", `{"fail":true}`)}

	assert.NoError(t, handler(context.Background(), ok))
	assert.NoError(t, handler(context.Background(), bad))

	assert.Len(t, pub.output, 1)
	assert.Equal(t, "ok", pub.output[0].ID)
	assert.Len(t, pub.byTopic["parse-errors"], 1)
	assert.Equal(t, "bad", pub.byTopic["parse-errors"][0].ID)
}

func TestMessageHandler_ErrorsToOutputWithoutErrorTopic(t *testing.T) {
	pub := &fakePublisher{}
	p := NewProcessor(DefaultProcessorConfig(), &fakeParser{}, pub, newTestLogger())

	msg := &kafka.ReceivedMessage{Document: rawDocument("bad", "title", "", `{"fail":true}`)}
	assert.NoError(t, p.MessageHandler()(context.Background(), msg))

	assert.Len(t, pub.output, 1)
	assert.NotNil(t, pub.output[0].Error)
}

func TestMessageHandler_PublishFailure(t *testing.T) {
	pub := &fakePublisher{failWith: fmt.Errorf("broker down")}
	p := NewProcessor(DefaultProcessorConfig(), &fakeParser{}, pub, newTestLogger())

	msg := &kafka.ReceivedMessage{Document: rawDocument("ok", "title", "", `{"id":"tt1"}`)}
	err := p.MessageHandler()(context.Background(), msg)

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "broker down")
}

func TestMessageHandler_TraceParent(t *testing.T) {
	pub := &fakePublisher{}
	p := NewProcessor(DefaultProcessorConfig(), &fakeParser{}, pub, newTestLogger())

	msg := &kafka.ReceivedMessage{
		Document: rawDocument("ok", "title", "", `{"id":"tt1"}`),
		Headers: kafka.MessageHeaders{
			TraceParent: "00-4bf92f3577b34da6a3ce929d0e0e4736-00f067aa0ba902b7-01",
		},
	}
	require.NoError(t, p.MessageHandler()(context.Background(), msg))

	require.Len(t, pub.output, 1)
	assert.Equal(t, "4bf92f3577b34da6a3ce929d0e0e4736", pub.output[0].TraceID)
}

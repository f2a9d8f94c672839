package kafka

import (
	"encoding/json"
	"fmt"
	"testing"

	"github.com/Ramsey-B/fern/pkg/errors"
	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRawDocument(t *testing.T) {
	jsonData := `{
		"id": "doc-1",
		"type": "title",
		"locale": "it",
		"source_url": "https://www.imdb.com/it/title/tt0133093/reference",
		"payload": {"props": {"pageProps": {"tconst": "tt0133093", "count": 2}}},
		"timestamp": "2025-01-15T10:30:00Z"
	}`

	doc, err := ParseRawDocument([]byte(jsonData))
	require.NoError(t, err)

	assert.Equal(t, "doc-1", doc.ID)
	assert.Equal(t, "title", doc.Type)
	assert.Equal(t, "it", doc.Locale)

	document, err := doc.Document()
	require.NoError(t, err)
	props := document.(map[string]any)["props"].(map[string]any)["pageProps"].(map[string]any)
	assert.Equal(t, float64(2), props["count"])
}

func TestParseRawDocument_Invalid(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{name: "not json", data: `{`},
		{name: "no type", data: `{"id": "x", "payload": {}}`},
		{name: "no payload", data: `{"id": "x", "type": "title"}`},
		{name: "null payload", data: `{"id": "x", "type": "title", "payload": null}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseRawDocument([]byte(tt.data))
			assert.ErrorIs(t, err, errors.ErrInvalidInput)
		})
	}
}

func TestParseRawDocument_AssignsID(t *testing.T) {
	doc, err := ParseRawDocument([]byte(`{"type": "search", "payload": {}}`))
	require.NoError(t, err)
	assert.Len(t, doc.ID, 36)
}

func TestMessageHeaders(t *testing.T) {
	headers := MessageHeaders{
		DocumentID:   "doc-1",
		DocumentType: "person",
		Locale:       "de",
		TraceParent:  "00-abc-def-01",
	}

	kafkaHeaders := headers.ToKafkaHeaders()
	assert.Len(t, kafkaHeaders, 4)
	assert.Equal(t, headers, ExtractHeaders(kafkaHeaders))
}

func TestHeadersFor(t *testing.T) {
	msg := &ParsedRecord{ID: "doc-1", Type: "title", TraceID: "abc", SpanID: "def"}
	headers := headersFor(msg)
	assert.Equal(t, "success", headers.Status)
	assert.Equal(t, "00-abc-def-01", headers.TraceParent)

	msg.Error = &RecordError{Message: "boom"}
	assert.Equal(t, "error", headersFor(msg).Status)
}

func TestNewParsedRecord(t *testing.T) {
	doc := &RawDocument{ID: "doc-1", Type: "title"}

	ok := NewParsedRecord(doc, "en", map[string]any{"title": "The Matrix"}, nil)
	assert.Nil(t, ok.Error)
	assert.NotNil(t, ok.Record)

	parseErr := errors.NewParseError("failed 'required' validation").AddEntity("title").AddField("genres")
	failed := NewParsedRecord(doc, "en", nil, fmt.Errorf("parse: %w", parseErr))
	assert.Nil(t, failed.Record)
	require.NotNil(t, failed.Error)
	assert.Equal(t, "title", failed.Error.Entity)
	assert.Equal(t, "genres", failed.Error.Field)

	raw, err := failed.ToJSON()
	require.NoError(t, err)
	var decoded map[string]any
	require.NoError(t, json.Unmarshal(raw, &decoded))
	assert.NotContains(t, decoded, "record")
}

func TestParseMessage(t *testing.T) {
	received, err := ParseMessage(kafka.Message{
		Topic:  "raw-documents",
		Offset: 7,
		Value:  []byte(`{"id": "doc-1", "type": "title", "payload": {}}`),
	})
	require.NoError(t, err)
	assert.Equal(t, int64(7), received.Offset)
	assert.Equal(t, "doc-1", received.Document.ID)
}

func TestParseMessage_BarePayload(t *testing.T) {
	received, err := ParseMessage(kafka.Message{
		Value: []byte(`{"props": {"pageProps": {}}}`),
		Headers: []kafka.Header{
			{Key: "document_type", Value: []byte("person")},
			{Key: "document_id", Value: []byte("doc-9")},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, "person", received.Document.Type)
	assert.Equal(t, "doc-9", received.Document.ID)
	assert.JSONEq(t, `{"props": {"pageProps": {}}}`, string(received.Document.Payload))

	_, err = ParseMessage(kafka.Message{Value: []byte(`{"props": {}}`)})
	assert.Error(t, err)
}

func TestCompressionCodec(t *testing.T) {
	assert.Equal(t, kafka.Snappy, compressionCodec("snappy"))
	assert.Equal(t, kafka.Zstd, compressionCodec("zstd"))
	assert.Equal(t, kafka.Compression(0), compressionCodec("none"))
}

func TestNewProducer_RequiresBrokers(t *testing.T) {
	config := DefaultProducerConfig()
	config.Brokers = nil
	_, err := NewProducer(config, nil)
	assert.Error(t, err)
}

func TestNewConsumer_Validation(t *testing.T) {
	config := DefaultConsumerConfig()
	config.GroupID = ""
	_, err := NewConsumer(config, nil)
	assert.Error(t, err)
}

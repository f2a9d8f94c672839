package kafka

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/Ramsey-B/fern/pkg/errors"
	"github.com/google/uuid"
)

// RawDocument is a decoded page state or GraphQL payload waiting to be
// parsed. Type is one of the parser document types.
type RawDocument struct {
	ID        string          `json:"id"`
	Type      string          `json:"type"`
	Locale    string          `json:"locale,omitempty"`
	SourceURL string          `json:"source_url,omitempty"`
	Payload   json.RawMessage `json:"payload"`
	Timestamp time.Time       `json:"timestamp"`
}

// ParseRawDocument parses a Kafka message value into a RawDocument. A
// document without an id is given one.
func ParseRawDocument(data []byte) (*RawDocument, error) {
	var doc RawDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: malformed raw document: %w", errors.ErrInvalidInput, err)
	}
	if doc.Type == "" {
		return nil, fmt.Errorf("%w: raw document has no type", errors.ErrInvalidInput)
	}
	if len(doc.Payload) == 0 || string(doc.Payload) == "null" {
		return nil, fmt.Errorf("%w: raw document has no payload", errors.ErrInvalidInput)
	}
	if doc.ID == "" {
		doc.ID = uuid.New().String()
	}
	return &doc, nil
}

// Document decodes the payload the way parsers expect it.
func (d *RawDocument) Document() (any, error) {
	var document any
	if err := json.Unmarshal(d.Payload, &document); err != nil {
		return nil, fmt.Errorf("%w: malformed payload: %w", errors.ErrInvalidInput, err)
	}
	return document, nil
}

// RecordError describes why a document produced no record.
type RecordError struct {
	Message string `json:"message"`
	Entity  string `json:"entity,omitempty"`
	Field   string `json:"field,omitempty"`
	Plugin  string `json:"plugin,omitempty"`
}

// NewRecordError flattens err, keeping the location of a parse error.
func NewRecordError(err error) *RecordError {
	recordErr := &RecordError{Message: err.Error()}
	var parseErr *errors.ParseError
	if errors.As(err, &parseErr) {
		recordErr.Entity = parseErr.Entity
		recordErr.Field = parseErr.Field
		recordErr.Plugin = parseErr.Plugin
	}
	return recordErr
}

// ParsedRecord is the outcome of parsing one RawDocument: Record on
// success, Error otherwise.
type ParsedRecord struct {
	ID        string       `json:"id"`
	Type      string       `json:"type"`
	Locale    string       `json:"locale,omitempty"`
	Record    any          `json:"record,omitempty"`
	Error     *RecordError `json:"error,omitempty"`
	Timestamp time.Time    `json:"timestamp"`

	// Tracing
	TraceID string `json:"trace_id,omitempty"`
	SpanID  string `json:"span_id,omitempty"`
}

// ToJSON serializes the ParsedRecord to JSON bytes
func (m *ParsedRecord) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

// MessageHeaders contains Kafka message headers for efficient filtering
type MessageHeaders struct {
	DocumentID   string
	DocumentType string
	Locale       string
	Status       string
	TraceParent  string
	TraceState   string
}

// ToKafkaHeaders converts MessageHeaders to a slice of header key-value pairs
func (h *MessageHeaders) ToKafkaHeaders() []Header {
	headers := make([]Header, 0, 6)

	if h.DocumentID != "" {
		headers = append(headers, Header{Key: "document_id", Value: []byte(h.DocumentID)})
	}
	if h.DocumentType != "" {
		headers = append(headers, Header{Key: "document_type", Value: []byte(h.DocumentType)})
	}
	if h.Locale != "" {
		headers = append(headers, Header{Key: "locale", Value: []byte(h.Locale)})
	}
	if h.Status != "" {
		headers = append(headers, Header{Key: "status", Value: []byte(h.Status)})
	}
	if h.TraceParent != "" {
		headers = append(headers, Header{Key: "traceparent", Value: []byte(h.TraceParent)})
	}
	if h.TraceState != "" {
		headers = append(headers, Header{Key: "tracestate", Value: []byte(h.TraceState)})
	}

	return headers
}

// Header represents a Kafka message header
type Header struct {
	Key   string
	Value []byte
}

// ExtractHeaders extracts MessageHeaders from Kafka headers
func ExtractHeaders(headers []Header) MessageHeaders {
	var mh MessageHeaders
	for _, h := range headers {
		switch h.Key {
		case "document_id":
			mh.DocumentID = string(h.Value)
		case "document_type":
			mh.DocumentType = string(h.Value)
		case "locale":
			mh.Locale = string(h.Value)
		case "status":
			mh.Status = string(h.Value)
		case "traceparent":
			mh.TraceParent = string(h.Value)
		case "tracestate":
			mh.TraceState = string(h.Value)
		}
	}
	return mh
}

// headersFor builds the headers of an outgoing record
func headersFor(msg *ParsedRecord) MessageHeaders {
	headers := MessageHeaders{
		DocumentID:   msg.ID,
		DocumentType: msg.Type,
		Locale:       msg.Locale,
		Status:       "success",
	}
	if msg.Error != nil {
		headers.Status = "error"
	}
	if msg.TraceID != "" && msg.SpanID != "" {
		headers.TraceParent = fmt.Sprintf("00-%s-%s-01", msg.TraceID, msg.SpanID)
	}
	return headers
}

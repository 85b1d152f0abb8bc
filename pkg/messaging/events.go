package messaging

import (
	"encoding/json"
	"fmt"
	"time"
)

// Event types
const (
	// Translation events
	EventTranslationCompleted = "translation.completed"
	EventTranslationFallback  = "translation.fallback"
	EventTranslationViolation = "translation.safety.violation"

	// Audit events
	EventAuditRecordCreated = "audit.record.created"
)

// Exchange names
const (
	ExchangeTranslationEvents = "translation.events"
)

// Event is the base event structure
type Event struct {
	ID            string          `json:"id"`
	Type          string          `json:"type"`
	Source        string          `json:"source"`
	Timestamp     time.Time       `json:"timestamp"`
	CorrelationID string          `json:"correlation_id"`
	Data          json.RawMessage `json:"data"`
}

// NewEvent creates a new event with the given type and data
func NewEvent(eventType, source, correlationID string, data interface{}) (*Event, error) {
	dataBytes, err := json.Marshal(data)
	if err != nil {
		return nil, err
	}

	return &Event{
		ID:            GenerateEventID(),
		Type:          eventType,
		Source:        source,
		Timestamp:     time.Now().UTC(),
		CorrelationID: correlationID,
		Data:          dataBytes,
	}, nil
}

// UnmarshalData unmarshals the event data into the provided struct
func (e *Event) UnmarshalData(v interface{}) error {
	return json.Unmarshal(e.Data, v)
}

// Translation Events
//
// Event payloads carry field names and counts only. Clinical text never
// leaves the service through the message bus.

// TranslationCompletedEvent is published after a summary run finishes.
type TranslationCompletedEvent struct {
	RunID            string   `json:"run_id"`
	TargetLanguage   string   `json:"target_language"`
	Status           string   `json:"status"`
	FieldsTranslated []string `json:"fields_translated,omitempty"`
	FieldsPreserved  []string `json:"fields_preserved,omitempty"`
	FieldsSkipped    []string `json:"fields_skipped,omitempty"`
	DurationMs       int64    `json:"duration_ms"`
}

// TranslationFallbackEvent is published when a run falls back to the
// untranslated source document.
type TranslationFallbackEvent struct {
	RunID          string `json:"run_id"`
	TargetLanguage string `json:"target_language"`
	Reason         string `json:"reason"`
}

// TranslationViolationEvent is published when restoration finds a
// placeholder missing from translated output.
type TranslationViolationEvent struct {
	RunID          string `json:"run_id"`
	TargetLanguage string `json:"target_language"`
	Field          string `json:"field"`
	Reason         string `json:"reason"`
}

// Audit Events

// AuditRecordCreatedEvent is published when a translation audit record is persisted.
type AuditRecordCreatedEvent struct {
	RecordID       string `json:"record_id"`
	RunID          string `json:"run_id"`
	TargetLanguage string `json:"target_language"`
	Status         string `json:"status"`
}

// GenerateEventID generates a unique event ID
func GenerateEventID() string {
	return fmt.Sprintf("%d-%d", time.Now().UnixNano(), time.Now().Nanosecond()%10000)
}

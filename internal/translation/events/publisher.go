package events

import (
	"context"

	"github.com/medflow/translation-backend/internal/translation/domain"
	"github.com/medflow/translation-backend/pkg/logger"
	"github.com/medflow/translation-backend/pkg/messaging"
)

// Publisher is the messaging surface the event publisher needs.
// *messaging.Publisher satisfies it; tests use a recording mock.
type Publisher interface {
	Publish(ctx context.Context, eventType string, data interface{}) error
}

// TranslationEventPublisher publishes translation run events. Payloads carry
// field names and counts only; a publish failure is logged and never fails
// the run.
type TranslationEventPublisher struct {
	publisher Publisher
	logger    *logger.Logger
}

// NewTranslationEventPublisher creates a publisher on the translation events exchange.
func NewTranslationEventPublisher(rmq *messaging.RabbitMQ, log *logger.Logger) (*TranslationEventPublisher, error) {
	publisher, err := messaging.NewPublisher(rmq, messaging.ExchangeTranslationEvents, "translation-service", log)
	if err != nil {
		return nil, err
	}

	return &TranslationEventPublisher{
		publisher: publisher,
		logger:    log,
	}, nil
}

// NewTranslationEventPublisherWith wraps an existing Publisher. Used by tests.
func NewTranslationEventPublisherWith(publisher Publisher, log *logger.Logger) *TranslationEventPublisher {
	return &TranslationEventPublisher{publisher: publisher, logger: log}
}

// PublishTranslationCompleted publishes the outcome of a finished run.
func (p *TranslationEventPublisher) PublishTranslationCompleted(ctx context.Context, outcome *domain.TranslationOutcome) {
	data := messaging.TranslationCompletedEvent{
		RunID:            outcome.RunID,
		TargetLanguage:   outcome.TargetLanguage,
		Status:           outcome.Status,
		FieldsTranslated: outcome.FieldsTranslated,
		FieldsPreserved:  outcome.FieldsPreserved,
		FieldsSkipped:    outcome.FieldsSkipped,
		DurationMs:       outcome.DurationMs,
	}

	if err := p.publisher.Publish(ctx, messaging.EventTranslationCompleted, data); err != nil {
		p.logger.Error().Err(err).Str("run_id", outcome.RunID).Msg("failed to publish translation completed event")
	}
}

// PublishSafetyViolation publishes one caught restoration failure.
func (p *TranslationEventPublisher) PublishSafetyViolation(ctx context.Context, runID, targetLang string, v domain.SafetyViolation) {
	data := messaging.TranslationViolationEvent{
		RunID:          runID,
		TargetLanguage: targetLang,
		Field:          v.Field,
		Reason:         v.Reason,
	}

	if err := p.publisher.Publish(ctx, messaging.EventTranslationViolation, data); err != nil {
		p.logger.Error().Err(err).Str("run_id", runID).Msg("failed to publish safety violation event")
	}
}

// PublishAuditRecordCreated publishes the identity of a persisted audit row.
func (p *TranslationEventPublisher) PublishAuditRecordCreated(ctx context.Context, record *domain.AuditRecord) {
	data := messaging.AuditRecordCreatedEvent{
		RecordID:       record.ID,
		RunID:          record.RunID,
		TargetLanguage: record.TargetLanguage,
		Status:         record.Status,
	}

	if err := p.publisher.Publish(ctx, messaging.EventAuditRecordCreated, data); err != nil {
		p.logger.Error().Err(err).Str("run_id", record.RunID).Msg("failed to publish audit record created event")
	}
}

// PublishFallback publishes a run that returned the untranslated source.
func (p *TranslationEventPublisher) PublishFallback(ctx context.Context, runID, targetLang, reason string) {
	data := messaging.TranslationFallbackEvent{
		RunID:          runID,
		TargetLanguage: targetLang,
		Reason:         reason,
	}

	if err := p.publisher.Publish(ctx, messaging.EventTranslationFallback, data); err != nil {
		p.logger.Error().Err(err).Str("run_id", runID).Msg("failed to publish translation fallback event")
	}
}

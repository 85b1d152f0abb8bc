package events

import (
	"context"
	"testing"

	"github.com/medflow/translation-backend/internal/translation/domain"
	"github.com/medflow/translation-backend/pkg/logger"
	"github.com/medflow/translation-backend/pkg/messaging"
	"github.com/medflow/translation-backend/pkg/testutil"
)

func TestPublishTranslationCompleted(t *testing.T) {
	mock := testutil.NewMockPublisher()
	log := logger.New("translation-service-test", "development")
	p := NewTranslationEventPublisherWith(mock, log)

	outcome := &domain.TranslationOutcome{
		RunID:            "run-1",
		TargetLanguage:   "spanish",
		Status:           domain.StatusTranslated,
		FieldsTranslated: []string{"care_instructions"},
		FieldsPreserved:  []string{"medication_name"},
		DurationMs:       12,
	}

	p.PublishTranslationCompleted(context.Background(), outcome)

	mock.AssertEventPublished(t, messaging.EventTranslationCompleted)

	payload, ok := mock.PublishedEvents[0].Payload.(messaging.TranslationCompletedEvent)
	if !ok {
		t.Fatalf("payload type = %T", mock.PublishedEvents[0].Payload)
	}
	if payload.RunID != "run-1" || payload.Status != domain.StatusTranslated {
		t.Errorf("payload = %+v", payload)
	}
}

func TestPublishAuditRecordCreated(t *testing.T) {
	mock := testutil.NewMockPublisher()
	log := logger.New("translation-service-test", "development")
	p := NewTranslationEventPublisherWith(mock, log)

	p.PublishAuditRecordCreated(context.Background(), &domain.AuditRecord{
		ID:             "rec-1",
		RunID:          "run-3",
		TargetLanguage: "spanish",
		Status:         domain.StatusTranslated,
	})

	mock.AssertEventPublished(t, messaging.EventAuditRecordCreated)

	payload := mock.PublishedEvents[0].Payload.(messaging.AuditRecordCreatedEvent)
	if payload.RecordID != "rec-1" || payload.RunID != "run-3" {
		t.Errorf("payload = %+v", payload)
	}
}

func TestPublishSafetyViolation(t *testing.T) {
	mock := testutil.NewMockPublisher()
	log := logger.New("translation-service-test", "development")
	p := NewTranslationEventPublisherWith(mock, log)

	p.PublishSafetyViolation(context.Background(), "run-2", "mandarin", domain.SafetyViolation{
		Field:  "warning_signs",
		Reason: "placeholder not found",
	})

	mock.AssertEventPublished(t, messaging.EventTranslationViolation)

	payload := mock.PublishedEvents[0].Payload.(messaging.TranslationViolationEvent)
	if payload.Field != "warning_signs" || payload.Reason != "placeholder not found" {
		t.Errorf("payload = %+v", payload)
	}
}

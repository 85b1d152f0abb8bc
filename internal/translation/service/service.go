package service

import (
	"context"
	"fmt"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/medflow/translation-backend/internal/translation/classify"
	"github.com/medflow/translation-backend/internal/translation/domain"
	"github.com/medflow/translation-backend/internal/translation/events"
	"github.com/medflow/translation-backend/internal/translation/masking"
	"github.com/medflow/translation-backend/internal/translation/patterns"
	"github.com/medflow/translation-backend/internal/translation/repository"
	"github.com/medflow/translation-backend/internal/translation/translator"
	apperrors "github.com/medflow/translation-backend/pkg/errors"
	"github.com/medflow/translation-backend/pkg/logger"
	"github.com/medflow/translation-backend/pkg/metrics"
)

// DefaultSourceLanguage is assumed when a request does not name one.
const DefaultSourceLanguage = "english"

// Config wires the orchestrator's collaborators. Metrics, Audit and Events
// are optional; a nil value disables that concern.
type Config struct {
	Translator  translator.Translator
	Disclaimers *patterns.Disclaimers
	Workers     int
	Metrics     *metrics.Metrics
	Audit       *repository.AuditRepository
	Events      *events.TranslationEventPublisher
	Logger      *logger.Logger
}

// Service runs the mask-translate-restore pipeline over whole clinical
// summaries and assembles the audit outcome.
type Service struct {
	translator  translator.Translator
	disclaimers *patterns.Disclaimers
	workers     int
	metrics     *metrics.Metrics
	audit       *repository.AuditRepository
	events      *events.TranslationEventPublisher
	logger      *logger.Logger
}

// New creates the translation service.
func New(cfg Config) *Service {
	workers := cfg.Workers
	if workers < 1 {
		workers = 1
	}
	disclaimers := cfg.Disclaimers
	if disclaimers == nil {
		disclaimers = patterns.NewDisclaimers()
	}
	return &Service{
		translator:  cfg.Translator,
		disclaimers: disclaimers,
		workers:     workers,
		metrics:     cfg.Metrics,
		audit:       cfg.Audit,
		events:      cfg.Events,
		logger:      cfg.Logger,
	}
}

// Languages returns the supported target languages.
func (s *Service) Languages() []string {
	return s.disclaimers.Languages()
}

// unit is one ALLOW field moving through the pipeline.
type unit struct {
	ref    fieldRef
	masked string
	pm     *masking.PlaceholderMap
	state  domain.UnitState

	// set by the worker
	result    string
	violation *domain.SafetyViolation
}

// TranslateSummary translates the narrative fields of a summary into the
// target language. DENY fields are copied verbatim. Per-field failures
// degrade to "preserved untranslated"; only undecodable input or an
// unsupported target language fail the whole run.
func (s *Service) TranslateSummary(ctx context.Context, summary *domain.ClinicalSummary, sourceLang, targetLang string) (*domain.ClinicalSummary, *domain.TranslationOutcome, error) {
	if sourceLang == "" {
		sourceLang = DefaultSourceLanguage
	}
	if !s.disclaimers.IsSupported(targetLang) {
		return nil, nil, apperrors.BadRequest(fmt.Sprintf("unsupported target language %q", targetLang))
	}

	started := time.Now()
	runID := uuid.New().String()
	log := s.logger.WithRunID(runID)

	out := summary.Clone()

	var (
		units     []*unit
		preserved []string
	)

	for _, ref := range collectRefs(out) {
		if *ref.value == "" {
			continue
		}

		c := classify.Classify(ref.classifierName)
		if c.Decision != classify.Allow {
			preserved = append(preserved, ref.path)
			if c.Reason == "not in approved translation list" {
				log.Debug().Str("field", ref.path).Msg("unrecognized field preserved for safety")
			}
			continue
		}

		// Masking happens before any unit is dispatched, so undecodable
		// input hard-fails the run with no field half-processed.
		if !utf8.ValidString(*ref.value) {
			return nil, nil, fmt.Errorf("field %s: %w", ref.path, masking.ErrUndecodableInput)
		}
		masked, pm, err := masking.Mask(*ref.value)
		if err != nil {
			return nil, nil, fmt.Errorf("field %s: %w", ref.path, err)
		}

		units = append(units, &unit{
			ref:    ref,
			masked: masked,
			pm:     pm,
			state:  domain.UnitMasked,
		})
	}

	s.runUnits(ctx, units, sourceLang, targetLang)

	outcome := &domain.TranslationOutcome{
		RunID:            runID,
		SourceLanguage:   sourceLang,
		TargetLanguage:   targetLang,
		Status:           domain.StatusTranslated,
		FieldsTranslated: []string{},
		FieldsPreserved:  preserved,
		FieldsSkipped:    []string{},
		SafetyViolations: []domain.SafetyViolation{},
	}
	if outcome.FieldsPreserved == nil {
		outcome.FieldsPreserved = []string{}
	}

	for _, u := range units {
		switch u.state {
		case domain.UnitRestored:
			*u.ref.value = u.result
			outcome.FieldsTranslated = append(outcome.FieldsTranslated, u.ref.path)
		case domain.UnitViolated:
			// Original value stays in place; record the caught violation.
			outcome.FieldsPreserved = append(outcome.FieldsPreserved, u.ref.path)
			outcome.SafetyViolations = append(outcome.SafetyViolations, *u.violation)
		default:
			// Engine failure or timeout: field stays untranslated.
			outcome.FieldsSkipped = append(outcome.FieldsSkipped, u.ref.path)
		}
	}

	if err := verifyDenied(summary, out); err != nil {
		return nil, nil, err
	}

	if len(units) > 0 && len(outcome.FieldsTranslated) == 0 {
		outcome.Status = domain.StatusFallback
	}
	if notice, ok := s.disclaimers.For(targetLang); ok {
		outcome.TranslationNotice = notice
	}
	outcome.DurationMs = time.Since(started).Milliseconds()
	outcome.CompletedAt = time.Now().UTC()

	s.record(ctx, log, outcome)

	log.Info().
		Str("target_language", targetLang).
		Str("status", outcome.Status).
		Int("translated", len(outcome.FieldsTranslated)).
		Int("preserved", len(outcome.FieldsPreserved)).
		Int("skipped", len(outcome.FieldsSkipped)).
		Int("violations", len(outcome.SafetyViolations)).
		Msg("translation run finished")

	return out, outcome, nil
}

// runUnits processes units on a bounded worker pool. Each unit owns its
// placeholder map; workers never share mutable state.
func (s *Service) runUnits(ctx context.Context, units []*unit, sourceLang, targetLang string) {
	if len(units) == 0 {
		return
	}

	jobs := make(chan *unit)
	var wg sync.WaitGroup

	workers := s.workers
	if workers > len(units) {
		workers = len(units)
	}

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for u := range jobs {
				s.processUnit(ctx, u, sourceLang, targetLang)
			}
		}()
	}

	for _, u := range units {
		jobs <- u
	}
	close(jobs)
	wg.Wait()
}

// processUnit resolves one unit to restored, failed or violated. Whatever
// happens, the unit ends with either a fully restored value or its original
// one; partially restored text never escapes.
func (s *Service) processUnit(ctx context.Context, u *unit, sourceLang, targetLang string) {
	translated, err := s.translator.Translate(ctx, u.masked, sourceLang, targetLang)
	if err != nil {
		u.state = domain.UnitFailed
		s.logger.Warn().Err(err).Str("field", u.ref.path).Msg("translation unavailable, field preserved")
		return
	}
	u.state = domain.UnitTranslated

	restored, err := masking.Restore(translated, u.pm)
	if err != nil {
		u.state = domain.UnitViolated
		u.violation = &domain.SafetyViolation{
			Field:  u.ref.path,
			Reason: "placeholder not found",
		}
		if s.metrics != nil {
			s.metrics.RecordViolationPrevented()
		}
		s.logger.Error().Str("field", u.ref.path).Msg("placeholder lost in translation, field reverted")
		return
	}

	u.state = domain.UnitRestored
	u.result = restored
}

// record updates metrics, persists the audit row and publishes events.
// All three are best-effort: the translated document is already safe.
func (s *Service) record(ctx context.Context, log *logger.Logger, outcome *domain.TranslationOutcome) {
	if s.metrics != nil {
		s.metrics.RecordRun(outcome.Status, float64(outcome.DurationMs)/1000)
		s.metrics.AddFieldsTranslated(len(outcome.FieldsTranslated))
		s.metrics.AddFieldsPreserved(len(outcome.FieldsPreserved))
		s.metrics.AddFieldsSkipped(len(outcome.FieldsSkipped))
	}

	var record *domain.AuditRecord
	if s.audit != nil {
		record = repository.FromOutcome(outcome)
		if err := s.audit.Create(ctx, record); err != nil {
			log.Error().Err(err).Msg("failed to persist translation audit record")
			record = nil
		}
	}

	if s.events != nil {
		s.events.PublishTranslationCompleted(ctx, outcome)
		if record != nil {
			s.events.PublishAuditRecordCreated(ctx, record)
		}
		for _, v := range outcome.SafetyViolations {
			s.events.PublishSafetyViolation(ctx, outcome.RunID, outcome.TargetLanguage, v)
		}
		if outcome.Fallback() {
			s.events.PublishFallback(ctx, outcome.RunID, outcome.TargetLanguage, "no field could be translated")
		}
	}
}

// verifyDenied asserts that every DENY field survived the run bit-identical.
// The pipeline never writes those fields, so a mismatch means a bug, and it
// must surface rather than ship corrupted medical data.
func verifyDenied(original, translated *domain.ClinicalSummary) error {
	origRefs := collectRefs(original)
	outRefs := collectRefs(translated)
	if len(origRefs) != len(outRefs) {
		return apperrors.SafetyViolation("document shape changed during translation")
	}

	for i, ref := range origRefs {
		if classify.Classify(ref.classifierName).Decision == classify.Allow {
			continue
		}
		if *ref.value != *outRefs[i].value {
			return apperrors.SafetyViolation(fmt.Sprintf("field %s was altered during translation", ref.path))
		}
	}
	return nil
}

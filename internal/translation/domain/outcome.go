package domain

import "time"

// Run status values recorded in outcomes and audit rows.
const (
	StatusTranslated = "translated"
	StatusFallback   = "fallback"
)

// UnitState tracks a field through the pipeline.
type UnitState string

const (
	UnitUnclassified UnitState = "unclassified"
	UnitMasked       UnitState = "masked"
	UnitTranslated   UnitState = "translated"
	UnitFailed       UnitState = "failed"
	UnitRestored     UnitState = "restored"
	UnitViolated     UnitState = "violated"
)

// SafetyViolation records a restoration failure that was caught before
// output left the service.
type SafetyViolation struct {
	Field  string `json:"field"`
	Reason string `json:"reason"`
}

// TranslationOutcome is the audit metadata for a summary run. It is
// assembled once at the end of the run and not mutated afterwards. It names
// fields but never carries their values.
type TranslationOutcome struct {
	RunID             string            `json:"run_id"`
	SourceLanguage    string            `json:"source_language"`
	TargetLanguage    string            `json:"target_language"`
	Status            string            `json:"status"`
	FieldsTranslated  []string          `json:"fields_translated"`
	FieldsPreserved   []string          `json:"fields_preserved"`
	FieldsSkipped     []string          `json:"fields_skipped"`
	SafetyViolations  []SafetyViolation `json:"safety_violations"`
	TranslationNotice string            `json:"translation_notice,omitempty"`
	DurationMs        int64             `json:"duration_ms"`
	CompletedAt       time.Time         `json:"completed_at"`
}

// Fallback reports whether the run fell back to the untranslated source.
func (o *TranslationOutcome) Fallback() bool {
	return o.Status == StatusFallback
}

// AuditRecord is the persisted form of a run outcome. Field name lists are
// stored as JSON arrays; clinical text never reaches the database.
type AuditRecord struct {
	ID               string    `db:"id"`
	RunID            string    `db:"run_id"`
	SourceLanguage   string    `db:"source_language"`
	TargetLanguage   string    `db:"target_language"`
	Status           string    `db:"status"`
	TranslatedCount  int       `db:"translated_count"`
	PreservedCount   int       `db:"preserved_count"`
	SkippedCount     int       `db:"skipped_count"`
	ViolationCount   int       `db:"violation_count"`
	FieldsTranslated []byte    `db:"fields_translated"`
	FieldsPreserved  []byte    `db:"fields_preserved"`
	FieldsSkipped    []byte    `db:"fields_skipped"`
	Violations       []byte    `db:"violations"`
	DurationMs       int64     `db:"duration_ms"`
	CreatedAt        time.Time `db:"created_at"`
}

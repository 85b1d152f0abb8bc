package repository

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"
	"github.com/medflow/translation-backend/internal/translation/domain"
	"github.com/medflow/translation-backend/pkg/database"
)

// AuditRepository persists translation run audit records. Rows hold field
// names and counts only; no clinical text reaches this table.
type AuditRepository struct {
	db *database.DB
}

// NewAuditRepository creates a new audit repository
func NewAuditRepository(db *database.DB) *AuditRepository {
	return &AuditRepository{db: db}
}

// Create inserts the audit record for a finished run.
func (r *AuditRepository) Create(ctx context.Context, record *domain.AuditRecord) error {
	if record.ID == "" {
		record.ID = uuid.New().String()
	}

	query := `
		INSERT INTO translation_audit (id, run_id, source_language, target_language, status,
		                               translated_count, preserved_count, skipped_count, violation_count,
		                               fields_translated, fields_preserved, fields_skipped, violations,
		                               duration_ms)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		RETURNING created_at
	`

	return r.db.QueryRowxContext(ctx, query,
		record.ID,
		record.RunID,
		record.SourceLanguage,
		record.TargetLanguage,
		record.Status,
		record.TranslatedCount,
		record.PreservedCount,
		record.SkippedCount,
		record.ViolationCount,
		record.FieldsTranslated,
		record.FieldsPreserved,
		record.FieldsSkipped,
		record.Violations,
		record.DurationMs,
	).Scan(&record.CreatedAt)
}

// FromOutcome builds the persistable record for an outcome.
func FromOutcome(outcome *domain.TranslationOutcome) *domain.AuditRecord {
	return &domain.AuditRecord{
		RunID:            outcome.RunID,
		SourceLanguage:   outcome.SourceLanguage,
		TargetLanguage:   outcome.TargetLanguage,
		Status:           outcome.Status,
		TranslatedCount:  len(outcome.FieldsTranslated),
		PreservedCount:   len(outcome.FieldsPreserved),
		SkippedCount:     len(outcome.FieldsSkipped),
		ViolationCount:   len(outcome.SafetyViolations),
		FieldsTranslated: marshalNames(outcome.FieldsTranslated),
		FieldsPreserved:  marshalNames(outcome.FieldsPreserved),
		FieldsSkipped:    marshalNames(outcome.FieldsSkipped),
		Violations:       marshalViolations(outcome.SafetyViolations),
		DurationMs:       outcome.DurationMs,
	}
}

// ListFilter contains filter options for audit records
type ListFilter struct {
	TargetLanguage string
	Status         string
}

// List lists audit records with pagination and filtering, newest first.
func (r *AuditRepository) List(ctx context.Context, filter *ListFilter, page, perPage int) ([]*domain.AuditRecord, int64, error) {
	args := []interface{}{}
	argIndex := 1

	countQuery := `SELECT COUNT(*) FROM translation_audit WHERE 1=1`
	query := `
		SELECT id, run_id, source_language, target_language, status,
		       translated_count, preserved_count, skipped_count, violation_count,
		       fields_translated, fields_preserved, fields_skipped, violations,
		       duration_ms, created_at
		FROM translation_audit
		WHERE 1=1
	`

	if filter != nil {
		if filter.TargetLanguage != "" {
			countQuery += ` AND target_language = $` + string(rune('0'+argIndex))
			query += ` AND target_language = $` + string(rune('0'+argIndex))
			args = append(args, filter.TargetLanguage)
			argIndex++
		}
		if filter.Status != "" {
			countQuery += ` AND status = $` + string(rune('0'+argIndex))
			query += ` AND status = $` + string(rune('0'+argIndex))
			args = append(args, filter.Status)
			argIndex++
		}
	}

	var total int64
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, err
	}

	query += ` ORDER BY created_at DESC`

	offset := (page - 1) * perPage
	query += ` LIMIT $` + string(rune('0'+argIndex)) + ` OFFSET $` + string(rune('0'+argIndex+1))
	args = append(args, perPage, offset)

	var records []*domain.AuditRecord
	rows, err := r.db.QueryxContext(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	for rows.Next() {
		var rec domain.AuditRecord
		if err := rows.StructScan(&rec); err != nil {
			return nil, 0, err
		}
		records = append(records, &rec)
	}

	return records, total, nil
}

func marshalNames(names []string) []byte {
	if names == nil {
		names = []string{}
	}
	data, err := json.Marshal(names)
	if err != nil {
		return []byte("[]")
	}
	return data
}

func marshalViolations(violations []domain.SafetyViolation) []byte {
	if violations == nil {
		violations = []domain.SafetyViolation{}
	}
	data, err := json.Marshal(violations)
	if err != nil {
		return []byte("[]")
	}
	return data
}

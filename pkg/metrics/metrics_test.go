package metrics

import (
	"net/http/httptest"
	"strings"
	"testing"
)

func TestMetrics_Snapshot(t *testing.T) {
	m := New()

	m.RecordRun("translated", 0.25)
	m.RecordRun("fallback", 0.05)
	m.AddFieldsTranslated(3)
	m.AddFieldsPreserved(5)
	m.AddFieldsSkipped(1)
	m.RecordViolationPrevented()
	m.RecordCacheHit()
	m.RecordCacheMiss()
	m.RecordCacheMiss()

	snap := m.Snapshot()

	if snap.Runs != 2 {
		t.Errorf("Runs = %d, want 2", snap.Runs)
	}
	if snap.Fallbacks != 1 {
		t.Errorf("Fallbacks = %d, want 1", snap.Fallbacks)
	}
	if snap.FieldsTranslated != 3 {
		t.Errorf("FieldsTranslated = %d, want 3", snap.FieldsTranslated)
	}
	if snap.FieldsPreserved != 5 {
		t.Errorf("FieldsPreserved = %d, want 5", snap.FieldsPreserved)
	}
	if snap.FieldsSkipped != 1 {
		t.Errorf("FieldsSkipped = %d, want 1", snap.FieldsSkipped)
	}
	if snap.ViolationsPrevented != 1 {
		t.Errorf("ViolationsPrevented = %d, want 1", snap.ViolationsPrevented)
	}
	if snap.CacheHits != 1 || snap.CacheMisses != 2 {
		t.Errorf("cache counters = %d/%d, want 1/2", snap.CacheHits, snap.CacheMisses)
	}
}

func TestMetrics_Handler(t *testing.T) {
	m := New()
	m.RecordRun("translated", 0.1)
	m.AddFieldsPreserved(2)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/metrics", nil)
	m.Handler().ServeHTTP(rec, req)

	if rec.Code != 200 {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	body := rec.Body.String()
	if !strings.Contains(body, "medtranslate_translations_total") {
		t.Error("exposition missing medtranslate_translations_total")
	}
	if !strings.Contains(body, "medtranslate_fields_preserved_total") {
		t.Error("exposition missing medtranslate_fields_preserved_total")
	}
}

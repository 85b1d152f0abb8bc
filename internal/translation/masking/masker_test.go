package masking

import (
	"errors"
	"reflect"
	"strings"
	"testing"
)

func TestMask_ExtractsCriticalSpans(t *testing.T) {
	tests := []struct {
		name  string
		text  string
		spans []string
	}{
		{
			name:  "dosage frequency and medication name",
			text:  "Take 1 tablet daily with water. Metformin 500mg twice daily.",
			spans: []string{"1 tablet", "daily", "Metformin 500mg", "twice daily"},
		},
		{
			name:  "lab value claims compound unit whole",
			text:  "Fasting glucose was 95 mg/dL this morning.",
			spans: []string{"95 mg/dL"},
		},
		{
			name:  "blood pressure reading",
			text:  "Blood pressure measured at 135/80 mmHg during the visit.",
			spans: []string{"135/80 mmHg"},
		},
		{
			name:  "date and clock time",
			text:  "Return on 01/15/2026 at 9:30 AM for follow-up.",
			spans: []string{"01/15/2026", "9:30 AM"},
		},
		{
			name:  "multi-word frequency wins over bare daily",
			text:  "Apply ointment three times daily after meals.",
			spans: []string{"three times daily"},
		},
		{
			name:  "percentage lab value",
			text:  "HbA1c improved to 6.8% since the last check.",
			spans: []string{"6.8%"},
		},
		{
			name:  "no critical data",
			text:  "Rest and drink plenty of fluids.",
			spans: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			masked, pm, err := Mask(tt.text)
			if err != nil {
				t.Fatalf("Mask() error = %v", err)
			}

			if got := pm.Spans(); !reflect.DeepEqual(got, tt.spans) {
				t.Errorf("spans = %q, want %q", got, tt.spans)
			}

			if len(tt.spans) == 0 && masked != tt.text {
				t.Errorf("masked = %q, want unchanged input", masked)
			}

			for _, span := range tt.spans {
				if strings.Contains(masked, span) {
					t.Errorf("masked text still contains critical span %q: %q", span, masked)
				}
			}
		})
	}
}

func TestMask_RoundTrip(t *testing.T) {
	texts := []string{
		"Take 1 tablet daily with water. Metformin 500mg twice daily.",
		"Glucose 95 mg/dL, blood pressure 135/80 mmHg, pulse 72 bpm.",
		"Lisinopril 10mg once daily starting 02/01/2026.",
		"Take 500 mg now and another 500 mg in 6 hours if needed.",
		"No numbers here at all.",
	}

	for _, text := range texts {
		masked, pm, err := Mask(text)
		if err != nil {
			t.Fatalf("Mask(%q) error = %v", text, err)
		}

		restored, err := Restore(masked, pm)
		if err != nil {
			t.Fatalf("Restore(%q) error = %v", masked, err)
		}

		if restored != text {
			t.Errorf("round trip = %q, want %q", restored, text)
		}
	}
}

func TestMask_UndecodableInput(t *testing.T) {
	_, _, err := Mask("take \xff\xfe daily")
	if !errors.Is(err, ErrUndecodableInput) {
		t.Errorf("Mask() error = %v, want ErrUndecodableInput", err)
	}
}

func TestMask_PlaceholderCollisionFreedom(t *testing.T) {
	// Source text already contains a token shape the masker would generate.
	text := "keep ___DOSAGE_0___ as written and take 500 mg tonight."

	masked, pm, err := Mask(text)
	if err != nil {
		t.Fatalf("Mask() error = %v", err)
	}

	for _, e := range pm.Entries() {
		if e.Token == "___DOSAGE_0___" {
			t.Errorf("masker reused token %q already present in source", e.Token)
		}
		if strings.Count(masked, e.Token) != 1 {
			t.Errorf("token %q occurs %d times in masked text, want 1",
				e.Token, strings.Count(masked, e.Token))
		}
	}

	restored, err := Restore(masked, pm)
	if err != nil {
		t.Fatalf("Restore() error = %v", err)
	}
	if restored != text {
		t.Errorf("round trip = %q, want %q", restored, text)
	}
}

func TestMask_RepeatedIdenticalSpans(t *testing.T) {
	text := "Swallow one dose of 500 mg now and 500 mg at bedtime."

	masked, pm, err := Mask(text)
	if err != nil {
		t.Fatalf("Mask() error = %v", err)
	}

	if pm.Len() != 2 {
		t.Fatalf("placeholder count = %d, want 2", pm.Len())
	}
	if pm.Entries()[0].Token == pm.Entries()[1].Token {
		t.Error("identical spans received the same placeholder token")
	}

	restored, err := Restore(masked, pm)
	if err != nil {
		t.Fatalf("Restore() error = %v", err)
	}
	if restored != text {
		t.Errorf("round trip = %q, want %q", restored, text)
	}
}

func TestMask_OverlapResolution(t *testing.T) {
	// Lab value and dosage candidates both start at the number; the lab
	// pattern must claim the full compound unit.
	masked, pm, err := Mask("repeat test showed 140 mg/dL this time")
	if err != nil {
		t.Fatalf("Mask() error = %v", err)
	}

	spans := pm.Spans()
	if len(spans) == 0 || spans[0] != "140 mg/dL" {
		t.Fatalf("spans = %q, want first span %q", spans, "140 mg/dL")
	}
	if strings.Contains(masked, "/dL") {
		t.Errorf("masked text %q leaked part of a compound unit", masked)
	}
}

func TestRestore_MissingToken(t *testing.T) {
	text := "Blood pressure was 135/80 mmHg at discharge."
	masked, pm, err := Mask(text)
	if err != nil {
		t.Fatalf("Mask() error = %v", err)
	}

	// Simulate a translator that dropped the placeholder.
	dropped := strings.Replace(masked, pm.Entries()[0].Token, "", 1)

	if _, err := Restore(dropped, pm); !errors.Is(err, ErrPlaceholderLost) {
		t.Errorf("Restore() error = %v, want ErrPlaceholderLost", err)
	}
}

func TestRestore_DuplicatedToken(t *testing.T) {
	text := "Swallow the evening dose of 500 mg with food."
	masked, pm, err := Mask(text)
	if err != nil {
		t.Fatalf("Mask() error = %v", err)
	}

	// Simulate a translator that repeated the placeholder; the extra copy
	// must fail restoration instead of reaching output as a literal token.
	duplicated := masked + " Repita: " + pm.Entries()[0].Token

	if _, err := Restore(duplicated, pm); !errors.Is(err, ErrPlaceholderLost) {
		t.Errorf("Restore() error = %v, want ErrPlaceholderLost", err)
	}
}

func TestRestore_SurvivesUppercasingTranslator(t *testing.T) {
	text := "Take 1 tablet daily with food."
	masked, pm, err := Mask(text)
	if err != nil {
		t.Fatalf("Mask() error = %v", err)
	}

	// Placeholder tokens are already uppercase, so a case-mangling
	// translator leaves them intact.
	restored, err := Restore(strings.ToUpper(masked), pm)
	if err != nil {
		t.Fatalf("Restore() error = %v", err)
	}

	for _, span := range pm.Spans() {
		if !strings.Contains(restored, span) {
			t.Errorf("restored text %q missing original-cased span %q", restored, span)
		}
	}
}

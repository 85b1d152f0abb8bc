package service

import (
	"github.com/medflow/translation-backend/internal/translation/domain"
)

// ValidationReport is the result of comparing a translated summary against
// its source, one flag per critical field group.
type ValidationReport struct {
	MedicationsPreserved bool `json:"medications_preserved"`
	LabValuesPreserved   bool `json:"lab_values_preserved"`
	VitalSignsPreserved  bool `json:"vital_signs_preserved"`
	IdentifiersPreserved bool `json:"identifiers_preserved"`
	DatesPreserved       bool `json:"dates_preserved"`
	Safe                 bool `json:"safe"`
}

// VerifySummaries checks that every safety-critical field of the translated
// summary is bit-identical to the original. It is a standalone audit check
// usable by operators outside a pipeline run.
func VerifySummaries(original, translated *domain.ClinicalSummary) ValidationReport {
	r := ValidationReport{
		MedicationsPreserved: medicationsEqual(original.Medications, translated.Medications),
		LabValuesPreserved:   labValuesEqual(original.LabResults, translated.LabResults),
		VitalSignsPreserved:  vitalSignsEqual(original.VitalSigns, translated.VitalSigns),
		IdentifiersPreserved: original.PatientID == translated.PatientID &&
			original.DocumentID == translated.DocumentID &&
			original.EncounterID == translated.EncounterID &&
			original.MRN == translated.MRN,
		DatesPreserved: datesEqual(original, translated),
	}
	r.Safe = r.MedicationsPreserved && r.LabValuesPreserved &&
		r.VitalSignsPreserved && r.IdentifiersPreserved && r.DatesPreserved
	return r
}

func medicationsEqual(a, b []domain.Medication) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i].Name != b[i].Name ||
			a[i].DosageAmount != b[i].DosageAmount ||
			a[i].DosageUnit != b[i].DosageUnit ||
			a[i].Frequency != b[i].Frequency ||
			a[i].Route != b[i].Route {
			return false
		}
	}
	return true
}

func labValuesEqual(a, b []domain.LabResult) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i].TestName != b[i].TestName ||
			a[i].Value != b[i].Value ||
			a[i].Unit != b[i].Unit ||
			a[i].ReferenceRange != b[i].ReferenceRange {
			return false
		}
	}
	return true
}

func vitalSignsEqual(a, b []domain.VitalSign) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func datesEqual(a, b *domain.ClinicalSummary) bool {
	for i := range a.LabResults {
		if i >= len(b.LabResults) || a.LabResults[i].CollectedAt != b.LabResults[i].CollectedAt {
			return false
		}
	}
	for i := range a.VitalSigns {
		if i >= len(b.VitalSigns) || a.VitalSigns[i].MeasuredAt != b.VitalSigns[i].MeasuredAt {
			return false
		}
	}
	return true
}

package testutil

import (
	"github.com/medflow/translation-backend/internal/translation/domain"
)

// SampleSummary returns a clinical summary exercising every field group:
// identifiers, narrative prose with embedded critical spans, medications,
// lab results and vital signs.
func SampleSummary() *domain.ClinicalSummary {
	return &domain.ClinicalSummary{
		PatientID:   "P-10041",
		DocumentID:  "DOC-2201",
		EncounterID: "ENC-8873",
		MRN:         "MRN-550021",

		ChiefComplaint:       "Elevated blood sugar and mild dizziness.",
		DiagnosisExplanation: "Your blood sugar has been higher than the target range.",
		CareInstructions:     "Take 1 tablet daily with water. Metformin 500mg twice daily.",
		FollowUpInstructions: "Return on 01/15/2026 at 9:30 AM for a repeat glucose check.",
		DietInstructions:     "Limit sugary drinks and eat regular meals.",
		WarningSigns:         "Call your doctor if your blood pressure exceeds 160/100 mmHg.",

		Medications: []domain.Medication{
			{
				Name:         "Metformin",
				DosageAmount: "500",
				DosageUnit:   "mg",
				Frequency:    "twice daily",
				Route:        "oral",
				Purpose:      "Helps lower your blood sugar.",
				SideEffects:  "May cause mild stomach upset during the first week.",
			},
			{
				Name:         "Lisinopril 10mg",
				DosageAmount: "10",
				DosageUnit:   "mg",
				Frequency:    "once daily",
				Route:        "oral",
				Purpose:      "Keeps your blood pressure under control.",
			},
		},
		LabResults: []domain.LabResult{
			{
				TestName:       "Fasting glucose",
				Value:          "142",
				Unit:           "mg/dL",
				ReferenceRange: "70-100 mg/dL",
				CollectedAt:    "01/02/2026",
				Explanation:    "This number shows how much sugar was in your blood before breakfast.",
			},
		},
		VitalSigns: []domain.VitalSign{
			{Name: "Blood pressure", Value: "135/80", Unit: "mmHg", MeasuredAt: "01/02/2026"},
			{Name: "Heart rate", Value: "72", Unit: "bpm", MeasuredAt: "01/02/2026"},
		},
	}
}

// MinimalSummary returns a summary with a single narrative field, for tests
// that only need one translation unit.
func MinimalSummary() *domain.ClinicalSummary {
	return &domain.ClinicalSummary{
		PatientID:        "P-20001",
		CareInstructions: "Rest at home and drink plenty of fluids.",
	}
}

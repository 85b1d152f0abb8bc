package service

import (
	"fmt"

	"github.com/medflow/translation-backend/internal/translation/domain"
)

// fieldRef addresses one string field of a summary. path identifies the
// field in audit output; classifierName is the name the safety classifier
// knows it by.
type fieldRef struct {
	path           string
	classifierName string
	value          *string
}

// collectRefs enumerates every field of the summary schema in a fixed
// order. The schema is closed: a field not listed here cannot enter the
// pipeline at all.
func collectRefs(s *domain.ClinicalSummary) []fieldRef {
	refs := []fieldRef{
		{"patient_id", "patient_id", &s.PatientID},
		{"document_id", "document_id", &s.DocumentID},
		{"encounter_id", "encounter_id", &s.EncounterID},
		{"mrn", "mrn", &s.MRN},

		{"chief_complaint", "chief_complaint", &s.ChiefComplaint},
		{"reason_for_visit", "reason_for_visit", &s.ReasonForVisit},
		{"symptom_description", "symptom_description", &s.SymptomDescription},
		{"diagnosis_explanation", "diagnosis_explanation", &s.DiagnosisExplanation},
		{"condition_description", "condition_description", &s.ConditionDescription},
		{"care_instructions", "care_instructions", &s.CareInstructions},
		{"discharge_instructions", "discharge_instructions", &s.DischargeInstructions},
		{"follow_up_instructions", "follow_up_instructions", &s.FollowUpInstructions},
		{"lifestyle_recommendations", "lifestyle_recommendations", &s.LifestyleRecommendations},
		{"diet_instructions", "diet_instructions", &s.DietInstructions},
		{"activity_restrictions", "activity_restrictions", &s.ActivityRestrictions},
		{"warning_signs", "warning_signs", &s.WarningSigns},
		{"when_to_call_doctor", "when_to_call_doctor", &s.WhenToCallDoctor},
		{"general_comments", "general_comments", &s.GeneralComments},
		{"patient_education", "patient_education", &s.PatientEducation},
	}

	for i := range s.Medications {
		m := &s.Medications[i]
		path := fmt.Sprintf("medications[%d]", i)
		refs = append(refs,
			fieldRef{path + ".name", "medication_name", &m.Name},
			fieldRef{path + ".dosage_amount", "dosage_amount", &m.DosageAmount},
			fieldRef{path + ".dosage_unit", "dosage_unit", &m.DosageUnit},
			fieldRef{path + ".frequency", "frequency", &m.Frequency},
			fieldRef{path + ".route", "route", &m.Route},
			fieldRef{path + ".instructions", "medication_instructions", &m.Instructions},
			fieldRef{path + ".purpose", "medication_purpose", &m.Purpose},
			fieldRef{path + ".side_effects", "medication_side_effects", &m.SideEffects},
		)
	}

	for i := range s.LabResults {
		l := &s.LabResults[i]
		path := fmt.Sprintf("lab_results[%d]", i)
		refs = append(refs,
			fieldRef{path + ".test_name", "test_name", &l.TestName},
			fieldRef{path + ".value", "value", &l.Value},
			fieldRef{path + ".unit", "unit", &l.Unit},
			fieldRef{path + ".reference_range", "reference_range", &l.ReferenceRange},
			fieldRef{path + ".collected_at", "lab_date", &l.CollectedAt},
			fieldRef{path + ".explanation", "test_explanation", &l.Explanation},
		)
	}

	for i := range s.VitalSigns {
		v := &s.VitalSigns[i]
		path := fmt.Sprintf("vital_signs[%d]", i)
		refs = append(refs,
			fieldRef{path + ".name", "vital_name", &v.Name},
			fieldRef{path + ".value", "measurement_value", &v.Value},
			fieldRef{path + ".unit", "measurement_unit", &v.Unit},
			fieldRef{path + ".measured_at", "measurement_time", &v.MeasuredAt},
		)
	}

	return refs
}

package domain

// ClinicalSummary is the patient-facing discharge document. The schema is
// closed: every field is known to the safety classifier by name, and unknown
// fields cannot enter the pipeline.
type ClinicalSummary struct {
	// Identifiers. Never translated.
	PatientID   string `json:"patient_id,omitempty"`
	DocumentID  string `json:"document_id,omitempty"`
	EncounterID string `json:"encounter_id,omitempty"`
	MRN         string `json:"mrn,omitempty"`

	// Narrative fields. Eligible for translation.
	ChiefComplaint           string `json:"chief_complaint,omitempty"`
	ReasonForVisit           string `json:"reason_for_visit,omitempty"`
	SymptomDescription       string `json:"symptom_description,omitempty"`
	DiagnosisExplanation     string `json:"diagnosis_explanation,omitempty"`
	ConditionDescription     string `json:"condition_description,omitempty"`
	CareInstructions         string `json:"care_instructions,omitempty"`
	DischargeInstructions    string `json:"discharge_instructions,omitempty"`
	FollowUpInstructions     string `json:"follow_up_instructions,omitempty"`
	LifestyleRecommendations string `json:"lifestyle_recommendations,omitempty"`
	DietInstructions         string `json:"diet_instructions,omitempty"`
	ActivityRestrictions     string `json:"activity_restrictions,omitempty"`
	WarningSigns             string `json:"warning_signs,omitempty"`
	WhenToCallDoctor         string `json:"when_to_call_doctor,omitempty"`
	GeneralComments          string `json:"general_comments,omitempty"`
	PatientEducation         string `json:"patient_education,omitempty"`

	Medications []Medication `json:"medications,omitempty"`
	LabResults  []LabResult  `json:"lab_results,omitempty"`
	VitalSigns  []VitalSign  `json:"vital_signs,omitempty"`
}

// Medication is a prescribed drug entry. Name, dose, frequency and route are
// safety-critical; only the narrative purpose and side-effect text may be
// translated.
type Medication struct {
	Name         string `json:"name"`
	DosageAmount string `json:"dosage_amount,omitempty"`
	DosageUnit   string `json:"dosage_unit,omitempty"`
	Frequency    string `json:"frequency,omitempty"`
	Route        string `json:"route,omitempty"`
	Instructions string `json:"instructions,omitempty"`
	Purpose      string `json:"purpose,omitempty"`
	SideEffects  string `json:"side_effects,omitempty"`
}

// LabResult is a laboratory finding. Only the explanation narrative may be
// translated.
type LabResult struct {
	TestName       string `json:"test_name"`
	Value          string `json:"value"`
	Unit           string `json:"unit,omitempty"`
	ReferenceRange string `json:"reference_range,omitempty"`
	CollectedAt    string `json:"collected_at,omitempty"`
	Explanation    string `json:"explanation,omitempty"`
}

// VitalSign is a measured vital. All fields are preserved verbatim.
type VitalSign struct {
	Name       string `json:"name"`
	Value      string `json:"value"`
	Unit       string `json:"unit,omitempty"`
	MeasuredAt string `json:"measured_at,omitempty"`
}

// Clone returns a deep copy of the summary. The pipeline mutates the copy so
// the caller's document survives a fallback untouched.
func (s *ClinicalSummary) Clone() *ClinicalSummary {
	out := *s

	if s.Medications != nil {
		out.Medications = make([]Medication, len(s.Medications))
		copy(out.Medications, s.Medications)
	}
	if s.LabResults != nil {
		out.LabResults = make([]LabResult, len(s.LabResults))
		copy(out.LabResults, s.LabResults)
	}
	if s.VitalSigns != nil {
		out.VitalSigns = make([]VitalSign, len(s.VitalSigns))
		copy(out.VitalSigns, s.VitalSigns)
	}

	return &out
}

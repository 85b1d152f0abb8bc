package classify

// Decision is the safety classification of a document field.
type Decision string

const (
	// Allow marks a field whose value may be passed to the translator.
	Allow Decision = "ALLOW"
	// Deny marks a field whose value must be copied verbatim.
	Deny Decision = "DENY"
)

// Classification is the decision for one field with its reason.
type Classification struct {
	Field    string
	Decision Decision
	Reason   string
}

// neverTranslate lists fields that must reach output byte-identical to the
// input. Names, doses, values, dates and identifiers are never safe to
// rewrite.
var neverTranslate = map[string]bool{
	// Medication safety-critical fields
	"medication_name": true,
	"substance_name":  true,
	"brand_name":      true,
	"dosage_amount":   true,
	"dosage_unit":     true,
	"frequency":       true,
	"route":           true,
	"start_date":      true,
	"end_date":        true,
	"prescriber":      true,

	// Lab result critical fields
	"test_name":       true,
	"test_code":       true,
	"value":           true,
	"unit":            true,
	"reference_range": true,
	"lab_date":        true,
	"lab_time":        true,
	"specimen_type":   true,

	// Vital sign critical fields
	"vital_name":        true,
	"vital_code":        true,
	"measurement_value": true,
	"measurement_unit":  true,
	"measurement_time":  true,
	"device_used":       true,

	// Administrative critical fields
	"patient_id":              true,
	"patient_ssn":             true,
	"patient_dob":             true,
	"patient_address":         true,
	"provider_name":           true,
	"provider_npi":            true,
	"provider_contact":        true,
	"pharmacy_name":           true,
	"pharmacy_address":        true,
	"pharmacy_phone":          true,
	"appointment_datetime":    true,
	"appointment_location":    true,
	"insurance_id":            true,
	"insurance_group":         true,
	"insurance_contact":       true,
	"emergency_contact_name":  true,
	"emergency_contact_phone": true,

	// Medical record identifiers
	"document_id":    true,
	"encounter_id":   true,
	"mrn":            true,
	"account_number": true,
}

// safeToTranslate lists narrative fields approved for translation.
var safeToTranslate = map[string]bool{
	"chief_complaint":           true,
	"reason_for_visit":          true,
	"symptom_description":       true,
	"diagnosis_explanation":     true,
	"condition_description":     true,
	"care_instructions":         true,
	"discharge_instructions":    true,
	"follow_up_instructions":    true,
	"lifestyle_recommendations": true,
	"diet_instructions":         true,
	"activity_restrictions":     true,
	"warning_signs":             true,
	"when_to_call_doctor":       true,
	"procedure_explanation":     true,
	"test_explanation":          true,
	"medication_purpose":        true,
	"medication_side_effects":   true,
	"general_comments":          true,
	"patient_education":         true,
}

// Classify decides whether a field's value may be translated. Pure and
// total: any field absent from both lists defaults to Deny.
func Classify(field string) Classification {
	if neverTranslate[field] {
		return Classification{
			Field:    field,
			Decision: Deny,
			Reason:   "safety-critical field",
		}
	}
	if safeToTranslate[field] {
		return Classification{
			Field:    field,
			Decision: Allow,
			Reason:   "approved narrative field",
		}
	}
	return Classification{
		Field:    field,
		Decision: Deny,
		Reason:   "not in approved translation list",
	}
}

// IsSafeToTranslate is a convenience form of Classify.
func IsSafeToTranslate(field string) bool {
	return Classify(field).Decision == Allow
}

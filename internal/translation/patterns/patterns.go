package patterns

import "regexp"

// Kind labels a class of critical medical data that must survive
// translation byte-identical.
type Kind string

const (
	KindLabValue       Kind = "lab_value"
	KindDosage         Kind = "dosage"
	KindFrequency      Kind = "frequency"
	KindDateTime       Kind = "date_time"
	KindMedicationName Kind = "medication_name"
)

// Pattern pairs a kind with its compiled expression.
type Pattern struct {
	Kind Kind
	Re   *regexp.Regexp
}

// library holds patterns in priority order. When two candidate spans start
// at the same offset, the earlier entry wins. Lab values sit above dosages
// so compound units like "95 mg/dL" are claimed whole instead of being
// split at "95 mg".
var library = []Pattern{
	{
		Kind: KindLabValue,
		Re:   regexp.MustCompile(`(?i)\b\d+(?:\.\d+)?(?:\s*/\s*\d+(?:\.\d+)?)?\s*(?:(?:mg/dL|mmol/L|mmHg|bpm)\b|%)`),
	},
	{
		Kind: KindDosage,
		Re:   regexp.MustCompile(`(?i)\b\d+(?:\.\d+)?\s*(?:mg|ml|mcg|g|tablets?|capsules?)\b`),
	},
	{
		// Multi-word forms come first: the regexp engine takes the
		// leftmost alternative that matches, so "twice daily" must be
		// tried before the bare "daily".
		Kind: KindFrequency,
		Re:   regexp.MustCompile(`(?i)\b(?:three times daily|twice daily|once daily|every \d+ hours?|as needed|daily)\b`),
	},
	{
		Kind: KindDateTime,
		Re:   regexp.MustCompile(`(?i)\b\d{1,2}/\d{1,2}/\d{4}\b|\b\d{1,2}:\d{2}\s?(?:AM|PM)\b`),
	},
	{
		// Case-sensitive on purpose: the capitalized-word heuristic is
		// what distinguishes a drug name from ordinary prose.
		Kind: KindMedicationName,
		Re:   regexp.MustCompile(`\b[A-Z][a-z]+(?:\s+[A-Z][a-z]+)*\s+\d+(?:\.\d+)?\s*mg\b`),
	},
}

// Library returns the pattern set in priority order. Callers must not
// modify the returned slice.
func Library() []Pattern {
	return library
}

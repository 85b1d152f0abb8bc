package patterns

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// Disclaimers maps target-language codes to the fixed notice attached to
// every translated summary. The set of keys doubles as the supported-language
// list: masking and restoration are language-agnostic, so adding a language
// is a disclaimer entry, not a code change.
type Disclaimers struct {
	notices map[string]string
}

// NewDisclaimers returns the built-in disclaimer table.
func NewDisclaimers() *Disclaimers {
	return &Disclaimers{
		notices: map[string]string{
			"spanish":  "⚠️ IMPORTANTE: Los nombres de medicamentos permanecen en inglés. Consulte a su médico si tiene preguntas.",
			"mandarin": "⚠️ 重要提示：药物名称保持英文。如有疑问请咨询您的医生。",
		},
	}
}

// LoadDisclaimers returns the built-in table extended with entries from a
// YAML file mapping language code to notice text. File entries override
// built-ins for the same code.
func LoadDisclaimers(path string) (*Disclaimers, error) {
	d := NewDisclaimers()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read disclaimers file: %w", err)
	}

	var extra map[string]string
	if err := yaml.Unmarshal(data, &extra); err != nil {
		return nil, fmt.Errorf("failed to parse disclaimers file: %w", err)
	}

	for lang, notice := range extra {
		d.notices[strings.ToLower(lang)] = notice
	}

	return d, nil
}

// IsSupported reports whether lang has a disclaimer entry.
func (d *Disclaimers) IsSupported(lang string) bool {
	_, ok := d.notices[strings.ToLower(lang)]
	return ok
}

// For returns the disclaimer for lang.
func (d *Disclaimers) For(lang string) (string, bool) {
	notice, ok := d.notices[strings.ToLower(lang)]
	return notice, ok
}

// Languages returns the supported language codes, sorted.
func (d *Disclaimers) Languages() []string {
	out := make([]string, 0, len(d.notices))
	for lang := range d.notices {
		out = append(out, lang)
	}
	sort.Strings(out)
	return out
}

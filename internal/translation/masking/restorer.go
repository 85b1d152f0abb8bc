package masking

import (
	"errors"
	"strings"
)

// ErrPlaceholderLost is returned when a placeholder token is missing from
// translated text. The caller must discard the translation and fall back to
// the original field value.
var ErrPlaceholderLost = errors.New("placeholder not found in translated text")

// Restore substitutes every placeholder in translated back with its original
// span text, first occurrence only, in insertion order. The whole restoration
// fails if any token is absent, or if any token is still present after
// substitution (a translator that duplicated one). A field holding a literal
// placeholder must never reach output.
func Restore(translated string, pm *PlaceholderMap) (string, error) {
	out := translated
	for _, e := range pm.Entries() {
		if !strings.Contains(out, e.Token) {
			return "", ErrPlaceholderLost
		}
		out = strings.Replace(out, e.Token, e.Original, 1)
	}
	for _, e := range pm.Entries() {
		if strings.Contains(out, e.Token) {
			return "", ErrPlaceholderLost
		}
	}
	return out, nil
}

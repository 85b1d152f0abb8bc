package translator

import (
	"context"
	"errors"
)

// ErrUnavailable signals that the translation engine could not serve the
// request. Callers fall back to the untranslated text for the affected
// field; the error never fails a whole document.
var ErrUnavailable = errors.New("translation engine unavailable")

// Translator turns masked narrative text into the target language.
// Placeholder tokens are expected, but not guaranteed, to pass through
// unchanged; restoration verifies that downstream.
type Translator interface {
	Translate(ctx context.Context, text, sourceLang, targetLang string) (string, error)
}

// Func adapts a plain function to the Translator interface.
type Func func(ctx context.Context, text, sourceLang, targetLang string) (string, error)

// Translate implements Translator.
func (f Func) Translate(ctx context.Context, text, sourceLang, targetLang string) (string, error) {
	return f(ctx, text, sourceLang, targetLang)
}

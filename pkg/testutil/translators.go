package testutil

import (
	"context"
	"strings"

	"github.com/medflow/translation-backend/internal/translation/translator"
)

// EchoTranslator returns its input unchanged. Useful for round-trip tests
// where the translation step must be a no-op.
func EchoTranslator() translator.Translator {
	return translator.Func(func(ctx context.Context, text, sourceLang, targetLang string) (string, error) {
		return text, nil
	})
}

// UpperTranslator uppercases the whole text. Placeholder tokens are already
// uppercase, so they survive; everything else is visibly "translated".
func UpperTranslator() translator.Translator {
	return translator.Func(func(ctx context.Context, text, sourceLang, targetLang string) (string, error) {
		return strings.ToUpper(text), nil
	})
}

// DropTokenTranslator removes every occurrence of token from the text,
// simulating an engine that mangles a placeholder.
func DropTokenTranslator(token string) translator.Translator {
	return translator.Func(func(ctx context.Context, text, sourceLang, targetLang string) (string, error) {
		return strings.ReplaceAll(strings.ToUpper(text), token, ""), nil
	})
}

// FailingTranslator always reports the engine as unavailable.
func FailingTranslator() translator.Translator {
	return translator.Func(func(ctx context.Context, text, sourceLang, targetLang string) (string, error) {
		return "", translator.ErrUnavailable
	})
}
